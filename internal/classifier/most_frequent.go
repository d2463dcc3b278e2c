package classifier

import "baselines/internal/features"

// MostFrequent ignores its input and always predicts the label seen most
// often during Fit. On a tie the lexicographically smallest label wins.
type MostFrequent struct {
	classes []string
	label   string
	fitted  bool
}

// NewMostFrequent creates an unfitted most-frequent-label classifier
func NewMostFrequent() *MostFrequent {
	return &MostFrequent{}
}

func (m *MostFrequent) Fit(x []features.Vector, y []string) error {
	if err := checkTrainingData(x, y); err != nil {
		return err
	}

	counts := make(map[string]int)
	for _, l := range y {
		counts[l]++
	}

	classes := uniqueSorted(y)
	best := classes[0]
	for _, c := range classes[1:] {
		if counts[c] > counts[best] {
			best = c
		}
	}

	m.classes = classes
	m.label = best
	m.fitted = true
	return nil
}

func (m *MostFrequent) Predict(x []features.Vector) ([]string, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	out := make([]string, len(x))
	for i := range out {
		out[i] = m.label
	}
	return out, nil
}

// Label returns the constant prediction, empty before Fit
func (m *MostFrequent) Label() string {
	return m.label
}

// Classes returns the sorted training labels
func (m *MostFrequent) Classes() []string {
	return m.classes
}
