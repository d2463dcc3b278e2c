// Package evaluation scores predicted labels against gold labels and renders
// the results as a fixed-layout text report.
package evaluation

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrLengthMismatch = errors.New("gold and predicted labels differ in length")
	ErrEmpty          = errors.New("nothing to evaluate")
)

// LabelScore holds the per-label metrics. Ratios with a zero denominator are 0.
type LabelScore struct {
	Label     string  `json:"label"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`   // gold occurrences
	Predicted int     `json:"predicted"` // predicted occurrences
}

// Report is the outcome of comparing one prediction sequence to the gold labels
type Report struct {
	Labels   []string
	Scores   []LabelScore
	Accuracy float64
	MacroF1  float64
	Total    int
	// Confusion is indexed [gold][predicted] in Labels order
	Confusion *mat.Dense
}

// Evaluate compares positionally aligned gold and predicted labels. The label
// set is the sorted union of both sequences.
func Evaluate(gold, pred []string) (*Report, error) {
	if len(gold) != len(pred) {
		return nil, fmt.Errorf("%w: %d gold, %d predicted", ErrLengthMismatch, len(gold), len(pred))
	}
	if len(gold) == 0 {
		return nil, ErrEmpty
	}

	labels := labelUnion(gold, pred)
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}

	n := len(labels)
	confusion := mat.NewDense(n, n, nil)
	var correct int
	for k := range gold {
		i, j := index[gold[k]], index[pred[k]]
		confusion.Set(i, j, confusion.At(i, j)+1)
		if i == j {
			correct++
		}
	}

	scores := make([]LabelScore, n)
	f1s := make([]float64, n)
	for i, l := range labels {
		tp := confusion.At(i, i)
		support := mat.Sum(confusion.RowView(i))
		predicted := mat.Sum(confusion.ColView(i))

		precision := ratio(tp, predicted)
		recall := ratio(tp, support)
		f1 := ratio(2*precision*recall, precision+recall)

		scores[i] = LabelScore{
			Label:     l,
			Precision: precision,
			Recall:    recall,
			F1:        f1,
			Support:   int(support),
			Predicted: int(predicted),
		}
		f1s[i] = f1
	}

	return &Report{
		Labels:    labels,
		Scores:    scores,
		Accuracy:  float64(correct) / float64(len(gold)),
		MacroF1:   stat.Mean(f1s, nil),
		Total:     len(gold),
		Confusion: confusion,
	}, nil
}

// Score returns the metrics of one label
func (r *Report) Score(label string) (LabelScore, bool) {
	for _, s := range r.Scores {
		if s.Label == label {
			return s, true
		}
	}
	return LabelScore{}, false
}

func labelUnion(a, b []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, seq := range [][]string{a, b} {
		for _, l := range seq {
			if _, ok := seen[l]; !ok {
				seen[l] = struct{}{}
				out = append(out, l)
			}
		}
	}
	sort.Strings(out)
	return out
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
