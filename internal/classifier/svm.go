package classifier

import (
	"fmt"
	"math"
	"math/rand"

	"baselines/internal/features"
)

const (
	DefaultC         = 1.0
	DefaultMaxIter   = 1000
	DefaultTolerance = 1e-3
)

// SVMOptions holds the hyper-parameters of LinearSVC
type SVMOptions struct {
	C         float64 // soft-margin penalty
	MaxIter   int     // passes over the training data per class pair
	Tolerance float64 // stop once the projected-gradient spread falls below it
	Seed      int64   // seeds the coordinate visiting order
}

// DefaultSVMOptions returns C=1 with the stopping rule used by the CLI
func DefaultSVMOptions() SVMOptions {
	return SVMOptions{
		C:         DefaultC,
		MaxIter:   DefaultMaxIter,
		Tolerance: DefaultTolerance,
	}
}

// binaryMachine separates classes[pos] (+1) from classes[neg] (-1)
type binaryMachine struct {
	pos, neg  int
	w         []float64
	b         float64
	iter      int
	converged bool
}

func (m *binaryMachine) decision(x features.Vector) float64 {
	return x.Dot(m.w) + m.b
}

// LinearSVC is a linear-kernel soft-margin SVM. Multi-class problems are
// decomposed one-vs-one: one binary machine per label pair, prediction by
// majority vote with ties going to the smaller label.
//
// Each binary machine is trained with dual coordinate descent on the hinge
// loss; the intercept is learned as the weight of a constant feature.
// The intercept is therefore regularized along with w, unlike the
// unregularized bias of libsvm's SVC.
type LinearSVC struct {
	opts     SVMOptions
	classes  []string
	machines []*binaryMachine
}

// NewLinearSVC creates an unfitted classifier
func NewLinearSVC(opts SVMOptions) *LinearSVC {
	if opts.MaxIter <= 0 {
		opts.MaxIter = DefaultMaxIter
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}
	return &LinearSVC{opts: opts}
}

func (s *LinearSVC) Fit(x []features.Vector, y []string) error {
	if err := checkTrainingData(x, y); err != nil {
		return err
	}
	if s.opts.C <= 0 {
		return fmt.Errorf("penalty C must be positive, got %v", s.opts.C)
	}

	classes := uniqueSorted(y)
	if len(classes) < 2 {
		return fmt.Errorf("%w: only %q present", ErrSingleClass, classes[0])
	}

	classIndex := make(map[string]int, len(classes))
	for i, c := range classes {
		classIndex[c] = i
	}

	dim := 0
	for _, v := range x {
		if n := v.Len(); n > 0 && v.Indices[n-1]+1 > dim {
			dim = v.Indices[n-1] + 1
		}
	}

	var machines []*binaryMachine
	for i := 0; i < len(classes); i++ {
		for j := i + 1; j < len(classes); j++ {
			var xs []features.Vector
			var ys []float64
			for k, l := range y {
				switch classIndex[l] {
				case i:
					xs = append(xs, x[k])
					ys = append(ys, 1)
				case j:
					xs = append(xs, x[k])
					ys = append(ys, -1)
				}
			}
			m := &binaryMachine{pos: i, neg: j}
			s.train(m, xs, ys, dim)
			machines = append(machines, m)
		}
	}

	s.classes = classes
	s.machines = machines
	return nil
}

// train solves the dual of the L1-loss SVM
//
//	min 1/2 a'Qa - e'a  subject to 0 <= a_i <= C
//
// one coordinate at a time, keeping w = sum a_i y_i x_i in sync
func (s *LinearSVC) train(m *binaryMachine, xs []features.Vector, ys []float64, dim int) {
	n := len(xs)
	c := s.opts.C
	alpha := make([]float64, n)
	m.w = make([]float64, dim)

	qd := make([]float64, n)
	for i, x := range xs {
		qd[i] = x.SquaredNorm() + 1
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	rng := rand.New(rand.NewSource(s.opts.Seed))

	for m.iter = 0; m.iter < s.opts.MaxIter; m.iter++ {
		rng.Shuffle(n, func(a, b int) { order[a], order[b] = order[b], order[a] })

		maxPG, minPG := math.Inf(-1), math.Inf(1)
		for _, i := range order {
			g := ys[i]*m.decision(xs[i]) - 1

			var pg float64
			switch {
			case alpha[i] == 0:
				pg = math.Min(g, 0)
			case alpha[i] == c:
				pg = math.Max(g, 0)
			default:
				pg = g
			}
			maxPG = math.Max(maxPG, pg)
			minPG = math.Min(minPG, pg)

			if math.Abs(pg) > 1e-12 {
				old := alpha[i]
				alpha[i] = math.Min(math.Max(old-g/qd[i], 0), c)
				d := (alpha[i] - old) * ys[i]
				xs[i].AddTo(m.w, d)
				m.b += d
			}
		}

		if maxPG-minPG <= s.opts.Tolerance {
			m.converged = true
			m.iter++
			return
		}
	}
}

func (s *LinearSVC) Predict(x []features.Vector) ([]string, error) {
	if s.machines == nil {
		return nil, ErrNotFitted
	}

	out := make([]string, len(x))
	votes := make([]int, len(s.classes))
	for k, v := range x {
		for i := range votes {
			votes[i] = 0
		}
		for _, m := range s.machines {
			if m.decision(v) > 0 {
				votes[m.pos]++
			} else {
				votes[m.neg]++
			}
		}

		best := 0
		for i := 1; i < len(votes); i++ {
			if votes[i] > votes[best] {
				best = i
			}
		}
		out[k] = s.classes[best]
	}
	return out, nil
}

// Classes returns the sorted training labels
func (s *LinearSVC) Classes() []string {
	return s.classes
}

// Converged reports whether every pairwise machine met the tolerance
// before running out of iterations
func (s *LinearSVC) Converged() bool {
	for _, m := range s.machines {
		if !m.converged {
			return false
		}
	}
	return len(s.machines) > 0
}
