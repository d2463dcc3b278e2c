package features

import "math"

// Vector is a sparse feature vector. Indices are strictly increasing.
type Vector struct {
	Indices []int
	Values  []float64
}

// Len returns the number of stored (non-zero) entries
func (v Vector) Len() int {
	return len(v.Indices)
}

// Dot returns the inner product with a dense weight vector.
// Indices outside w contribute nothing.
func (v Vector) Dot(w []float64) float64 {
	var sum float64
	for k, i := range v.Indices {
		if i < len(w) {
			sum += v.Values[k] * w[i]
		}
	}
	return sum
}

// SquaredNorm returns the squared euclidean norm
func (v Vector) SquaredNorm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return sum
}

// AddTo adds scale*v to the dense vector w in place
func (v Vector) AddTo(w []float64, scale float64) {
	for k, i := range v.Indices {
		w[i] += scale * v.Values[k]
	}
}

// normalize scales v to unit euclidean length; the zero vector is left alone
func (v Vector) normalize() {
	n := math.Sqrt(v.SquaredNorm())
	if n == 0 {
		return
	}
	for k := range v.Values {
		v.Values[k] /= n
	}
}
