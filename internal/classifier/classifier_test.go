package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baselines/internal/features"
)

func oneHot(i int, v float64) features.Vector {
	return features.Vector{Indices: []int{i}, Values: []float64{v}}
}

func vectors(n int) []features.Vector {
	out := make([]features.Vector, n)
	for i := range out {
		out[i] = oneHot(i%3, 1)
	}
	return out
}

func TestMostFrequentPredictsMajority(t *testing.T) {
	m := NewMostFrequent()
	require.NoError(t, m.Fit(vectors(3), []string{"OTHER", "OTHER", "OFFENSE"}))

	got, err := m.Predict(vectors(5))
	require.NoError(t, err)
	assert.Equal(t, []string{"OTHER", "OTHER", "OTHER", "OTHER", "OTHER"}, got)
	assert.Equal(t, "OTHER", m.Label())
	assert.Equal(t, []string{"OFFENSE", "OTHER"}, m.Classes())
}

func TestMostFrequentTieGoesToSmallestLabel(t *testing.T) {
	m := NewMostFrequent()
	require.NoError(t, m.Fit(vectors(4), []string{"OTHER", "INSULT", "OTHER", "INSULT"}))
	assert.Equal(t, "INSULT", m.Label())
}

func TestMostFrequentErrors(t *testing.T) {
	m := NewMostFrequent()
	_, err := m.Predict(vectors(1))
	assert.ErrorIs(t, err, ErrNotFitted)

	assert.ErrorIs(t, m.Fit(nil, nil), ErrNoTrainingData)
	assert.ErrorIs(t, m.Fit(vectors(2), []string{"OTHER"}), ErrLengthMismatch)
}

func TestLinearSVCBinary(t *testing.T) {
	x := []features.Vector{
		oneHot(0, 1), oneHot(0, 0.8), oneHot(0, 1.2),
		oneHot(1, 1), oneHot(1, 0.9), oneHot(1, 1.1),
	}
	y := []string{"OFFENSE", "OFFENSE", "OFFENSE", "OTHER", "OTHER", "OTHER"}

	svm := NewLinearSVC(DefaultSVMOptions())
	require.NoError(t, svm.Fit(x, y))
	assert.True(t, svm.Converged())
	assert.Equal(t, []string{"OFFENSE", "OTHER"}, svm.Classes())

	got, err := svm.Predict([]features.Vector{
		oneHot(0, 1),
		oneHot(1, 1),
		{Indices: []int{0, 1}, Values: []float64{0.9, 0.1}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"OFFENSE", "OTHER", "OFFENSE"}, got)
}

func TestLinearSVCMultiClass(t *testing.T) {
	labels := []string{"ABUSE", "INSULT", "OTHER", "PROFANITY"}
	var x []features.Vector
	var y []string
	for rep := 0; rep < 5; rep++ {
		for i, l := range labels {
			x = append(x, oneHot(i, 1+0.1*float64(rep)))
			y = append(y, l)
		}
	}

	svm := NewLinearSVC(DefaultSVMOptions())
	require.NoError(t, svm.Fit(x, y))

	test := make([]features.Vector, len(labels))
	for i := range labels {
		test[i] = oneHot(i, 1)
	}
	got, err := svm.Predict(test)
	require.NoError(t, err)
	assert.Equal(t, labels, got)
}

func TestLinearSVCIgnoresUnseenFeatureIndices(t *testing.T) {
	svm := NewLinearSVC(DefaultSVMOptions())
	require.NoError(t, svm.Fit(
		[]features.Vector{oneHot(0, 1), oneHot(1, 1)},
		[]string{"A", "B"},
	))

	got, err := svm.Predict([]features.Vector{{Indices: []int{0, 7}, Values: []float64{1, 5}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, got)
}

func TestLinearSVCDeterministic(t *testing.T) {
	x := []features.Vector{
		{Indices: []int{0, 1}, Values: []float64{0.6, 0.8}},
		{Indices: []int{1, 2}, Values: []float64{0.8, 0.6}},
		{Indices: []int{0, 2}, Values: []float64{0.6, 0.8}},
		{Indices: []int{0}, Values: []float64{1}},
		{Indices: []int{2}, Values: []float64{1}},
	}
	y := []string{"A", "B", "A", "A", "B"}

	first := NewLinearSVC(DefaultSVMOptions())
	second := NewLinearSVC(DefaultSVMOptions())
	require.NoError(t, first.Fit(x, y))
	require.NoError(t, second.Fit(x, y))

	p1, err := first.Predict(x)
	require.NoError(t, err)
	p2, err := second.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, p1, p2)
}

func TestLinearSVCRegularizesIntercept(t *testing.T) {
	// without features only the intercept can separate the classes
	x := make([]features.Vector, 4)
	y := []string{"A", "A", "A", "B"}

	svm := NewLinearSVC(SVMOptions{C: 0.1})
	require.NoError(t, svm.Fit(x, y))
	require.True(t, svm.Converged())

	// 1/2 b^2 + C*(3*(1-b) + (1+b)) is minimized at b = 2C; an
	// unregularized bias would sit on the margin at b = 1
	assert.InDelta(t, 0.2, svm.machines[0].b, 1e-2)

	got, err := svm.Predict(x[:1])
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, got)
}

func TestLinearSVCErrors(t *testing.T) {
	svm := NewLinearSVC(DefaultSVMOptions())
	_, err := svm.Predict(vectors(1))
	assert.ErrorIs(t, err, ErrNotFitted)

	assert.ErrorIs(t, svm.Fit(vectors(3), []string{"OTHER", "OTHER", "OTHER"}), ErrSingleClass)
	assert.ErrorIs(t, svm.Fit(nil, nil), ErrNoTrainingData)

	bad := NewLinearSVC(SVMOptions{C: 0})
	assert.Error(t, bad.Fit(vectors(2), []string{"A", "B"}))
}
