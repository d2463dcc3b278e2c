package evaluation

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestEvaluateWorkedExample(t *testing.T) {
	r, err := Evaluate([]string{"A", "A", "B"}, []string{"A", "B", "B"})
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, r.Labels)
	assert.InDelta(t, 2.0/3.0, r.Accuracy, 1e-12)

	a, ok := r.Score("A")
	require.True(t, ok)
	assert.InDelta(t, 1.0, a.Precision, 1e-12)
	assert.InDelta(t, 0.5, a.Recall, 1e-12)
	assert.InDelta(t, 2.0/3.0, a.F1, 1e-12)
	assert.Equal(t, 2, a.Support)
	assert.Equal(t, 1, a.Predicted)

	b, ok := r.Score("B")
	require.True(t, ok)
	assert.InDelta(t, 0.5, b.Precision, 1e-12)
	assert.InDelta(t, 1.0, b.Recall, 1e-12)

	assert.InDelta(t, (a.F1+b.F1)/2, r.MacroF1, 1e-12)

	want := mat.NewDense(2, 2, []float64{1, 1, 0, 1})
	assert.True(t, mat.Equal(want, r.Confusion))
}

func TestEvaluateAccuracyExtremes(t *testing.T) {
	gold := []string{"OTHER", "OFFENSE", "OTHER", "OTHER"}

	perfect, err := Evaluate(gold, gold)
	require.NoError(t, err)
	assert.Equal(t, 1.0, perfect.Accuracy)
	assert.Equal(t, 1.0, perfect.MacroF1)

	flipped := []string{"OFFENSE", "OTHER", "OFFENSE", "OFFENSE"}
	none, err := Evaluate(gold, flipped)
	require.NoError(t, err)
	assert.Equal(t, 0.0, none.Accuracy)
	assert.Equal(t, 0.0, none.MacroF1)
}

func TestEvaluateZeroDivisionIsZero(t *testing.T) {
	r, err := Evaluate([]string{"OTHER", "OTHER"}, []string{"INSULT", "INSULT"})
	require.NoError(t, err)
	assert.Equal(t, []string{"INSULT", "OTHER"}, r.Labels)

	for _, s := range r.Scores {
		assert.Zero(t, s.Precision, s.Label)
		assert.Zero(t, s.Recall, s.Label)
		assert.Zero(t, s.F1, s.Label)
	}
}

func TestConfusionMarginals(t *testing.T) {
	gold := []string{"OTHER", "ABUSE", "INSULT", "OTHER", "PROFANITY", "OTHER", "INSULT", "ABUSE"}
	pred := []string{"OTHER", "OTHER", "INSULT", "ABUSE", "OTHER", "OTHER", "ABUSE", "ABUSE"}

	r, err := Evaluate(gold, pred)
	require.NoError(t, err)
	assert.Equal(t, []string{"ABUSE", "INSULT", "OTHER", "PROFANITY"}, r.Labels)

	goldCount := map[string]int{}
	predCount := map[string]int{}
	for i := range gold {
		goldCount[gold[i]]++
		predCount[pred[i]]++
	}
	for i, l := range r.Labels {
		assert.Equal(t, float64(goldCount[l]), mat.Sum(r.Confusion.RowView(i)), "row %s", l)
		assert.Equal(t, float64(predCount[l]), mat.Sum(r.Confusion.ColView(i)), "column %s", l)
	}
	assert.Equal(t, float64(len(gold)), mat.Sum(r.Confusion))
}

func TestEvaluateErrors(t *testing.T) {
	_, err := Evaluate([]string{"A"}, []string{"A", "B"})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = Evaluate(nil, nil)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestReportWrite(t *testing.T) {
	r, err := Evaluate([]string{"A", "A", "B"}, []string{"A", "B", "B"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf))
	lines := strings.Split(buf.String(), "\n")

	assert.Equal(t, strings.Repeat("-", 50), lines[0])
	assert.Equal(t, "Accuracy: 0.6666666666666666", lines[1])
	assert.Equal(t, "Precision, recall and F-score per class:", lines[3])
	assert.Equal(t, "            Precision     Recall    F-score", lines[4])
	assert.Equal(t, "A            1.000000   0.500000   0.666667", lines[5])
	assert.Equal(t, "B            0.500000   1.000000   0.666667", lines[6])
	assert.True(t, strings.HasPrefix(lines[8], "Average (macro) F-score: 0.666666"))
	assert.Equal(t, "Confusion matrix:", lines[10])
	assert.Equal(t, `Labels: ["A" "B"]`, lines[11])
	assert.True(t, strings.HasSuffix(buf.String(), "\n\n"))
}
