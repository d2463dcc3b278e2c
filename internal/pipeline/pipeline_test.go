package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baselines/internal/classifier"
	"baselines/internal/features"
)

var (
	trainTexts = []string{
		"du bist ein idiot",
		"so ein dummer idiot",
		"halt die klappe du idiot",
		"schönes wetter heute",
		"die sonne scheint heute",
		"wetter und sonne am see",
	}
	trainLabels = []string{"OFFENSE", "OFFENSE", "OFFENSE", "OTHER", "OTHER", "OTHER"}
)

func TestFrequencyBaselinePredictsConstant(t *testing.T) {
	p := NewFrequencyBaseline()
	require.NoError(t, p.Fit(
		[]string{"eins zwei", "drei vier", "fünf sechs"},
		[]string{"OTHER", "OTHER", "OFFENSE"},
	))

	got, err := p.Predict([]string{"eins", "völlig unbekannt", "", "fünf sechs"})
	require.NoError(t, err)
	assert.Equal(t, []string{"OTHER", "OTHER", "OTHER", "OTHER"}, got)
	assert.Equal(t, "most_frequent", p.Name())
	assert.Equal(t, 6, p.VocabularySize())
	assert.True(t, p.Converged(), "no iterative solver")
}

func TestSVMBaselineSeparatesToyCorpus(t *testing.T) {
	p := NewSVMBaseline(classifier.DefaultSVMOptions())
	require.NoError(t, p.Fit(trainTexts, trainLabels))
	assert.Equal(t, []string{"OFFENSE", "OTHER"}, p.Classes())

	got, err := p.Predict([]string{"was für ein idiot", "heute scheint die sonne"})
	require.NoError(t, err)
	assert.Equal(t, []string{"OFFENSE", "OTHER"}, got)
	assert.Equal(t, "svm", p.Name())
	assert.True(t, p.Converged())
}

func TestPredictBeforeFit(t *testing.T) {
	_, err := NewSVMBaseline(classifier.DefaultSVMOptions()).Predict([]string{"x"})
	assert.ErrorIs(t, err, features.ErrNotFitted)
	assert.Zero(t, NewFrequencyBaseline().VocabularySize())
}

func TestFitErrors(t *testing.T) {
	svm := NewSVMBaseline(classifier.DefaultSVMOptions())
	err := svm.Fit([]string{"ein text", "noch einer"}, []string{"OTHER", "OTHER"})
	assert.ErrorIs(t, err, classifier.ErrSingleClass)

	err = NewFrequencyBaseline().Fit([]string{"a", "!"}, []string{"OTHER", "OFFENSE"})
	assert.ErrorIs(t, err, features.ErrEmptyVocabulary)

	err = NewFrequencyBaseline().Fit([]string{"ein text"}, nil)
	assert.ErrorIs(t, err, classifier.ErrLengthMismatch)
}
