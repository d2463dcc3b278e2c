// Package pipeline chains a text vectorizer and a classifier into a single
// fit/predict unit and builds the two baseline configurations.
package pipeline

import (
	"fmt"

	"baselines/internal/classifier"
	"baselines/internal/features"
	"baselines/internal/models"
)

// Vectorizer learns a feature space from training texts
type Vectorizer interface {
	Fit(docs []string) error
	Transform(docs []string) ([]features.Vector, error)
	Vocabulary() *features.Vocabulary
}

// Classifier maps feature vectors to labels
type Classifier interface {
	Fit(x []features.Vector, y []string) error
	Predict(x []features.Vector) ([]string, error)
	Classes() []string
}

// Pipeline is a vectorizer followed by a classifier
type Pipeline struct {
	name       string
	vectorizer Vectorizer
	classifier Classifier
}

// New assembles a pipeline from its two stages
func New(name string, vec Vectorizer, clf Classifier) *Pipeline {
	return &Pipeline{name: name, vectorizer: vec, classifier: clf}
}

// NewFrequencyBaseline is raw term counts followed by a most-frequent-label classifier
func NewFrequencyBaseline() *Pipeline {
	return New(models.BaselineMostFrequent, features.NewCountVectorizer(), classifier.NewMostFrequent())
}

// NewSVMBaseline is TF-IDF unigrams followed by a linear SVM
func NewSVMBaseline(opts classifier.SVMOptions) *Pipeline {
	return New(models.BaselineSVM, features.NewTfidfVectorizer(), classifier.NewLinearSVC(opts))
}

// Name identifies the pipeline in reports and logs
func (p *Pipeline) Name() string {
	return p.name
}

// Fit learns the feature space from texts and trains the classifier on it
func (p *Pipeline) Fit(texts, labels []string) error {
	if len(texts) != len(labels) {
		return fmt.Errorf("%s: %w: %d texts, %d labels", p.name, classifier.ErrLengthMismatch, len(texts), len(labels))
	}
	if err := p.vectorizer.Fit(texts); err != nil {
		return fmt.Errorf("%s: failed to fit vectorizer: %w", p.name, err)
	}
	x, err := p.vectorizer.Transform(texts)
	if err != nil {
		return fmt.Errorf("%s: failed to transform training texts: %w", p.name, err)
	}
	if err := p.classifier.Fit(x, labels); err != nil {
		return fmt.Errorf("%s: failed to fit classifier: %w", p.name, err)
	}
	return nil
}

// Predict labels texts with the feature space fixed at Fit
func (p *Pipeline) Predict(texts []string) ([]string, error) {
	x, err := p.vectorizer.Transform(texts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.name, err)
	}
	labels, err := p.classifier.Predict(x)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.name, err)
	}
	return labels, nil
}

// VocabularySize returns the number of learned terms, 0 before Fit
func (p *Pipeline) VocabularySize() int {
	if v := p.vectorizer.Vocabulary(); v != nil {
		return v.Size()
	}
	return 0
}

// Classes returns the sorted labels seen during Fit
func (p *Pipeline) Classes() []string {
	return p.classifier.Classes()
}

// Converged reports whether the classifier met its stopping tolerance.
// Classifiers without an iterative solver always report true.
func (p *Pipeline) Converged() bool {
	if c, ok := p.classifier.(interface{ Converged() bool }); ok {
		return c.Converged()
	}
	return true
}
