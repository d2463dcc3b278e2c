// Package features turns raw tweet text into sparse feature vectors.
//
// Both vectorizers learn their vocabulary from the training texts passed to
// Fit and never change it afterwards: tokens unseen at fit time are ignored
// by Transform.
package features

import (
	"errors"
	"math"

	"github.com/go-nlp/tfidf"
)

var (
	// ErrNotFitted is returned by Transform before a successful Fit
	ErrNotFitted = errors.New("vectorizer is not fitted")
	// ErrEmptyVocabulary is returned by Fit when the training texts contain no tokens
	ErrEmptyVocabulary = errors.New("empty vocabulary: training texts contain no tokens")
)

// CountVectorizer produces raw term counts
type CountVectorizer struct {
	vocab *Vocabulary
}

// NewCountVectorizer creates an unfitted count vectorizer
func NewCountVectorizer() *CountVectorizer {
	return &CountVectorizer{}
}

// Fit learns the vocabulary of docs
func (c *CountVectorizer) Fit(docs []string) error {
	vocab := newVocabulary()
	for _, doc := range docs {
		for _, tok := range Tokenize(doc) {
			vocab.add(tok)
		}
	}
	if vocab.Size() == 0 {
		return ErrEmptyVocabulary
	}
	c.vocab = vocab
	return nil
}

// Transform returns one term-count vector per document
func (c *CountVectorizer) Transform(docs []string) ([]Vector, error) {
	if c.vocab == nil {
		return nil, ErrNotFitted
	}
	out := make([]Vector, len(docs))
	for i, doc := range docs {
		out[i] = c.vocab.counts(Tokenize(doc))
	}
	return out, nil
}

// Vocabulary returns the fitted vocabulary, nil before Fit
func (c *CountVectorizer) Vocabulary() *Vocabulary {
	return c.vocab
}

// TfidfVectorizer weights term counts by smoothed inverse document
// frequency, idf(t) = ln((1+n)/(1+df(t))) + 1, and scales every
// vector to unit length
type TfidfVectorizer struct {
	vocab *Vocabulary
	idf   []float64
}

// NewTfidfVectorizer creates an unfitted TF-IDF vectorizer
func NewTfidfVectorizer() *TfidfVectorizer {
	return &TfidfVectorizer{}
}

// Fit learns the vocabulary and document frequencies of docs
func (t *TfidfVectorizer) Fit(docs []string) error {
	vocab := newVocabulary()
	df := tfidf.New()
	for _, text := range docs {
		tokens := Tokenize(text)
		ids := make(doc, len(tokens))
		for i, tok := range tokens {
			ids[i] = vocab.add(tok)
		}
		// TF counts documents per term when each id is added once
		df.Add(ids.unique())
	}
	if vocab.Size() == 0 {
		return ErrEmptyVocabulary
	}

	n := float64(df.Docs)
	idf := make([]float64, vocab.reserved+vocab.Size())
	for id := vocab.reserved; id < len(idf); id++ {
		idf[id] = math.Log((1+n)/(1+df.TF[id])) + 1
	}

	t.vocab = vocab
	t.idf = idf
	return nil
}

// Transform returns one L2-normalised TF-IDF vector per document.
// A document without known tokens maps to the empty vector.
func (t *TfidfVectorizer) Transform(docs []string) ([]Vector, error) {
	if t.vocab == nil {
		return nil, ErrNotFitted
	}
	out := make([]Vector, len(docs))
	for i, doc := range docs {
		vec := t.vocab.counts(Tokenize(doc))
		for k, id := range vec.Indices {
			vec.Values[k] *= t.idf[id]
		}
		vec.normalize()
		out[i] = vec
	}
	return out, nil
}

// Vocabulary returns the fitted vocabulary, nil before Fit
func (t *TfidfVectorizer) Vocabulary() *Vocabulary {
	return t.vocab
}

// IDF returns the learned weight of a term
func (t *TfidfVectorizer) IDF(term string) (float64, bool) {
	if t.vocab == nil {
		return 0, false
	}
	id, ok := t.vocab.ID(term)
	if !ok {
		return 0, false
	}
	return t.idf[id], true
}
