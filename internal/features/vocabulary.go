package features

import (
	"sort"

	"github.com/chewxy/lingo/corpus"
)

// Vocabulary maps terms to feature indices. Indices are the corpus word ids,
// so they are stable in order of first appearance but need not start at 0.
type Vocabulary struct {
	corpus *corpus.Corpus
	// reserved counts the words the corpus starts out with
	reserved int
}

func newVocabulary() *Vocabulary {
	c := corpus.New()
	return &Vocabulary{corpus: c, reserved: c.Size()}
}

// add returns the index of term, assigning the next free one if it is new
func (v *Vocabulary) add(term string) int {
	return v.corpus.Add(term)
}

// ID looks up a term without modifying the vocabulary
func (v *Vocabulary) ID(term string) (int, bool) {
	id, ok := v.corpus.Id(term)
	if !ok || id < v.reserved {
		return 0, false
	}
	return id, true
}

// Term returns the term stored at index id
func (v *Vocabulary) Term(id int) (string, bool) {
	if id < v.reserved || id >= v.corpus.Size() {
		return "", false
	}
	return v.corpus.Word(id)
}

// Size returns the number of distinct terms learned from text
func (v *Vocabulary) Size() int {
	return v.corpus.Size() - v.reserved
}

// doc is a tokenized document as corpus word ids
type doc []int

func (d doc) IDs() []int { return []int(d) }

// lookup maps tokens to ids, dropping tokens outside the vocabulary
func (v *Vocabulary) lookup(tokens []string) doc {
	ids := make(doc, 0, len(tokens))
	for _, tok := range tokens {
		if id, ok := v.ID(tok); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// counts turns tokens into a sparse term-count vector, skipping unknown tokens
func (v *Vocabulary) counts(tokens []string) Vector {
	ids := v.lookup(tokens)
	sort.Ints(ids)

	vec := Vector{
		Indices: make([]int, 0, len(ids)),
		Values:  make([]float64, 0, len(ids)),
	}
	for i, id := range ids {
		if i > 0 && ids[i-1] == id {
			vec.Values[len(vec.Values)-1]++
			continue
		}
		vec.Indices = append(vec.Indices, id)
		vec.Values = append(vec.Values, 1)
	}
	return vec
}

// unique returns the distinct ids of d in ascending order
func (d doc) unique() doc {
	out := append(doc(nil), d...)
	sort.Ints(out)
	n := 0
	for i, id := range out {
		if i == 0 || out[n-1] != id {
			out[n] = id
			n++
		}
	}
	return out[:n]
}
