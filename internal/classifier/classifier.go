// Package classifier implements the two baseline classifiers that sit on
// top of the feature vectorizers: a most-frequent-label predictor and a
// linear support vector classifier.
package classifier

import (
	"errors"
	"fmt"
	"sort"

	"baselines/internal/features"
)

var (
	ErrNotFitted      = errors.New("classifier is not fitted")
	ErrNoTrainingData = errors.New("no training data")
	ErrSingleClass    = errors.New("training data must contain at least two labels")
	ErrLengthMismatch = errors.New("feature and label counts differ")
)

func checkTrainingData(x []features.Vector, y []string) error {
	if len(x) != len(y) {
		return fmt.Errorf("%w: %d vectors, %d labels", ErrLengthMismatch, len(x), len(y))
	}
	if len(y) == 0 {
		return ErrNoTrainingData
	}
	return nil
}

// uniqueSorted returns the distinct labels of y in lexicographic order
func uniqueSorted(y []string) []string {
	seen := make(map[string]struct{}, 4)
	var out []string
	for _, l := range y {
		if _, ok := seen[l]; !ok {
			seen[l] = struct{}{}
			out = append(out, l)
		}
	}
	sort.Strings(out)
	return out
}
