package corpus

import (
	"fmt"
	"math"
)

// DefaultTrainFraction holds out the last 20% of the corpus for evaluation
const DefaultTrainFraction = 0.8

// Split is a positional train/test partition of a corpus
type Split struct {
	TrainTexts  []string
	TrainLabels []string
	TestTexts   []string
	TestLabels  []string
}

// SplitPoint returns floor(fraction*n), the index where the test part starts
func SplitPoint(n int, fraction float64) int {
	return int(math.Floor(fraction * float64(n)))
}

// SplitData partitions texts and labels without shuffling: the first
// floor(fraction*N) items train, the rest evaluate
func SplitData(texts, labels []string, fraction float64) (*Split, error) {
	if len(texts) != len(labels) {
		return nil, fmt.Errorf("%w: %d texts, %d labels", ErrLengthMismatch, len(texts), len(labels))
	}
	if fraction <= 0 || fraction >= 1 {
		return nil, fmt.Errorf("train fraction must be in (0, 1), got %v", fraction)
	}

	point := SplitPoint(len(texts), fraction)
	return &Split{
		TrainTexts:  texts[:point],
		TrainLabels: labels[:point],
		TestTexts:   texts[point:],
		TestLabels:  labels[point:],
	}, nil
}
