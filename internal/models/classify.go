package models

import "time"

// ClassifyRequest represents a single message classification request
type ClassifyRequest struct {
	Text string `json:"text" binding:"required"`
}

// BatchClassifyRequest represents a batch classification request
type BatchClassifyRequest struct {
	Messages []BatchMessage `json:"messages" binding:"required,min=1,dive"`
}

// BatchMessage represents a message in batch request
type BatchMessage struct {
	ID   int64  `json:"id"`
	Text string `json:"text" binding:"required"`
}

// ClassifyResponse represents the classification result
type ClassifyResponse struct {
	Text             string  `json:"text"`
	Category         string  `json:"category"`
	IsOffensive      bool    `json:"is_offensive"`
	ProcessingTimeMs float64 `json:"processing_time_ms,omitempty"`
}

// BatchResult represents a single result in batch response
type BatchResult struct {
	ID          int64  `json:"id"`
	Text        string `json:"text"`
	Category    string `json:"category"`
	IsOffensive bool   `json:"is_offensive"`
}

// BatchClassifyResponse represents batch classification results
type BatchClassifyResponse struct {
	Results          []BatchResult `json:"results"`
	Total            int           `json:"total"`
	ProcessingTimeMs float64       `json:"processing_time_ms"`
}

// ModelInfo describes the model loaded by the classification service
type ModelInfo struct {
	RunID          string    `json:"run_id"`
	Baseline       string    `json:"baseline"`
	LabelMode      LabelMode `json:"label_mode"`
	Labels         []string  `json:"labels"`
	VocabularySize int       `json:"vocabulary_size"`
	TrainingSize   int       `json:"training_size"`
	TrainedAt      time.Time `json:"trained_at"`
}

// IsOffensive reports whether a predicted label marks the text as offensive.
// Every label other than OTHER is an offense in both label spaces.
func IsOffensive(label string) bool {
	return label != LabelOther
}
