package models

import "time"

// Baseline names as they appear in reports, logs and stored runs
const (
	BaselineMostFrequent = "most_frequent"
	BaselineSVM          = "svm"
)

// EvaluationRun is the stored summary of one baseline evaluated in one run.
// A single CLI invocation produces one row per baseline sharing RunID.
type EvaluationRun struct {
	ID        int64     `db:"id" json:"id"`
	RunID     string    `db:"run_id" json:"run_id"`
	Baseline  string    `db:"baseline" json:"baseline"`
	LabelMode string    `db:"label_mode" json:"label_mode"`
	TrainSize int       `db:"train_size" json:"train_size"`
	TestSize  int       `db:"test_size" json:"test_size"`
	Accuracy  float64   `db:"accuracy" json:"accuracy"`
	MacroF1   float64   `db:"macro_f1" json:"macro_f1"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
