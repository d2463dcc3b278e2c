package models

import (
	"fmt"
	"time"
)

// Coarse (binary) labels
const (
	LabelOther   = "OTHER"
	LabelOffense = "OFFENSE"
)

// Fine-grained labels; OTHER is shared with the binary task
const (
	LabelProfanity = "PROFANITY"
	LabelInsult    = "INSULT"
	LabelAbuse     = "ABUSE"
)

// LabelMode selects which of the two label columns a record contributes
type LabelMode string

const (
	// Binary is the 2-class problem: OTHER vs. OFFENSE
	Binary LabelMode = "binary"
	// Fine is the 4-class problem: OTHER, PROFANITY, INSULT, ABUSE
	Fine LabelMode = "fine"
)

// ParseLabelMode validates a mode string from config or flags
func ParseLabelMode(s string) (LabelMode, error) {
	switch LabelMode(s) {
	case Binary, Fine:
		return LabelMode(s), nil
	default:
		return "", fmt.Errorf("unknown label mode %q (expected %q or %q)", s, Binary, Fine)
	}
}

// Record is a single labeled tweet as read from the corpus file
type Record struct {
	Text   string `json:"text" db:"text"`
	Coarse string `json:"coarse_label" db:"coarse_label"`
	Fine   string `json:"fine_label" db:"fine_label"`
}

// Label returns the record's label for the given mode
func (r Record) Label(mode LabelMode) string {
	if mode == Fine {
		return r.Fine
	}
	return r.Coarse
}

// Columns splits records into parallel text and label sequences
func Columns(records []Record, mode LabelMode) (texts, labels []string) {
	texts = make([]string, len(records))
	labels = make([]string, len(records))
	for i, r := range records {
		texts[i] = r.Text
		labels[i] = r.Label(mode)
	}
	return texts, labels
}

// DatasetEntry is a stored record in the ml_dataset table.
// Position keeps the file order; splits depend on it.
type DatasetEntry struct {
	ID        int64     `db:"id" json:"id"`
	Position  int       `db:"position" json:"position"`
	Text      string    `db:"text" json:"text"`
	Coarse    string    `db:"coarse_label" json:"coarse_label"`
	Fine      string    `db:"fine_label" json:"fine_label"`
	Source    string    `db:"source" json:"source"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Record drops the storage metadata
func (e *DatasetEntry) Record() Record {
	return Record{Text: e.Text, Coarse: e.Coarse, Fine: e.Fine}
}

// DatasetStats summarizes the stored dataset per label column
type DatasetStats struct {
	Total    int            `json:"total"`
	ByCoarse map[string]int `json:"by_coarse_label"`
	ByFine   map[string]int `json:"by_fine_label"`
}
