// Package corpus reads the tab-separated tweet corpus and splits it into
// training and evaluation parts.
//
// Each line holds three fields: the tweet text, the coarse label
// (OTHER|OFFENSE) and the fine label (OTHER|PROFANITY|INSULT|ABUSE).
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"baselines/internal/models"
)

// FieldCount is the number of tab-separated fields every line must have
const FieldCount = 3

const maxLineSize = 1 << 20

// ErrLengthMismatch is returned when text and label sequences differ in length
var ErrLengthMismatch = errors.New("texts and labels differ in length")

// FormatError reports a line that does not split into exactly FieldCount fields
type FormatError struct {
	Line   int    // 1-based line number
	Fields int    // number of fields found
	Text   string // first field of the line
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("missing data for tweet %q (line %d: %d fields, want %d)", e.Text, e.Line, e.Fields, FieldCount)
}

// ReadRecords parses every line of r into a Record, keeping file order.
// The first malformed line aborts the read.
func ReadRecords(r io.Reader) ([]models.Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var records []models.Record
	line := 0
	for scanner.Scan() {
		line++
		data := strings.Split(strings.TrimRightFunc(scanner.Text(), unicode.IsSpace), "\t")
		if len(data) != FieldCount {
			return nil, &FormatError{Line: line, Fields: len(data), Text: data[0]}
		}
		records = append(records, models.Record{
			Text:   data[0],
			Coarse: data[1],
			Fine:   data[2],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corpus at line %d: %w", line+1, err)
	}

	return records, nil
}

// ReadFile opens path and reads all records from it
func ReadFile(path string) ([]models.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus file: %w", err)
	}
	defer file.Close()

	records, err := ReadRecords(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// ReadCorpus reads the corpus file and returns parallel texts and labels,
// labels taken from the coarse column in binary mode and the fine column otherwise
func ReadCorpus(path string, mode models.LabelMode) (texts, labels []string, err error) {
	records, err := ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	texts, labels = models.Columns(records, mode)
	return texts, labels, nil
}
