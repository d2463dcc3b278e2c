package evaluation

import (
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/mat"
)

var rule = strings.Repeat("-", 50)

// Write renders the report:
//
//	--------------------------------------------------
//	Accuracy: 0.75
//	--------------------------------------------------
//	Precision, recall and F-score per class:
//	            Precision     Recall    F-score
//	OFFENSE      0.666667   0.500000   0.571429
//	...
//	--------------------------------------------------
//	Average (macro) F-score: 0.7
//	--------------------------------------------------
//	Confusion matrix:
//	Labels: ["OFFENSE" "OTHER"]
//	⎡ 2  2⎤
//	⎣ 1  7⎦
func (r *Report) Write(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "Accuracy:", r.Accuracy)
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "Precision, recall and F-score per class:")
	fmt.Fprintf(&b, "%-10s %10s %10s %10s\n", "", "Precision", "Recall", "F-score")
	for _, s := range r.Scores {
		fmt.Fprintf(&b, "%-10s %10f %10f %10f\n", s.Label, s.Precision, s.Recall, s.F1)
	}
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "Average (macro) F-score:", r.MacroF1)
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "Confusion matrix:")
	fmt.Fprintf(&b, "Labels: %q\n", r.Labels)
	fmt.Fprintf(&b, "%v\n", mat.Formatted(r.Confusion, mat.Squeeze()))
	fmt.Fprintln(&b)

	_, err := io.WriteString(w, b.String())
	return err
}
