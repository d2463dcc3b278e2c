package features

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// tokenPattern keeps runs of two or more word characters, single-character
// tokens are dropped
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize NFC-normalizes and lowercases text and returns its word tokens in order
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(norm.NFC.String(text)), -1)
}
