package roga

import (
	"bytes"

	"github.com/csimplestring/go-csv/detector"
)

// Delimiters that report sources are known to use, in order of preference
// when the detector considers more than one of them plausible. Semicolons
// come last because GeneSeekr profiles embed them inside fields.
var knownDelimiters = []rune{'\t', ',', '|', ';'}

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in sample, assuming a CSV-like file. If nothing plausible is found,
// the comma is assumed.
func DetermineDelimiter(sample []byte) rune {
	d := detector.New()
	candidates := d.DetectDelimiter(bytes.NewReader(sample), '"')

	seen := make(map[rune]struct{}, len(candidates))
	for _, c := range candidates {
		if len(c) > 0 {
			seen[rune(c[0])] = struct{}{}
		}
	}

	for _, delim := range knownDelimiters {
		if _, exists := seen[delim]; exists {
			return delim
		}
	}

	// The detector needs several lines to be confident. For header-only or
	// single-row files, fall back to counting in the first line.
	firstLine := sample
	if i := bytes.IndexByte(sample, '\n'); i >= 0 {
		firstLine = sample[:i]
	}
	for _, delim := range knownDelimiters {
		if bytes.ContainsRune(firstLine, delim) {
			return delim
		}
	}

	return ','
}
