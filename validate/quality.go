package validate

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/carbocation/roga/reportsource"
)

// Verdict is the GDCS sequence-quality call.
type Verdict byte

const (
	Indeterminate Verdict = iota
	Pass
	Fail
)

func (v Verdict) String() string {
	switch v {
	case Pass:
		return "Pass"
	case Fail:
		return "Fail"
	}

	return "Indeterminate"
}

// Symbol is the legend character used in reports: + : Pass, ? :
// Indeterminate, - : Fail.
func (v Verdict) Symbol() string {
	switch v {
	case Pass:
		return "+"
	case Fail:
		return "-"
	}

	return "?"
}

// ParseVerdict maps the GDCS Pass/Fail sentinel to a Verdict. Anything other
// than + or - is Indeterminate; unknown encodings are never coerced.
func ParseVerdict(raw string) Verdict {
	switch strings.TrimSpace(raw) {
	case "+":
		return Pass
	case "-":
		return Fail
	}

	return Indeterminate
}

// DefaultCoverageUnit is assumed when a coverage value carries no suffix.
const DefaultCoverageUnit = "X"

// Coverage is an average depth rounded to a whole number, with its unit.
type Coverage struct {
	Depth int64
	Unit  string
}

func (c Coverage) String() string {
	return fmt.Sprintf("%d%s", c.Depth, c.Unit)
}

// Quality holds the normalized sequence-quality metrics for one sample.
type Quality struct {
	TotalLength int64
	Coverage    Coverage
	ContigCount int64
	GDCSMatches int64
	Verdict     Verdict
}

// DeriveQualityVerdict normalizes the raw quality fields. Coverage may carry a
// trailing unit suffix (e.g., "52.31X"), which is kept and the depth rounded.
func DeriveQualityVerdict(totalLength, coverage, contigCount, gdcsMatches, gdcsPassFailRaw string) (Quality, error) {
	var q Quality
	var err error

	if q.TotalLength, err = parseCount(reportsource.FieldTotalLength, totalLength); err != nil {
		return q, err
	}

	if q.Coverage, err = parseCoverage(coverage); err != nil {
		return q, err
	}

	if q.ContigCount, err = parseCount(reportsource.FieldNumContigs, contigCount); err != nil {
		return q, err
	}

	if q.GDCSMatches, err = parseCount(reportsource.FieldMatches, gdcsMatches); err != nil {
		return q, err
	}

	q.Verdict = ParseVerdict(gdcsPassFailRaw)

	return q, nil
}

// parseCount accepts non-negative integers, including whole numbers written
// in floating point notation (e.g., "4856321.0").
func parseCount(field, raw string) (int64, error) {
	s := strings.TrimSpace(raw)

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0, &MalformedFieldError{Field: field, Value: raw, Err: errors.New("negative count")}
		}
		return n, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &MalformedFieldError{Field: field, Value: raw, Err: err}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < 0 || f >= math.MaxInt64 {
		return 0, &MalformedFieldError{Field: field, Value: raw, Err: errors.New("not a whole non-negative number")}
	}

	return int64(f), nil
}

func parseCoverage(raw string) (Coverage, error) {
	s := strings.TrimSpace(raw)

	// Split off any trailing letters as the unit
	numEnd := strings.LastIndexFunc(s, func(r rune) bool { return !unicode.IsLetter(r) }) + 1
	number := strings.TrimSpace(s[:numEnd])
	unit := strings.ToUpper(s[numEnd:])
	if unit == "" {
		unit = DefaultCoverageUnit
	}

	if number == "" {
		return Coverage{}, &MalformedFieldError{Field: reportsource.FieldAverageCoverageDepth, Value: raw, Err: errors.New("no numeric value")}
	}

	f, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return Coverage{}, &MalformedFieldError{Field: reportsource.FieldAverageCoverageDepth, Value: raw, Err: err}
	}
	// float64(math.MaxInt64) is 2^63, which int64 cannot hold
	depth := math.Round(f)
	if math.IsNaN(depth) || math.IsInf(depth, 0) || depth < 0 || depth >= math.MaxInt64 {
		return Coverage{}, &MalformedFieldError{Field: reportsource.FieldAverageCoverageDepth, Value: raw, Err: errors.New("coverage must be a finite non-negative number within range")}
	}

	return Coverage{Depth: int64(depth), Unit: unit}, nil
}
