package validate

import (
	"fmt"
	"strings"
)

// MissingReportDataError reports an identifier that should already have been
// located but has no row.
type MissingReportDataError struct {
	ID string
}

func (e *MissingReportDataError) Error() string {
	return fmt.Sprintf("no report data was located for %s", e.ID)
}

// MalformedFieldError reports a field value that cannot be parsed as the type
// it is expected to hold.
type MalformedFieldError struct {
	ID    string // may be empty when the sample is not known at parse time
	Field string
	Value string
	Err   error
}

func (e *MalformedFieldError) Error() string {
	who := ""
	if e.ID != "" {
		who = " for " + e.ID
	}

	if e.Err != nil {
		return fmt.Sprintf("field %s%s has malformed value %q: %v", e.Field, who, e.Value, e.Err)
	}
	return fmt.Sprintf("field %s%s has malformed value %q", e.Field, who, e.Value)
}

func (e *MalformedFieldError) Unwrap() error { return e.Err }

// NoValidatedSamplesError is returned when genus filtering leaves nothing to
// report on. Excluded explains what happened to each requested sample.
type NoValidatedSamplesError struct {
	ExpectedGenus string
	Requested     []string
	Excluded      []Exclusion
}

func (e *NoValidatedSamplesError) Error() string {
	return fmt.Sprintf("none of the %d requested sample(s) (%s) matched the expected genus %s", len(e.Requested), strings.Join(e.Requested, ", "), strings.ToUpper(e.ExpectedGenus))
}
