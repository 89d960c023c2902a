package reportsource

import "fmt"

// MissingFieldError reports that a source has no column with the requested
// name. Absent fields are never defaulted.
type MissingFieldError struct {
	Source string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("report source %s has no field named %q", e.Source, e.Field)
}
