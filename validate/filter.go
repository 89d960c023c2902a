package validate

import (
	"github.com/carbocation/roga/reportsource"
)

const ReasonGenusMismatch = "genus mismatch"

// Exclusion records a requested sample that was dropped from the report, and
// why. Exclusions are expected outcomes, not errors.
type Exclusion struct {
	ID            string
	ExpectedGenus string
	ObservedGenus string
	Reason        string
}

// ValidateGenus reports, for each id, whether the observed Genus field of its
// row equals expected exactly. An id without a row is an error rather than a
// mismatch.
func ValidateGenus(rows map[string]reportsource.Row, ids []string, expected string) (map[string]bool, error) {
	out := make(map[string]bool, len(ids))

	for _, id := range ids {
		observed, err := observedGenus(rows, id)
		if err != nil {
			return nil, err
		}
		out[id] = observed == expected
	}

	return out, nil
}

// FilterValidated returns the ids whose genus matches expected, in the order
// they were requested with duplicates removed, along with an Exclusion for
// each id that did not match. If nothing matches, a *NoValidatedSamplesError
// is returned together with the exclusions.
func FilterValidated(rows map[string]reportsource.Row, ids []string, expected string) ([]string, []Exclusion, error) {
	ordered := UniqueIDs(ids)

	status, err := ValidateGenus(rows, ordered, expected)
	if err != nil {
		return nil, nil, err
	}

	validated := make([]string, 0, len(ordered))
	excluded := make([]Exclusion, 0)

	for _, id := range ordered {
		if status[id] {
			validated = append(validated, id)
			continue
		}

		// Already known to be readable from ValidateGenus
		observed, _ := observedGenus(rows, id)
		excluded = append(excluded, Exclusion{
			ID:            id,
			ExpectedGenus: expected,
			ObservedGenus: observed,
			Reason:        ReasonGenusMismatch,
		})
	}

	if len(validated) == 0 {
		return nil, excluded, &NoValidatedSamplesError{ExpectedGenus: expected, Requested: ordered, Excluded: excluded}
	}

	return validated, excluded, nil
}

// UniqueIDs drops repeated identifiers, keeping the first occurrence of each.
func UniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))

	for _, id := range ids {
		if _, exists := seen[id]; exists {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}

func observedGenus(rows map[string]reportsource.Row, id string) (string, error) {
	row, exists := rows[id]
	if !exists {
		return "", &MissingReportDataError{ID: id}
	}

	return row.Field(reportsource.FieldGenus)
}
