// Package locator resolves requested sample identifiers against a set of
// loaded report sources.
package locator

import (
	"fmt"

	"github.com/carbocation/roga/reportsource"
)

// RowNotFoundError reports that an identifier is absent from every supplied
// report source.
type RowNotFoundError struct {
	ID        string
	KeyColumn string
	Sources   int
}

func (e *RowNotFoundError) Error() string {
	return fmt.Sprintf("%s %s was not found in any of the %d report source(s) searched", e.KeyColumn, e.ID, e.Sources)
}

// Located maps each found identifier to its row.
type Located struct {
	keyColumn string
	sources   int
	rows      map[string]reportsource.Row
}

// Locate finds the row for each requested identifier. Sources are scanned in
// order and, when an identifier appears in more than one source, the last
// source scanned wins. Within one source the first matching row is used.
// Identifiers found nowhere are left out of the result; Row reports them.
func Locate(sources []*reportsource.Table, ids []string, keyColumn string) (*Located, error) {
	if len(sources) < 1 {
		return nil, fmt.Errorf("no report sources were supplied to search for %s", keyColumn)
	}

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	out := &Located{
		keyColumn: keyColumn,
		sources:   len(sources),
		rows:      make(map[string]reportsource.Row),
	}

	for _, src := range sources {
		keys, err := src.Column(keyColumn)
		if err != nil {
			return nil, err
		}

		seenInSource := make(map[string]struct{})
		for i, key := range keys {
			if _, requested := wanted[key]; !requested {
				continue
			}
			if _, seen := seenInSource[key]; seen {
				continue
			}
			seenInSource[key] = struct{}{}

			// Overwrites any match from an earlier source
			out.rows[key] = src.Row(i)
		}
	}

	return out, nil
}

// Row returns the located row for id.
func (l *Located) Row(id string) (reportsource.Row, error) {
	row, exists := l.rows[id]
	if !exists {
		return reportsource.Row{}, &RowNotFoundError{ID: id, KeyColumn: l.keyColumn, Sources: l.sources}
	}

	return row, nil
}

func (l *Located) Has(id string) bool {
	_, exists := l.rows[id]
	return exists
}

// Rows returns a copy of the identifier => row mapping.
func (l *Located) Rows() map[string]reportsource.Row {
	out := make(map[string]reportsource.Row, len(l.rows))
	for k, v := range l.rows {
		out[k] = v
	}

	return out
}

func (l *Located) Len() int { return len(l.rows) }
