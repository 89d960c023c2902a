// Package labinfo is the directory of laboratories that issue reports.
package labinfo

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

//go:embed lookups/*
var embeddedLookups embed.FS

type Lab struct {
	Name      string `csv:"Name"`
	Address   string `csv:"Address"`
	Telephone string `csv:"Telephone"`
}

// Directory maps lab names to their contact details.
type Directory map[string]Lab

// Load reads the embedded lab directory.
func Load() (Directory, error) {
	fileBytes, err := embeddedLookups.ReadFile("lookups/labs.csv")
	if err != nil {
		return nil, pfx.Err(err)
	}

	return Parse(fileBytes)
}

// Parse reads a comma-delimited lab directory with Name, Address and
// Telephone columns.
func Parse(fileBytes []byte) (Directory, error) {
	records := []*Lab{}
	if err := gocsv.UnmarshalBytes(fileBytes, &records); err != nil {
		return nil, pfx.Err(err)
	}

	out := make(Directory, len(records))
	for _, rec := range records {
		if _, exists := out[rec.Name]; exists {
			return nil, fmt.Errorf("lab %s is listed more than once", rec.Name)
		}
		out[rec.Name] = *rec
	}

	return out, nil
}

// Lookup finds a lab by its exact name.
func (d Directory) Lookup(name string) (Lab, error) {
	lab, exists := d[name]
	if !exists {
		return Lab{}, fmt.Errorf("Lab %s is not found. Valid labs include: %s", name, strings.Join(d.Names(), ", "))
	}

	return lab, nil
}

func (d Directory) Names() []string {
	out := make([]string, 0, len(d))
	for name := range d {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}
