package validate

import (
	"fmt"
	"strings"

	"github.com/carbocation/roga/reportsource"
	"gopkg.in/guregu/null.v3"
)

// Genus is one of the genera a report can be issued for.
type Genus byte

const (
	GenusInvalid Genus = iota
	Escherichia
	Salmonella
	Listeria
)

// Genera lists the supported genera in a stable order.
var Genera = []Genus{Escherichia, Salmonella, Listeria}

// variant carries everything that differs between genera: the marker panel
// shown in the identification table and how typing calls are read.
type variant struct {
	name          string
	panel         []string
	serotypeLabel string
	verotoxin     bool
	typing        func(metadata reportsource.Row) (Typing, error)
}

var variants = map[Genus]variant{
	Escherichia: {
		name:          "Escherichia",
		panel:         []string{"VT1", "VT2", "VT2f", "uidA", "eae"},
		serotypeLabel: "Serotype",
		verotoxin:     true,
		typing:        escherichiaTyping,
	},
	Salmonella: {
		name:          "Salmonella",
		panel:         []string{"invA", "stn"},
		serotypeLabel: "Serovar",
		typing:        salmonellaTyping,
	},
	Listeria: {
		name:          "Listeria",
		panel:         []string{"IGS", "hlyA", "inlJ"},
		serotypeLabel: "Serotype",
		typing:        listeriaTyping,
	},
}

// ParseGenus accepts a genus name in any letter case.
func ParseGenus(name string) (Genus, error) {
	for _, g := range Genera {
		if strings.EqualFold(strings.TrimSpace(name), variants[g].name) {
			return g, nil
		}
	}

	names := make([]string, 0, len(Genera))
	for _, g := range Genera {
		names = append(names, g.String())
	}

	return GenusInvalid, fmt.Errorf("Genus %q is not supported. Valid genera include: %s", name, strings.Join(names, ", "))
}

// String is the canonical name, as written in the Genus field of
// combinedMetadata.
func (g Genus) String() string {
	if v, exists := variants[g]; exists {
		return v.name
	}

	return "Invalid"
}

// Panel returns the markers reported for this genus, in display order.
func (g Genus) Panel() []string {
	return append([]string(nil), variants[g].panel...)
}

// Typing reads the genus-specific typing calls from a combinedMetadata row.
func (g Genus) Typing(metadata reportsource.Row) (Typing, error) {
	v, exists := variants[g]
	if !exists {
		return Typing{}, fmt.Errorf("no typing is defined for genus %s", g)
	}

	return v.typing(metadata)
}

// NotDetermined is how a null typing call is displayed.
const NotDetermined = "ND"

// TypingColumns returns the typing headers shown for this genus and the
// matching display values from t.
func (g Genus) TypingColumns(t Typing) (header, values []string) {
	v := variants[g]

	header = []string{v.serotypeLabel}
	values = []string{display(t.Serotype)}

	if v.verotoxin {
		header = append(header, "Verotoxin Profile")
		values = append(values, display(t.VerotoxinProfile))
	}

	header = append(header, "MLST", "rMLST")
	values = append(values, display(t.MLST), display(t.RMLST))

	return header, values
}

func display(n null.String) string {
	if !n.Valid {
		return NotDetermined
	}

	return n.String
}

// Typing holds the serotyping and sequence-typing calls for one sample. A
// call that the pipeline did not determine is null.
type Typing struct {
	// Serotype is the E. coli serotype or the Salmonella serovar.
	Serotype null.String

	// VerotoxinProfile is only reported for Escherichia.
	VerotoxinProfile null.String

	MLST  null.String
	RMLST null.String
}

func escherichiaTyping(metadata reportsource.Row) (Typing, error) {
	t, err := sequenceTyping(metadata)
	if err != nil {
		return t, err
	}

	serotype, err := metadata.Field(reportsource.FieldEColiSerotype)
	if err != nil {
		return t, err
	}
	t.Serotype = determined(StripAnnotation(serotype))

	vtyper, err := metadata.Field(reportsource.FieldVtyperProfile)
	if err != nil {
		return t, err
	}
	t.VerotoxinProfile = determined(vtyper)

	return t, nil
}

func salmonellaTyping(metadata reportsource.Row) (Typing, error) {
	t, err := sequenceTyping(metadata)
	if err != nil {
		return t, err
	}

	// SISTR serovars contain meaningful spaces (e.g., "I 4,[5],12:i:-"), so
	// they are not stripped.
	serovar, err := metadata.Field(reportsource.FieldSISTRSerovar)
	if err != nil {
		return t, err
	}
	t.Serotype = determined(serovar)

	return t, nil
}

// combinedMetadata has no Listeria serotype column; the serotype stays null.
func listeriaTyping(metadata reportsource.Row) (Typing, error) {
	return sequenceTyping(metadata)
}

func sequenceTyping(metadata reportsource.Row) (Typing, error) {
	var t Typing

	mlst, err := metadata.Field(reportsource.FieldMLSTResult)
	if err != nil {
		return t, err
	}
	t.MLST = determined(mlst)

	rmlst, err := metadata.Field(reportsource.FieldRMLSTResult)
	if err != nil {
		return t, err
	}
	t.RMLST = determined(rmlst)

	return t, nil
}

// determined converts the pipeline's "not determined" spellings to null.
func determined(value string) null.String {
	v := strings.TrimSpace(value)

	switch strings.ToUpper(v) {
	case "", "ND", "NA", "N/A", "NAN":
		return null.NewString("", false)
	}

	return null.StringFrom(v)
}
