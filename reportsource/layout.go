package reportsource

import (
	"fmt"
	"sort"
	"strings"
)

// Layout describes one kind of report source: the column used as its lookup
// key and the fields downstream consumers expect to read from it.
type Layout struct {
	Name      string
	KeyColumn string
	Fields    []string
}

// Field names written by the COWBAT pipeline.
const (
	FieldSeqID                = "SeqID"
	FieldSampleName           = "SampleName"
	FieldGenus                = "Genus"
	FieldTotalLength          = "TotalLength"
	FieldAverageCoverageDepth = "AverageCoverageDepth"
	FieldNumContigs           = "NumContigs"
	FieldGeneSeekrProfile     = "GeneSeekr_Profile"
	FieldSISTRSerovar         = "SISTR_serovar"
	FieldMLSTResult           = "MLST_Result"
	FieldRMLSTResult          = "rMLST_Result"
	FieldEColiSerotype        = "E_coli_Serotype"
	FieldVtyperProfile        = "Vtyper_Profile"
	FieldPipelineVersion      = "PipelineVersion"

	FieldStrain   = "Strain"
	FieldMatches  = "Matches"
	FieldPassFail = "Pass/Fail"
)

var (
	CombinedMetadata = Layout{
		Name:      "combinedMetadata",
		KeyColumn: FieldSeqID,
		Fields: []string{
			FieldSeqID,
			FieldSampleName,
			FieldGenus,
			FieldTotalLength,
			FieldAverageCoverageDepth,
			FieldNumContigs,
			FieldGeneSeekrProfile,
			FieldSISTRSerovar,
			FieldMLSTResult,
			FieldRMLSTResult,
			FieldEColiSerotype,
			FieldVtyperProfile,
			FieldPipelineVersion,
		},
	}

	GDCS = Layout{
		Name:      "GDCS",
		KeyColumn: FieldStrain,
		Fields: []string{
			FieldStrain,
			FieldMatches,
			FieldPassFail,
		},
	}
)

var Layouts = map[string]Layout{
	CombinedMetadata.Name: CombinedMetadata,
	GDCS.Name:             GDCS,
}

func LayoutNames() string {
	names := make([]string, 0, len(Layouts))
	for m := range Layouts {
		names = append(names, m)
	}
	sort.Strings(names)

	return strings.Join(names, ", ")
}

// LookupLayout returns the named layout.
func LookupLayout(name string) (Layout, error) {
	l, exists := Layouts[name]
	if !exists {
		return Layout{}, fmt.Errorf("Layout %s is not found. Valid layout names include: %s", name, LayoutNames())
	}

	return l, nil
}
