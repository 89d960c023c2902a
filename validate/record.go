package validate

import (
	"errors"

	"github.com/carbocation/roga/reportsource"
)

// Record is the validated, presentation-ready view of one sample.
type Record struct {
	SeqID      string
	SampleName string

	ExpectedGenus Genus
	ObservedGenus string
	GenusMatch    bool

	// Markers are the recognized GeneSeekr markers in profile order.
	Markers []string

	// MarkerPresence covers exactly the expected genus' panel.
	MarkerPresence map[string]bool

	Typing  Typing
	Quality Quality

	PipelineVersion string
}

// PanelCells returns "+" or "-" for each panel marker, in panel order.
func (r Record) PanelCells() []string {
	panel := r.ExpectedGenus.Panel()
	out := make([]string, 0, len(panel))
	for _, m := range panel {
		out = append(out, PresenceSymbol(r.MarkerPresence[m]))
	}

	return out
}

// Derive builds the Record for one sample from its combinedMetadata row and
// its GDCS row.
func Derive(expected Genus, metadata, gdcs reportsource.Row, vocabulary MarkerSet) (Record, error) {
	rec := Record{ExpectedGenus: expected}

	fields := []struct {
		name string
		dst  *string
	}{
		{reportsource.FieldSeqID, &rec.SeqID},
		{reportsource.FieldSampleName, &rec.SampleName},
		{reportsource.FieldGenus, &rec.ObservedGenus},
		{reportsource.FieldPipelineVersion, &rec.PipelineVersion},
	}
	for _, f := range fields {
		v, err := metadata.Field(f.name)
		if err != nil {
			return rec, err
		}
		*f.dst = v
	}

	rec.GenusMatch = rec.ObservedGenus == expected.String()

	profile, err := metadata.Field(reportsource.FieldGeneSeekrProfile)
	if err != nil {
		return rec, err
	}
	rec.Markers = ParseMarkerProfile(profile, vocabulary)
	rec.MarkerPresence = MarkerPresence(rec.Markers, expected.Panel())

	if rec.Typing, err = expected.Typing(metadata); err != nil {
		return rec, err
	}

	if rec.Quality, err = deriveQuality(metadata, gdcs); err != nil {
		var mfe *MalformedFieldError
		if errors.As(err, &mfe) {
			mfe.ID = rec.SeqID
		}
		return rec, err
	}

	return rec, nil
}

func deriveQuality(metadata, gdcs reportsource.Row) (Quality, error) {
	raw := make(map[string]string)

	for _, src := range []struct {
		row    reportsource.Row
		fields []string
	}{
		{metadata, []string{reportsource.FieldTotalLength, reportsource.FieldAverageCoverageDepth, reportsource.FieldNumContigs}},
		{gdcs, []string{reportsource.FieldMatches, reportsource.FieldPassFail}},
	} {
		for _, field := range src.fields {
			v, err := src.row.Field(field)
			if err != nil {
				return Quality{}, err
			}
			raw[field] = v
		}
	}

	return DeriveQualityVerdict(
		raw[reportsource.FieldTotalLength],
		raw[reportsource.FieldAverageCoverageDepth],
		raw[reportsource.FieldNumContigs],
		raw[reportsource.FieldMatches],
		raw[reportsource.FieldPassFail],
	)
}
