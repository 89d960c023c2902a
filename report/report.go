// Package report assembles the validated per-sample records for one Report
// of Genomic Analysis.
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/carbocation/roga/labinfo"
	"github.com/carbocation/roga/locator"
	"github.com/carbocation/roga/reportsource"
	"github.com/carbocation/roga/validate"
)

// Config is everything a single report-generation run needs. Source
// locations are always supplied by the caller.
type Config struct {
	SampleIDs     []string
	ExpectedGenus string

	// Markers is the marker vocabulary. Empty means validate.DefaultMarkers.
	Markers []string

	MetadataSources []string
	GDCSSources     []string

	Lab string

	// IssueDate is parsed leniently (e.g., 2017-11-03, 11/03/2017). Empty
	// means today.
	IssueDate string
}

// Report is the structured output of a run, ready to be rendered.
type Report struct {
	Lab       labinfo.Lab
	Genus     validate.Genus
	IssueDate time.Time

	// Generator describes the software that produced the report.
	Generator string

	// Records are in the order the samples were requested.
	Records  []validate.Record
	Excluded []validate.Exclusion
}

// Name is the conventional base name for rendered copies of this report.
func (r *Report) Name() string {
	return fmt.Sprintf("ROGA_%s_%s", r.IssueDate.Format("2006-01-02"), r.Genus)
}

// Loader fetches one report source.
type Loader interface {
	Load(ctx context.Context, location string, layout reportsource.Layout) (*reportsource.Table, error)
}

// Build runs one report: it loads the sources, locates every requested
// sample, drops samples whose genus does not match, and derives a record
// for each remaining sample. Genus mismatches are reported in
// Report.Excluded; everything else that goes wrong is returned as an error
// and no report is produced.
func Build(ctx context.Context, cfg Config, loader Loader) (*Report, error) {
	genus, err := validate.ParseGenus(cfg.ExpectedGenus)
	if err != nil {
		return nil, err
	}

	labs, err := labinfo.Load()
	if err != nil {
		return nil, err
	}
	lab, err := labs.Lookup(cfg.Lab)
	if err != nil {
		return nil, err
	}

	issued := time.Now()
	if cfg.IssueDate != "" {
		if issued, err = dateparse.ParseAny(cfg.IssueDate); err != nil {
			return nil, fmt.Errorf("could not parse issue date %q: %w", cfg.IssueDate, err)
		}
	}

	ids := validate.UniqueIDs(cfg.SampleIDs)
	if len(ids) < 1 {
		return nil, errors.New("no sample identifiers were requested")
	}

	markers := cfg.Markers
	if len(markers) == 0 {
		markers = validate.DefaultMarkers
	}
	vocabulary := validate.NewMarkerSet(markers...)

	metadataTables, err := loadAll(ctx, loader, cfg.MetadataSources, reportsource.CombinedMetadata)
	if err != nil {
		return nil, err
	}

	metadata, err := locator.Locate(metadataTables, ids, reportsource.CombinedMetadata.KeyColumn)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, err := metadata.Row(id); err != nil {
			return nil, err
		}
	}

	validated, excluded, err := validate.FilterValidated(metadata.Rows(), ids, genus.String())
	if err != nil {
		return nil, err
	}

	gdcsTables, err := loadAll(ctx, loader, cfg.GDCSSources, reportsource.GDCS)
	if err != nil {
		return nil, err
	}

	gdcs, err := locator.Locate(gdcsTables, validated, reportsource.GDCS.KeyColumn)
	if err != nil {
		return nil, err
	}

	out := &Report{
		Lab:       lab,
		Genus:     genus,
		IssueDate: issued,
		Records:   make([]validate.Record, 0, len(validated)),
		Excluded:  excluded,
	}

	for _, id := range validated {
		metadataRow, err := metadata.Row(id)
		if err != nil {
			return nil, &validate.MissingReportDataError{ID: id}
		}

		gdcsRow, err := gdcs.Row(id)
		if err != nil {
			return nil, err
		}

		rec, err := validate.Derive(genus, metadataRow, gdcsRow, vocabulary)
		if err != nil {
			return nil, err
		}

		out.Records = append(out.Records, rec)
	}

	return out, nil
}

func loadAll(ctx context.Context, loader Loader, locations []string, layout reportsource.Layout) ([]*reportsource.Table, error) {
	if len(locations) < 1 {
		return nil, fmt.Errorf("no %s report sources were configured", layout.Name)
	}

	out := make([]*reportsource.Table, 0, len(locations))
	for _, location := range locations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tab, err := loader.Load(ctx, location, layout)
		if err != nil {
			return nil, err
		}
		out = append(out, tab)
	}

	return out, nil
}
