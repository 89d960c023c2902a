package export

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"github.com/carbocation/pfx"
	"github.com/carbocation/roga/report"
	"gopkg.in/guregu/null.v3"
)

// BigQueryRow is one sample of one report, flattened for BigQuery. The table
// schema is inferred from this struct.
type BigQueryRow struct {
	Report           string              `bigquery:"report"`
	Lab              string              `bigquery:"lab"`
	Genus            string              `bigquery:"genus"`
	IssueDate        civil.Date          `bigquery:"issue_date"`
	Position         int64               `bigquery:"position"`
	SeqID            string              `bigquery:"seq_id"`
	SampleName       string              `bigquery:"sample_name"`
	ObservedGenus    string              `bigquery:"observed_genus"`
	Markers          []string            `bigquery:"markers"`
	Serotype         bigquery.NullString `bigquery:"serotype"`
	VerotoxinProfile bigquery.NullString `bigquery:"verotoxin_profile"`
	MLST             bigquery.NullString `bigquery:"mlst"`
	RMLST            bigquery.NullString `bigquery:"rmlst"`
	TotalLength      int64               `bigquery:"total_length"`
	CoverageDepth    int64               `bigquery:"coverage_depth"`
	CoverageUnit     string              `bigquery:"coverage_unit"`
	ContigCount      int64               `bigquery:"contig_count"`
	GDCSMatches      int64               `bigquery:"gdcs_matches"`
	Verdict          string              `bigquery:"verdict"`
	PipelineVersion  string              `bigquery:"pipeline_version"`
}

// BigQueryRows flattens the report's records.
func BigQueryRows(rep *report.Report) []*BigQueryRow {
	out := make([]*BigQueryRow, 0, len(rep.Records))

	for i, rec := range rep.Records {
		markers := append([]string{}, rec.Markers...)

		out = append(out, &BigQueryRow{
			Report:           rep.Name(),
			Lab:              rep.Lab.Name,
			Genus:            rep.Genus.String(),
			IssueDate:        civil.DateOf(rep.IssueDate),
			Position:         int64(i),
			SeqID:            rec.SeqID,
			SampleName:       rec.SampleName,
			ObservedGenus:    rec.ObservedGenus,
			Markers:          markers,
			Serotype:         bigQueryString(rec.Typing.Serotype),
			VerotoxinProfile: bigQueryString(rec.Typing.VerotoxinProfile),
			MLST:             bigQueryString(rec.Typing.MLST),
			RMLST:            bigQueryString(rec.Typing.RMLST),
			TotalLength:      rec.Quality.TotalLength,
			CoverageDepth:    rec.Quality.Coverage.Depth,
			CoverageUnit:     rec.Quality.Coverage.Unit,
			ContigCount:      rec.Quality.ContigCount,
			GDCSMatches:      rec.Quality.GDCSMatches,
			Verdict:          rec.Quality.Verdict.String(),
			PipelineVersion:  rec.PipelineVersion,
		})
	}

	return out
}

// ParseTableID splits project.dataset.table.
func ParseTableID(id string) (project, dataset, table string, err error) {
	parts := strings.Split(id, ".")
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("Expected a BigQuery table of the form project.dataset.table, got %q", id)
	}
	for _, p := range parts {
		if p == "" {
			return "", "", "", fmt.Errorf("Expected a BigQuery table of the form project.dataset.table, got %q", id)
		}
	}

	return parts[0], parts[1], parts[2], nil
}

// WriteBigQuery streams one row per record into dataset.table. The table
// must already exist with a schema compatible with BigQueryRow.
func WriteBigQuery(ctx context.Context, client *bigquery.Client, dataset, table string, rep *report.Report) error {
	rows := BigQueryRows(rep)
	if len(rows) == 0 {
		return nil
	}

	inserter := client.Dataset(dataset).Table(table).Inserter()
	if err := inserter.Put(ctx, rows); err != nil {
		return pfx.Err(err)
	}

	return nil
}

func bigQueryString(n null.String) bigquery.NullString {
	return bigquery.NullString{StringVal: n.String, Valid: n.Valid}
}
