// roga assembles a Report of Genomic Analysis for a set of samples and writes
// it as tab-delimited text, optionally archiving it to SQLite or BigQuery.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/storage"
	"github.com/carbocation/roga/compileinfo"
	_ "github.com/carbocation/roga/compileinfoprint"
	"github.com/carbocation/roga/export"
	"github.com/carbocation/roga/labinfo"
	"github.com/carbocation/roga/report"
	"github.com/carbocation/roga/reportsource"
	"github.com/carbocation/roga/validate"
)

var (
	BufferSize = 4096 * 8
	STDOUT     = bufio.NewWriterSize(os.Stdout, BufferSize)
)

func main() {
	defer STDOUT.Flush()

	var ids, idFile, genus, lab, metadata, gdcs, markers, date, encoding, delimiter, sqlitePath, bqTable string

	flag.StringVar(&ids, "ids", "", "Comma-separated Seq IDs, in the order they should appear in the report")
	flag.StringVar(&idFile, "idfile", "", "File with one Seq ID per line (alternative to --ids)")
	flag.StringVar(&genus, "genus", "", fmt.Sprintf("Expected genus. One of: %s", genusNames()))
	flag.StringVar(&lab, "lab", "", "Issuing laboratory. One of: "+labNames())
	flag.StringVar(&metadata, "metadata", "", "Comma-separated combinedMetadata report paths or gs:// URIs. Later files win when a Seq ID appears more than once.")
	flag.StringVar(&gdcs, "gdcs", "", "Comma-separated GDCS report paths or gs:// URIs. Later files win when a Seq ID appears more than once.")
	flag.StringVar(&markers, "markers", strings.Join(validate.DefaultMarkers, ","), "Comma-separated marker vocabulary")
	flag.StringVar(&date, "date", "", "Date the report is issued. Defaults to today.")
	flag.StringVar(&encoding, "encoding", "", "Character encoding of the report sources, e.g. latin1. Defaults to UTF-8.")
	flag.StringVar(&delimiter, "delimiter", "", "Field delimiter of the report sources ('tab' for tabs). Detected if not set.")
	flag.StringVar(&sqlitePath, "sqlite", "", "Optional: append the report to this SQLite archive")
	flag.StringVar(&bqTable, "bigquery", "", "Optional: stream the report into this BigQuery table (project.dataset.table)")
	flag.Parse()

	if genus == "" || lab == "" || metadata == "" || gdcs == "" || (ids == "" && idFile == "") {
		fmt.Fprintln(os.Stderr, "Please provide --genus, --lab, --metadata, --gdcs, and either --ids or --idfile")
		flag.PrintDefaults()
		os.Exit(1)
	}

	sampleIDs := splitList(ids)
	if idFile != "" {
		fromFile, err := readIDFile(idFile)
		if err != nil {
			log.Fatalln(err)
		}
		sampleIDs = append(sampleIDs, fromFile...)
	}

	cfg := report.Config{
		SampleIDs:       sampleIDs,
		ExpectedGenus:   genus,
		Markers:         splitList(markers),
		MetadataSources: splitList(metadata),
		GDCSSources:     splitList(gdcs),
		Lab:             lab,
		IssueDate:       date,
	}

	ctx := context.Background()

	opts := reportsource.Options{Encoding: encoding}
	switch delimiter {
	case "":
	case "tab", `\t`:
		opts.Delimiter = '\t'
	default:
		opts.Delimiter = []rune(delimiter)[0]
	}

	loader := report.SourceLoader{Options: opts}
	if anyGoogleStorage(cfg.MetadataSources, cfg.GDCSSources) {
		client, err := storage.NewClient(ctx)
		if err != nil {
			log.Fatalln(err)
		}
		defer client.Close()
		loader.Client = client
	}

	rep, err := report.Build(ctx, cfg, loader)

	var noneValid *validate.NoValidatedSamplesError
	if errors.As(err, &noneValid) {
		warnExcluded(noneValid.Excluded)
		log.Fatalf("ERROR: No samples provided matched the expected genus %s. Quitting.\n", strings.ToUpper(noneValid.ExpectedGenus))
	} else if err != nil {
		log.Fatalln(err)
	}

	warnExcluded(rep.Excluded)

	rep.Generator = compileinfo.Get().Generator()

	if err := writeReport(STDOUT, rep); err != nil {
		log.Fatalln(err)
	}

	if sqlitePath != "" {
		reportID, err := export.WriteSQLite(sqlitePath, rep)
		if err != nil {
			log.Fatalln(err)
		}
		log.Printf("Archived %s to %s as report %d\n", rep.Name(), sqlitePath, reportID)
	}

	if bqTable != "" {
		project, dataset, table, err := export.ParseTableID(bqTable)
		if err != nil {
			log.Fatalln(err)
		}

		client, err := bigquery.NewClient(ctx, project)
		if err != nil {
			log.Fatalln(err)
		}
		defer client.Close()

		if err := export.WriteBigQuery(ctx, client, dataset, table, rep); err != nil {
			log.Fatalln(err)
		}
		log.Printf("Streamed %d record(s) into %s\n", len(rep.Records), bqTable)
	}

	log.Printf("Generated %s with %d sample(s)\n", rep.Name(), len(rep.Records))
}

// writeReport renders the TSV and flushes it, so the report survives a later
// log.Fatal from one of the archive sinks.
func writeReport(w *bufio.Writer, rep *report.Report) error {
	if err := export.WriteTSV(w, rep); err != nil {
		return err
	}

	return w.Flush()
}

func warnExcluded(excluded []validate.Exclusion) {
	for _, ex := range excluded {
		log.Printf("WARNING: Seq ID %s (genus %s) does not match the expected genus of %s and was ignored.\n", ex.ID, ex.ObservedGenus, strings.ToUpper(ex.ExpectedGenus))
	}
}

func splitList(s string) []string {
	out := make([]string, 0)
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}

	return out
}

func readIDFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out := make([]string, 0)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}

	return out, scanner.Err()
}

func anyGoogleStorage(lists ...[]string) bool {
	for _, list := range lists {
		for _, location := range list {
			if strings.HasPrefix(location, "gs://") {
				return true
			}
		}
	}

	return false
}

func genusNames() string {
	names := make([]string, 0, len(validate.Genera))
	for _, g := range validate.Genera {
		names = append(names, g.String())
	}

	return strings.Join(names, ", ")
}

func labNames() string {
	labs, err := labinfo.Load()
	if err != nil {
		return "(lab directory unavailable)"
	}

	return strings.Join(labs.Names(), ", ")
}
