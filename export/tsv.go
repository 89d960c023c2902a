// Package export renders a finished report into the formats consumed
// downstream: a tab-delimited summary, a SQLite archive, or a BigQuery table.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/carbocation/roga/report"
	"github.com/carbocation/roga/validate"
)

// Legend explains the symbols used in the quality and marker columns.
const Legend = "+ : Pass\t? : Indeterminate\t- : Fail"

// WriteTSV writes the report as a sequence of tab-delimited sections, each
// introduced by a line starting with "#".
func WriteTSV(w io.Writer, rep *report.Report) error {
	bw := bufio.NewWriter(w)

	line := func(cells ...string) {
		fmt.Fprintf(bw, "%s\n", strings.Join(cells, "\t"))
	}

	line("# Report of Genomic Analysis", rep.Name())
	line("# Date Report Issued", rep.IssueDate.Format("2006-01-02"))
	if rep.Generator != "" {
		line("# Generated by", rep.Generator)
	}

	line("# Laboratory")
	line("Laboratory", "Address", "Tel #")
	line(rep.Lab.Name, rep.Lab.Address, rep.Lab.Telephone)

	fmt.Fprintf(bw, "# Identification Summary: The following strains are confirmed to be %s.\n", rep.Genus)

	line("# GeneSippr Analysis")
	typingHeader, _ := rep.Genus.TypingColumns(validate.Typing{})
	header := append([]string{"Seq ID", "Sample Name", "Genus"}, typingHeader...)
	line(append(header, rep.Genus.Panel()...)...)
	for _, rec := range rep.Records {
		_, typing := rep.Genus.TypingColumns(rec.Typing)
		cells := append([]string{rec.SeqID, rec.SampleName, rec.ObservedGenus}, typing...)
		line(append(cells, rec.PanelCells()...)...)
	}

	line("# Sequence Data Quality")
	line("Seq ID", "Total Length", "Coverage", "# of Contigs", "GDCS Matches", "Pass/Fail")
	for _, rec := range rep.Records {
		q := rec.Quality
		line(rec.SeqID,
			strconv.FormatInt(q.TotalLength, 10),
			q.Coverage.String(),
			strconv.FormatInt(q.ContigCount, 10),
			strconv.FormatInt(q.GDCSMatches, 10),
			q.Verdict.Symbol())
	}

	line("# Pipeline Metadata")
	line("Seq ID", "Pipeline Version")
	for _, rec := range rep.Records {
		line(rec.SeqID, rec.PipelineVersion)
	}

	if len(rep.Excluded) > 0 {
		line("# Excluded Samples")
		line("Seq ID", "Expected Genus", "Observed Genus", "Reason")
		for _, ex := range rep.Excluded {
			line(ex.ID, ex.ExpectedGenus, ex.ObservedGenus, ex.Reason)
		}
	}

	line("# Legend", Legend)

	return bw.Flush()
}
