//go:build cgo
// +build cgo

package export

import (
	"strings"

	"github.com/carbocation/pfx"
	"github.com/carbocation/roga/report"
	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v3"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS report (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	lab TEXT NOT NULL,
	genus TEXT NOT NULL,
	issue_date TEXT NOT NULL,
	generator TEXT
);
CREATE TABLE IF NOT EXISTS sample (
	report_id INTEGER NOT NULL REFERENCES report(id),
	position INTEGER NOT NULL,
	seq_id TEXT NOT NULL,
	sample_name TEXT,
	observed_genus TEXT NOT NULL,
	markers TEXT,
	serotype TEXT,
	verotoxin_profile TEXT,
	mlst TEXT,
	rmlst TEXT,
	total_length INTEGER NOT NULL,
	coverage_depth INTEGER NOT NULL,
	coverage_unit TEXT NOT NULL,
	contig_count INTEGER NOT NULL,
	gdcs_matches INTEGER NOT NULL,
	verdict TEXT NOT NULL,
	pipeline_version TEXT
);
CREATE TABLE IF NOT EXISTS excluded (
	report_id INTEGER NOT NULL REFERENCES report(id),
	seq_id TEXT NOT NULL,
	observed_genus TEXT,
	reason TEXT NOT NULL
);
`

type sqliteSample struct {
	ReportID         int64       `db:"report_id"`
	Position         int         `db:"position"`
	SeqID            string      `db:"seq_id"`
	SampleName       string      `db:"sample_name"`
	ObservedGenus    string      `db:"observed_genus"`
	Markers          string      `db:"markers"`
	Serotype         null.String `db:"serotype"`
	VerotoxinProfile null.String `db:"verotoxin_profile"`
	MLST             null.String `db:"mlst"`
	RMLST            null.String `db:"rmlst"`
	TotalLength      int64       `db:"total_length"`
	CoverageDepth    int64       `db:"coverage_depth"`
	CoverageUnit     string      `db:"coverage_unit"`
	ContigCount      int64       `db:"contig_count"`
	GDCSMatches      int64       `db:"gdcs_matches"`
	Verdict          string      `db:"verdict"`
	PipelineVersion  string      `db:"pipeline_version"`
}

type sqliteExcluded struct {
	ReportID      int64  `db:"report_id"`
	SeqID         string `db:"seq_id"`
	ObservedGenus string `db:"observed_genus"`
	Reason        string `db:"reason"`
}

// WriteSQLite appends the report to the SQLite archive at path, creating
// the database and its tables if needed. It returns the new report's ID.
func WriteSQLite(path string, rep *report.Report) (int64, error) {
	// URI filenames have to begin with 'file:'; see
	// https://www.sqlite.org/c3ref/open.html
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return 0, pfx.Err(err)
	}
	defer db.Close()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return 0, pfx.Err(err)
	}

	tx, err := db.Beginx()
	if err != nil {
		return 0, pfx.Err(err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("INSERT INTO report (name, lab, genus, issue_date, generator) VALUES (?, ?, ?, ?, ?)",
		rep.Name(), rep.Lab.Name, rep.Genus.String(), rep.IssueDate.Format("2006-01-02"), rep.Generator)
	if err != nil {
		return 0, pfx.Err(err)
	}
	reportID, err := res.LastInsertId()
	if err != nil {
		return 0, pfx.Err(err)
	}

	for i, rec := range rep.Records {
		s := sqliteSample{
			ReportID:         reportID,
			Position:         i,
			SeqID:            rec.SeqID,
			SampleName:       rec.SampleName,
			ObservedGenus:    rec.ObservedGenus,
			Markers:          strings.Join(rec.Markers, ";"),
			Serotype:         rec.Typing.Serotype,
			VerotoxinProfile: rec.Typing.VerotoxinProfile,
			MLST:             rec.Typing.MLST,
			RMLST:            rec.Typing.RMLST,
			TotalLength:      rec.Quality.TotalLength,
			CoverageDepth:    rec.Quality.Coverage.Depth,
			CoverageUnit:     rec.Quality.Coverage.Unit,
			ContigCount:      rec.Quality.ContigCount,
			GDCSMatches:      rec.Quality.GDCSMatches,
			Verdict:          rec.Quality.Verdict.String(),
			PipelineVersion:  rec.PipelineVersion,
		}

		if _, err := tx.NamedExec(`INSERT INTO sample (report_id, position, seq_id, sample_name, observed_genus, markers, serotype, verotoxin_profile, mlst, rmlst, total_length, coverage_depth, coverage_unit, contig_count, gdcs_matches, verdict, pipeline_version)
VALUES (:report_id, :position, :seq_id, :sample_name, :observed_genus, :markers, :serotype, :verotoxin_profile, :mlst, :rmlst, :total_length, :coverage_depth, :coverage_unit, :contig_count, :gdcs_matches, :verdict, :pipeline_version)`, s); err != nil {
			return 0, pfx.Err(err)
		}
	}

	for _, ex := range rep.Excluded {
		e := sqliteExcluded{
			ReportID:      reportID,
			SeqID:         ex.ID,
			ObservedGenus: ex.ObservedGenus,
			Reason:        ex.Reason,
		}

		if _, err := tx.NamedExec(`INSERT INTO excluded (report_id, seq_id, observed_genus, reason) VALUES (:report_id, :seq_id, :observed_genus, :reason)`, e); err != nil {
			return 0, pfx.Err(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, pfx.Err(err)
	}

	return reportID, nil
}
