package reportsource

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/carbocation/roga"
	"github.com/extrame/xls"
	"golang.org/x/net/html/charset"
)

// Options controls how a report source is parsed.
type Options struct {
	// Delimiter overrides delimiter detection when nonzero.
	Delimiter rune

	// Encoding is a charset label (e.g., "latin1", "windows-1252"). Empty
	// means UTF-8.
	Encoding string

	// Layout, if set, is checked once the source is loaded.
	Layout *Layout
}

// Open loads the report source at location, which may be a local path
// (optionally starting with ~/) or a gs:// URI when client is non-nil.
// Compressed files are decompressed transparently, and files ending in .xls
// are read as spreadsheets.
func Open(ctx context.Context, location string, client *storage.Client, opts Options) (*Table, error) {
	content, err := roga.ReadAllMaybeCompressed(ctx, location, client)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(path.Ext(location), ".xls") {
		return ReadXLS(location, content, opts)
	}

	return Read(location, bytes.NewReader(content), opts)
}

// Read parses a delimited report source from r.
func Read(name string, r io.Reader, opts Options) (*Table, error) {
	if opts.Encoding != "" && !isUTF8(opts.Encoding) {
		decoded, err := charset.NewReaderLabel(opts.Encoding, r)
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %w", name, err))
		}
		r = decoded
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", name, err))
	}

	delim := opts.Delimiter
	if delim == 0 {
		delim = roga.DetermineDelimiter(content)
	}

	cr := csv.NewReader(bytes.NewReader(content))
	cr.Comma = delim
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", name, err))
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("report source %s is empty; expected at least a header row", name)
	}

	header := records[0]
	if len(header) > 0 {
		// Spreadsheet exports often lead with a byte order mark
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	return finish(name, header, records[1:], opts)
}

// ReadXLS parses the first sheet of an Excel 97-2003 workbook. The first row
// is the header. Rows the workbook does not store (blank rows) are skipped.
func ReadXLS(name string, content []byte, opts Options) (*Table, error) {
	cs := opts.Encoding
	if cs == "" {
		cs = "utf-8"
	}

	workbook, err := xls.OpenReader(bytes.NewReader(content), cs)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", name, err))
	}
	if workbook == nil {
		return nil, fmt.Errorf("report source %s has no Workbook stream", name)
	}

	if workbook.NumSheets() < 1 {
		return nil, fmt.Errorf("report source %s has no sheets", name)
	}

	sheet := workbook.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("report source %s: sheet 0 was nil", name)
	}

	// MaxRow is the highest stored row index, so 0 means the sheet holds at
	// most a header. ReadAllCells would skip such a sheet and move on to the
	// next one.
	if sheet.MaxRow == 0 {
		return nil, fmt.Errorf("report source %s has no data rows in its first sheet", name)
	}

	// Capping at MaxRow+1 cells stops ReadAllCells after the first sheet.
	// Unlike WorkSheet.Row, it only visits rows the sheet actually stores.
	return sheetTable(name, workbook.ReadAllCells(int(sheet.MaxRow)+1), opts)
}

// sheetTable turns a grid of spreadsheet cells, indexed by row number, into
// a Table. Rows that are nil or entirely empty are dropped, and the rest are
// padded or truncated to the header's width.
func sheetTable(name string, cells [][]string, opts Options) (*Table, error) {
	if len(cells) < 1 {
		return nil, fmt.Errorf("report source %s is empty; expected at least a header row", name)
	}

	header := make([]string, 0, len(cells[0]))
	for _, v := range cells[0] {
		header = append(header, strings.TrimSpace(v))
	}
	for len(header) > 0 && header[len(header)-1] == "" {
		header = header[:len(header)-1]
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("report source %s has no header in its first row", name)
	}

	rows := make([][]string, 0, len(cells)-1)
	for _, row := range cells[1:] {
		if blankRow(row) {
			continue
		}

		record := make([]string, len(header))
		copy(record, row)
		rows = append(rows, record)
	}

	return finish(name, header, rows, opts)
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}

	return true
}

func finish(name string, header []string, rows [][]string, opts Options) (*Table, error) {
	t, err := New(name, header, rows)
	if err != nil {
		return nil, err
	}

	if opts.Layout != nil {
		if err := t.CheckLayout(*opts.Layout); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func isUTF8(label string) bool {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "utf-8", "utf8":
		return true
	}

	return false
}
