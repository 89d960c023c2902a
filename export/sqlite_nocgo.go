//go:build !cgo
// +build !cgo

package export

import (
	"errors"

	"github.com/carbocation/roga/report"
)

// WriteSQLite needs the cgo sqlite3 driver.
func WriteSQLite(path string, rep *report.Report) (int64, error) {
	return 0, errors.New("SQLite archives require a build with cgo enabled")
}
