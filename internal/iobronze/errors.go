package iobronze

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/inslake/inslake/pkg/errcode"
)

var errEmptyFile = errors.New("file has no header row")

// ReadError creates an error for a raw CSV file that cannot be read.
func ReadError(path string, err error) error {
	msg := "Cannot read raw data file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.BronzeReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn, path, err),
	}
}

// AllSourcesFailedError creates an error for an ingestion run where no
// source could be ingested.
func AllSourcesFailedError(failed int) error {
	msg := `All %d data sources failed to ingest

<em>Possible causes:</em>
  - The data directory has no CSV files yet
  - sources.yaml points at the wrong files

<em>How to fix:</em>
  1. Run <em>inslake generate</em> to create synthetic raw data
  2. Check the manifest: <em>~/.config/inslake/sources.yaml</em>`
	vars := []any{failed}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.BronzeAllSourcesFailedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: all %d sources failed", fn, failed),
	}
}
