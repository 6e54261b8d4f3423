package iosilver

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/inslake/inslake/pkg/errcode"
)

// LoadError creates an error for a bronze table that cannot be loaded.
// The silver stage aborts without writing anything.
func LoadError(name string, err error) error {
	msg := `Cannot load bronze table <em>%s</em>; silver stage aborted

<em>How to fix:</em>
  1. Run <em>inslake bronze</em> to (re)ingest the raw data
  2. Check storage settings in <em>~/.config/inslake/config.yaml</em>`
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SilverLoadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot load %s: %w", fn, name, err),
	}
}

// StoreError creates an error for a silver table that cannot be written.
// Earlier tables of this run may already be stored; re-run the stage.
func StoreError(name string, err error) error {
	msg := "Cannot store silver table <em>%s</em>; " +
		"re-run <em>inslake silver</em>"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SilverStoreError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot store %s: %w", fn, name, err),
	}
}
