package iogold

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/inslake/inslake/pkg/errcode"
)

// LoadError creates an error for a silver table that cannot be loaded.
// The gold stage aborts without writing anything.
func LoadError(name string, err error) error {
	msg := `Cannot load silver table <em>%s</em>; gold stage aborted

<em>How to fix:</em>
  1. Run <em>inslake silver</em> to (re)build the silver stage
  2. Check storage settings in <em>~/.config/inslake/config.yaml</em>`
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GoldLoadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot load %s: %w", fn, name, err),
	}
}

// BuildError creates an error for a gold table that cannot be derived
// from its silver inputs.
func BuildError(name string, err error) error {
	msg := "Cannot build gold table <em>%s</em>"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GoldBuildError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot build %s: %w", fn, name, err),
	}
}

// StoreError creates an error for a gold table that cannot be written.
func StoreError(name string, err error) error {
	msg := "Cannot store gold table <em>%s</em>; " +
		"re-run <em>inslake gold</em>"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GoldStoreError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot store %s: %w", fn, name, err),
	}
}
