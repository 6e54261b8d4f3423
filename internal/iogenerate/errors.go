package iogenerate

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/inslake/inslake/pkg/errcode"
)

// WriteError creates an error for a raw data file that cannot be written.
func WriteError(path string, err error) error {
	msg := "Cannot write raw data to <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GenerateWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write %s: %w", fn, path, err),
	}
}
