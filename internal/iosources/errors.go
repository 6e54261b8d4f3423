package iosources

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/inslake/inslake/pkg/errcode"
)

// SourcesConfigError creates an error for when sources.yaml cannot be
// loaded.
func SourcesConfigError(path string, err error) error {
	msg := `Cannot load sources manifest

<em>Manifest file:</em> %s

<em>Possible causes:</em>
  - File does not exist
  - Invalid YAML format
  - Permission denied

<em>How to fix:</em>
  1. Check if file exists: <em>ls -l %s</em>
  2. Validate YAML syntax
  3. Remove the file to regenerate the default on the next run`

	vars := []any{path, path}

	return &gn.Error{
		Code: errcode.SourcesConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to load sources manifest: %w", err),
	}
}

// SourcesEmptyError creates an error for a manifest with no data sources.
func SourcesEmptyError() error {
	msg := "Sources manifest lists no data sources"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SourcesEmptyError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: empty sources manifest", fn),
	}
}

// SourcesInvalidError creates an error for a malformed manifest entry.
func SourcesInvalidError(tbl, reason string) error {
	msg := "Invalid manifest entry <em>%s</em>: %s"
	vars := []any{tbl, reason}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SourcesInvalidError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: invalid manifest entry %s: %s",
			fn, tbl, reason),
	}
}
