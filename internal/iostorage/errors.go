package iostorage

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/inslake/inslake/pkg/errcode"
	"github.com/inslake/inslake/pkg/storage"
)

// BackendError creates an error for an unknown storage backend name.
func BackendError(backend string) error {
	msg := "Unknown storage backend <em>%s</em>, " +
		"valid backends are sqlite, s3, dir"
	vars := []any{backend}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StorageBackendError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown backend %q", fn, backend),
	}
}

// ConnectError creates an error for a backend that cannot be opened.
func ConnectError(backend string, err error) error {
	msg := "Cannot open <em>%s</em> storage backend"
	vars := []any{backend}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StorageConnectError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot open %s backend: %w",
			fn, backend, err),
	}
}

// NotFoundError wraps storage.ErrNotFound for a named table.
func NotFoundError(name string) error {
	return fmt.Errorf("table %q: %w", name, storage.ErrNotFound)
}

// CorruptError wraps storage.ErrCorruptData for a named table.
func CorruptError(name string, err error) error {
	return fmt.Errorf("table %q: %w: %v", name, storage.ErrCorruptData, err)
}

// TransientError wraps storage.ErrTransient for a named table.
func TransientError(name string, err error) error {
	return fmt.Errorf("table %q: %w: %v", name, storage.ErrTransient, err)
}

// DeniedError wraps storage.ErrPermissionDenied for a named table.
func DeniedError(name string, err error) error {
	return fmt.Errorf(
		"table %q: %w: %v", name, storage.ErrPermissionDenied, err,
	)
}
