package iostorage

import (
	"context"
	"os"
	"path/filepath"

	"github.com/inslake/inslake/pkg/storage"
	"github.com/inslake/inslake/pkg/table"
)

// dirStore keeps each table as one encoded file under a root directory,
// mirroring the lake's "{stage}/{table}" naming in the directory layout.
// Writes go through a temp file plus rename, so readers never observe a
// half-written table.
type dirStore struct {
	root string
}

func newDir(root string) storage.Store {
	return &dirStore{root: root}
}

func (d *dirStore) path(name string) string {
	return filepath.Join(d.root, filepath.FromSlash(name)+".gob")
}

func (d *dirStore) Load(
	_ context.Context, name string,
) (*table.Table, error) {
	data, err := os.ReadFile(d.path(name))
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return nil, NotFoundError(name)
		case os.IsPermission(err):
			return nil, DeniedError(name, err)
		default:
			return nil, TransientError(name, err)
		}
	}
	return decodeTable(data, name)
}

func (d *dirStore) Store(
	_ context.Context, t *table.Table, name string,
) error {
	data, err := encodeTable(t)
	if err != nil {
		return CorruptError(name, err)
	}

	path := d.path(name)
	if err = os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		if os.IsPermission(err) {
			return DeniedError(name, err)
		}
		return TransientError(name, err)
	}

	tmp := path + ".tmp"
	if err = os.WriteFile(tmp, data, 0644); err != nil {
		if os.IsPermission(err) {
			return DeniedError(name, err)
		}
		return TransientError(name, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return TransientError(name, err)
	}
	return nil
}
