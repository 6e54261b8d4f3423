package iostorage

import (
	"encoding/gob"
	"time"

	"github.com/gnames/gnfmt"

	"github.com/inslake/inslake/pkg/table"
)

// Cells are transported as interface values; gob needs the non-builtin
// concrete types registered.
func init() {
	gob.Register(time.Time{})
}

func encodeTable(t *table.Table) ([]byte, error) {
	enc := gnfmt.GNgob{}
	return enc.Encode(t)
}

func decodeTable(data []byte, name string) (*table.Table, error) {
	enc := gnfmt.GNgob{}
	var t table.Table
	if err := enc.Decode(data, &t); err != nil {
		return nil, CorruptError(name, err)
	}
	return &t, nil
}
