package iobronze

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/inslake/inslake/pkg/schema"
	"github.com/inslake/inslake/pkg/table"
)

// readCSV decodes one raw CSV file into a bronze table shaped by the
// entity's schema. Bronze is the immutable snapshot: cells are parsed
// toward the declared column type, but a value that does not parse keeps
// its raw text so the silver cleaners, not ingestion, decide its fate.
// Empty cells become the canonical null.
func readCSV(path string, ent schema.Entity) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadError(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, ReadError(path, err)
	}
	if len(records) == 0 {
		return nil, ReadError(path, errEmptyFile)
	}

	header := records[0]
	colPos := make([]int, len(ent.Columns))
	for i, col := range ent.Columns {
		colPos[i] = -1
		for j, h := range header {
			if h == col.Name {
				colPos[i] = j
				break
			}
		}
	}

	t := ent.NewTable(ent.BronzeTable())
	for _, rec := range records[1:] {
		row := make([]any, len(ent.Columns))
		for i, col := range ent.Columns {
			pos := colPos[i]
			if pos < 0 || pos >= len(rec) {
				continue
			}
			row[i] = parseCell(rec[pos], col.Type)
		}
		if err = t.Append(row); err != nil {
			return nil, ReadError(path, err)
		}
	}
	return t, nil
}

func parseCell(raw string, typ table.Type) any {
	if raw == "" {
		return nil
	}
	switch typ {
	case table.Int:
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	case table.Float:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	case table.Bool:
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	}
	// String and Date columns stay raw; so does anything unparsable.
	return raw
}
