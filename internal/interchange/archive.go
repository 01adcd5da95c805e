// Package interchange implements the bulk export/import wire format: a zip
// archive holding one CSV file per table, first record = column names in
// table-declaration order, each following record = one row's raw values.
package interchange

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path"
	"strings"
)

const fileExt = ".csv"

// TableNames lists every exported table in schema-declaration order.
var TableNames = []string{
	"account_types",
	"account_groups",
	"accounts",
	"transactions",
	"settings",
	"tenancy",
	"invites",
}

// Table is one table's rows as raw string values.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Snapshot is the full exported state of the store.
type Snapshot struct {
	Tables []Table
}

// Table returns the named table, or nil when the snapshot lacks it.
func (s *Snapshot) Table(name string) *Table {
	for i := range s.Tables {
		if s.Tables[i].Name == name {
			return &s.Tables[i]
		}
	}
	return nil
}

// WriteArchive encodes the snapshot as a zip of CSV files.
func WriteArchive(w io.Writer, snap *Snapshot) error {
	zw := zip.NewWriter(w)
	for _, table := range snap.Tables {
		f, err := zw.Create(table.Name + fileExt)
		if err != nil {
			return fmt.Errorf("creating archive entry for %s: %w", table.Name, err)
		}
		cw := csv.NewWriter(f)
		if err := cw.Write(table.Columns); err != nil {
			return fmt.Errorf("writing %s header: %w", table.Name, err)
		}
		for i, row := range table.Rows {
			if len(row) != len(table.Columns) {
				return fmt.Errorf("table %s row %d: %d values for %d columns", table.Name, i+1, len(row), len(table.Columns))
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing %s row %d: %w", table.Name, i+1, err)
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return fmt.Errorf("flushing %s: %w", table.Name, err)
		}
	}
	return zw.Close()
}

// ReadArchive decodes a zip archive produced by WriteArchive. Unknown files
// are ignored; files may omit or reorder columns relative to the schema as
// long as the header row names them.
func ReadArchive(data []byte) (*Snapshot, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	known := make(map[string]bool, len(TableNames))
	for _, name := range TableNames {
		known[name] = true
	}

	snap := &Snapshot{}
	for _, zf := range zr.File {
		base := path.Base(zf.Name)
		if !strings.HasSuffix(base, fileExt) {
			continue
		}
		name := strings.TrimSuffix(base, fileExt)
		if !known[name] {
			continue
		}

		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", zf.Name, err)
		}
		table, err := readTable(name, rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		if table != nil {
			snap.Tables = append(snap.Tables, *table)
		}
	}
	return snap, nil
}

func readTable(name string, r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s%s: %w", name, fileExt, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	table := &Table{Name: name, Columns: records[0]}
	for i, rec := range records[1:] {
		if len(rec) != len(table.Columns) {
			return nil, fmt.Errorf("%s%s row %d: %d values for %d columns", name, fileExt, i+2, len(rec), len(table.Columns))
		}
		table.Rows = append(table.Rows, rec)
	}
	return table, nil
}
