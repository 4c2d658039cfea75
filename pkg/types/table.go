// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Record is a sparse row: an ordered set of keys with string values.
// The zero value is an empty record ready to use.
type Record struct {
	keys   []string
	values map[string]string
}

// NewRecord returns a record holding the given key/value pairs in order.
// It panics if kv has an odd length.
func NewRecord(kv ...string) Record {
	if len(kv)%2 != 0 {
		panic("types.NewRecord: odd number of arguments")
	}
	var r Record
	for i := 0; i < len(kv); i += 2 {
		r.Set(kv[i], kv[i+1])
	}
	return r
}

// Set stores value under key. A key that is already present keeps its
// position and takes the new value.
func (r *Record) Set(key, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value stored under key and whether the key is present.
func (r Record) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the record's keys in insertion order.
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of keys in the record.
func (r Record) Len() int {
	return len(r.keys)
}

// Table is a named sheet: a header row plus data rows of equal width.
type Table struct {
	Name    string     `json:"name" yaml:"name"`
	Columns []string   `json:"columns" yaml:"columns"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}

// NewTable builds a table from sparse records. The columns are the fixed
// columns followed by every other key in the order it is first seen across
// records. A record that lacks a column gets an empty cell.
func NewTable(name string, fixed []string, records []Record) Table {
	columns := make([]string, 0, len(fixed))
	seen := make(map[string]bool, len(fixed))
	for _, c := range fixed {
		if !seen[c] {
			seen[c] = true
			columns = append(columns, c)
		}
	}
	for _, r := range records {
		for _, k := range r.keys {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}

	rows := make([][]string, len(records))
	for i, r := range records {
		row := make([]string, len(columns))
		for j, c := range columns {
			row[j] = r.values[c]
		}
		rows[i] = row
	}
	return Table{Name: name, Columns: columns, Rows: rows}
}

// Workbook is an ordered collection of sheets.
type Workbook struct {
	Sheets []Table `json:"sheets" yaml:"sheets"`
}

// Sheet returns the sheet with the given name.
func (w Workbook) Sheet(name string) (Table, bool) {
	for _, t := range w.Sheets {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

// RowCount returns the number of data rows across all sheets.
func (w Workbook) RowCount() int {
	n := 0
	for _, t := range w.Sheets {
		n += len(t.Rows)
	}
	return n
}
