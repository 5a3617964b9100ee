package model

import "strconv"

// RawRow is one spreadsheet line keyed by its column headers, in sheet order.
// Headers are untrusted: casing, accents, spacing and wording vary per sheet.
// A header may be present with no value (short rows never set it at all).
type RawRow struct {
	headers []string
	values  map[string]string
}

// NewRawRow returns an empty row.
func NewRawRow() RawRow {
	return RawRow{values: make(map[string]string)}
}

// RowFromRecord pairs a header line with one data record. Cells beyond the
// end of the record are left unset, and duplicate headers are suffixed with
// _1, _2, ... so no cell is lost.
func RowFromRecord(header, record []string) RawRow {
	row := RawRow{
		headers: make([]string, 0, len(header)),
		values:  make(map[string]string, len(header)),
	}
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		key := h
		for n := 1; seen[key]; n++ {
			key = h + "_" + strconv.Itoa(n)
		}
		seen[key] = true
		if i >= len(record) {
			continue
		}
		row.headers = append(row.headers, key)
		row.values[key] = record[i]
	}
	return row
}

// Set stores a value. A new header is appended after the existing ones.
func (r *RawRow) Set(header, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, ok := r.values[header]; !ok {
		r.headers = append(r.headers, header)
	}
	r.values[header] = value
}

// Headers returns the row's headers in sheet order.
func (r RawRow) Headers() []string {
	out := make([]string, len(r.headers))
	copy(out, r.headers)
	return out
}

// Get returns the raw value stored under the exact header.
func (r RawRow) Get(header string) (string, bool) {
	v, ok := r.values[header]
	return v, ok
}

// Len returns the number of headers set on the row.
func (r RawRow) Len() int {
	return len(r.headers)
}
