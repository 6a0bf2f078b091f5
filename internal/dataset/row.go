// Package dataset validates imported tabular rows and detects numeric columns.
package dataset

// Required coordinate columns. Matching is case-sensitive.
const (
	LatColumn = "lat"
	LonColumn = "lon"
)

// Row is an ordered mapping from column name to raw string value. Lat and
// Lon hold the parsed coordinates once the row has passed validation.
type Row struct {
	keys   []string
	values map[string]string

	Lat float64
	Lon float64
}

// NewRow builds a row from a header and one record. Values beyond the header
// are dropped; header columns beyond the record are absent from the row.
// Repeated header names keep their first position and last value.
func NewRow(header, record []string) Row {
	n := min(len(header), len(record))
	r := Row{
		keys:   make([]string, 0, n),
		values: make(map[string]string, n),
	}
	for i := 0; i < n; i++ {
		r.Set(header[i], record[i])
	}
	return r
}

// Set assigns a value, appending the key if it is new.
func (r *Row) Set(key, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Value returns the raw value for key, or "" when absent.
func (r Row) Value(key string) string {
	return r.values[key]
}

// Has reports whether key is present.
func (r Row) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Keys returns the column names in insertion order.
func (r Row) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of fields.
func (r Row) Len() int {
	return len(r.keys)
}
