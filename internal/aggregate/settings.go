package aggregate

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Settings maps a numeric column to its aggregation function. Columns
// without an entry are left out of aggregated output.
type Settings map[string]Func

// Clone returns an independent copy.
func (s Settings) Clone() Settings {
	out := make(Settings, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Configured returns the columns that have a function, in the order given
// by columns.
func (s Settings) Configured(columns []string) []string {
	var out []string
	for _, c := range columns {
		if _, ok := s[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// ParseAssignments reads "column=function" entries into Settings. A later
// entry for the same column replaces an earlier one.
func ParseAssignments(entries []string) (Settings, error) {
	s := make(Settings, len(entries))
	for _, e := range entries {
		col, fn, ok := strings.Cut(e, "=")
		col = strings.TrimSpace(col)
		if !ok || col == "" {
			return nil, eris.Errorf("aggregate: assignment %q must look like column=function", e)
		}
		f, err := ParseFunc(fn)
		if err != nil {
			return nil, eris.Wrapf(err, "column %s", col)
		}
		s[col] = f
	}
	return s, nil
}
