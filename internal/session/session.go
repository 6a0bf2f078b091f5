// Package session holds the current dataset and engine settings and derives
// groups, occupancy and exports from them on demand.
package session

import (
	"context"
	"slices"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/sells-group/hexagg/internal/aggregate"
	"github.com/sells-group/hexagg/internal/cell"
	"github.com/sells-group/hexagg/internal/dataset"
	"github.com/sells-group/hexagg/internal/export"
)

// Session errors.
var (
	ErrNoDataset         = eris.New("session: no dataset imported")
	ErrInvalidResolution = eris.New("session: resolution out of range")
	ErrNotNumericColumn  = eris.New("session: column is not numeric")
)

// Mode selects the export form.
type Mode int

// Export modes.
const (
	Enriched Mode = iota
	Aggregated
)

// Options seeds a new Session.
type Options struct {
	Resolution         int
	IncludeCoordinates bool
	Indexer            Indexer
}

// Indexer is the cell indexing the session needs for grouping, export and
// boundaries.
type Indexer interface {
	aggregate.Indexer
	export.Boundaries
}

// Session is the single mutable application state. Nothing derived from it
// is cached: every read regroups the current rows at the current resolution.
// A Session is not safe for concurrent mutation.
type Session struct {
	indexer            Indexer
	data               *dataset.Dataset
	resolution         int
	includeCoordinates bool
	settings           aggregate.Settings
}

// New returns an empty Session. A nil Indexer selects H3.
func New(opts Options) (*Session, error) {
	if !cell.ValidResolution(opts.Resolution) {
		return nil, eris.Wrapf(ErrInvalidResolution, "resolution %d", opts.Resolution)
	}
	ix := opts.Indexer
	if ix == nil {
		ix = cell.H3{}
	}
	return &Session{
		indexer:            ix,
		resolution:         opts.Resolution,
		includeCoordinates: opts.IncludeCoordinates,
		settings:           aggregate.Settings{},
	}, nil
}

// Import validates a decoded table and makes it the current dataset. On
// failure the previous dataset and settings are kept. On success the
// aggregation settings are reset.
func (s *Session) Import(header []string, records [][]string) error {
	ds, err := dataset.Validate(header, records)
	if err != nil {
		return err
	}

	s.data = ds
	s.settings = aggregate.Settings{}

	zap.L().Info("session: dataset imported",
		zap.Int("rows", ds.Len()),
		zap.Int("skipped", ds.Skipped),
		zap.Strings("numeric_columns", ds.NumericColumns),
	)
	return nil
}

// Dataset returns the current dataset, or nil before the first import.
func (s *Session) Dataset() *dataset.Dataset {
	return s.data
}

// Resolution returns the active resolution.
func (s *Session) Resolution() int {
	return s.resolution
}

// SetResolution changes the active resolution.
func (s *Session) SetResolution(res int) error {
	if !cell.ValidResolution(res) {
		return eris.Wrapf(ErrInvalidResolution, "resolution %d", res)
	}
	s.resolution = res
	return nil
}

// IncludeCoordinates reports whether enriched exports keep lat and lon.
func (s *Session) IncludeCoordinates() bool {
	return s.includeCoordinates
}

// SetIncludeCoordinates toggles lat and lon in enriched exports.
func (s *Session) SetIncludeCoordinates(include bool) {
	s.includeCoordinates = include
}

// Settings returns a copy of the aggregation settings.
func (s *Session) Settings() aggregate.Settings {
	return s.settings.Clone()
}

// SetAggregation assigns fn to a numeric column.
func (s *Session) SetAggregation(column string, fn aggregate.Func) error {
	if err := s.checkAggregation(column, fn); err != nil {
		return err
	}
	s.settings[column] = fn
	return nil
}

func (s *Session) checkAggregation(column string, fn aggregate.Func) error {
	if s.data == nil {
		return ErrNoDataset
	}
	if !s.data.IsNumeric(column) {
		return eris.Wrapf(ErrNotNumericColumn, "column %q", column)
	}
	if _, err := aggregate.ParseFunc(string(fn)); err != nil {
		return err
	}
	return nil
}

// ClearAggregation removes the function for column, leaving it out of
// aggregated output.
func (s *Session) ClearAggregation(column string) {
	delete(s.settings, column)
}

// ApplySettings assigns every entry of settings. Nothing is applied unless
// every entry is valid.
func (s *Session) ApplySettings(settings aggregate.Settings) error {
	if s.data == nil {
		return ErrNoDataset
	}
	next := s.settings.Clone()
	for _, col := range s.columnsInOrder(settings) {
		if err := s.checkAggregation(col, settings[col]); err != nil {
			return err
		}
		next[col] = settings[col]
	}
	s.settings = next
	return nil
}

// RemovePoint drops the row at index i from the current dataset.
func (s *Session) RemovePoint(i int) error {
	if s.data == nil {
		return ErrNoDataset
	}
	next, err := s.data.RemovePoint(i)
	if err != nil {
		return err
	}
	s.data = next
	return nil
}

// Groups partitions the current rows at the active resolution.
func (s *Session) Groups() (aggregate.Groups, error) {
	if s.data == nil {
		return nil, ErrNoDataset
	}
	return aggregate.GroupBy(s.data.Rows, s.resolution, s.indexer), nil
}

// Occupancy reports cell occupancy at the active resolution.
func (s *Session) Occupancy() (aggregate.Report, error) {
	if s.data == nil {
		return aggregate.Report{}, ErrNoDataset
	}
	return aggregate.OccupancyAt(s.data.Rows, s.resolution, s.indexer), nil
}

// Sweep reports occupancy at every resolution.
func (s *Session) Sweep(ctx context.Context, concurrency int) ([]aggregate.Report, error) {
	if s.data == nil {
		return nil, ErrNoDataset
	}
	return aggregate.Sweep(ctx, s.data.Rows, s.indexer, concurrency)
}

// Cells returns the boundary of every occupied cell at the active
// resolution, with its row count.
func (s *Session) Cells() (*geojson.FeatureCollection, error) {
	groups, err := s.Groups()
	if err != nil {
		return nil, err
	}
	return export.Cells(groups, s.indexer)
}

// Export assembles the output table for mode.
func (s *Session) Export(mode Mode) (export.Table, error) {
	if s.data == nil {
		return export.Table{}, ErrNoDataset
	}
	switch mode {
	case Enriched:
		return export.Enriched(s.data, s.resolution, s.includeCoordinates, s.indexer), nil
	case Aggregated:
		return export.Aggregated(s.data, s.resolution, s.settings, s.indexer), nil
	}
	return export.Table{}, eris.Errorf("session: unknown export mode %d", mode)
}

// columnsInOrder lists the settings' columns in dataset order first, then
// any others so that they are reported as errors deterministically.
func (s *Session) columnsInOrder(settings aggregate.Settings) []string {
	var cols []string
	seen := make(map[string]bool)
	if s.data != nil {
		for _, c := range s.data.Columns {
			if _, ok := settings[c]; ok && !seen[c] {
				seen[c] = true
				cols = append(cols, c)
			}
		}
	}
	var rest []string
	for c := range settings {
		if !seen[c] {
			rest = append(rest, c)
		}
	}
	slices.Sort(rest)
	return append(cols, rest...)
}
