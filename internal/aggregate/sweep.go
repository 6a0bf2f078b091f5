package aggregate

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/hexagg/internal/cell"
	"github.com/sells-group/hexagg/internal/dataset"
)

// Sweep reports occupancy at every resolution from coarsest to finest. Each
// resolution is grouped independently; rows are only read.
func Sweep(ctx context.Context, rows []dataset.Row, ix Indexer, concurrency int) ([]Report, error) {
	reports := make([]Report, cell.MaxResolution-cell.MinResolution+1)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))

	for res := cell.MinResolution; res <= cell.MaxResolution; res++ {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return eris.Wrapf(err, "aggregate: sweep resolution %d", res)
			}
			reports[res-cell.MinResolution] = OccupancyAt(rows, res, ix)
			zap.L().Debug("aggregate: sweep resolution done",
				zap.Int("resolution", res),
				zap.Int("cells", reports[res-cell.MinResolution].Cells),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Recommend returns the finest report whose smallest cell holds at least k
// rows. It returns false when even the coarsest resolution falls short.
func Recommend(reports []Report, k int) (Report, bool) {
	for i := len(reports) - 1; i >= 0; i-- {
		if reports[i].Cells > 0 && reports[i].Min >= k {
			return reports[i], true
		}
	}
	return Report{}, false
}
