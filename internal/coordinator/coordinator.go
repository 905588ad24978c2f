package coordinator

import (
	"context"
	"fmt"
	"log/slog"

	"econcharts/internal/combine"
	"econcharts/internal/fetcher"
)

// EntityFunc processes one entity end to end (fetch, normalize, collect).
type EntityFunc func(ctx context.Context, entity string) error

// Coordinator runs an EntityFunc over a list of entities one at a time
type Coordinator struct {
	entities []string
	logger   *slog.Logger
}

// New creates a new Coordinator. Duplicate entities are dropped, keeping
// the first occurrence.
func New(entities []string, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		entities: combine.Dedupe(entities),
		logger:   logger,
	}
}

// Run processes every entity sequentially and returns one Result per entity
// in processing order. A failing entity is logged as a warning and does not
// stop the others. Run stops early only when ctx is cancelled.
func (c *Coordinator) Run(ctx context.Context, fn EntityFunc) ([]fetcher.Result, error) {
	if len(c.entities) == 0 {
		return nil, fmt.Errorf("no entities configured")
	}

	results := make([]fetcher.Result, 0, len(c.entities))
	for _, entity := range c.entities {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		err := fn(ctx, entity)
		if err != nil {
			c.logger.Warn("entity skipped",
				slog.String("entity", entity),
				slog.String("kind", string(fetcher.KindOf(err))),
				slog.Any("error", err))
		}

		results = append(results, fetcher.Result{
			Key:   entity,
			Error: err,
		})
	}

	return results, nil
}

// Failed returns the results that carry an error.
func Failed(results []fetcher.Result) []fetcher.Result {
	var out []fetcher.Result
	for _, r := range results {
		if !r.OK() {
			out = append(out, r)
		}
	}
	return out
}
