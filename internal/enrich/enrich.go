// Package enrich resolves child records for a batch of parents with bounded
// fan-out. It is the only fan-out primitive the services use.
package enrich

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const DefaultConcurrency = 5

// Resolve fetches the children of every parent, at most limit fetches in
// flight, and attaches them. Parents whose id set is empty are attached an
// empty child list without a fetch. The first fetch error aborts the batch
// and is returned; no partial result is produced. Input order is preserved.
func Resolve[P, C any](
	ctx context.Context,
	limit int,
	parents []P,
	idsOf func(P) []int64,
	fetch func(ctx context.Context, ids []int64) ([]C, error),
	attach func(parent P, children []C) P,
) ([]P, error) {
	if len(parents) == 0 {
		return parents, nil
	}
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	out := make([]P, len(parents))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, parent := range parents {
		ids := idsOf(parent)
		if len(ids) == 0 {
			out[i] = attach(parent, nil)
			continue
		}
		i, parent, ids := i, parent, ids
		g.Go(func() error {
			children, err := fetch(gctx, ids)
			if err != nil {
				return err
			}
			out[i] = attach(parent, children)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
