package program

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/npillmayer/gpnode"
)

// EvaluateBatch evaluates disjoint programs concurrently, each with the same
// arguments, in the given precision. At most limit programs are evaluated at a
// time; limit <= 0 means no limit. The first failing program cancels the
// remaining evaluations and its error is returned. Nil programs are rejected
// with ErrCorruptTree before any evaluation starts.
func EvaluateBatch(ctx context.Context, programs []*Program, args []any,
	rt gpnode.ReturnType, limit int) ([]float64, error) {
	//
	for i, p := range programs {
		if p == nil {
			return nil, fmt.Errorf("%w: program %d is nil", ErrCorruptTree, i)
		}
	}
	results := make([]float64, len(programs))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, p := range programs {
		i, p := i, p
		g.Go(func() error {
			var err error
			if rt == gpnode.Float {
				var v float32
				v, err = p.ExecuteFloat(gctx, args)
				results[i] = float64(v)
			} else {
				results[i], err = p.ExecuteDouble(gctx, args)
			}
			if err != nil {
				return fmt.Errorf("program %d: %w", i, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		tracer().Infof("program batch: %v", err)
		return nil, err
	}
	return results, nil
}
