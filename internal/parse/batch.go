package parse

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// BatchResult holds the outcome of one request of a batch.
type BatchResult struct {
	// Index is the request's position in the batch.
	Index  int
	Result *Result
	// Err is non-nil if the request failed. A failed phrase does not stop
	// the rest of the batch.
	Err error
}

// ParseBatch parses independent requests concurrently, at most limit at a
// time (unbounded when limit <= 0). Each request still runs through Parse
// synchronously. Results come back in request order.
//
// Per-request failures are reported in BatchResult.Err. The returned error
// is non-nil only when ctx is canceled, in which case the requests not yet
// started are abandoned.
func (p *Policy) ParseBatch(ctx context.Context, reqs []Request, limit int) ([]BatchResult, error) {
	results := make([]BatchResult, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, req := range reqs {
		g.Go(func() error {
			results[i].Index = i
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return err
			}
			res, err := p.Parse(gctx, req)
			results[i].Result = res
			results[i].Err = err
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return nil
		})
	}

	err := g.Wait()
	return results, err
}
