package reports

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

const resolveConcurrency = 8

// QueryService lists reports with live resource projections.
type QueryService struct {
	locator *Locator
	store   ReportStore
}

func NewQueryService(locator *Locator, store ReportStore) *QueryService {
	return &QueryService{locator: locator, store: store}
}

// List returns reports in the requested order, each with its resource
// re-resolved so renamed members or edited posts show their current state.
// Either every report is returned or an error is.
func (q *QueryService) List(ctx context.Context, query ListQuery) ([]Report, error) {
	if query.Order == "" {
		query.Order = OrderCreatedAtDesc
	}
	if _, err := ParseOrder(string(query.Order)); err != nil {
		return nil, err
	}

	list, err := q.store.ListReports(ctx, query)
	if err != nil {
		if errors.Is(err, ErrPersistence) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)
	for i := range list {
		i := i
		g.Go(func() error {
			res, err := q.locator.Resolve(gctx, list[i].Ref)
			if err != nil {
				return err
			}
			list[i].Resource = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return list, nil
}
