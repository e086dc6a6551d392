package reports

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/google/uuid"
)

const lockStripes = 64

// keyLocks serializes work per resource within this process. Keys sharing a
// stripe also serialize, which is safe but coarser.
type keyLocks struct {
	stripes [lockStripes]sync.Mutex
}

func (k *keyLocks) lock(key string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	m := &k.stripes[h.Sum32()%lockStripes]
	m.Lock()
	return m.Unlock
}

// Aggregator creates a report on the first filing against a resource and
// appends every later filing to it.
type Aggregator struct {
	locator  *Locator
	store    ReportStore
	engine   *Engine
	sanitize func(string) string
	now      func() time.Time
	locks    keyLocks
}

func NewAggregator(locator *Locator, store ReportStore, engine *Engine, sanitize func(string) string, now func() time.Time) *Aggregator {
	if sanitize == nil {
		sanitize = func(s string) string { return s }
	}
	if now == nil {
		now = time.Now
	}
	return &Aggregator{
		locator:  locator,
		store:    store,
		engine:   engine,
		sanitize: sanitize,
		now:      now,
	}
}

// File records a filing by submitterID. It returns (nil, nil) when the
// resource is unsupported and ErrInvalidFiling when the sanitized description
// is empty; nothing is written in either case.
func (a *Aggregator) File(ctx context.Context, submitterID string, in FilingInput) (*Report, error) {
	resource, err := a.locator.Locate(ctx, in.ResourceID)
	if err != nil {
		return nil, err
	}
	if resource.Kind() == KindUnsupported {
		return nil, nil
	}

	description := a.sanitize(in.ReasonDescription)
	if description == "" {
		return nil, ErrInvalidFiling
	}

	ref := RefOf(resource)
	unlock := a.locks.lock(ref.String())
	defer unlock()

	filing := Filing{
		ID:                uuid.New(),
		SubmitterID:       submitterID,
		ReasonCategory:    in.ReasonCategory,
		ReasonDescription: description,
		CreatedAt:         a.now().UTC(),
	}

	report, err := a.store.AppendFiling(ctx, ref, filing, a.engine.Decide)
	if err != nil {
		if errors.Is(err, ErrPersistence) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	report.Resource = resource
	return report, nil
}
