package reports

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Locator classifies opaque resource identifiers and fetches their projections.
type Locator struct {
	store ResourceStore
}

func NewLocator(store ResourceStore) *Locator {
	return &Locator{store: store}
}

// Locate looks the id up as a member, post and comment in parallel. Unknown
// ids resolve to Unsupported; an error is returned only when the store fails.
// If an id matched more than one kind, member wins over post over comment.
func (l *Locator) Locate(ctx context.Context, id string) (Resource, error) {
	if strings.TrimSpace(id) == "" {
		return Unsupported{ID: id}, nil
	}

	var (
		member  *Member
		post    *Post
		comment *Comment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		member, err = l.store.FindMember(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		post, err = l.store.FindPost(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		comment, err = l.store.FindComment(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return Unsupported{ID: id}, fmt.Errorf("%w: locate %q: %w", ErrPersistence, id, err)
	}

	switch {
	case member != nil:
		return *member, nil
	case post != nil:
		return *post, nil
	case comment != nil:
		return *comment, nil
	default:
		return Unsupported{ID: id}, nil
	}
}

// Resolve fetches the live projection for a known reference. A resource that
// has disappeared since it was reported resolves to Unsupported.
func (l *Locator) Resolve(ctx context.Context, ref ResourceRef) (Resource, error) {
	var (
		res Resource
		err error
	)
	switch ref.Kind {
	case KindMember:
		var m *Member
		if m, err = l.store.FindMember(ctx, ref.ID); m != nil {
			res = *m
		}
	case KindPost:
		var p *Post
		if p, err = l.store.FindPost(ctx, ref.ID); p != nil {
			res = *p
		}
	case KindComment:
		var c *Comment
		if c, err = l.store.FindComment(ctx, ref.ID); c != nil {
			res = *c
		}
	case KindUnsupported:
	default:
		return Unsupported{ID: ref.ID}, fmt.Errorf("reports: unhandled resource kind %q", ref.Kind)
	}
	if err != nil {
		return Unsupported{ID: ref.ID}, fmt.Errorf("%w: resolve %s: %w", ErrPersistence, ref, err)
	}
	if res == nil {
		return Unsupported{ID: ref.ID}, nil
	}
	return res, nil
}
