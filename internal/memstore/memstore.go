// Package memstore keeps resources and reports in process memory. It backs
// local runs without Postgres and the test suites of the packages above it.
package memstore

import (
	"context"
	"slices"
	"sync"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/reports"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/services"
	"github.com/google/uuid"
)

type Store struct {
	mu       sync.RWMutex
	members  map[string]reports.Member
	posts    map[string]reports.Post
	comments map[string]reports.Comment
	tags     map[string]struct{}
	accounts map[string]models.Member
	reports  map[reports.ResourceRef]*reports.Report
	failure  error
}

func New() *Store {
	return &Store{
		members:  make(map[string]reports.Member),
		posts:    make(map[string]reports.Post),
		comments: make(map[string]reports.Comment),
		tags:     make(map[string]struct{}),
		accounts: make(map[string]models.Member),
		reports:  make(map[reports.ResourceRef]*reports.Report),
	}
}

func (s *Store) PutMember(m reports.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[m.ID] = m
}

func (s *Store) PutPost(p reports.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[p.ID] = p
}

func (s *Store) PutComment(c reports.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments[c.ID] = c
}

// PutTag records a tag. Tags exist but are never reportable.
func (s *Store) PutTag(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags[id] = struct{}{}
}

func (s *Store) DeleteMember(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.members, id)
}

// FailWith makes every report write and read return err until it is called
// again with nil.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = err
}

// ReportCount returns how many reports exist.
func (s *Store) ReportCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports)
}

func (s *Store) FindMember(_ context.Context, id string) (*reports.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.members[id]; ok {
		return &m, nil
	}
	return nil, nil
}

func (s *Store) FindPost(_ context.Context, id string) (*reports.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.posts[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (s *Store) FindComment(_ context.Context, id string) (*reports.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.comments[id]; ok {
		return &c, nil
	}
	return nil, nil
}

// CreateMember stores an account and makes it reportable as a member.
func (s *Store) CreateMember(ctx context.Context, m *models.Member) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[m.Email]; ok {
		return services.ErrEmailTaken
	}
	s.accounts[m.Email] = *m
	s.members[m.ID] = reports.Member{ID: m.ID, Name: m.Name}
	return nil
}

func (s *Store) FindMemberByEmail(_ context.Context, email string) (*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.accounts[email]
	if !ok {
		return nil, services.ErrMemberNotFound
	}
	return &m, nil
}

func (s *Store) AppendFiling(ctx context.Context, ref reports.ResourceRef, f reports.Filing, decide reports.DecideFunc) (*reports.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return nil, s.failure
	}

	// Work on a copy so nothing is committed unless every step succeeds.
	var next reports.Report
	if existing, ok := s.reports[ref]; ok {
		next = clone(existing)
	} else {
		next = reports.Report{
			ID:        uuid.New(),
			Ref:       ref,
			CreatedAt: f.CreatedAt,
			UpdatedAt: f.CreatedAt,
		}
	}
	next.Filings = append(next.Filings, f)
	if f.CreatedAt.After(next.UpdatedAt) {
		next.UpdatedAt = f.CreatedAt
	}
	d := decide(&next)
	next.Closed = d.Closed
	next.DecisionRule = d.Rule

	s.reports[ref] = &next
	out := clone(&next)
	return &out, nil
}

func (s *Store) ListReports(ctx context.Context, q reports.ListQuery) ([]reports.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failure != nil {
		return nil, s.failure
	}

	list := make([]reports.Report, 0, len(s.reports))
	for _, r := range s.reports {
		if q.Closed != nil && r.Closed != *q.Closed {
			continue
		}
		list = append(list, clone(r))
	}

	column, desc := q.Order.Column()
	slices.SortStableFunc(list, func(a, b reports.Report) int {
		ta, tb := a.CreatedAt, b.CreatedAt
		if column == "updated_at" {
			ta, tb = a.UpdatedAt, b.UpdatedAt
		}
		c := ta.Compare(tb)
		if c == 0 {
			c = slices.Compare(a.ID[:], b.ID[:])
		}
		if desc {
			return -c
		}
		return c
	})

	if q.Offset > 0 {
		if q.Offset >= len(list) {
			return []reports.Report{}, nil
		}
		list = list[q.Offset:]
	}
	if q.Limit > 0 && q.Limit < len(list) {
		list = list[:q.Limit]
	}
	return list, nil
}

func clone(r *reports.Report) reports.Report {
	out := *r
	out.Filings = slices.Clone(r.Filings)
	return out
}
