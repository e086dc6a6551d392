// Package reports implements the moderation-reporting core: filing reports
// against members, posts and comments, deduplicating them per resource,
// deciding their status and listing them for reviewers.
package reports

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Observer receives the outcome of every operation. Outcomes are "filed",
// "unsupported", "invalid", "unauthorized" and "error" for filings, and "ok",
// "unauthorized" and "error" for listings.
type Observer interface {
	ObserveFiling(kind Kind, outcome string, elapsed time.Duration)
	ObserveListing(outcome string)
}

type nopObserver struct{}

func (nopObserver) ObserveFiling(Kind, string, time.Duration) {}
func (nopObserver) ObserveListing(string)                     {}

// Options configures a Service. Zero values select the defaults.
type Options struct {
	// Sanitize strips markup from reason descriptions before storage.
	Sanitize func(string) string
	// Rules run before the baseline rule, in order.
	Rules    []Rule
	Now      func() time.Time
	Observer Observer
}

// Service is the entry point used by the request layer.
type Service struct {
	gate       Gate
	aggregator *Aggregator
	query      *QueryService
	observer   Observer
}

func NewService(resources ResourceStore, store ReportStore, opts Options) *Service {
	locator := NewLocator(resources)
	engine := NewEngine(opts.Rules...)
	observer := opts.Observer
	if observer == nil {
		observer = nopObserver{}
	}
	return &Service{
		aggregator: NewAggregator(locator, store, engine, opts.Sanitize, opts.Now),
		query:      NewQueryService(locator, store),
		observer:   observer,
	}
}

// FileReport files a report by caller against in.ResourceID. Anonymous callers
// get ErrUnauthorized. An unsupported resource yields (nil, nil).
func (s *Service) FileReport(ctx context.Context, caller *Caller, in FilingInput) (*Report, error) {
	start := time.Now()
	if err := s.gate.AuthorizeFiling(caller); err != nil {
		s.observer.ObserveFiling(KindUnsupported, "unauthorized", time.Since(start))
		return nil, err
	}

	report, err := s.aggregator.File(ctx, caller.ID, in)
	switch {
	case errors.Is(err, ErrInvalidFiling):
		s.observer.ObserveFiling(KindUnsupported, "invalid", time.Since(start))
		return nil, err
	case err != nil:
		s.observer.ObserveFiling(KindUnsupported, "error", time.Since(start))
		slog.Error("report filing failed",
			"action", "file_report",
			"user_id", caller.ID,
			"resource_id", in.ResourceID,
			"error", err,
		)
		return nil, err
	case report == nil:
		s.observer.ObserveFiling(KindUnsupported, "unsupported", time.Since(start))
		return nil, nil
	}

	s.observer.ObserveFiling(report.Ref.Kind, "filed", time.Since(start))
	slog.Info("report filed",
		"report_id", report.ID.String(),
		"resource_id", report.Ref.ID,
		"kind", string(report.Ref.Kind),
		"user_id", caller.ID,
		"filings", len(report.Filings),
	)
	return report, nil
}

// ListReports returns every report matching q to a reviewer. Other callers
// get ErrUnauthorized and no data.
func (s *Service) ListReports(ctx context.Context, caller *Caller, q ListQuery) ([]Report, error) {
	if err := s.gate.AuthorizeListing(caller); err != nil {
		s.observer.ObserveListing("unauthorized")
		return nil, err
	}
	list, err := s.query.List(ctx, q)
	if err != nil {
		s.observer.ObserveListing("error")
		slog.Error("report listing failed", "action", "list_reports", "user_id", caller.ID, "error", err)
		return nil, err
	}
	s.observer.ObserveListing("ok")
	return list, nil
}
