package reports

import (
	"context"
	"fmt"
)

// ResourceStore fetches resource projections. A Find method returns (nil, nil)
// when no resource of that kind has the id.
type ResourceStore interface {
	FindMember(ctx context.Context, id string) (*Member, error)
	FindPost(ctx context.Context, id string) (*Post, error)
	FindComment(ctx context.Context, id string) (*Comment, error)
}

// DecideFunc computes a report's disposition. Stores call it inside their
// atomic section, after the new filing has been appended.
type DecideFunc func(r *Report) Decision

// ReportStore persists reports.
type ReportStore interface {
	// AppendFiling finds or creates the report for ref, appends f, applies
	// decide and returns the updated report. The whole operation is atomic per
	// ref: concurrent calls for one ref produce one report holding every filing,
	// and a failure leaves no partial report behind.
	AppendFiling(ctx context.Context, ref ResourceRef, f Filing, decide DecideFunc) (*Report, error)

	// ListReports returns reports with their filings. Resource is left nil.
	ListReports(ctx context.Context, q ListQuery) ([]Report, error)
}

// Order selects the sort key of a listing.
type Order string

const (
	OrderCreatedAtDesc Order = "created_at_desc"
	OrderCreatedAtAsc  Order = "created_at_asc"
	OrderUpdatedAtDesc Order = "updated_at_desc"
	OrderUpdatedAtAsc  Order = "updated_at_asc"
)

// ParseOrder maps a client value to an Order. The empty string selects the
// default, newest first.
func ParseOrder(s string) (Order, error) {
	switch o := Order(s); o {
	case "":
		return OrderCreatedAtDesc, nil
	case OrderCreatedAtDesc, OrderCreatedAtAsc, OrderUpdatedAtDesc, OrderUpdatedAtAsc:
		return o, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOrder, s)
	}
}

// Column returns the sort column and whether it sorts descending.
func (o Order) Column() (column string, desc bool) {
	switch o {
	case OrderCreatedAtAsc:
		return "created_at", false
	case OrderUpdatedAtDesc:
		return "updated_at", true
	case OrderUpdatedAtAsc:
		return "updated_at", false
	default:
		return "created_at", true
	}
}

// ListQuery narrows a listing. A zero Limit means no limit.
type ListQuery struct {
	Order  Order
	Closed *bool
	Limit  int
	Offset int
}
