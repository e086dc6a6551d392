package reports

import (
	"time"

	"github.com/google/uuid"
)

// Role is the privilege level of a caller.
type Role string

const (
	RoleMember   Role = "member"
	RoleReviewer Role = "reviewer"
	RoleAdmin    Role = "admin"
)

var roleRank = map[Role]int{
	RoleMember:   1,
	RoleReviewer: 2,
	RoleAdmin:    3,
}

// AtLeast reports whether r grants the privileges of min. Unknown roles grant nothing.
func (r Role) AtLeast(min Role) bool {
	return roleRank[r] > 0 && roleRank[r] >= roleRank[min]
}

// Caller is the authenticated identity invoking an operation. A nil *Caller is
// an anonymous request.
type Caller struct {
	ID   string
	Role Role
}

// Filing is one submission against a resource. Immutable once stored.
type Filing struct {
	ID                uuid.UUID
	SubmitterID       string
	ReasonCategory    string
	ReasonDescription string
	CreatedAt         time.Time
}

// Report aggregates every filing against one resource.
type Report struct {
	ID           uuid.UUID
	Ref          ResourceRef
	Resource     Resource
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Closed       bool
	DecisionRule string
	// Filings are kept in insertion order.
	Filings []Filing
}

// LatestFiling returns the most recently appended filing, or nil.
func (r *Report) LatestFiling() *Filing {
	if len(r.Filings) == 0 {
		return nil
	}
	return &r.Filings[len(r.Filings)-1]
}

// FilingInput carries what the boundary has already validated.
type FilingInput struct {
	ResourceID        string
	ReasonCategory    string
	ReasonDescription string
}
