package identity

import (
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/reports"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Resolver turns verified JWT claims into a reports.Caller. Members on the
// reviewer allow-list are promoted to reviewer.
type Resolver struct {
	reviewers map[string]bool
}

func NewResolver(reviewerIDs []string) *Resolver {
	reviewers := make(map[string]bool, len(reviewerIDs))
	for _, id := range reviewerIDs {
		reviewers[id] = true
	}
	return &Resolver{reviewers: reviewers}
}

// Caller returns the authenticated caller, or nil for anonymous requests.
func (r *Resolver) Caller(c *fiber.Ctx) *reports.Caller {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil || !token.Valid {
		return nil
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	return r.FromClaims(claims)
}

func (r *Resolver) FromClaims(claims jwt.MapClaims) *reports.Caller {
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil
	}
	role, _ := claims["role"].(string)

	caller := &reports.Caller{ID: sub, Role: reports.Role(role)}
	if caller.Role == "" {
		caller.Role = reports.RoleMember
	}
	if r.reviewers[sub] && !caller.Role.AtLeast(reports.RoleReviewer) {
		caller.Role = reports.RoleReviewer
	}
	return caller
}
