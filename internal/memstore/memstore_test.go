package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/reports"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/services"
)

func alwaysOpen(*reports.Report) reports.Decision {
	return reports.Decision{Rule: "test"}
}

func TestAppendFiling_ReturnsCopies(t *testing.T) {
	s := New()
	ctx := context.Background()
	ref := reports.ResourceRef{Kind: reports.KindPost, ID: "p1"}
	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	r, err := s.AppendFiling(ctx, ref, reports.Filing{ID: uuid.New(), SubmitterID: "u1", CreatedAt: at}, alwaysOpen)
	require.NoError(t, err)
	r.Filings[0].SubmitterID = "tampered"

	list, err := s.ListReports(ctx, reports.ListQuery{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "u1", list[0].Filings[0].SubmitterID)
	assert.Equal(t, "test", list[0].DecisionRule)
}

func TestAppendFiling_FailureCommitsNothing(t *testing.T) {
	s := New()
	s.FailWith(assert.AnError)

	_, err := s.AppendFiling(context.Background(), reports.ResourceRef{Kind: reports.KindPost, ID: "p1"}, reports.Filing{}, alwaysOpen)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 0, s.ReportCount())

	s.FailWith(nil)
	_, err = s.ListReports(context.Background(), reports.ListQuery{})
	assert.NoError(t, err)
}

func TestListReports_OffsetPastEnd(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, err := s.AppendFiling(ctx, reports.ResourceRef{Kind: reports.KindPost, ID: "p1"}, reports.Filing{CreatedAt: time.Now()}, alwaysOpen)
	require.NoError(t, err)

	list, err := s.ListReports(ctx, reports.ListQuery{Offset: 5})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAccounts(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.CreateMember(ctx, &models.Member{ID: "m1", Email: "a@example.com", Name: "A"}))
	assert.ErrorIs(t, s.CreateMember(ctx, &models.Member{ID: "m2", Email: "a@example.com"}), services.ErrEmailTaken)

	found, err := s.FindMemberByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "m1", found.ID)

	_, err = s.FindMemberByEmail(ctx, "b@example.com")
	assert.ErrorIs(t, err, services.ErrMemberNotFound)

	m, err := s.FindMember(ctx, "m1")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "A", m.Name)
}
