package services_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/reports"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/services"
)

// openTestDB connects to TEST_DATABASE_DSN and starts from empty report tables.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	db, err := database.Open(dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, db.Exec("TRUNCATE report_filings, reports, members, posts, comments, tags, categories").Error)
	require.NoError(t, database.SeedDemo(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func openDecision(r *reports.Report) reports.Decision {
	return reports.NewEngine().Decide(r)
}

func filing(submitter string, at time.Time) reports.Filing {
	return reports.Filing{
		ID:                uuid.New(),
		SubmitterID:       submitter,
		ReasonCategory:    "doxing",
		ReasonDescription: "harassing",
		CreatedAt:         at,
	}
}

func TestReportStore_AppendFiling(t *testing.T) {
	db := openTestDB(t)
	store := services.NewReportStore(db)
	ctx := context.Background()
	ref := reports.ResourceRef{Kind: reports.KindPost, ID: "p23"}
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	first, err := store.AppendFiling(ctx, ref, filing("u1", t0), openDecision)
	require.NoError(t, err)
	second, err := store.AppendFiling(ctx, ref, filing("u2", t0.Add(time.Minute)), openDecision)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	require.Len(t, second.Filings, 2)
	assert.Equal(t, "u1", second.Filings[0].SubmitterID)
	assert.Equal(t, "u2", second.Filings[1].SubmitterID)
	assert.True(t, second.UpdatedAt.Equal(t0.Add(time.Minute)))
	assert.True(t, second.CreatedAt.Equal(t0))
	assert.False(t, second.Closed)
	assert.Equal(t, reports.LatestReviewUpdatedAtRule, second.DecisionRule)

	var count int64
	require.NoError(t, db.Model(&models.Report{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestReportStore_ConcurrentAppendsConverge(t *testing.T) {
	db := openTestDB(t)
	store := services.NewReportStore(db)
	ref := reports.ResourceRef{Kind: reports.KindMember, ID: "u2"}
	now := time.Now().UTC()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.AppendFiling(context.Background(), ref, filing(fmt.Sprintf("s%d", i), now), openDecision)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	list, err := store.ListReports(context.Background(), reports.ListQuery{Order: reports.OrderCreatedAtDesc})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Filings, n)
}

func TestReportStore_ListReports(t *testing.T) {
	db := openTestDB(t)
	store := services.NewReportStore(db)
	ctx := context.Background()
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	refs := []reports.ResourceRef{
		{Kind: reports.KindMember, ID: "u2"},
		{Kind: reports.KindPost, ID: "p23"},
		{Kind: reports.KindComment, ID: "c9"},
	}
	for i, ref := range refs {
		_, err := store.AppendFiling(ctx, ref, filing("u1", t0.Add(time.Duration(i)*time.Minute)), openDecision)
		require.NoError(t, err)
	}
	// Bump the oldest report so updated_at order differs from created_at order.
	_, err := store.AppendFiling(ctx, refs[0], filing("u3", t0.Add(10*time.Minute)), openDecision)
	require.NoError(t, err)

	asc, err := store.ListReports(ctx, reports.ListQuery{Order: reports.OrderCreatedAtAsc})
	require.NoError(t, err)
	require.Len(t, asc, 3)
	assert.Equal(t, "u2", asc[0].Ref.ID)
	assert.Equal(t, "c9", asc[2].Ref.ID)

	byUpdate, err := store.ListReports(ctx, reports.ListQuery{Order: reports.OrderUpdatedAtDesc, Limit: 1})
	require.NoError(t, err)
	require.Len(t, byUpdate, 1)
	assert.Equal(t, "u2", byUpdate[0].Ref.ID)
	assert.Len(t, byUpdate[0].Filings, 2)

	closed := true
	none, err := store.ListReports(ctx, reports.ListQuery{Order: reports.OrderCreatedAtDesc, Closed: &closed})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestResourceStore_Find(t *testing.T) {
	db := openTestDB(t)
	store := services.NewResourceStore(db)
	ctx := context.Background()

	m, err := store.FindMember(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "Maria", m.Name)

	p, err := store.FindPost(ctx, "p23")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Weekend market finds", p.Title)

	missing, err := store.FindComment(ctx, "t23")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
