package services

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/reports"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReportStore persists reports and filings in Postgres.
type ReportStore struct {
	db *gorm.DB
}

func NewReportStore(db *gorm.DB) *ReportStore {
	return &ReportStore{db: db}
}

// AppendFiling inserts the report row if missing (ON CONFLICT DO NOTHING on
// the resource index), locks it with SELECT ... FOR UPDATE and appends the
// filing, all in one transaction.
func (s *ReportStore) AppendFiling(ctx context.Context, ref reports.ResourceRef, f reports.Filing, decide reports.DecideFunc) (*reports.Report, error) {
	var out *reports.Report
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed := models.Report{
			ID:           uuid.New(),
			ResourceKind: string(ref.Kind),
			ResourceID:   ref.ID,
			CreatedAt:    f.CreatedAt,
			UpdatedAt:    f.CreatedAt,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "resource_kind"}, {Name: "resource_id"}},
			DoNothing: true,
		}).Create(&seed).Error; err != nil {
			return fmt.Errorf("failed to create report: %w", err)
		}

		var row models.Report
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("resource_kind = ? AND resource_id = ?", string(ref.Kind), ref.ID).
			Take(&row).Error; err != nil {
			return fmt.Errorf("failed to lock report: %w", err)
		}

		if err := tx.Where("report_id = ?", row.ID).Order("position ASC").Find(&row.Filings).Error; err != nil {
			return fmt.Errorf("failed to load filings: %w", err)
		}

		filing := models.Filing{
			ID:                f.ID,
			ReportID:          row.ID,
			Position:          len(row.Filings),
			SubmitterID:       f.SubmitterID,
			ReasonCategory:    f.ReasonCategory,
			ReasonDescription: f.ReasonDescription,
			CreatedAt:         f.CreatedAt,
		}
		if err := tx.Create(&filing).Error; err != nil {
			return fmt.Errorf("failed to append filing: %w", err)
		}
		row.Filings = append(row.Filings, filing)
		if f.CreatedAt.After(row.UpdatedAt) {
			row.UpdatedAt = f.CreatedAt
		}

		report := toReport(&row)
		d := decide(&report)
		if err := tx.Model(&models.Report{}).Where("id = ?", row.ID).Updates(map[string]interface{}{
			"closed":        d.Closed,
			"decision_rule": d.Rule,
			"updated_at":    row.UpdatedAt,
		}).Error; err != nil {
			return fmt.Errorf("failed to update report: %w", err)
		}
		report.Closed = d.Closed
		report.DecisionRule = d.Rule
		out = &report
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", reports.ErrPersistence, err)
	}
	return out, nil
}

func (s *ReportStore) ListReports(ctx context.Context, q reports.ListQuery) ([]reports.Report, error) {
	query := s.db.WithContext(ctx).Model(&models.Report{})
	if q.Closed != nil {
		query = query.Where("closed = ?", *q.Closed)
	}

	column, desc := q.Order.Column()
	query = query.
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc}).
		Order("id ASC")
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	if q.Offset > 0 {
		query = query.Offset(q.Offset)
	}

	var rows []models.Report
	if err := query.Preload("Filings", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to list reports: %v", reports.ErrPersistence, err)
	}

	list := make([]reports.Report, len(rows))
	for i := range rows {
		list[i] = toReport(&rows[i])
	}
	return list, nil
}

func toReport(row *models.Report) reports.Report {
	filings := make([]reports.Filing, len(row.Filings))
	for i, f := range row.Filings {
		filings[i] = reports.Filing{
			ID:                f.ID,
			SubmitterID:       f.SubmitterID,
			ReasonCategory:    f.ReasonCategory,
			ReasonDescription: f.ReasonDescription,
			CreatedAt:         f.CreatedAt.UTC(),
		}
	}
	return reports.Report{
		ID:           row.ID,
		Ref:          reports.ResourceRef{Kind: reports.Kind(row.ResourceKind), ID: row.ResourceID},
		CreatedAt:    row.CreatedAt.UTC(),
		UpdatedAt:    row.UpdatedAt.UTC(),
		Closed:       row.Closed,
		DecisionRule: row.DecisionRule,
		Filings:      filings,
	}
}
