package models

import (
	"time"

	"github.com/google/uuid"
)

// Report holds every filing against one resource. The unique index on
// (resource_kind, resource_id) backs create-or-append.
type Report struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ResourceKind string    `gorm:"not null;size:20;uniqueIndex:idx_reports_resource,priority:1" json:"resource_kind"`
	ResourceID   string    `gorm:"not null;size:255;uniqueIndex:idx_reports_resource,priority:2" json:"resource_id"`
	Closed       bool      `gorm:"not null;default:false;index" json:"closed"`
	DecisionRule string    `gorm:"not null;default:'';size:100" json:"decision_rule"`
	CreatedAt    time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;index" json:"updated_at"`
	Filings      []Filing  `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE" json:"filings"`
}

// Filing is one submission. Position records insertion order within a report.
type Filing struct {
	ID                uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReportID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_filings_report_position,priority:1" json:"report_id"`
	Position          int       `gorm:"not null;uniqueIndex:idx_filings_report_position,priority:2" json:"position"`
	SubmitterID       string    `gorm:"size:64;not null;index" json:"submitter_id"`
	ReasonCategory    string    `gorm:"size:100;not null" json:"reason_category"`
	ReasonDescription string    `gorm:"type:text;not null" json:"reason_description"`
	CreatedAt         time.Time `gorm:"not null" json:"created_at"`
}

func (Filing) TableName() string {
	return "report_filings"
}
