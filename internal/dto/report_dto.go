package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/reports"
	"github.com/google/uuid"
)

type FileReportRequest struct {
	ResourceID        string `json:"resource_id" validate:"required,max=255"`
	ReasonCategory    string `json:"reason_category" validate:"required,reasoncategory"`
	ReasonDescription string `json:"reason_description" validate:"required,max=1000,text"`
}

type ResourceResponse struct {
	Type    string `json:"type"`
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
}

type SubmitterResponse struct {
	ID string `json:"id"`
}

type FilingResponse struct {
	Submitter         SubmitterResponse `json:"submitter"`
	ReasonCategory    string            `json:"reason_category"`
	ReasonDescription string            `json:"reason_description"`
	CreatedAt         time.Time         `json:"created_at"`
}

type ReportResponse struct {
	ReportID  uuid.UUID        `json:"report_id"`
	Resource  ResourceResponse `json:"resource"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Closed    bool             `json:"closed"`
	Rule      string           `json:"rule"`
	Filings   []FilingResponse `json:"filings"`
}

// FileReportResponse wraps the filed report; Report is null for resources
// that cannot be reported.
type FileReportResponse struct {
	Report *ReportResponse `json:"report"`
}

type ListReportsResponse struct {
	Reports []ReportResponse `json:"reports"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

func NewResourceResponse(res reports.Resource) ResourceResponse {
	out := ResourceResponse{Type: string(res.Kind()), ID: res.ResourceID()}
	switch r := res.(type) {
	case reports.Member:
		out.Name = r.Name
	case reports.Post:
		out.Title = r.Title
	case reports.Comment:
		out.Content = r.Content
	case reports.Unsupported:
	}
	return out
}

func NewReportResponse(r *reports.Report) ReportResponse {
	res := r.Resource
	if res == nil {
		res = reports.Unsupported{ID: r.Ref.ID}
	}
	filings := make([]FilingResponse, len(r.Filings))
	for i, f := range r.Filings {
		filings[i] = FilingResponse{
			Submitter:         SubmitterResponse{ID: f.SubmitterID},
			ReasonCategory:    f.ReasonCategory,
			ReasonDescription: f.ReasonDescription,
			CreatedAt:         f.CreatedAt,
		}
	}
	return ReportResponse{
		ReportID:  r.ID,
		Resource:  NewResourceResponse(res),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Closed:    r.Closed,
		Rule:      r.DecisionRule,
		Filings:   filings,
	}
}
