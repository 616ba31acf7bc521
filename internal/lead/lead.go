// Package lead implements lead capture: validation and sanitization of the
// contact form, submission rate limiting, persistence, and best-effort sync
// to the spreadsheet sink.
package lead

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SyncStatus tracks the spreadsheet sync state of a stored lead.
type SyncStatus string

const (
	SyncPending SyncStatus = "pending"
	SyncDone    SyncStatus = "synced"
	SyncFailed  SyncStatus = "failed"
)

// Submission is the raw capture-form payload before validation.
type Submission struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Business string `json:"business,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`

	// Website is the honeypot. Humans never see it; a non-empty value
	// means a bot filled the form.
	Website string `json:"website,omitempty"`

	FacilityType            string   `json:"facility_type,omitempty"`
	FacilitySize            string   `json:"facility_size,omitempty"`
	Sports                  []string `json:"sports,omitempty"`
	EstimatedSquareFootage  int      `json:"estimated_square_footage,omitempty"`
	EstimatedBudget         float64  `json:"estimated_budget,omitempty"`
	EstimatedMonthlyRevenue float64  `json:"estimated_monthly_revenue,omitempty"`
	EstimatedROIPct         float64  `json:"estimated_roi_pct,omitempty"`

	Source    string `json:"source,omitempty"`
	Referrer  string `json:"referrer,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

// Lead is the persisted record. Rows are insert-only; the sync step mutates
// status fields and nothing else.
type Lead struct {
	ID string `json:"id"`

	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Business string `json:"business,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`

	FacilityType            string   `json:"facility_type,omitempty"`
	FacilitySize            string   `json:"facility_size,omitempty"`
	Sports                  []string `json:"sports,omitempty"`
	EstimatedSquareFootage  int      `json:"estimated_square_footage,omitempty"`
	EstimatedBudget         float64  `json:"estimated_budget,omitempty"`
	EstimatedMonthlyRevenue float64  `json:"estimated_monthly_revenue,omitempty"`
	EstimatedROIPct         float64  `json:"estimated_roi_pct,omitempty"`

	Source    string `json:"source,omitempty"`
	Referrer  string `json:"referrer,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`

	SyncStatus SyncStatus `json:"sync_status"`
	SyncError  string     `json:"sync_error,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// fromSubmission builds a pending Lead from a validated submission.
func fromSubmission(s Submission) *Lead {
	now := time.Now().UTC()
	return &Lead{
		ID:                      uuid.New().String(),
		Name:                    s.Name,
		Email:                   s.Email,
		Phone:                   s.Phone,
		Business:                s.Business,
		City:                    s.City,
		State:                   s.State,
		FacilityType:            s.FacilityType,
		FacilitySize:            s.FacilitySize,
		Sports:                  s.Sports,
		EstimatedSquareFootage:  s.EstimatedSquareFootage,
		EstimatedBudget:         s.EstimatedBudget,
		EstimatedMonthlyRevenue: s.EstimatedMonthlyRevenue,
		EstimatedROIPct:         s.EstimatedROIPct,
		Source:                  s.Source,
		Referrer:                s.Referrer,
		UserAgent:               s.UserAgent,
		SyncStatus:              SyncPending,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
}

// SheetRow renders the lead as a spreadsheet row. The column order is part
// of the sink contract; do not reorder.
func (l *Lead) SheetRow() []string {
	return []string{
		l.CreatedAt.UTC().Format(time.RFC3339),
		l.Name,
		l.Email,
		l.Phone,
		l.Business,
		l.City,
		l.State,
		l.FacilityType,
		l.FacilitySize,
		strings.Join(l.Sports, ", "),
		strconv.Itoa(l.EstimatedSquareFootage),
		strconv.FormatFloat(l.EstimatedBudget, 'f', 2, 64),
		strconv.FormatFloat(l.EstimatedMonthlyRevenue, 'f', 2, 64),
		strconv.FormatFloat(l.EstimatedROIPct, 'f', 2, 64),
		l.Source,
		l.UserAgent,
		l.Referrer,
	}
}
