// Package store persists captured leads and in-progress plan drafts. SQLite
// is the default for single-binary deployments; Postgres backs multi-instance
// ones.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/fieldhouse-group/facility-cli/internal/lead"
	"github.com/fieldhouse-group/facility-cli/internal/plan"
)

// LeadFilter specifies criteria for listing leads.
type LeadFilter struct {
	SyncStatus lead.SyncStatus `json:"sync_status,omitempty"`
	Email      string          `json:"email,omitempty"`
	Limit      int             `json:"limit,omitempty"`
	Offset     int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for leads and plan drafts.
type Store interface {
	// Leads
	CreateLead(ctx context.Context, l *lead.Lead) error
	GetLead(ctx context.Context, leadID string) (*lead.Lead, error)
	ListLeads(ctx context.Context, filter LeadFilter) ([]lead.Lead, error)
	ListLeadsBySync(ctx context.Context, status lead.SyncStatus, limit int) ([]lead.Lead, error)
	UpdateLeadSync(ctx context.Context, leadID string, status lead.SyncStatus, syncErr string) error

	// Plan drafts
	SaveDraft(ctx context.Context, d *plan.Draft) error
	GetDraft(ctx context.Context, draftID string) (*plan.Draft, error)
	DeleteDraft(ctx context.Context, draftID string) error
	DeleteStaleDrafts(ctx context.Context, olderThan time.Duration) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a Store for the configured driver.
func Open(ctx context.Context, driver, dsn string, poolCfg *PoolConfig) (Store, error) {
	switch driver {
	case "", "sqlite":
		return NewSQLite(dsn)
	case "postgres":
		return NewPostgres(ctx, dsn, poolCfg)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
}
