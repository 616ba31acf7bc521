package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/fieldhouse-group/facility-cli/internal/db"
	"github.com/fieldhouse-group/facility-cli/internal/lead"
	"github.com/fieldhouse-group/facility-cli/internal/plan"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the most frequently used store operations.
var preparedStatements = map[string]string{
	"insert_lead":      `INSERT INTO leads (id, email, payload, sync_status, sync_error, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
	"get_lead":         `SELECT payload, sync_status, sync_error, created_at, updated_at FROM leads WHERE id = $1`,
	"update_lead_sync": `UPDATE leads SET sync_status = $1, sync_error = $2, updated_at = $3 WHERE id = $4`,
	"get_draft":        `SELECT payload FROM plan_drafts WHERE id = $1`,
	"delete_draft":     `DELETE FROM plan_drafts WHERE id = $1`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	// Apply pool sizing from config with sensible defaults.
	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	// Prepare frequently-used statements on each new connection.
	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// Pool returns the underlying database pool for use by subsystems that need
// direct query access.
func (s *PostgresStore) Pool() db.Pool {
	return s.pool
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS leads (
	id          TEXT PRIMARY KEY,
	email       TEXT NOT NULL,
	payload     JSONB NOT NULL,
	sync_status TEXT NOT NULL DEFAULT 'pending',
	sync_error  TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS plan_drafts (
	id         TEXT PRIMARY KEY,
	step       TEXT NOT NULL,
	payload    JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_leads_sync_status ON leads(sync_status);
CREATE INDEX IF NOT EXISTS idx_leads_email ON leads(email);
CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_plan_drafts_updated_at ON plan_drafts(updated_at);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) CreateLead(ctx context.Context, l *lead.Lead) error {
	payload, err := json.Marshal(l)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal lead")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO leads (id, email, payload, sync_status, sync_error, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		l.ID, l.Email, payload, string(l.SyncStatus), l.SyncError, l.CreatedAt, l.UpdatedAt,
	)
	return eris.Wrap(err, "postgres: insert lead")
}

func (s *PostgresStore) GetLead(ctx context.Context, leadID string) (*lead.Lead, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT payload, sync_status, sync_error, created_at, updated_at FROM leads WHERE id = $1`,
		leadID,
	)
	l, err := scanLeadPg(row)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get lead %s", leadID)
	}
	return l, nil
}

func (s *PostgresStore) ListLeads(ctx context.Context, filter LeadFilter) ([]lead.Lead, error) {
	query := `SELECT payload, sync_status, sync_error, created_at, updated_at FROM leads WHERE true`
	args := []any{}
	argIdx := 1

	if filter.SyncStatus != "" {
		query += fmt.Sprintf(` AND sync_status = $%d`, argIdx)
		args = append(args, string(filter.SyncStatus))
		argIdx++
	}
	if filter.Email != "" {
		query += fmt.Sprintf(` AND email = $%d`, argIdx)
		args = append(args, filter.Email)
		argIdx++
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit)
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
		argIdx++
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list leads")
	}
	defer rows.Close()

	var leads []lead.Lead
	for rows.Next() {
		l, err := scanLeadPg(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan lead")
		}
		leads = append(leads, *l)
	}
	return leads, eris.Wrap(rows.Err(), "postgres: list leads iterate")
}

func (s *PostgresStore) ListLeadsBySync(ctx context.Context, status lead.SyncStatus, limit int) ([]lead.Lead, error) {
	return s.ListLeads(ctx, LeadFilter{SyncStatus: status, Limit: limit})
}

func (s *PostgresStore) UpdateLeadSync(ctx context.Context, leadID string, status lead.SyncStatus, syncErr string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE leads SET sync_status = $1, sync_error = $2, updated_at = $3 WHERE id = $4`,
		string(status), syncErr, time.Now().UTC(), leadID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update lead sync %s", leadID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("lead not found: %s", leadID)
	}
	return nil
}

// ImportLeads bulk-upserts leads, keyed by id. Used by the leads import
// command to load an exported workbook back into a fresh database.
func (s *PostgresStore) ImportLeads(ctx context.Context, leads []lead.Lead) (int64, error) {
	rows := make([][]any, 0, len(leads))
	for i := range leads {
		l := &leads[i]
		payload, err := json.Marshal(l)
		if err != nil {
			return 0, eris.Wrapf(err, "postgres: marshal lead %s", l.ID)
		}
		rows = append(rows, []any{
			l.ID, l.Email, payload, string(l.SyncStatus), l.SyncError, l.CreatedAt, l.UpdatedAt,
		})
	}

	return db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
		Table:        "leads",
		Columns:      []string{"id", "email", "payload", "sync_status", "sync_error", "created_at", "updated_at"},
		ConflictKeys: []string{"id"},
	}, rows)
}

func (s *PostgresStore) SaveDraft(ctx context.Context, d *plan.Draft) error {
	payload, err := d.Marshal()
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO plan_drafts (id, step, payload, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET step = $2, payload = $3, updated_at = $5`,
		d.ID, string(d.Step), payload, d.CreatedAt, d.UpdatedAt,
	)
	return eris.Wrap(err, "postgres: save draft")
}

func (s *PostgresStore) GetDraft(ctx context.Context, draftID string) (*plan.Draft, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT payload FROM plan_drafts WHERE id = $1`,
		draftID,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, eris.Errorf("draft not found: %s", draftID)
		}
		return nil, eris.Wrapf(err, "postgres: get draft %s", draftID)
	}
	return plan.Unmarshal(payload)
}

func (s *PostgresStore) DeleteDraft(ctx context.Context, draftID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM plan_drafts WHERE id = $1`,
		draftID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete draft %s", draftID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("draft not found: %s", draftID)
	}
	return nil
}

func (s *PostgresStore) DeleteStaleDrafts(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM plan_drafts WHERE updated_at <= $1`,
		cutoff,
	)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: delete stale drafts")
	}
	return int(tag.RowsAffected()), nil
}

// scanLeadPg rebuilds a lead from its JSON payload, with the mutable sync
// columns taking precedence over whatever the payload was inserted with.
func scanLeadPg(row pgx.Row) (*lead.Lead, error) {
	var payload []byte
	var status string
	var syncErr *string
	var createdAt, updatedAt time.Time

	if err := row.Scan(&payload, &status, &syncErr, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var l lead.Lead
	if err := json.Unmarshal(payload, &l); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal lead")
	}
	l.SyncStatus = lead.SyncStatus(status)
	if syncErr != nil {
		l.SyncError = *syncErr
	}
	l.CreatedAt = createdAt
	l.UpdatedAt = updatedAt
	return &l, nil
}
