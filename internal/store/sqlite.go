package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/fieldhouse-group/facility-cli/internal/lead"
	"github.com/fieldhouse-group/facility-cli/internal/plan"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS leads (
	id          TEXT PRIMARY KEY,
	email       TEXT NOT NULL,
	payload     TEXT NOT NULL,
	sync_status TEXT NOT NULL DEFAULT 'pending',
	sync_error  TEXT,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS plan_drafts (
	id         TEXT PRIMARY KEY,
	step       TEXT NOT NULL,
	payload    TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_leads_sync_status ON leads(sync_status);
CREATE INDEX IF NOT EXISTS idx_leads_email ON leads(email);
CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at);
CREATE INDEX IF NOT EXISTS idx_plan_drafts_updated_at ON plan_drafts(updated_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateLead(ctx context.Context, l *lead.Lead) error {
	payload, err := json.Marshal(l)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal lead")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO leads (id, email, payload, sync_status, sync_error, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.Email, string(payload), string(l.SyncStatus), l.SyncError, l.CreatedAt, l.UpdatedAt,
	)
	return eris.Wrap(err, "sqlite: insert lead")
}

func (s *SQLiteStore) GetLead(ctx context.Context, leadID string) (*lead.Lead, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT payload, sync_status, sync_error, created_at, updated_at FROM leads WHERE id = ?`,
		leadID,
	)
	return scanLead(row)
}

func (s *SQLiteStore) ListLeads(ctx context.Context, filter LeadFilter) ([]lead.Lead, error) {
	query := `SELECT payload, sync_status, sync_error, created_at, updated_at FROM leads WHERE 1=1`
	var args []any

	if filter.SyncStatus != "" {
		query += ` AND sync_status = ?`
		args = append(args, string(filter.SyncStatus))
	}
	if filter.Email != "" {
		query += ` AND email = ?`
		args = append(args, filter.Email)
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list leads")
	}
	defer rows.Close()

	var leads []lead.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *l)
	}
	return leads, eris.Wrap(rows.Err(), "sqlite: list leads iterate")
}

func (s *SQLiteStore) ListLeadsBySync(ctx context.Context, status lead.SyncStatus, limit int) ([]lead.Lead, error) {
	return s.ListLeads(ctx, LeadFilter{SyncStatus: status, Limit: limit})
}

func (s *SQLiteStore) UpdateLeadSync(ctx context.Context, leadID string, status lead.SyncStatus, syncErr string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE leads SET sync_status = ?, sync_error = ?, updated_at = ? WHERE id = ?`,
		string(status), syncErr, time.Now().UTC(), leadID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update lead sync %s", leadID)
	}
	return checkRowsAffected(res, "lead", leadID)
}

func (s *SQLiteStore) SaveDraft(ctx context.Context, d *plan.Draft) error {
	payload, err := d.Marshal()
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO plan_drafts (id, step, payload, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET step = excluded.step, payload = excluded.payload, updated_at = excluded.updated_at`,
		d.ID, string(d.Step), string(payload), d.CreatedAt, d.UpdatedAt,
	)
	return eris.Wrap(err, "sqlite: save draft")
}

func (s *SQLiteStore) GetDraft(ctx context.Context, draftID string) (*plan.Draft, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM plan_drafts WHERE id = ?`,
		draftID,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("draft not found: %s", draftID)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get draft %s", draftID)
	}
	return plan.Unmarshal([]byte(payload))
}

func (s *SQLiteStore) DeleteDraft(ctx context.Context, draftID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM plan_drafts WHERE id = ?`,
		draftID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete draft %s", draftID)
	}
	return checkRowsAffected(res, "draft", draftID)
}

func (s *SQLiteStore) DeleteStaleDrafts(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM plan_drafts WHERE updated_at <= ?`,
		cutoff,
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: delete stale drafts")
	}
	n, err := res.RowsAffected()
	return int(n), eris.Wrap(err, "sqlite: rows affected")
}

// helpers

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Errorf("%s not found: %s", entity, id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

// scanLead rebuilds a lead from its JSON payload, with the mutable sync
// columns taking precedence over whatever the payload was inserted with.
func scanLead(row scannable) (*lead.Lead, error) {
	var payload, status string
	var syncErr sql.NullString
	var createdAt, updatedAt time.Time

	err := row.Scan(&payload, &status, &syncErr, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.New("lead not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan lead")
	}

	var l lead.Lead
	if err := json.Unmarshal([]byte(payload), &l); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal lead")
	}
	l.SyncStatus = lead.SyncStatus(status)
	l.SyncError = syncErr.String
	l.CreatedAt = createdAt
	l.UpdatedAt = updatedAt
	return &l, nil
}
