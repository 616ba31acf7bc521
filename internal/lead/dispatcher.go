package lead

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Store is the slice of persistence the dispatcher needs.
type Store interface {
	CreateLead(ctx context.Context, l *Lead) error
	UpdateLeadSync(ctx context.Context, leadID string, status SyncStatus, syncErr string) error
	ListLeadsBySync(ctx context.Context, status SyncStatus, limit int) ([]Lead, error)
}

// SheetAppender appends one row to the lead spreadsheet.
type SheetAppender interface {
	AppendRow(ctx context.Context, row []string) error
}

// Receipt acknowledges an accepted submission.
type Receipt struct {
	LeadID string `json:"lead_id,omitempty"`

	// Bot marks a honeypot trip. The caller should respond as if the
	// submission succeeded; nothing was stored or forwarded.
	Bot bool `json:"-"`
}

// DispatcherOptions tunes the dispatcher.
type DispatcherOptions struct {
	SyncRetries     int           // sheet append attempts per lead
	SyncBackoffBase time.Duration // first retry delay
	ResyncWorkers   int           // concurrent resync appends
}

// Dispatcher validates, rate-limits, persists, and best-effort-syncs leads.
// The insert is synchronous; the sheet append runs in the background so a
// slow or dead sink never blocks the capture form.
type Dispatcher struct {
	store   Store
	sheets  SheetAppender
	limiter *Limiter
	opts    DispatcherOptions
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher. sheets may be nil, in which case leads
// stay pending until a sink is configured and resynced.
func NewDispatcher(store Store, sheets SheetAppender, limiter *Limiter, opts DispatcherOptions) *Dispatcher {
	if opts.SyncRetries <= 0 {
		opts.SyncRetries = 3
	}
	if opts.SyncBackoffBase <= 0 {
		opts.SyncBackoffBase = time.Second
	}
	if opts.ResyncWorkers <= 0 {
		opts.ResyncWorkers = 4
	}
	return &Dispatcher{store: store, sheets: sheets, limiter: limiter, opts: opts}
}

// Dispatch processes one submission. rateKey identifies the submitter for
// rate limiting (empty disables the check). Validation and rate-limit
// failures are returned to the caller; honeypot trips succeed silently with
// no side effects.
func (d *Dispatcher) Dispatch(ctx context.Context, sub Submission, rateKey string) (*Receipt, error) {
	if sub.IsBot() {
		zap.L().Info("lead: honeypot tripped, dropping submission",
			zap.String("source", sub.Source),
		)
		return &Receipt{Bot: true}, nil
	}

	if errs := Validate(&sub); len(errs) > 0 {
		return nil, errs
	}

	if d.limiter != nil && rateKey != "" {
		if err := d.limiter.Allow(rateKey); err != nil {
			return nil, err
		}
	}

	l := fromSubmission(sub)
	if err := d.store.CreateLead(ctx, l); err != nil {
		return nil, eris.Wrap(err, "lead: create")
	}

	if d.sheets != nil {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			// Detached from the request context: the caller already
			// has their receipt.
			d.syncOne(context.WithoutCancel(ctx), l)
		}()
	}

	return &Receipt{LeadID: l.ID}, nil
}

// Wait blocks until all in-flight background syncs finish.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Resync retries the sheet append for leads whose sync previously failed.
// Returns the number of leads that synced successfully.
func (d *Dispatcher) Resync(ctx context.Context, limit int) (int, error) {
	if d.sheets == nil {
		return 0, eris.New("lead: no sheet sink configured")
	}

	failed, err := d.store.ListLeadsBySync(ctx, SyncFailed, limit)
	if err != nil {
		return 0, eris.Wrap(err, "lead: list failed")
	}

	var mu sync.Mutex
	synced := 0

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.opts.ResyncWorkers)
	for _, l := range failed {
		g.Go(func() error {
			if d.syncOne(ctx, &l) {
				mu.Lock()
				synced++
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return synced, err
	}
	return synced, nil
}

// syncOne appends the lead's sheet row with retry and records the outcome.
// Reports whether the append succeeded.
func (d *Dispatcher) syncOne(ctx context.Context, l *Lead) bool {
	var lastErr error
	for attempt := range d.opts.SyncRetries {
		if attempt > 0 {
			backoff(ctx, d.opts.SyncBackoffBase, attempt-1)
		}
		if err := d.sheets.AppendRow(ctx, l.SheetRow()); err != nil {
			lastErr = err
			zap.L().Warn("lead: sheet append failed",
				zap.String("lead_id", l.ID),
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			continue
		}

		if err := d.store.UpdateLeadSync(ctx, l.ID, SyncDone, ""); err != nil {
			zap.L().Error("lead: record sync success", zap.String("lead_id", l.ID), zap.Error(err))
		}
		return true
	}

	if err := d.store.UpdateLeadSync(ctx, l.ID, SyncFailed, lastErr.Error()); err != nil {
		zap.L().Error("lead: record sync failure", zap.String("lead_id", l.ID), zap.Error(err))
	}
	return false
}

func backoff(ctx context.Context, base time.Duration, attempt int) {
	d := time.Duration(float64(base) * math.Pow(2, float64(attempt)))
	d += time.Duration(rand.Int64N(int64(d)/2 + 1))

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
