package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldhouse-group/facility-cli/internal/catalog"
	"github.com/fieldhouse-group/facility-cli/internal/lead"
	"github.com/fieldhouse-group/facility-cli/internal/plan"
	"github.com/fieldhouse-group/facility-cli/internal/store"
)

// memStore is an in-memory store.Store for handler tests.
type memStore struct {
	mu     sync.Mutex
	leads  map[string]*lead.Lead
	drafts map[string]*plan.Draft
}

func newMemStore() *memStore {
	return &memStore{
		leads:  make(map[string]*lead.Lead),
		drafts: make(map[string]*plan.Draft),
	}
}

func (m *memStore) CreateLead(_ context.Context, l *lead.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *l
	m.leads[l.ID] = &cp
	return nil
}

func (m *memStore) GetLead(_ context.Context, id string) (*lead.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.leads[id]
	if !ok {
		return nil, eris.Errorf("lead not found: %s", id)
	}
	cp := *l
	return &cp, nil
}

func (m *memStore) ListLeads(_ context.Context, filter store.LeadFilter) ([]lead.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []lead.Lead
	for _, l := range m.leads {
		if filter.SyncStatus != "" && l.SyncStatus != filter.SyncStatus {
			continue
		}
		out = append(out, *l)
	}
	return out, nil
}

func (m *memStore) ListLeadsBySync(ctx context.Context, status lead.SyncStatus, limit int) ([]lead.Lead, error) {
	return m.ListLeads(ctx, store.LeadFilter{SyncStatus: status, Limit: limit})
}

func (m *memStore) UpdateLeadSync(_ context.Context, id string, status lead.SyncStatus, syncErr string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.leads[id]
	if !ok {
		return eris.Errorf("lead not found: %s", id)
	}
	l.SyncStatus = status
	l.SyncError = syncErr
	return nil
}

func (m *memStore) SaveDraft(_ context.Context, d *plan.Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *d
	m.drafts[d.ID] = &cp
	return nil
}

func (m *memStore) GetDraft(_ context.Context, id string) (*plan.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drafts[id]
	if !ok {
		return nil, eris.Errorf("draft not found: %s", id)
	}
	cp := *d
	return &cp, nil
}

func (m *memStore) DeleteDraft(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drafts[id]; !ok {
		return eris.Errorf("draft not found: %s", id)
	}
	delete(m.drafts, id)
	return nil
}

func (m *memStore) DeleteStaleDrafts(_ context.Context, _ time.Duration) (int, error) {
	return 0, nil
}

func (m *memStore) Migrate(_ context.Context) error { return nil }
func (m *memStore) Close() error                    { return nil }

func newTestServer(t *testing.T) (*Server, *memStore) {
	t.Helper()
	st := newMemStore()
	dispatcher := lead.NewDispatcher(st, nil, lead.NewLimiter(time.Hour, 2), lead.DispatcherOptions{})
	srv := New(catalog.Default(), st, dispatcher, Config{Port: 0})
	return srv, st
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Router(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestCatalogSports(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Router(), http.MethodGet, "/api/catalog/sports", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var sports []sportInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sports))
	require.NotEmpty(t, sports)

	var baseball *sportInfo
	for i := range sports {
		if sports[i].Sport == "baseball_softball" {
			baseball = &sports[i]
		}
	}
	require.NotNil(t, baseball)
	assert.Equal(t, map[string]int{"baseball_tunnels": 6}, baseball.RecommendedUnits)
	assert.Equal(t, map[string]int{"baseball_tunnels": 1050}, baseball.PerUnitSpaceSf)
	assert.Equal(t, 6300, baseball.RecommendedSpaceSf)
}

func TestCatalogItemsAndAssumptions(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv.Router(), http.MethodGet, "/api/catalog/items", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tunnel_net")

	rec = doJSON(t, srv.Router(), http.MethodGet, "/api/catalog/assumptions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "region_multiplier")
}

func TestQuote(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/quote", quoteRequest{
		Sport: "baseball_softball",
		Units: map[string]int{"baseball_tunnels": 8},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var quote struct {
		Totals struct {
			Equipment    float64 `json:"equipment"`
			Flooring     float64 `json:"flooring"`
			Installation float64 `json:"installation"`
			GrandTotal   float64 `json:"grand_total"`
		} `json:"totals"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))
	assert.InDelta(t, 25840.0, quote.Totals.Equipment, 0.01)
	assert.InDelta(t, 58800.0, quote.Totals.Flooring, 0.01)
	assert.InDelta(t, 42320.0, quote.Totals.Installation, 0.01)
	assert.InDelta(t, 126960.0, quote.Totals.GrandTotal, 0.01)
}

func TestQuote_UnknownSport(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/quote", quoteRequest{Sport: "cricket"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestQuote_MissingSport(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/quote", quoteRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEstimate_LeaseScenario(t *testing.T) {
	srv, _ := newTestServer(t)

	body := map[string]any{
		"sports":      []string{"basketball"},
		"square_feet": 12000,
		"capex": map[string]any{
			"mode":               "lease",
			"ti_gross":           500000,
			"ti_allowance":       100000,
			"soft_cost_pct":      10,
			"contingency_pct":    10,
			"deposits_fees":      20000,
			"fixtures_allowance": 50000,
		},
	}
	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/estimate", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result struct {
		CapEx struct {
			Total float64 `json:"total"`
		} `json:"capex"`
		CapExTotal    float64 `json:"capex_total"`
		RecommendedSf int     `json:"recommended_sf"`
		KPIs          struct {
			MonthlyRevenue float64 `json:"monthly_revenue"`
		} `json:"kpis"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	// TI net 400k + 40k soft + 46k contingency + 20k deposits + 50k fixtures.
	assert.InDelta(t, 556000.0, result.CapEx.Total, 0.01)
	assert.Greater(t, result.CapExTotal, result.CapEx.Total)
	assert.Equal(t, 9750, result.RecommendedSf)
	assert.InDelta(t, 2.50*12000, result.KPIs.MonthlyRevenue, 0.01)
}

func TestEstimate_RequiresSports(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/estimate", map[string]any{"square_feet": 1000})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestQuickEstimate(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/estimate/quick", map[string]any{
		"square_feet":        20000,
		"ti_per_sf":          55,
		"soft_cost_pct":      12,
		"contingency_pct":    10,
		"fixtures_allowance": 75000,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		SizeTier   string  `json:"size_tier"`
		CapExTotal float64 `json:"capex_total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "medium", result.SizeTier)
	assert.InDelta(t, 55*20000*1.12*1.10+75000, result.CapExTotal, 0.01)
}

func TestLeadSubmit_Accepted(t *testing.T) {
	srv, st := newTestServer(t)

	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/leads", lead.Submission{
		Name:  "Jordan Lee",
		Email: "jordan@example.com",
	})
	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["lead_id"])
	assert.Len(t, st.leads, 1)
}

func TestLeadSubmit_ValidationError(t *testing.T) {
	srv, st := newTestServer(t)

	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/leads", lead.Submission{Email: "bad"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"fields"`)
	assert.Empty(t, st.leads)
}

func TestLeadSubmit_Honeypot(t *testing.T) {
	srv, st := newTestServer(t)

	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/leads", lead.Submission{
		Name:    "Bot",
		Email:   "bot@example.com",
		Website: "http://spam.example",
	})
	// Indistinguishable from success, but nothing is stored.
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Empty(t, st.leads)
}

func TestLeadSubmit_RateLimited(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	sub := lead.Submission{Name: "Jordan Lee", Email: "jordan@example.com"}
	for range 2 {
		rec := doJSON(t, router, http.MethodPost, "/api/leads", sub)
		require.Equal(t, http.StatusAccepted, rec.Code)
	}

	rec := doJSON(t, router, http.MethodPost, "/api/leads", sub)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestLeadSubmit_NoDispatcher(t *testing.T) {
	st := newMemStore()
	srv := New(catalog.Default(), st, nil, Config{})

	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/leads", lead.Submission{
		Name:  "Jordan Lee",
		Email: "jordan@example.com",
	})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestDraftLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/drafts", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var d plan.Draft
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	require.NotEmpty(t, d.ID)
	assert.Equal(t, plan.StepFacility, d.Step)

	rec = doJSON(t, router, http.MethodPost, "/api/drafts/"+d.ID+"/steps/sports", plan.Patch{
		Sports: []string{"basketball"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	assert.Equal(t, plan.StepSports, d.Step)
	assert.Equal(t, []string{"basketball"}, d.Input.Sports)

	rec = doJSON(t, router, http.MethodGet, "/api/drafts/"+d.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/drafts/"+d.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/drafts/"+d.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDraftStep_UnknownStep(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/drafts", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var d plan.Draft
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))

	rec = doJSON(t, router, http.MethodPost, "/api/drafts/"+d.ID+"/steps/bogus", plan.Patch{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
