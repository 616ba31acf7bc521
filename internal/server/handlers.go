package server

import (
	"encoding/json"
	"errors"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/fieldhouse-group/facility-cli/internal/catalog"
	"github.com/fieldhouse-group/facility-cli/internal/estimate"
	"github.com/fieldhouse-group/facility-cli/internal/lead"
	"github.com/fieldhouse-group/facility-cli/internal/plan"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("server: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// sportInfo is the catalog listing shape for one sport preset. Unit counts
// and space stay keyed by unit type so the planner can label its sliders.
type sportInfo struct {
	Sport              string         `json:"sport"`
	Label              string         `json:"label"`
	RecommendedUnits   map[string]int `json:"recommended_units"`
	PerUnitSpaceSf     map[string]int `json:"per_unit_space_sf"`
	MinClearHeightFt   int            `json:"min_clear_height_ft"`
	FlooringType       string         `json:"flooring_type"`
	RecommendedSpaceSf int            `json:"recommended_space_sf"`
}

func (s *Server) handleCatalogSports(w http.ResponseWriter, _ *http.Request) {
	out := make([]sportInfo, 0, len(s.cat.Presets))
	for _, key := range s.cat.Sports() {
		p := s.cat.Presets[key]
		out = append(out, sportInfo{
			Sport:              p.Sport,
			Label:              p.Label,
			RecommendedUnits:   p.RecommendedUnits,
			PerUnitSpaceSf:     p.PerUnitSpaceSf,
			MinClearHeightFt:   p.MinClearHeightFt,
			FlooringType:       p.FlooringType,
			RecommendedSpaceSf: p.RecommendedSpaceSf(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCatalogItems(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.cat.Items)
}

func (s *Server) handleCatalogAssumptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.cat.Assumptions)
}

type quoteRequest struct {
	Sport            string         `json:"sport"`
	Units            map[string]int `json:"units,omitempty"`
	Tier             string         `json:"tier,omitempty"`
	RegionMultiplier float64        `json:"region_multiplier,omitempty"`
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Sport == "" {
		writeError(w, http.StatusBadRequest, "sport is required")
		return
	}

	tier := catalog.Tier(req.Tier)
	if !tier.Valid() {
		tier = s.cfg.Tier
	}
	region := req.RegionMultiplier
	if region <= 0 {
		region = s.cfg.RegionMultiplier
	}

	quote, err := s.calc.BuildEquipmentQuote(req.Sport, req.Units, tier, region)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var in estimate.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.applyDefaults(&in)

	result, err := estimate.Run(s.calc, s.cat, in)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleQuickEstimate(w http.ResponseWriter, r *http.Request) {
	var in estimate.QuickInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.RegionMultiplier <= 0 {
		in.RegionMultiplier = s.cfg.RegionMultiplier
	}

	result, err := estimate.ComputeQuick(in)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) applyDefaults(in *estimate.Input) {
	if !in.Tier.Valid() {
		in.Tier = s.cfg.Tier
	}
	if in.RegionMultiplier <= 0 {
		in.RegionMultiplier = s.cfg.RegionMultiplier
	}
}

func (s *Server) handleLeadSubmit(w http.ResponseWriter, r *http.Request) {
	if s.dispatcher == nil {
		writeError(w, http.StatusServiceUnavailable, "lead capture is not configured")
		return
	}

	var sub lead.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if sub.UserAgent == "" {
		sub.UserAgent = r.UserAgent()
	}
	if sub.Referrer == "" {
		sub.Referrer = r.Referer()
	}

	receipt, err := s.dispatcher.Dispatch(r.Context(), sub, clientIP(r))
	if err != nil {
		var verrs lead.ValidationErrors
		if errors.As(err, &verrs) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":  "validation failed",
				"fields": verrs,
			})
			return
		}
		var rle *lead.RateLimitError
		if errors.As(err, &rle) {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(rle.RetryAfter.Seconds()))))
			writeError(w, http.StatusTooManyRequests, "too many submissions, try again later")
			return
		}
		zap.L().Error("server: lead dispatch", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	// Bot trips get the same acknowledgement a human would.
	writeJSON(w, http.StatusAccepted, map[string]string{
		"status":  "accepted",
		"lead_id": receipt.LeadID,
	})
}

func (s *Server) handleDraftCreate(w http.ResponseWriter, r *http.Request) {
	d := plan.NewDraft()
	if err := s.store.SaveDraft(r.Context(), d); err != nil {
		zap.L().Error("server: create draft", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleDraftGet(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.GetDraft(r.Context(), chi.URLParam(r, "draftID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "draft not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDraftStep(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, "draftID")
	step := plan.Step(chi.URLParam(r, "step"))

	var patch plan.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := s.store.GetDraft(r.Context(), draftID)
	if err != nil {
		writeError(w, http.StatusNotFound, "draft not found")
		return
	}
	if err := d.Apply(step, patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.SaveDraft(r.Context(), d); err != nil {
		zap.L().Error("server: save draft", zap.String("draft_id", draftID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDraftDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteDraft(r.Context(), chi.URLParam(r, "draftID")); err != nil {
		writeError(w, http.StatusNotFound, "draft not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// clientIP extracts the submitter address for rate limiting, trusting the
// first X-Forwarded-For hop when present.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, ok := strings.Cut(xff, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
