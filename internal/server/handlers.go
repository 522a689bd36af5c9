package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"b3-analyzer/internal/benchmark"
	"b3-analyzer/internal/calendar"
	"b3-analyzer/internal/config"
	"b3-analyzer/internal/models"
	"b3-analyzer/internal/payoff"
)

// Handler handles the API requests. It is stateless; the benchmark
// defaults come from configuration.
type Handler struct {
	bench config.BenchmarkConfig
	log   zerolog.Logger
}

// NewHandler creates the API handler.
func NewHandler(bench config.BenchmarkConfig, log zerolog.Logger) *Handler {
	return &Handler{
		bench: bench,
		log:   log.With().Str("component", "api").Logger(),
	}
}

// AnalyzeRequest is the payload for POST /api/analyze.
type AnalyzeRequest struct {
	Legs        []models.Leg `json:"legs"`
	CurvePoints int          `json:"curvePoints,omitempty"`
}

// AnalyzeResponse carries the computed metrics and display curve.
type AnalyzeResponse struct {
	Metrics models.AnalysisMetrics `json:"metrics"`
	Curve   []models.PayoffPoint   `json:"curve"`
}

// HandleHealth handles GET /api/health.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleAnalyze handles POST /api/analyze: legs in, metrics and payoff
// curve out. Leg validation belongs to the UI; the engine trusts
// well-formed legs and stays total on everything else.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	points := req.CurvePoints
	if points <= 0 {
		points = payoff.DefaultCurvePoints
	}

	resp := AnalyzeResponse{
		Metrics: payoff.ComputeMetrics(req.Legs),
		Curve:   payoff.GeneratePayoffCurve(req.Legs, points),
	}
	if resp.Curve == nil {
		resp.Curve = []models.PayoffPoint{}
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// HandleExpiries handles GET /api/expiries?year=YYYY, defaulting to the
// current year.
func (h *Handler) HandleExpiries(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if q := r.URL.Query().Get("year"); q != "" {
		v, err := strconv.Atoi(q)
		if err != nil || v < 1583 {
			h.writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
		year = v
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"year":     year,
		"expiries": calendar.ExpiryOptions(year),
	})
}

// HandleBenchmark handles GET /api/benchmark with principal, rate, days
// and tax query parameters; rate and days fall back to the configured
// defaults.
func (h *Handler) HandleBenchmark(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	principal, err := strconv.ParseFloat(q.Get("principal"), 64)
	if err != nil || principal <= 0 {
		h.writeError(w, http.StatusBadRequest, "invalid principal")
		return
	}

	rate := h.bench.CDIAnnualRate
	if s := q.Get("rate"); s != "" {
		if rate, err = strconv.ParseFloat(s, 64); err != nil || rate < 0 {
			h.writeError(w, http.StatusBadRequest, "invalid rate")
			return
		}
	}

	days := h.bench.DefaultDays
	if s := q.Get("days"); s != "" {
		if days, err = strconv.Atoi(s); err != nil || days < 0 {
			h.writeError(w, http.StatusBadRequest, "invalid days")
			return
		}
	}

	withTax := q.Get("tax") == "true"

	h.writeJSON(w, http.StatusOK, map[string]any{
		"principal":       principal,
		"rate":            rate,
		"days":            days,
		"withTax":         withTax,
		"accruedReturn":   benchmark.AccruedReturn(principal, rate, days, withTax),
		"opportunityCost": benchmark.OpportunityCost(principal, rate, days),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
