package handlers

import (
	"log/slog"
	"net/http"

	"github.com/leadgrid/ingestion-api/internal/usecase"
)

// StatsHandler serves the dashboard rollups under /api/leads.
type StatsHandler struct {
	uc  *usecase.LeadStatsUseCase
	log *slog.Logger
}

func NewStatsHandler(uc *usecase.LeadStatsUseCase, log *slog.Logger) *StatsHandler {
	return &StatsHandler{uc: uc, log: log}
}

func (h *StatsHandler) RawCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.uc.RawCount(r.Context())
	if err != nil {
		h.log.Error("raw count failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to count leads")
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]int64{"count": count},
	})
}

func (h *StatsHandler) BySource(w http.ResponseWriter, r *http.Request) {
	counts, err := h.uc.CountsBySource(r.Context())
	if err != nil {
		h.log.Error("by-source count failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to count leads by source")
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: counts})
}

func (h *StatsHandler) StatusFunnel(w http.ResponseWriter, r *http.Request) {
	funnel, err := h.uc.StatusFunnel(r.Context())
	if err != nil {
		h.log.Error("status funnel failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to build status funnel")
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: funnel})
}
