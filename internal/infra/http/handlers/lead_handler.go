package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/leadgrid/ingestion-api/internal/infra/http/middleware"
	"github.com/leadgrid/ingestion-api/internal/usecase"
)

type LeadHandler struct {
	uc  *usecase.IngestLeadUseCase
	log *slog.Logger
}

func NewLeadHandler(uc *usecase.IngestLeadUseCase, log *slog.Logger) *LeadHandler {
	return &LeadHandler{uc: uc, log: log}
}

// Ingest handles POST /v1/lead. Empty field values are accepted; no
// format validation happens here. Silently dropping a lead is never
// acceptable, so every store failure surfaces to the caller.
func (h *LeadHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var input usecase.IngestLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	output, err := h.uc.Execute(r.Context(), input)
	if err != nil {
		if errors.Is(err, usecase.ErrStoreUnavailable) {
			middleware.RecordLeadIngested("unavailable")
			writeError(w, http.StatusServiceUnavailable, "Lead store is not configured")
			return
		}

		h.log.Error("lead ingestion failed", "email", input.Email, "error", err)
		middleware.RecordLeadIngested("error")
		writeError(w, http.StatusInternalServerError, "Failed to ingest lead")
		return
	}

	middleware.RecordLeadIngested("ok")
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    output,
		Message: "Lead received",
	})
}
