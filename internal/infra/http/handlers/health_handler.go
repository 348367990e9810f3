package handlers

import (
	"net/http"

	"github.com/leadgrid/ingestion-api/internal/entity"
)

type HealthHandler struct {
	Repo entity.LeadRepositoryInterface
}

type HealthResponse struct {
	Status string `json:"status"`
	DB     bool   `json:"db"`
}

func NewHealthHandler(repo entity.LeadRepositoryInterface) *HealthHandler {
	return &HealthHandler{Repo: repo}
}

// Handle reports liveness plus whether a lead store is configured. A
// storeless process is still "ok": reads degrade and writes reject,
// but the service is up.
func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		DB:     h.Repo.Available(),
	})
}
