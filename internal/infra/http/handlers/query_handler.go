package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/leadgrid/ingestion-api/internal/usecase"
)

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// ListResponse is the paginated envelope for GET /api/leads.
type ListResponse struct {
	Success    bool               `json:"success"`
	Data       []usecase.LeadView `json:"data"`
	Pagination Pagination         `json:"pagination"`
}

type QueryHandler struct {
	uc  *usecase.ListLeadsUseCase
	log *slog.Logger
}

func NewQueryHandler(uc *usecase.ListLeadsUseCase, log *slog.Logger) *QueryHandler {
	return &QueryHandler{uc: uc, log: log}
}

func (h *QueryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := parseIntParam(q.Get("page"), 1)
	if err != nil || page < 1 {
		writeError(w, http.StatusBadRequest, "page must be an integer >= 1")
		return
	}

	pageSize, err := parseIntParam(q.Get("pageSize"), defaultPageSize)
	if err != nil || pageSize < 1 || pageSize > maxPageSize {
		writeError(w, http.StatusBadRequest, "pageSize must be an integer between 1 and 200")
		return
	}

	dateFrom, err := parseDateParam(q.Get("dateFrom"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "dateFrom must be an RFC 3339 timestamp or YYYY-MM-DD date")
		return
	}

	dateTo, err := parseDateParam(q.Get("dateTo"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "dateTo must be an RFC 3339 timestamp or YYYY-MM-DD date")
		return
	}

	output, err := h.uc.Execute(r.Context(), usecase.ListLeadsInput{
		Page:     page,
		PageSize: pageSize,
		Search:   q.Get("search"),
		Source:   q.Get("source"),
		DateFrom: dateFrom,
		DateTo:   dateTo,
	})
	if err != nil {
		h.log.Error("lead listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list leads")
		return
	}

	writeJSON(w, http.StatusOK, ListResponse{
		Success: true,
		Data:    output.Items,
		Pagination: Pagination{
			Page:       output.Page,
			PageSize:   output.PageSize,
			Total:      output.Total,
			TotalPages: output.TotalPages,
		},
	})
}

func parseIntParam(value string, fallback int) (int, error) {
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

// parseDateParam accepts RFC 3339 timestamps or plain dates. Bounds
// are applied to created_at verbatim and inclusively.
func parseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
