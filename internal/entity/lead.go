package entity

import (
	"context"
	"time"
)

// Source is the only ingestion source wired today.
const Source = "google_maps"

type Lead struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Company       string    `json:"company"`
	Website       string    `json:"website"`
	Phone         string    `json:"phone"`
	CorrelationID string    `json:"correlation_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListFilter is the conjunction of optional predicates shared by the
// page query and the count query.
type ListFilter struct {
	Search   string
	DateFrom *time.Time
	DateTo   *time.Time
}

type SourceCount struct {
	Source string `json:"source"`
	Count  int64  `json:"count"`
}

type LeadRepositoryInterface interface {

	// Available reports whether a backing store was configured.
	Available() bool

	// Upsert inserts or updates the row keyed by lead.Email and fills
	// in the stored identity and original creation timestamp.
	Upsert(ctx context.Context, lead *Lead) error

	List(ctx context.Context, filter ListFilter, limit, offset int) ([]Lead, error)
	Count(ctx context.Context, filter ListFilter) (int64, error)
	CountBySource(ctx context.Context) ([]SourceCount, error)
}
