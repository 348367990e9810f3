package usecase

import (
	"context"

	"github.com/leadgrid/ingestion-api/internal/entity"
)

// FunnelCounts reports how many leads sit at each pipeline stage. Only
// the raw stage reflects stored data; the downstream stages have no
// implementation yet and stay at zero.
type FunnelCounts struct {
	Raw      int64 `json:"raw"`
	Verified int64 `json:"verified"`
	Audited  int64 `json:"audited"`
	QAPassed int64 `json:"qaPassed"`
	Scored   int64 `json:"scored"`
}

// LeadStatsUseCase serves the dashboard rollups. It shares the Query
// Handler's soft-degradation policy: an unconfigured store yields
// zero-valued results, never an error.
type LeadStatsUseCase struct {
	Repo entity.LeadRepositoryInterface
}

func NewLeadStatsUseCase(repo entity.LeadRepositoryInterface) *LeadStatsUseCase {
	return &LeadStatsUseCase{Repo: repo}
}

func (uc *LeadStatsUseCase) RawCount(ctx context.Context) (int64, error) {
	if !uc.Repo.Available() {
		return 0, nil
	}

	total, err := uc.Repo.Count(ctx, entity.ListFilter{})
	if err != nil {
		return 0, &TechnicalError{
			Code:    "STORE_ERROR",
			Message: "failed to count leads: " + err.Error(),
		}
	}
	return total, nil
}

func (uc *LeadStatsUseCase) CountsBySource(ctx context.Context) ([]entity.SourceCount, error) {
	if !uc.Repo.Available() {
		return []entity.SourceCount{{Source: entity.Source, Count: 0}}, nil
	}

	counts, err := uc.Repo.CountBySource(ctx)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "STORE_ERROR",
			Message: "failed to count leads by source: " + err.Error(),
		}
	}
	return counts, nil
}

func (uc *LeadStatsUseCase) StatusFunnel(ctx context.Context) (*FunnelCounts, error) {
	raw, err := uc.RawCount(ctx)
	if err != nil {
		return nil, err
	}
	return &FunnelCounts{Raw: raw}, nil
}
