package usecase

import (
	"context"
	"time"

	"github.com/leadgrid/ingestion-api/internal/entity"
)

// Page and PageSize are validated at the HTTP boundary: page >= 1,
// pageSize within [1,200].
type ListLeadsInput struct {
	Page     int
	PageSize int
	Search   string
	Source   string
	DateFrom *time.Time
	DateTo   *time.Time
}

// LeadView is the public lead shape. Audit score, lead score and QA
// status belong to downstream pipeline stages that do not exist yet
// and always serialize as null.
type LeadView struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Company       string    `json:"company"`
	Website       string    `json:"website"`
	Phone         string    `json:"phone"`
	CorrelationID string    `json:"correlationId"`
	CreatedAt     time.Time `json:"createdAt"`
	Source        string    `json:"source"`
	ScrapedAt     time.Time `json:"scrapedAt"`
	AuditScore    *float64  `json:"auditScore"`
	LeadScore     *float64  `json:"leadScore"`
	QAStatus      *string   `json:"qaStatus"`
}

type ListLeadsOutput struct {
	Items      []LeadView
	Page       int
	PageSize   int
	Total      int64
	TotalPages int64
}

type ListLeadsUseCase struct {
	Repo entity.LeadRepositoryInterface
}

func NewListLeadsUseCase(repo entity.LeadRepositoryInterface) *ListLeadsUseCase {
	return &ListLeadsUseCase{Repo: repo}
}

func (uc *ListLeadsUseCase) Execute(ctx context.Context, input ListLeadsInput) (*ListLeadsOutput, error) {
	out := &ListLeadsOutput{
		Items:    []LeadView{},
		Page:     input.Page,
		PageSize: input.PageSize,
	}

	// A source other than the only one wired today can never match,
	// so skip the store entirely.
	if input.Source != "" && input.Source != entity.Source {
		return out, nil
	}

	// Queries never fail the caller due to unconfigured storage.
	if !uc.Repo.Available() {
		return out, nil
	}

	filter := entity.ListFilter{
		Search:   input.Search,
		DateFrom: input.DateFrom,
		DateTo:   input.DateTo,
	}

	total, err := uc.Repo.Count(ctx, filter)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "STORE_ERROR",
			Message: "failed to count leads: " + err.Error(),
		}
	}

	offset := (input.Page - 1) * input.PageSize
	leads, err := uc.Repo.List(ctx, filter, input.PageSize, offset)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "STORE_ERROR",
			Message: "failed to list leads: " + err.Error(),
		}
	}

	out.Total = total
	if total > 0 {
		pageSize := int64(input.PageSize)
		out.TotalPages = (total + pageSize - 1) / pageSize
	}
	for _, lead := range leads {
		out.Items = append(out.Items, newLeadView(lead))
	}

	return out, nil
}

func newLeadView(lead entity.Lead) LeadView {
	return LeadView{
		ID:            lead.ID,
		Email:         lead.Email,
		Name:          lead.Name,
		Company:       lead.Company,
		Website:       lead.Website,
		Phone:         lead.Phone,
		CorrelationID: lead.CorrelationID,
		CreatedAt:     lead.CreatedAt,
		Source:        entity.Source,
		ScrapedAt:     lead.CreatedAt,
	}
}
