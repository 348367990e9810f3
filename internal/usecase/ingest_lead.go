package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/leadgrid/ingestion-api/internal/entity"
	"github.com/leadgrid/ingestion-api/internal/infra/queue"
)

type IngestLeadInput struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	Company       string `json:"company"`
	Website       string `json:"website"`
	Phone         string `json:"phone"`
	CorrelationID string `json:"correlationId"`
	Source        string `json:"source"`
}

type IngestLeadOutput struct {
	ID            int64     `json:"id"`
	CorrelationID string    `json:"correlationId"`
	CreatedAt     time.Time `json:"createdAt"`
}

type QueueProducerInterface interface {
	PublishLeadIngested(ctx context.Context, payload queue.LeadIngestedPayload) error
}

type IngestLeadUseCase struct {
	Repo     entity.LeadRepositoryInterface
	Producer QueueProducerInterface
	Log      *slog.Logger

	now func() time.Time
}

func NewIngestLeadUseCase(repo entity.LeadRepositoryInterface, producer QueueProducerInterface, log *slog.Logger) *IngestLeadUseCase {
	return &IngestLeadUseCase{
		Repo:     repo,
		Producer: producer,
		Log:      log,
		now:      time.Now,
	}
}

// Execute upserts the candidate keyed on email. Re-submitting an email
// overwrites the descriptive fields and correlation id in place while
// the identity and original creation timestamp survive, so the same
// batch can be replayed safely.
func (uc *IngestLeadUseCase) Execute(ctx context.Context, input IngestLeadInput) (*IngestLeadOutput, error) {
	if !uc.Repo.Available() {
		return nil, ErrStoreUnavailable
	}

	correlationID := input.CorrelationID
	if correlationID == "" {
		// Traceable but not collision-free across distinct emails in
		// the same second. It is a diagnostic label, not a key.
		correlationID = fmt.Sprintf("manual-%d-%s", uc.now().Unix(), input.Email)
	}

	lead := &entity.Lead{
		Email:         input.Email,
		Name:          input.Name,
		Company:       input.Company,
		Website:       input.Website,
		Phone:         input.Phone,
		CorrelationID: correlationID,
	}

	if err := uc.Repo.Upsert(ctx, lead); err != nil {
		return nil, &TechnicalError{
			Code:    "STORE_ERROR",
			Message: "failed to persist lead: " + err.Error(),
		}
	}

	uc.publishIngested(ctx, lead)

	return &IngestLeadOutput{
		ID:            lead.ID,
		CorrelationID: lead.CorrelationID,
		CreatedAt:     lead.CreatedAt,
	}, nil
}

// publishIngested is best-effort. The stored row is the source of
// truth, so a broker failure is logged and never fails the request.
func (uc *IngestLeadUseCase) publishIngested(ctx context.Context, lead *entity.Lead) {
	if uc.Producer == nil {
		return
	}

	payload := queue.LeadIngestedPayload{
		ID:            lead.ID,
		Email:         lead.Email,
		CorrelationID: lead.CorrelationID,
		Source:        entity.Source,
		CreatedAt:     lead.CreatedAt,
	}

	if err := uc.Producer.PublishLeadIngested(ctx, payload); err != nil {
		uc.Log.Warn("lead.ingested publish failed", "lead_id", lead.ID, "error", err)
	}
}
