package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadIngestedPayload is the event emitted after every successful
// upsert. Downstream consumers (verification, scoring) key on the
// correlation id to trace a lead back to its submission.
type LeadIngestedPayload struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	CorrelationID string    `json:"correlation_id"`
	Source        string    `json:"source"`
	CreatedAt     time.Time `json:"created_at"`
}

type Producer struct {
	Ch *amqp.Channel
}

func NewProducer(ch *amqp.Channel) *Producer {
	return &Producer{Ch: ch}
}

func (p *Producer) PublishLeadIngested(ctx context.Context, payload LeadIngestedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal lead.ingested payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			MessageId:    uuid.New().String(),
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish lead.ingested: %w", err)
	}

	return nil
}
