package ports

import (
	"context"
	"time"

	"repairbooking/internal/core/domain/model/kernel"
)

// OutboxMessage is an integration event stored in the same transaction as the state
// change that raised it and published later by the outbox relay.
type OutboxMessage struct {
	ID          kernel.UUID
	AggregateID kernel.UUID
	Type        string
	Payload     []byte
	OccurredAt  time.Time
	PublishedAt *time.Time
}

// OutboxRepository stores and drains outbox messages.
type OutboxRepository interface {
	// Add stores messages for later publication.
	Add(ctx context.Context, messages ...OutboxMessage) error

	// GetUnpublished returns up to limit messages that have not been published yet,
	// oldest first.
	GetUnpublished(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkPublished records the publication time of the given messages.
	MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error
}
