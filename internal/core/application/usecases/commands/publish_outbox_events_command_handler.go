package commands

import (
	"context"
	"fmt"

	"repairbooking/internal/core/domain/model/kernel"
	"repairbooking/internal/core/ports"
	"repairbooking/internal/pkg/metrics"
)

// Retrier runs fn again until it succeeds or the retry budget is spent.
type Retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}

// PublishOutboxEventsCommandHandler relays stored outbox messages to the broker.
// Messages go out oldest first; the batch stops at the first message that still fails
// after retries so later events of the same booking are never published ahead of it.
// Everything published before the failure is marked in the same transaction.
type PublishOutboxEventsCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	retrier    Retrier
	clock      kernel.Clock
}

func NewPublishOutboxEventsCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
	retrier Retrier,
	clock kernel.Clock,
) PublishOutboxEventsCommandHandler {
	return PublishOutboxEventsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		retrier:    retrier,
		clock:      clock,
	}
}

// Handle returns the number of messages published in this batch.
func (h PublishOutboxEventsCommandHandler) Handle(ctx context.Context, cmd PublishOutboxEventsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()

	messages, err := outbox.GetUnpublished(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, nil
	}

	published := make([]kernel.UUID, 0, len(messages))
	var publishErr error
	for _, m := range messages {
		err = h.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
			return h.publisher.Publish(ctx, m)
		})
		if err != nil {
			metrics.OutboxFailedTotal.WithLabelValues(m.Type).Inc()
			publishErr = fmt.Errorf("failed to publish outbox message %s: %w", m.ID, err)
			break
		}
		metrics.OutboxPublishedTotal.WithLabelValues(m.Type).Inc()
		published = append(published, m.ID)
	}

	if len(published) > 0 {
		if err = outbox.MarkPublished(ctx, published, h.clock.Now()); err != nil {
			return 0, err
		}
		if err = uow.Commit(ctx); err != nil {
			return 0, err
		}
	}

	return len(published), publishErr
}
