package commands

import (
	"errors"

	"repairbooking/internal/pkg/errs"
	"repairbooking/internal/pkg/guard"
)

const MaxOutboxBatchSize = 1000

var (
	ErrPublishOutboxEventsCommandIsNotConstructed = errors.New(
		"PublishOutboxEventsCommand must be created via NewPublishOutboxEventsCommand constructor",
	)
)

// PublishOutboxEventsCommand drains one batch of unpublished outbox messages.
type PublishOutboxEventsCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

func NewPublishOutboxEventsCommand(batchSize int) (PublishOutboxEventsCommand, error) {
	if batchSize < 1 || batchSize > MaxOutboxBatchSize {
		return PublishOutboxEventsCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, MaxOutboxBatchSize)
	}

	return PublishOutboxEventsCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PublishOutboxEventsCommand) Validate() error {
	return c.guard.Validate(ErrPublishOutboxEventsCommandIsNotConstructed)
}

func (c PublishOutboxEventsCommand) BatchSize() int {
	return c.batchSize
}
