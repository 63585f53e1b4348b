// Package outboxrepo stores integration events in the outbox_messages table until the
// relay publishes them.
package outboxrepo

import (
	"time"

	"repairbooking/internal/core/domain/model/kernel"
	"repairbooking/internal/core/ports"

	"github.com/google/uuid"
)

type OutboxMessageDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	AggregateID uuid.UUID `gorm:"type:uuid"`
	Type        string
	Payload     []byte `gorm:"type:jsonb"`
	OccurredAt  time.Time
	PublishedAt *time.Time
}

func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

func fromDomain(m ports.OutboxMessage) OutboxMessageDTO {
	return OutboxMessageDTO{
		ID:          m.ID.Bytes(),
		AggregateID: m.AggregateID.Bytes(),
		Type:        m.Type,
		Payload:     m.Payload,
		OccurredAt:  m.OccurredAt,
		PublishedAt: m.PublishedAt,
	}
}

func toDomain(dto OutboxMessageDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	aggregateID, err := kernel.UUIDFromGoogle(dto.AggregateID)
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID:          id,
		AggregateID: aggregateID,
		Type:        dto.Type,
		Payload:     dto.Payload,
		OccurredAt:  dto.OccurredAt,
		PublishedAt: dto.PublishedAt,
	}, nil
}
