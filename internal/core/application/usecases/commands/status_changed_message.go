package commands

import (
	"encoding/json"
	"time"

	"repairbooking/internal/core/domain/model/booking"
	"repairbooking/internal/core/ports"
)

// StatusChangedEventType is the outbox type and Kafka header value of a status change.
const StatusChangedEventType = "booking.status_changed"

// StatusChangedMessage is the JSON body published for each status change.
type StatusChangedMessage struct {
	EventID           string    `json:"eventId"`
	ID                string    `json:"id"`
	BookingID         string    `json:"bookingId"`
	From              string    `json:"from"`
	To                string    `json:"to"`
	CancelledAtStatus *string   `json:"cancelledAtStatus,omitempty"`
	OccurredAt        time.Time `json:"occurredAt"`
}

func statusChangedMessages(events []booking.StatusChanged) ([]ports.OutboxMessage, error) {
	messages := make([]ports.OutboxMessage, 0, len(events))
	for _, e := range events {
		body := StatusChangedMessage{
			EventID:    e.EventID.String(),
			ID:         e.BookingID.String(),
			BookingID:  e.BookingRef,
			From:       e.From.Code(),
			To:         e.To.Code(),
			OccurredAt: e.OccurredAt,
		}
		if e.CancelledAtStatus != nil {
			code := e.CancelledAtStatus.Code()
			body.CancelledAtStatus = &code
		}

		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}

		messages = append(messages, ports.OutboxMessage{
			ID:          e.EventID,
			AggregateID: e.BookingID,
			Type:        StatusChangedEventType,
			Payload:     payload,
			OccurredAt:  e.OccurredAt,
		})
	}
	return messages, nil
}
