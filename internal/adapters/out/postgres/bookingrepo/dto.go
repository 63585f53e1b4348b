// Package bookingrepo persists booking aggregates in PostgreSQL.
// Each booking is a row of the bookings table; lifecycle saves are partial updates built
// from a booking.PersistencePayload.
package bookingrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"repairbooking/internal/core/domain/model/booking"
	"repairbooking/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// BookingDTO represents the database structure for persisting booking aggregates.
// Statuses are stored as their wire codes so the table reads like the booking document.
type BookingDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookingID         string    `gorm:"uniqueIndex"`
	Status            string    `gorm:"index"`
	CancelledAtStatus *string
	ServiceReason     *string
	ServiceAmount     *float64
	Date              time.Time
	CompletedAt       CompletedAtJSON `gorm:"type:jsonb"`
	Category          string
	Amount            float64
	PaymentStatus     string
	PaymentMethod     string
	CustomerName      string
	CustomerPhone     string
	CustomerEmail     string
	CustomerAddress   string
	Images            pq.StringArray `gorm:"type:text[]"`
	AudioRecording    string
	TextDescription   string
}

// TableName specifies the database table name for booking entities.
func (BookingDTO) TableName() string {
	return "bookings"
}

// CompletedAtJSON is the jsonb column mapping a status code to the time the booking
// entered that step.
type CompletedAtJSON map[string]time.Time

func (c CompletedAtJSON) Value() (driver.Value, error) {
	if c == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]time.Time(c))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *CompletedAtJSON) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*c = CompletedAtJSON{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into CompletedAtJSON", src)
	}

	m := make(map[string]time.Time)
	if err := json.Unmarshal(raw, &m); err != nil {
		return err
	}
	*c = m
	return nil
}

// fromDomain converts a booking aggregate to its database representation.
func fromDomain(b *booking.Booking) BookingDTO {
	d := b.Details()

	dto := BookingDTO{
		ID:              b.ID().Bytes(),
		BookingID:       b.BookingID(),
		Status:          b.Status().Code(),
		ServiceReason:   b.ServiceReason(),
		ServiceAmount:   b.ServiceAmount(),
		Date:            b.Date(),
		CompletedAt:     booking.CompletedAtCodes(b.CompletedAt()),
		Category:        d.Category,
		Amount:          d.Amount,
		PaymentStatus:   d.PaymentStatus,
		PaymentMethod:   d.PaymentMethod,
		CustomerName:    d.Customer.Name,
		CustomerPhone:   d.Customer.Phone,
		CustomerEmail:   d.Customer.Email,
		CustomerAddress: d.Customer.Address,
		Images:          pq.StringArray(d.Images),
		AudioRecording:  d.AudioRecording,
		TextDescription: d.TextDescription,
	}
	if dto.Images == nil {
		dto.Images = pq.StringArray{}
	}
	if s := b.CancelledAtStatus(); s != nil {
		code := s.Code()
		dto.CancelledAtStatus = &code
	}
	return dto
}

// toDomain converts a database DTO to a booking aggregate using RestoreBooking.
func toDomain(dto BookingDTO) (*booking.Booking, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	status, err := booking.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var cancelledAt *booking.Status
	if dto.CancelledAtStatus != nil {
		s, parseErr := booking.ParseStatus(*dto.CancelledAtStatus)
		if parseErr != nil {
			return nil, parseErr
		}
		cancelledAt = &s
	}

	return booking.RestoreBooking(booking.Snapshot{
		ID:                id,
		BookingID:         dto.BookingID,
		Status:            status,
		CancelledAtStatus: cancelledAt,
		ServiceReason:     dto.ServiceReason,
		ServiceAmount:     dto.ServiceAmount,
		Date:              dto.Date,
		CompletedAt:       booking.CompletedAtFromCodes(dto.CompletedAt),
		Details: booking.Details{
			Category:      dto.Category,
			Amount:        dto.Amount,
			PaymentStatus: dto.PaymentStatus,
			PaymentMethod: dto.PaymentMethod,
			Customer: booking.Customer{
				Name:    dto.CustomerName,
				Phone:   dto.CustomerPhone,
				Email:   dto.CustomerEmail,
				Address: dto.CustomerAddress,
			},
			Images:          []string(dto.Images),
			AudioRecording:  dto.AudioRecording,
			TextDescription: dto.TextDescription,
		},
	})
}
