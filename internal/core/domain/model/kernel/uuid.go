package kernel

import (
	"fmt"

	"repairbooking/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not properly initialized through one of the constructor functions.
// This error is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is a value object that represents a universally unique identifier.
// It wraps github.com/google/uuid and is used as the identity of bookings
// and outbox events. The human readable booking reference ("BK-...") is a separate
// field; UUID is what repositories, the HTTP path and Kafka message keys carry.
//
// The zero value of UUID is invalid and must be constructed using one of the provided
// factory functions: NewUUID, UUIDFromString, UUIDFromBytes or UUIDFromGoogle.
// UUID is immutable and safe to share between goroutines.
//
// Example usage:
//
//	// Identity for a new booking
//	id := kernel.NewUUID()
//
//	// Identity taken from a request path
//	id, err := kernel.UUIDFromString(c.Param("id"))
//	if err != nil {
//	    return err
//	}
//
//	// Identity restored from a row
//	b, err := booking.RestoreBooking(booking.Snapshot{ID: id, ...})
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random UUID (version 4).
// It is the only way new bookings and outbox events get their identity; the result
// always passes Validate.
//
// Example:
//
//	b, err := booking.NewBooking(kernel.NewUUID(), "BK-20240305-0001", details, time.Now())
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses a UUID from its string representation.
// It accepts the standard, braced, urn-prefixed and hyphen-less forms.
// The nil UUID is rejected.
//
// Example:
//
//	id, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
//	if err != nil {
//	    return fmt.Errorf("invalid booking ID: %w", err)
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUIDFromGoogle(id)
}

// UUIDFromBytes creates a UUID from a 16 byte slice, as stored by the postgres driver.
// Slices of any other length and the nil UUID are rejected.
//
// Example:
//
//	id, err := kernel.UUIDFromBytes(raw[:])
//	if err != nil {
//	    return fmt.Errorf("invalid booking row id: %w", err)
//	}
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUIDFromGoogle(id)
}

// UUIDFromGoogle wraps an already parsed uuid.UUID, e.g. one scanned by gorm into a
// DTO field. The nil UUID is rejected with ErrUUIDIsNotConstructed.
//
// Example:
//
//	id, err := kernel.UUIDFromGoogle(dto.ID)
//	if err != nil {
//	    return nil, err
//	}
func UUIDFromGoogle(id uuid.UUID) (UUID, error) {
	newID := UUID{id: id}
	if err := newID.Validate(); err != nil {
		return UUID{}, err
	}
	return newID, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
// It is used for log attributes, JSON responses and Kafka message keys.
// The zero value renders as "00000000-0000-0000-0000-000000000000".
//
// Example:
//
//	logger.Info("booking created", "id", b.ID().String())
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID for persistence and transport adapters.
// Despite the name it is not a byte slice; slice the result for that.
//
// Example:
//
//	dto := BookingDTO{ID: b.ID().Bytes()}
//	raw := b.ID().Bytes()
//	key := raw[:]
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual compares two UUIDs for equality.
//
// Example:
//
//	id := kernel.NewUUID()
//	id.IsEqual(id)               // true
//	id.IsEqual(kernel.NewUUID()) // false
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the zero value. Constructors of
// bookings, commands and queries call it before accepting an identity.
//
// Example:
//
//	func (c *ChangeBookingStatusCommand) setBookingID(id kernel.UUID) error {
//	    if err := id.Validate(); err != nil {
//	        return err
//	    }
//	    c.bookingID = id
//	    return nil
//	}
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
