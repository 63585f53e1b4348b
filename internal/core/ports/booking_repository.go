// Package ports defines the contracts between the booking core and infrastructure.
// Adapters under internal/adapters implement them; use cases depend only on these interfaces.
package ports

import (
	"context"

	"repairbooking/internal/core/domain/model/booking"
	"repairbooking/internal/core/domain/model/kernel"
)

// BookingRepository defines the persistence contract for booking aggregates.
// The lifecycle core reads bookings one at a time and writes status changes back as a
// partial update; everything else on the booking document is owned by intake.
type BookingRepository interface {
	// Add persists a new booking created by intake.
	Add(ctx context.Context, aggregate *booking.Booking) error

	// Get retrieves a booking by its identifier.
	// Returns errs.ObjectNotFoundError when no booking matches.
	Get(ctx context.Context, id kernel.UUID) (*booking.Booking, error)

	// GetByBookingID retrieves a booking by its human readable reference, e.g. "BK-20240101-0001".
	GetByBookingID(ctx context.Context, bookingID string) (*booking.Booking, error)

	// UpdateFields applies a PersistencePayload to the stored booking.
	// Entries marked Delete remove the value, so a later read sees the field as absent,
	// exactly as on a booking that never had it.
	//
	// Example:
	//   payload := b.BuildPersistencePayload()
	//   if err := repo.UpdateFields(ctx, b.ID(), payload); err != nil {
	//       return fmt.Errorf("failed to save booking status: %w", err)
	//   }
	UpdateFields(ctx context.Context, id kernel.UUID, payload booking.PersistencePayload) error
}
