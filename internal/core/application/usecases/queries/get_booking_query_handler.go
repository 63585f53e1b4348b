package queries

import (
	"context"

	"repairbooking/internal/core/domain/model/booking"
	"repairbooking/internal/core/domain/model/kernel"
	"repairbooking/internal/core/domain/services"
)

// BookingReader loads booking aggregates for projection.
type BookingReader interface {
	Get(ctx context.Context, id kernel.UUID) (*booking.Booking, error)
	GetByBookingID(ctx context.Context, bookingID string) (*booking.Booking, error)
}

// GetBookingQueryHandler loads a booking and projects its timeline. Steps without a
// recorded completion time are dated with the clock's current time.
type GetBookingQueryHandler struct {
	reader    BookingReader
	projector *services.TimelineProjector
	clock     kernel.Clock
}

func NewGetBookingQueryHandler(
	reader BookingReader,
	projector *services.TimelineProjector,
	clock kernel.Clock,
) GetBookingQueryHandler {
	return GetBookingQueryHandler{
		reader:    reader,
		projector: projector,
		clock:     clock,
	}
}

func (h GetBookingQueryHandler) Handle(ctx context.Context, query GetBookingQuery) (GetBookingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBookingQueryResponse{}, err
	}

	var (
		b   *booking.Booking
		err error
	)
	if id, ok := query.ID(); ok {
		b, err = h.reader.Get(ctx, id)
	} else {
		b, err = h.reader.GetByBookingID(ctx, query.BookingRef())
	}
	if err != nil {
		return GetBookingQueryResponse{}, err
	}

	timeline, err := h.projector.Project(b, h.clock.Now())
	if err != nil {
		return GetBookingQueryResponse{}, err
	}

	return GetBookingQueryResponse{
		ID:                b.ID(),
		BookingID:         b.BookingID(),
		Status:            b.Status(),
		CancelledAtStatus: b.CancelledAtStatus(),
		ServiceReason:     b.ServiceReason(),
		ServiceAmount:     b.ServiceAmount(),
		Date:              b.Date(),
		Details:           b.Details(),
		Timeline:          timeline,
	}, nil
}
