package commands

import (
	"context"

	"repairbooking/internal/core/domain/model/booking"
	"repairbooking/internal/core/domain/model/kernel"
)

// CreateBookingCommandHandler stores a new booking in the Booked status.
// The creation time comes from the injected clock and becomes the booking date.
type CreateBookingCommandHandler struct {
	uowFactory BookingUoWFactory
	clock      kernel.Clock
}

func NewCreateBookingCommandHandler(uowFactory BookingUoWFactory, clock kernel.Clock) CreateBookingCommandHandler {
	return CreateBookingCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h CreateBookingCommandHandler) Handle(ctx context.Context, cmd CreateBookingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	b, err := booking.NewBooking(cmd.ID(), cmd.BookingRef(), cmd.Details(), h.clock.Now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.BookingRepository().Add(ctx, b); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
