package commands

import (
	"context"

	"repairbooking/internal/core/domain/model/kernel"
	"repairbooking/internal/pkg/metrics"
)

// ChangeBookingStatusCommandHandler runs one status change end to end:
// load, check, transition in memory, write the partial update and the outbox events,
// commit. A failed write rolls the transaction back and is returned as is; the caller
// decides whether to retry.
//
// Example:
//
//	handler := NewChangeBookingStatusCommandHandler(uowFactory, kernel.SystemClock{})
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, booking.ErrTransitionIsNoop):
//	    // nothing to do
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // unknown booking
//	case err != nil:
//	    return err
//	}
type ChangeBookingStatusCommandHandler struct {
	uowFactory BookingUoWFactory
	clock      kernel.Clock
}

func NewChangeBookingStatusCommandHandler(uowFactory BookingUoWFactory, clock kernel.Clock) ChangeBookingStatusCommandHandler {
	return ChangeBookingStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h ChangeBookingStatusCommandHandler) Handle(ctx context.Context, cmd ChangeBookingStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	bookingRepo := uow.BookingRepository()

	b, err := bookingRepo.Get(ctx, cmd.BookingID())
	if err != nil {
		return err
	}

	if err = b.ValidateTransition(cmd.Target(), cmd.ServiceCenterDetails()); err != nil {
		return err
	}

	from := b.Status()
	if err = b.RequestTransition(cmd.Target(), cmd.ServiceCenterDetails(), h.clock.Now()); err != nil {
		return err
	}

	if err = bookingRepo.UpdateFields(ctx, b.ID(), b.BuildPersistencePayload()); err != nil {
		return err
	}

	messages, err := statusChangedMessages(b.DomainEvents())
	if err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, messages...); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}
	b.ClearDomainEvents()

	metrics.BookingTransitionsTotal.WithLabelValues(from.Code(), b.Status().Code()).Inc()
	return nil
}
