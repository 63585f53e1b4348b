package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"repairbooking/internal/core/domain/model/booking"
	"repairbooking/internal/core/domain/model/kernel"
	"repairbooking/internal/pkg/errs"
	"repairbooking/internal/pkg/guard"
)

var (
	ErrCreateBookingCommandIsNotConstructed = errors.New(
		"CreateBookingCommand must be created via NewCreateBookingCommand constructor",
	)
	ErrCustomerNameIsRequired = errs.NewValueIsRequiredError("customer name")
)

// CreateBookingCommand represents an intake request for a new repair booking.
// The booking starts in the Booked status.
//
// Example:
//
//	id := kernel.NewUUID()
//	cmd, err := NewCreateBookingCommand(id, NewBookingRef(id, clock.Now()), details)
//	if err != nil {
//	    return fmt.Errorf("invalid booking data: %w", err)
//	}
//
//	handler := NewCreateBookingCommandHandler(uowFactory, clock)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create booking: %w", err)
//	}
type CreateBookingCommand struct { //nolint:recvcheck //using for validation
	id         kernel.UUID
	bookingRef string
	details    booking.Details

	guard guard.ConstructorGuard
}

// NewCreateBookingCommand validates the identifiers and the customer name.
func NewCreateBookingCommand(id kernel.UUID, bookingRef string, details booking.Details) (CreateBookingCommand, error) {
	cmd := CreateBookingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setID(id),
		cmd.setBookingRef(bookingRef),
		cmd.setDetails(details),
	); err != nil {
		return CreateBookingCommand{}, err
	}

	return cmd, nil
}

// NewBookingRef builds the human readable reference used when intake does not supply one,
// e.g. "BK-20240101-1A2B3C4D".
func NewBookingRef(id kernel.UUID, at time.Time) string {
	return fmt.Sprintf("BK-%s-%s", at.Format("20060102"), strings.ToUpper(id.String()[:8]))
}

// Validate ensures the command was created through the constructor.
func (c CreateBookingCommand) Validate() error {
	return c.guard.Validate(ErrCreateBookingCommandIsNotConstructed)
}

func (c CreateBookingCommand) ID() kernel.UUID {
	return c.id
}

func (c CreateBookingCommand) BookingRef() string {
	return c.bookingRef
}

func (c CreateBookingCommand) Details() booking.Details {
	return c.details
}

func (c *CreateBookingCommand) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.id = id
	return nil
}

func (c *CreateBookingCommand) setBookingRef(bookingRef string) error {
	bookingRef = strings.TrimSpace(bookingRef)
	if bookingRef == "" {
		return errs.NewValueIsRequiredError("bookingId")
	}

	c.bookingRef = bookingRef
	return nil
}

func (c *CreateBookingCommand) setDetails(details booking.Details) error {
	if strings.TrimSpace(details.Customer.Name) == "" {
		return ErrCustomerNameIsRequired
	}

	c.details = details
	return nil
}
