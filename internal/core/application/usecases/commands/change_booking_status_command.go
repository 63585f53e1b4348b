package commands

import (
	"errors"

	"repairbooking/internal/core/domain/model/booking"
	"repairbooking/internal/core/domain/model/kernel"
	"repairbooking/internal/pkg/guard"
)

var (
	ErrChangeBookingStatusCommandIsNotConstructed = errors.New(
		"ChangeBookingStatusCommand must be created via NewChangeBookingStatusCommand constructor",
	)
)

// ChangeBookingStatusCommand asks to move a booking to another lifecycle status.
// Details are needed only when the target is ServiceCenter and are ignored otherwise.
//
// Example:
//
//	details, err := booking.NewServiceCenterDetails("Screen cracked", pointer.To(450.0))
//	if err != nil {
//	    return err
//	}
//	cmd, err := NewChangeBookingStatusCommand(id, booking.ServiceCenter, &details)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type ChangeBookingStatusCommand struct { //nolint:recvcheck //using for validation
	bookingID kernel.UUID
	target    booking.Status
	details   *booking.ServiceCenterDetails

	guard guard.ConstructorGuard
}

func NewChangeBookingStatusCommand(
	bookingID kernel.UUID,
	target booking.Status,
	details *booking.ServiceCenterDetails,
) (ChangeBookingStatusCommand, error) {
	cmd := ChangeBookingStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBookingID(bookingID),
		cmd.setTarget(target),
		cmd.setDetails(target, details),
	); err != nil {
		return ChangeBookingStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeBookingStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeBookingStatusCommandIsNotConstructed)
}

func (c ChangeBookingStatusCommand) BookingID() kernel.UUID {
	return c.bookingID
}

func (c ChangeBookingStatusCommand) Target() booking.Status {
	return c.target
}

// ServiceCenterDetails returns the auxiliary input, or nil when the target is not ServiceCenter.
func (c ChangeBookingStatusCommand) ServiceCenterDetails() *booking.ServiceCenterDetails {
	return c.details
}

func (c *ChangeBookingStatusCommand) setBookingID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.bookingID = id
	return nil
}

func (c *ChangeBookingStatusCommand) setTarget(target booking.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *ChangeBookingStatusCommand) setDetails(target booking.Status, details *booking.ServiceCenterDetails) error {
	if target != booking.ServiceCenter {
		return nil
	}
	if details == nil {
		return booking.ErrServiceDetailsRequired
	}
	if err := details.Validate(); err != nil {
		return err
	}

	d := *details
	c.details = &d
	return nil
}
