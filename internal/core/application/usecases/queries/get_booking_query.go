// Package queries contains read operations of the booking service.
// Handlers read straight from storage and return read models; they never change state.
package queries

import (
	"errors"
	"strings"
	"time"

	"repairbooking/internal/core/domain/model/booking"
	"repairbooking/internal/core/domain/model/kernel"
	"repairbooking/internal/core/domain/services"
	"repairbooking/internal/pkg/errs"
	"repairbooking/internal/pkg/guard"
)

var (
	ErrGetBookingQueryIsNotConstructed = errors.New(
		"GetBookingQuery must be created via NewGetBookingQuery or NewGetBookingByRefQuery constructor",
	)
)

// GetBookingQuery selects one booking either by its id or by its human readable reference.
//
// Example:
//
//	query, err := NewGetBookingByRefQuery("BK-20240101-0001")
//	if err != nil {
//	    return err
//	}
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get booking: %w", err)
//	}
//	fmt.Printf("%s is %s\n", resp.BookingID, resp.Status.Label())
type GetBookingQuery struct {
	id         kernel.UUID
	bookingRef string

	guard guard.ConstructorGuard
}

func NewGetBookingQuery(id kernel.UUID) (GetBookingQuery, error) {
	if err := id.Validate(); err != nil {
		return GetBookingQuery{}, err
	}
	return GetBookingQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func NewGetBookingByRefQuery(bookingRef string) (GetBookingQuery, error) {
	bookingRef = strings.TrimSpace(bookingRef)
	if bookingRef == "" {
		return GetBookingQuery{}, errs.NewValueIsRequiredError("bookingId")
	}
	return GetBookingQuery{bookingRef: bookingRef, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetBookingQuery) Validate() error {
	return q.guard.Validate(ErrGetBookingQueryIsNotConstructed)
}

// ID returns the selected id and false when the query selects by reference.
func (q GetBookingQuery) ID() (kernel.UUID, bool) {
	return q.id, q.bookingRef == ""
}

func (q GetBookingQuery) BookingRef() string {
	return q.bookingRef
}

// GetBookingQueryResponse is the booking detail read model with its timeline.
type GetBookingQueryResponse struct {
	ID                kernel.UUID
	BookingID         string
	Status            booking.Status
	CancelledAtStatus *booking.Status
	ServiceReason     *string
	ServiceAmount     *float64
	Date              time.Time
	Details           booking.Details
	Timeline          services.Timeline
}
