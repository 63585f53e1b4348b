package queries

import (
	"errors"

	"repairbooking/internal/core/domain/model/booking"
	"repairbooking/internal/pkg/guard"
)

var (
	ErrCountBookingsByStatusQueryIsNotConstructed = errors.New(
		"CountBookingsByStatusQuery must be created via NewCountBookingsByStatusQuery constructor",
	)
)

// CountBookingsByStatusQuery counts stored bookings per lifecycle status.
type CountBookingsByStatusQuery struct {
	guard guard.ConstructorGuard
}

func NewCountBookingsByStatusQuery() CountBookingsByStatusQuery {
	return CountBookingsByStatusQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q CountBookingsByStatusQuery) Validate() error {
	return q.guard.Validate(ErrCountBookingsByStatusQueryIsNotConstructed)
}

// CountBookingsByStatusQueryResponse holds an entry for every valid status, zero included.
type CountBookingsByStatusQueryResponse map[booking.Status]int64
