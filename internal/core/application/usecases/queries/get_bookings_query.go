package queries

import (
	"errors"
	"time"

	"repairbooking/internal/core/domain/model/booking"
	"repairbooking/internal/core/domain/model/kernel"
	"repairbooking/internal/pkg/errs"
	"repairbooking/internal/pkg/guard"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var (
	ErrGetBookingsQueryIsNotConstructed = errors.New(
		"GetBookingsQuery must be created via NewGetBookingsQuery constructor",
	)
)

// GetBookingsQuery pages through bookings, newest first, optionally restricted to one status.
//
// Example:
//
//	status := booking.ServiceCenter
//	query, err := NewGetBookingsQuery(&status, 20, 0)
//	if err != nil {
//	    return err
//	}
//	page, err := handler.Handle(ctx, query)
//	fmt.Printf("%d of %d bookings at the service center\n", len(page.Items), page.Total)
type GetBookingsQuery struct {
	status *booking.Status
	limit  int
	offset int

	guard guard.ConstructorGuard
}

// NewGetBookingsQuery validates the filter and paging. A zero limit selects DefaultPageSize.
func NewGetBookingsQuery(status *booking.Status, limit, offset int) (GetBookingsQuery, error) {
	if limit == 0 {
		limit = DefaultPageSize
	}

	var errList []error
	if status != nil {
		if err := status.Validate(); err != nil {
			errList = append(errList, err)
		}
	}
	if limit < 1 || limit > MaxPageSize {
		errList = append(errList, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxPageSize))
	}
	if offset < 0 {
		errList = append(errList, errs.NewValueIsInvalidError("offset"))
	}
	if err := errors.Join(errList...); err != nil {
		return GetBookingsQuery{}, err
	}

	q := GetBookingsQuery{
		limit:  limit,
		offset: offset,
		guard:  guard.NewConstructorGuard(),
	}
	if status != nil {
		s := *status
		q.status = &s
	}
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetBookingsQuery) Validate() error {
	return q.guard.Validate(ErrGetBookingsQueryIsNotConstructed)
}

// Status returns the status filter, if any.
func (q GetBookingsQuery) Status() (booking.Status, bool) {
	if q.status == nil {
		return booking.Unknown, false
	}
	return *q.status, true
}

func (q GetBookingsQuery) Limit() int {
	return q.limit
}

func (q GetBookingsQuery) Offset() int {
	return q.offset
}

// BookingListItem is one row of the booking list screen.
type BookingListItem struct {
	ID                kernel.UUID
	BookingID         string
	Status            booking.Status
	CancelledAtStatus *booking.Status
	CustomerName      string
	Category          string
	Amount            float64
	PaymentStatus     string
	Date              time.Time
}

type GetBookingsQueryResponse struct {
	Items []BookingListItem
	Total int64
}
