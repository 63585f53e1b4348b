package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"repairbooking/internal/core/domain/model/kernel"
	"repairbooking/internal/pkg/errs"
)

var (
	// ErrBookingIsNotConstructed is returned when a Booking instance was not created through
	// NewBooking or RestoreBooking.
	ErrBookingIsNotConstructed = errors.New("Booking must be created via NewBooking or RestoreBooking")

	// ErrBookingIDIsTaken is returned by repositories when another booking already uses
	// the same human readable reference.
	ErrBookingIDIsTaken = errors.New("bookingId is already in use")
)

// Booking is the aggregate root of a repair order. It owns the lifecycle status, the
// cancellation bookkeeping and the service-center sub-state.
//
// Booking follows these invariants:
//   - cancelledAtStatus is set only while status is Cancelled and always names an ordered step
//   - date is fixed at creation and anchors the Booked step of the timeline
//   - completedAt never holds an entry for Booked or for a step after the current one
//   - state changes only through RequestTransition
type Booking struct {
	id        kernel.UUID
	bookingID string

	status            Status
	cancelledAtStatus *Status

	serviceReason *string
	serviceAmount *float64

	date        time.Time
	completedAt map[Status]time.Time

	details Details

	domainEvents []StatusChanged

	isConstructed bool
}

// NewBooking creates a booking in the Booked status. It is used by the intake flow.
//
// Example:
//
//	b, err := booking.NewBooking(kernel.NewUUID(), "BK-20240101-0001", details, clock.Now())
//	if err != nil {
//	    return err
//	}
func NewBooking(id kernel.UUID, bookingID string, details Details, createdAt time.Time) (*Booking, error) {
	b := &Booking{
		status:        Booked,
		completedAt:   make(map[Status]time.Time),
		isConstructed: true,
	}

	if err := errors.Join(
		b.setID(id),
		b.setBookingID(bookingID),
		b.setDate(createdAt),
		details.validate(),
	); err != nil {
		return nil, err
	}
	b.details = details.clone()

	return b, nil
}

// Snapshot is the flat state of a booking used by persistence adapters.
type Snapshot struct {
	ID                kernel.UUID
	BookingID         string
	Status            Status
	CancelledAtStatus *Status
	ServiceReason     *string
	ServiceAmount     *float64
	Date              time.Time
	CompletedAt       map[Status]time.Time
	Details           Details
}

// RestoreBooking rebuilds a booking from storage. Stored service fields are kept even
// when the status has not reached ServiceCenter; the next saved payload removes them.
func RestoreBooking(s Snapshot) (*Booking, error) {
	b := &Booking{
		completedAt:   make(map[Status]time.Time),
		isConstructed: true,
	}

	if err := errors.Join(
		b.setID(s.ID),
		b.setBookingID(s.BookingID),
		b.setDate(s.Date),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	b.status = s.Status

	if s.CancelledAtStatus != nil {
		if s.Status != Cancelled || !s.CancelledAtStatus.IsOrdered() {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"cancelledAtStatus is invalid",
				fmt.Errorf("%s cannot be recorded for a booking in %s", s.CancelledAtStatus, s.Status),
			)
		}
		at := *s.CancelledAtStatus
		b.cancelledAtStatus = &at
	}

	if s.ServiceReason != nil {
		reason := *s.ServiceReason
		b.serviceReason = &reason
	}
	if s.ServiceAmount != nil {
		amount := *s.ServiceAmount
		b.serviceAmount = &amount
	}

	for step, at := range s.CompletedAt {
		if step.IsOrdered() && step != Booked {
			b.completedAt[step] = at
		}
	}
	b.details = s.Details.clone()

	return b, nil
}

// Validate ensures the Booking was built through a constructor.
func (b *Booking) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBookingIsNotConstructed
	}
	return nil
}

// Snapshot returns a deep copy of the booking state.
func (b *Booking) Snapshot() Snapshot {
	return Snapshot{
		ID:                b.id,
		BookingID:         b.bookingID,
		Status:            b.status,
		CancelledAtStatus: b.CancelledAtStatus(),
		ServiceReason:     b.ServiceReason(),
		ServiceAmount:     b.ServiceAmount(),
		Date:              b.date,
		CompletedAt:       b.CompletedAt(),
		Details:           b.details.clone(),
	}
}

func (b *Booking) ID() kernel.UUID {
	return b.id
}

// BookingID returns the human readable reference, e.g. "BK-20240101-0001".
func (b *Booking) BookingID() string {
	return b.bookingID
}

func (b *Booking) Status() Status {
	return b.status
}

// CancelledAtStatus returns the last ordered step reached before cancellation, or nil.
func (b *Booking) CancelledAtStatus() *Status {
	if b.cancelledAtStatus == nil {
		return nil
	}
	s := *b.cancelledAtStatus
	return &s
}

func (b *Booking) ServiceReason() *string {
	if b.serviceReason == nil {
		return nil
	}
	r := *b.serviceReason
	return &r
}

func (b *Booking) ServiceAmount() *float64 {
	if b.serviceAmount == nil {
		return nil
	}
	a := *b.serviceAmount
	return &a
}

// Date returns the creation timestamp.
func (b *Booking) Date() time.Time {
	return b.date
}

// CompletedAt returns a copy of the per-step completion timestamps.
func (b *Booking) CompletedAt() map[Status]time.Time {
	m := make(map[Status]time.Time, len(b.completedAt))
	for k, v := range b.completedAt {
		m[k] = v
	}
	return m
}

// StepCompletedAt returns when step was entered. Booked always resolves to the creation date.
func (b *Booking) StepCompletedAt(step Status) (time.Time, bool) {
	if step == Booked {
		return b.date, true
	}
	at, ok := b.completedAt[step]
	return at, ok
}

func (b *Booking) Details() Details {
	return b.details.clone()
}

// DomainEvents returns status changes raised since the last ClearDomainEvents.
func (b *Booking) DomainEvents() []StatusChanged {
	events := make([]StatusChanged, len(b.domainEvents))
	copy(events, b.domainEvents)
	return events
}

func (b *Booking) ClearDomainEvents() {
	b.domainEvents = nil
}

// progressIndex is the ordered position the booking had reached: the live step, or for
// a cancelled booking the step recorded at cancellation. -1 when neither applies.
func (b *Booking) progressIndex() int {
	if b.status == Cancelled {
		if b.cancelledAtStatus == nil {
			return -1
		}
		return b.cancelledAtStatus.StepIndex()
	}
	return b.status.StepIndex()
}

func (b *Booking) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Booking) setBookingID(bookingID string) error {
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" {
		return errs.NewValueIsRequiredError("bookingId")
	}
	b.bookingID = bookingID
	return nil
}

func (b *Booking) setDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("date")
	}
	b.date = date
	return nil
}
