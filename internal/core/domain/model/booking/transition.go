package booking

import (
	"errors"
	"time"

	"repairbooking/internal/core/domain/model/kernel"
	"repairbooking/internal/pkg/errs"
)

var (
	ErrTransitionIsNoop       = errors.New("booking is already in the requested status")
	ErrBookingIsCancelled     = errors.New("cancelled booking cannot move to another status")
	ErrServiceDetailsRequired = errs.NewValueIsRequiredError("service center details")
)

// StatusChanged is raised each time RequestTransition moves a booking to a different status.
type StatusChanged struct {
	EventID           kernel.UUID
	BookingID         kernel.UUID
	BookingRef        string
	From              Status
	To                Status
	CancelledAtStatus *Status
	OccurredAt        time.Time
}

// ValidateTransition performs the checks a caller must pass before RequestTransition:
//   - target is one of the eight valid statuses
//   - target differs from the current status
//   - the booking is not cancelled
//   - a ServiceCenter target comes with constructed ServiceCenterDetails
func (b *Booking) ValidateTransition(target Status, details *ServiceCenterDetails) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if target == b.status {
		return ErrTransitionIsNoop
	}
	if b.status == Cancelled {
		return ErrBookingIsCancelled
	}
	if target == ServiceCenter {
		if details == nil {
			return ErrServiceDetailsRequired
		}
		if err := details.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// RequestTransition applies target to the booking in memory. Nothing is persisted;
// BuildPersistencePayload produces the write for an explicit save.
//
// Behaviour by target:
//   - Cancelled: records the current step in cancelledAtStatus unless already cancelled
//   - ServiceCenter: stores the reason and the optional amount from details
//   - any other step: drops the service fields only on a direct move from
//     ServiceCenter to an earlier step
//
// at is stored as the completion time of an ordered target. Completion times of steps
// after the target are dropped.
func (b *Booking) RequestTransition(target Status, details *ServiceCenterDetails, at time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if target == ServiceCenter && (details == nil || details.Validate() != nil) {
		return ErrServiceDetailsRequired
	}

	previous := b.status

	switch target {
	case Cancelled:
		if previous != Cancelled {
			cancelledAt := previous
			b.cancelledAtStatus = &cancelledAt
		}
	case ServiceCenter:
		reason := details.Reason()
		b.serviceReason = &reason
		b.serviceAmount = details.Amount()
		b.cancelledAtStatus = nil
		b.recordCompletion(target, at)
	default:
		if previous == ServiceCenter && target.StepIndex() < ServiceCenter.StepIndex() {
			b.serviceReason = nil
			b.serviceAmount = nil
		}
		b.cancelledAtStatus = nil
		b.recordCompletion(target, at)
	}

	b.status = target

	if previous != target {
		b.domainEvents = append(b.domainEvents, StatusChanged{
			EventID:           kernel.NewUUID(),
			BookingID:         b.id,
			BookingRef:        b.bookingID,
			From:              previous,
			To:                target,
			CancelledAtStatus: b.CancelledAtStatus(),
			OccurredAt:        at,
		})
	}

	return nil
}

func (b *Booking) recordCompletion(step Status, at time.Time) {
	index := step.StepIndex()
	for s := range b.completedAt {
		if s.StepIndex() > index {
			delete(b.completedAt, s)
		}
	}
	if step != Booked {
		b.completedAt[step] = at
	}
}
