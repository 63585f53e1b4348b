package booking

import (
	"fmt"

	"repairbooking/internal/pkg/errs"
)

// Status represents the lifecycle state of a booking.
//
// Seven values form an ordered sequence (StepIndex 0..6); Cancelled is an orthogonal
// terminal flag with no position in that sequence. Unknown (0) is the invalid zero value.
type Status int

const (
	Unknown Status = iota
	Booked
	Confirmed
	Picked
	ServiceCenter
	Repair
	OutForDelivery
	Delivered
	Cancelled
)

type statusInfo struct {
	code        string
	label       string
	description string
}

var statuses = map[Status]statusInfo{
	Booked:         {"booked", "Booked", "Booking received and awaiting confirmation"},
	Confirmed:      {"confirmed", "Confirmed", "Booking confirmed by the service team"},
	Picked:         {"picked", "Picked Up", "Device picked up from the customer"},
	ServiceCenter:  {"serviceCenter", "At Service Center", "Device received at the service center for diagnosis"},
	Repair:         {"repair", "Under Repair", "Device is being repaired"},
	OutForDelivery: {"outForDelivery", "Out for Delivery", "Repaired device is on its way back"},
	Delivered:      {"delivered", "Delivered", "Device delivered to the customer"},
	Cancelled:      {"cancelled", "Cancelled", "Booking was cancelled"},
}

var orderedSteps = [...]Status{
	Booked,
	Confirmed,
	Picked,
	ServiceCenter,
	Repair,
	OutForDelivery,
	Delivered,
}

// OrderedSteps returns the seven ordered lifecycle steps. The slice is a copy.
func OrderedSteps() []Status {
	steps := make([]Status, len(orderedSteps))
	copy(steps, orderedSteps[:])
	return steps
}

// AllStatuses returns every valid status: the ordered steps followed by Cancelled.
func AllStatuses() []Status {
	return append(OrderedSteps(), Cancelled)
}

// ParseStatus converts a wire code such as "serviceCenter" into a Status.
func ParseStatus(code string) (Status, error) {
	for s, info := range statuses {
		if info.code == code {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", code),
	)
}

// Validate returns an errs.ValueIsInvalidError for Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statuses[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// StepIndex returns the position of s in OrderedSteps, or -1 for Cancelled and invalid values.
func (s Status) StepIndex() int {
	for i, step := range orderedSteps {
		if step == s {
			return i
		}
	}
	return -1
}

// IsOrdered reports whether s is one of the seven ordered steps.
func (s Status) IsOrdered() bool {
	return s.StepIndex() >= 0
}

func (s Status) IsCancelled() bool {
	return s == Cancelled
}

// Code returns the wire and storage representation, e.g. "outForDelivery".
// Invalid values return "unknown".
func (s Status) Code() string {
	if info, ok := statuses[s]; ok {
		return info.code
	}
	return "unknown"
}

// Label returns the display name shown by the admin console.
func (s Status) Label() string {
	if info, ok := statuses[s]; ok {
		return info.label
	}
	return "Unknown"
}

// Description returns the default timeline text for the step.
func (s Status) Description() string {
	return statuses[s].description
}

// String implements fmt.Stringer and is safe to call on any value.
func (s Status) String() string {
	if _, ok := statuses[s]; !ok {
		return "Unknown"
	}
	return s.Code()
}
