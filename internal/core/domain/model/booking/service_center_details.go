package booking

import (
	"errors"
	"math"
	"strings"

	"repairbooking/internal/pkg/errs"
)

var ErrServiceCenterDetailsIsNotConstructed = errors.New(
	"ServiceCenterDetails must be created via NewServiceCenterDetails constructor",
)

// ServiceCenterDetails is the auxiliary input collected before a booking may move to
// ServiceCenter: why the device went to the service center and, optionally, the quoted amount.
type ServiceCenterDetails struct {
	reason        string
	amount        *float64
	isConstructed bool
}

// NewServiceCenterDetails validates and builds the auxiliary input.
// The reason is trimmed and must not be empty; the amount, when given, must be a
// finite non-negative number.
func NewServiceCenterDetails(reason string, amount *float64) (ServiceCenterDetails, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ServiceCenterDetails{}, errs.NewValueIsRequiredError("serviceReason")
	}

	var amountCopy *float64
	if amount != nil {
		if math.IsNaN(*amount) || math.IsInf(*amount, 0) || *amount < 0 {
			return ServiceCenterDetails{}, errs.NewValueIsOutOfRangeError("serviceAmount", *amount, 0, math.MaxFloat64)
		}
		v := *amount
		amountCopy = &v
	}

	return ServiceCenterDetails{
		reason:        reason,
		amount:        amountCopy,
		isConstructed: true,
	}, nil
}

func (d ServiceCenterDetails) Validate() error {
	if !d.isConstructed {
		return ErrServiceCenterDetailsIsNotConstructed
	}
	return nil
}

func (d ServiceCenterDetails) Reason() string {
	return d.reason
}

// Amount returns a copy of the quoted amount, or nil when none was given.
func (d ServiceCenterDetails) Amount() *float64 {
	if d.amount == nil {
		return nil
	}
	v := *d.amount
	return &v
}
