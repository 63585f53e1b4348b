package booking

import (
	"errors"
	"fmt"

	"repairbooking/internal/pkg/errs"
)

// Customer identifies who the booking belongs to.
type Customer struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// Details carries the descriptive booking data shown on the admin screens.
// None of it takes part in the lifecycle rules.
type Details struct {
	Category        string
	Amount          float64
	PaymentStatus   string
	PaymentMethod   string
	Customer        Customer
	Images          []string
	AudioRecording  string
	TextDescription string
}

func (d Details) validate() error {
	var errList []error
	if d.Customer.Name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("customer name"))
	}
	if d.Amount < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid",
			fmt.Errorf("%v is negative", d.Amount),
		))
	}
	return errors.Join(errList...)
}

func (d Details) clone() Details {
	if d.Images != nil {
		images := make([]string, len(d.Images))
		copy(images, d.Images)
		d.Images = images
	}
	return d
}
