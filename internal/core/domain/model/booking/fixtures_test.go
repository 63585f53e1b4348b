package booking_test

import (
	"testing"
	"time"

	"repairbooking/internal/core/domain/model/booking"
	"repairbooking/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

func testDetails() booking.Details {
	return booking.Details{
		Category:      "Mobile",
		Amount:        1200,
		PaymentStatus: "pending",
		PaymentMethod: "cash",
		Customer: booking.Customer{
			Name:  "Asha Verma",
			Phone: "+911234567890",
		},
		Images:          []string{"https://cdn.example.com/b/1.jpg"},
		TextDescription: "Screen flickers",
	}
}

func newTestBooking(t *testing.T) *booking.Booking {
	t.Helper()

	b, err := booking.NewBooking(kernel.NewUUID(), "BK-20240101-0001", testDetails(), createdAt)
	require.NoError(t, err)
	return b
}

func serviceDetails(t *testing.T, reason string, amount *float64) *booking.ServiceCenterDetails {
	t.Helper()

	d, err := booking.NewServiceCenterDetails(reason, amount)
	require.NoError(t, err)
	return &d
}

// moveTo applies transitions one hour apart starting after createdAt.
func moveTo(t *testing.T, b *booking.Booking, steps ...booking.Status) {
	t.Helper()

	for i, s := range steps {
		var details *booking.ServiceCenterDetails
		if s == booking.ServiceCenter {
			details = serviceDetails(t, "Screen cracked", nil)
		}
		require.NoError(t, b.RequestTransition(s, details, createdAt.Add(time.Duration(i+1)*time.Hour)))
	}
}
