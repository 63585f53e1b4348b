package services_test

import (
	"testing"
	"time"

	"repairbooking/internal/core/domain/model/booking"
	"repairbooking/internal/core/domain/model/kernel"
	"repairbooking/internal/core/domain/services"
	"repairbooking/internal/pkg/errs"

	"github.com/AlekSi/pointer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	createdAt = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	renderAt  = time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
)

func newBooking(t *testing.T) *booking.Booking {
	t.Helper()

	b, err := booking.NewBooking(kernel.NewUUID(), "BK-20240101-0001", booking.Details{
		Category: "Laptop",
		Amount:   2500,
		Customer: booking.Customer{Name: "Ravi Kumar"},
	}, createdAt)
	require.NoError(t, err)
	return b
}

func walk(t *testing.T, b *booking.Booking, steps ...booking.Status) {
	t.Helper()

	for i, s := range steps {
		var details *booking.ServiceCenterDetails
		if s == booking.ServiceCenter {
			d, err := booking.NewServiceCenterDetails("Motherboard fault", pointer.To(450.0))
			require.NoError(t, err)
			details = &d
		}
		require.NoError(t, b.RequestTransition(s, details, createdAt.Add(time.Duration(i+1)*time.Hour)))
	}
}

func TestNewTimelineProjector(t *testing.T) {
	t.Run("should accept an ordered subsequence", func(t *testing.T) {
		p, err := services.NewTimelineProjector([]booking.Status{booking.Booked, booking.Repair, booking.Delivered})

		require.NoError(t, err)
		assert.Equal(t, []booking.Status{booking.Booked, booking.Repair, booking.Delivered}, p.Steps())
	})

	t.Run("should reject empty steps", func(t *testing.T) {
		_, err := services.NewTimelineProjector(nil)

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject cancelled as a step", func(t *testing.T) {
		_, err := services.NewTimelineProjector([]booking.Status{booking.Booked, booking.Cancelled})

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject duplicated and reversed steps", func(t *testing.T) {
		_, err := services.NewTimelineProjector([]booking.Status{booking.Booked, booking.Booked})
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = services.NewTimelineProjector([]booking.Status{booking.Repair, booking.Picked})
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestTimelineProjector_Project(t *testing.T) {
	projector := services.NewDefaultTimelineProjector()
	const (
		startPos = 100.0 / 7 / 2
		endPos   = 100 - 100.0/7/2
		lineSpan = endPos - startPos
	)

	t.Run("should show only the booked step for a fresh booking", func(t *testing.T) {
		b := newBooking(t)

		tl, err := projector.Project(b, renderAt)

		require.NoError(t, err)
		require.Len(t, tl.Steps, 7)
		assert.True(t, tl.Steps[0].IsCompleted)
		assert.True(t, tl.Steps[0].ShowDetails)
		require.NotNil(t, tl.Steps[0].Date)
		assert.Equal(t, createdAt, *tl.Steps[0].Date)
		for _, s := range tl.Steps[1:] {
			assert.False(t, s.IsCompleted)
			assert.False(t, s.ShowDetails)
			assert.Nil(t, s.Date)
		}
		assert.Zero(t, tl.Progress.Fraction)
		assert.Zero(t, tl.Progress.Length)
		assert.InDelta(t, startPos, tl.Progress.StartPos, 1e-9)
		assert.InDelta(t, endPos, tl.Progress.EndPos, 1e-9)
	})

	t.Run("should complete every step up to the current one", func(t *testing.T) {
		b := newBooking(t)
		walk(t, b, booking.Confirmed, booking.Picked, booking.ServiceCenter, booking.Repair)

		tl, err := projector.Project(b, renderAt)

		require.NoError(t, err)
		for i, s := range tl.Steps {
			assert.Equal(t, i <= 4, s.IsCompleted, s.Status.String())
			assert.False(t, s.IsCancelledMark)
		}
		assert.InDelta(t, 4.0/6, tl.Progress.Fraction, 1e-9)
		assert.InDelta(t, 4.0/6*lineSpan, tl.Progress.Length, 1e-9)
		require.NotNil(t, tl.Steps[4].Date)
		assert.Equal(t, createdAt.Add(4*time.Hour), *tl.Steps[4].Date)
	})

	t.Run("should count three steps once picked", func(t *testing.T) {
		b := newBooking(t)
		walk(t, b, booking.Confirmed, booking.Picked)

		tl, err := projector.Project(b, renderAt)

		require.NoError(t, err)
		for i, s := range tl.Steps {
			assert.Equal(t, i <= 2, s.IsCompleted, s.Status.String())
			assert.Equal(t, i <= 2, s.ShowDetails, s.Status.String())
		}
		assert.InDelta(t, 2.0/6, tl.Progress.Fraction, 1e-9)
		assert.InDelta(t, 2.0/6*lineSpan, tl.Progress.Length, 1e-9)
	})

	t.Run("should fill the whole line when delivered", func(t *testing.T) {
		b := newBooking(t)
		walk(t, b, booking.Confirmed, booking.Picked, booking.ServiceCenter,
			booking.Repair, booking.OutForDelivery, booking.Delivered)

		tl, err := projector.Project(b, renderAt)

		require.NoError(t, err)
		assert.Equal(t, 1.0, tl.Progress.Fraction)
		assert.InDelta(t, lineSpan, tl.Progress.Length, 1e-9)
	})

	t.Run("should append service details to the service center step", func(t *testing.T) {
		b := newBooking(t)
		walk(t, b, booking.Confirmed, booking.Picked, booking.ServiceCenter)

		tl, err := projector.Project(b, renderAt)

		require.NoError(t, err)
		assert.Contains(t, tl.Steps[3].Description, "Reason: Motherboard fault")
		assert.Contains(t, tl.Steps[3].Description, "Quoted amount: 450.00")
	})

	t.Run("should freeze a cancelled booking at the recorded step", func(t *testing.T) {
		b := newBooking(t)
		walk(t, b, booking.Confirmed, booking.Picked, booking.ServiceCenter, booking.Cancelled)

		tl, err := projector.Project(b, renderAt)

		require.NoError(t, err)
		assert.Equal(t, booking.Cancelled, tl.Status)
		require.NotNil(t, tl.CancelledAtStatus)
		assert.Equal(t, booking.ServiceCenter, *tl.CancelledAtStatus)

		for i := 0; i < 3; i++ {
			assert.True(t, tl.Steps[i].IsCompleted)
			assert.False(t, tl.Steps[i].IsCancelledMark)
		}
		assert.True(t, tl.Steps[3].IsCancelledMark)
		assert.True(t, tl.Steps[3].ShowDetails)
		assert.Contains(t, tl.Steps[3].Description, "Booking was cancelled at this stage")
		for _, s := range tl.Steps[4:] {
			assert.False(t, s.IsCompleted)
			assert.False(t, s.ShowDetails)
			assert.Nil(t, s.Date)
		}
		assert.InDelta(t, 2.0/6, tl.Progress.Fraction, 1e-9)
	})

	t.Run("should leave the line empty when cancelled from booked", func(t *testing.T) {
		b := newBooking(t)
		walk(t, b, booking.Cancelled)

		tl, err := projector.Project(b, renderAt)

		require.NoError(t, err)
		assert.True(t, tl.Steps[0].IsCancelledMark)
		assert.Zero(t, tl.Progress.Fraction)
	})

	t.Run("should date steps without a recorded time at render time", func(t *testing.T) {
		b, err := booking.RestoreBooking(booking.Snapshot{
			ID:        kernel.NewUUID(),
			BookingID: "BK-20231201-0042",
			Status:    booking.Picked,
			Date:      createdAt,
			Details:   booking.Details{Customer: booking.Customer{Name: "Legacy"}},
		})
		require.NoError(t, err)

		tl, err := projector.Project(b, renderAt)

		require.NoError(t, err)
		assert.Equal(t, createdAt, *tl.Steps[0].Date)
		assert.Equal(t, renderAt, *tl.Steps[1].Date)
		assert.Equal(t, renderAt, *tl.Steps[2].Date)
	})

	t.Run("should keep completion monotonic for every live status", func(t *testing.T) {
		for k, status := range booking.OrderedSteps() {
			b := newBooking(t)
			walk(t, b, booking.OrderedSteps()[1:k+1]...)
			require.Equal(t, status, b.Status())

			tl, err := projector.Project(b, renderAt)
			require.NoError(t, err)

			for i, s := range tl.Steps {
				assert.Equal(t, i <= k, s.IsCompleted, "status %s step %d", status, i)
			}
			assert.GreaterOrEqual(t, tl.Progress.Fraction, 0.0)
			assert.LessOrEqual(t, tl.Progress.Fraction, 1.0)
		}
	})

	t.Run("should return an error for a non constructed booking", func(t *testing.T) {
		_, err := projector.Project(&booking.Booking{}, renderAt)

		assert.ErrorIs(t, err, booking.ErrBookingIsNotConstructed)
	})

	t.Run("should scale the line to a shorter step list", func(t *testing.T) {
		short, err := services.NewTimelineProjector([]booking.Status{booking.Booked, booking.Repair, booking.Delivered})
		require.NoError(t, err)
		b := newBooking(t)
		walk(t, b, booking.Confirmed, booking.Picked, booking.ServiceCenter, booking.Repair)

		tl, err := short.Project(b, renderAt)

		require.NoError(t, err)
		assert.InDelta(t, 0.5, tl.Progress.Fraction, 1e-9)
		assert.InDelta(t, 100.0/3/2, tl.Progress.StartPos, 1e-9)
	})

	t.Run("should credit a skipped step to the last projected one before it", func(t *testing.T) {
		short, err := services.NewTimelineProjector([]booking.Status{booking.Booked, booking.Repair, booking.Delivered})
		require.NoError(t, err)
		b := newBooking(t)
		walk(t, b, booking.Confirmed, booking.Picked)

		tl, err := short.Project(b, renderAt)

		require.NoError(t, err)
		assert.True(t, tl.Steps[0].IsCompleted)
		assert.True(t, tl.Steps[0].ShowDetails)
		assert.False(t, tl.Steps[1].IsCompleted)
		assert.False(t, tl.Steps[2].IsCompleted)
		assert.Zero(t, tl.Progress.Fraction)
	})

	t.Run("should freeze without a mark when cancelled at a step not projected", func(t *testing.T) {
		short, err := services.NewTimelineProjector([]booking.Status{booking.Booked, booking.Repair, booking.Delivered})
		require.NoError(t, err)
		b := newBooking(t)
		walk(t, b, booking.Confirmed, booking.Picked, booking.Cancelled)

		tl, err := short.Project(b, renderAt)

		require.NoError(t, err)
		for _, s := range tl.Steps {
			assert.False(t, s.IsCancelledMark, s.Status.String())
		}
		assert.True(t, tl.Steps[0].IsCompleted)
		assert.False(t, tl.Steps[1].IsCompleted)
		assert.False(t, tl.Steps[1].ShowDetails)
		assert.Nil(t, tl.Steps[1].Date)
		assert.False(t, tl.Steps[2].IsCompleted)
		assert.Zero(t, tl.Progress.Fraction)
	})

	t.Run("should freeze past the last projected step when cancelled later", func(t *testing.T) {
		short, err := services.NewTimelineProjector([]booking.Status{booking.Booked, booking.Repair, booking.Delivered})
		require.NoError(t, err)
		b := newBooking(t)
		walk(t, b, booking.Confirmed, booking.Picked, booking.ServiceCenter,
			booking.Repair, booking.OutForDelivery, booking.Cancelled)

		tl, err := short.Project(b, renderAt)

		require.NoError(t, err)
		assert.True(t, tl.Steps[1].IsCompleted)
		assert.False(t, tl.Steps[1].IsCancelledMark)
		assert.False(t, tl.Steps[2].IsCompleted)
		assert.InDelta(t, 0.5, tl.Progress.Fraction, 1e-9)
	})

	t.Run("should use zero or one for a single step", func(t *testing.T) {
		single, err := services.NewTimelineProjector([]booking.Status{booking.Booked})
		require.NoError(t, err)

		tl, err := single.Project(newBooking(t), renderAt)

		require.NoError(t, err)
		assert.Equal(t, 1.0, tl.Progress.Fraction)
		assert.Equal(t, 50.0, tl.Progress.StartPos)
		assert.Equal(t, 50.0, tl.Progress.EndPos)
	})
}
