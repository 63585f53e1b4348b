package services

import (
	"fmt"
	"time"

	"repairbooking/internal/core/domain/model/booking"
	"repairbooking/internal/pkg/errs"
)

const cancelledStepDescription = "Booking was cancelled at this stage"

// TimelineStep is the render model of one step icon.
type TimelineStep struct {
	Status          booking.Status
	Label           string
	Description     string
	IsCompleted     bool
	IsCancelledMark bool
	ShowDetails     bool
	// Date is nil for steps whose details are hidden.
	Date *time.Time
}

// Progress describes the line connecting the step icons, in percent of the timeline width.
// The drawn segment starts at StartPos and is Length long; its leading edge sits on the
// center of the last completed icon.
type Progress struct {
	Fraction float64
	StartPos float64
	EndPos   float64
	Length   float64
}

// Timeline is the projection of a booking onto its ordered steps.
type Timeline struct {
	Status            booking.Status
	CancelledAtStatus *booking.Status
	Steps             []TimelineStep
	Progress          Progress
}

// TimelineProjector is a pure function from a booking to its Timeline. The step list
// is fixed at construction so the line geometry follows the number of icons.
//
// Example usage:
//
//	projector := services.NewDefaultTimelineProjector()
//	timeline, err := projector.Project(b, clock.Now())
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%.0f%% done\n", timeline.Progress.Fraction*100)
type TimelineProjector struct {
	steps []booking.Status
}

// NewTimelineProjector builds a projector over steps, which must be a non-empty,
// duplicate-free subsequence of booking.OrderedSteps in lifecycle order.
func NewTimelineProjector(steps []booking.Status) (*TimelineProjector, error) {
	if len(steps) == 0 {
		return nil, errs.NewValueIsRequiredError("timeline steps")
	}

	last := -1
	for _, s := range steps {
		index := s.StepIndex()
		if index < 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"timeline steps are invalid",
				fmt.Errorf("%s is not an ordered step", s),
			)
		}
		if index <= last {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"timeline steps are invalid",
				fmt.Errorf("%s is duplicated or out of lifecycle order", s),
			)
		}
		last = index
	}

	owned := make([]booking.Status, len(steps))
	copy(owned, steps)
	return &TimelineProjector{steps: owned}, nil
}

// NewDefaultTimelineProjector projects onto all seven ordered steps.
func NewDefaultTimelineProjector() *TimelineProjector {
	return &TimelineProjector{steps: booking.OrderedSteps()}
}

// Steps returns the projected step list.
func (p *TimelineProjector) Steps() []booking.Status {
	steps := make([]booking.Status, len(p.steps))
	copy(steps, p.steps)
	return steps
}

// Project derives the timeline of b.
//
// A live booking has reached the last projected step at or before its status; that step
// and every earlier one count as completed. A cancelled booking freezes at the step
// recorded at cancellation. When that step is projected it carries the cancelled mark and
// is left out of the completed count used for the progress line. When it is not, nothing
// is marked and progress stops at the last projected step before it.
//
// The Booked step is dated with the creation date. Other visible steps use the time the
// booking entered them; bookings stored without that time fall back to now.
func (p *TimelineProjector) Project(b *booking.Booking, now time.Time) (Timeline, error) {
	if err := b.Validate(); err != nil {
		return Timeline{}, err
	}

	status := b.Status()
	cancelled := status == booking.Cancelled
	cancelledAt := b.CancelledAtStatus()

	orderedIndex := status.StepIndex()
	if cancelled {
		orderedIndex = -1
		if cancelledAt != nil {
			orderedIndex = cancelledAt.StepIndex()
		}
	}
	reached := p.lastReached(orderedIndex)

	cancelledIndex := -1
	if cancelled && reached >= 0 && p.steps[reached] == *cancelledAt {
		cancelledIndex = reached
	}

	steps := make([]TimelineStep, len(p.steps))
	for i, s := range p.steps {
		isCompleted := i <= reached
		isCancelledMark := i == cancelledIndex

		step := TimelineStep{
			Status:          s,
			Label:           s.Label(),
			Description:     p.describe(b, s, isCompleted, isCancelledMark),
			IsCompleted:     isCompleted,
			IsCancelledMark: isCancelledMark,
			ShowDetails:     isCompleted,
		}

		switch {
		case s == booking.Booked:
			date := b.Date()
			step.Date = &date
		case isCompleted:
			date, ok := b.StepCompletedAt(s)
			if !ok {
				date = now
			}
			step.Date = &date
		}

		steps[i] = step
	}

	completedCount := reached + 1
	if cancelledIndex >= 0 {
		completedCount = cancelledIndex
	}

	return Timeline{
		Status:            status,
		CancelledAtStatus: cancelledAt,
		Steps:             steps,
		Progress:          p.progress(completedCount),
	}, nil
}

func (p *TimelineProjector) progress(completedCount int) Progress {
	n := float64(len(p.steps))
	iconSlot := 100 / n
	startPos := iconSlot / 2
	endPos := 100 - iconSlot/2
	lineSpan := endPos - startPos

	var fraction float64
	switch {
	case completedCount <= 0:
		fraction = 0
	case len(p.steps) == 1:
		fraction = 1
	default:
		fraction = float64(completedCount-1) / (n - 1)
	}

	return Progress{
		Fraction: fraction,
		StartPos: startPos,
		EndPos:   endPos,
		Length:   fraction * lineSpan,
	}
}

func (p *TimelineProjector) describe(b *booking.Booking, s booking.Status, showDetails, isCancelledMark bool) string {
	description := s.Description()
	if isCancelledMark {
		description = cancelledStepDescription
	}

	if s != booking.ServiceCenter || !showDetails {
		return description
	}
	if reason := b.ServiceReason(); reason != nil {
		description += ". Reason: " + *reason
	}
	if amount := b.ServiceAmount(); amount != nil {
		description += fmt.Sprintf(". Quoted amount: %.2f", *amount)
	}
	return description
}

// lastReached returns the position of the last projected step whose lifecycle index is
// at or before orderedIndex, or -1.
func (p *TimelineProjector) lastReached(orderedIndex int) int {
	reached := -1
	for i, step := range p.steps {
		if step.StepIndex() <= orderedIndex {
			reached = i
		}
	}
	return reached
}
