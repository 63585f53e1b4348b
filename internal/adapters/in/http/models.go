package http

import (
	"time"

	"repairbooking/internal/core/application/usecases/queries"
	"repairbooking/internal/core/domain/model/booking"
	"repairbooking/internal/core/domain/services"

	"github.com/google/uuid"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// NewBooking is the request body of POST /api/v1/bookings.
type NewBooking struct {
	BookingID       *string  `json:"bookingId,omitempty"`
	Category        string   `json:"category"`
	Amount          float64  `json:"amount"`
	PaymentStatus   string   `json:"paymentStatus"`
	PaymentMethod   string   `json:"paymentMethod"`
	Customer        Customer `json:"customer"`
	Images          []string `json:"images,omitempty"`
	AudioRecording  string   `json:"audioRecording,omitempty"`
	TextDescription string   `json:"textDescription,omitempty"`
}

// StatusChange is the request body of POST /api/v1/bookings/{id}/status.
type StatusChange struct {
	Status        string   `json:"status"`
	ServiceReason *string  `json:"serviceReason,omitempty"`
	ServiceAmount *float64 `json:"serviceAmount,omitempty"`
}

type Booking struct {
	ID                uuid.UUID `json:"id"`
	BookingID         string    `json:"bookingId"`
	Status            string    `json:"status"`
	CancelledAtStatus *string   `json:"cancelledAtStatus,omitempty"`
	ServiceReason     *string   `json:"serviceReason,omitempty"`
	ServiceAmount     *float64  `json:"serviceAmount,omitempty"`
	Date              time.Time `json:"date"`
	Category          string    `json:"category"`
	Amount            float64   `json:"amount"`
	PaymentStatus     string    `json:"paymentStatus"`
	PaymentMethod     string    `json:"paymentMethod"`
	Customer          Customer  `json:"customer"`
	Images            []string  `json:"images"`
	AudioRecording    string    `json:"audioRecording,omitempty"`
	TextDescription   string    `json:"textDescription,omitempty"`
	Timeline          Timeline  `json:"timeline"`
}

type BookingListItem struct {
	ID                uuid.UUID `json:"id"`
	BookingID         string    `json:"bookingId"`
	Status            string    `json:"status"`
	CancelledAtStatus *string   `json:"cancelledAtStatus,omitempty"`
	CustomerName      string    `json:"customerName"`
	Category          string    `json:"category"`
	Amount            float64   `json:"amount"`
	PaymentStatus     string    `json:"paymentStatus"`
	Date              time.Time `json:"date"`
}

type BookingPage struct {
	Items  []BookingListItem `json:"items"`
	Total  int64             `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

type TimelineStep struct {
	Status      string     `json:"status"`
	Label       string     `json:"label"`
	Description string     `json:"description"`
	IsCompleted bool       `json:"isCompleted"`
	IsCancelled bool       `json:"isCancelled"`
	ShowDetails bool       `json:"showDetails"`
	Date        *time.Time `json:"date,omitempty"`
}

type Progress struct {
	Fraction float64 `json:"fraction"`
	StartPos float64 `json:"startPos"`
	EndPos   float64 `json:"endPos"`
	Length   float64 `json:"length"`
}

type Timeline struct {
	Status            string         `json:"status"`
	CancelledAtStatus *string        `json:"cancelledAtStatus,omitempty"`
	Steps             []TimelineStep `json:"steps"`
	Progress          Progress       `json:"progress"`
}

type StatusInfo struct {
	Code        string `json:"code"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Index       int    `json:"index"`
}

func statusCode(s *booking.Status) *string {
	if s == nil {
		return nil
	}
	code := s.Code()
	return &code
}

func toBooking(resp queries.GetBookingQueryResponse) Booking {
	images := resp.Details.Images
	if images == nil {
		images = []string{}
	}
	return Booking{
		ID:                resp.ID.Bytes(),
		BookingID:         resp.BookingID,
		Status:            resp.Status.Code(),
		CancelledAtStatus: statusCode(resp.CancelledAtStatus),
		ServiceReason:     resp.ServiceReason,
		ServiceAmount:     resp.ServiceAmount,
		Date:              resp.Date,
		Category:          resp.Details.Category,
		Amount:            resp.Details.Amount,
		PaymentStatus:     resp.Details.PaymentStatus,
		PaymentMethod:     resp.Details.PaymentMethod,
		Customer: Customer{
			Name:    resp.Details.Customer.Name,
			Phone:   resp.Details.Customer.Phone,
			Email:   resp.Details.Customer.Email,
			Address: resp.Details.Customer.Address,
		},
		Images:          images,
		AudioRecording:  resp.Details.AudioRecording,
		TextDescription: resp.Details.TextDescription,
		Timeline:        toTimeline(resp.Timeline),
	}
}

func toTimeline(t services.Timeline) Timeline {
	steps := make([]TimelineStep, len(t.Steps))
	for i, step := range t.Steps {
		steps[i] = TimelineStep{
			Status:      step.Status.Code(),
			Label:       step.Label,
			Description: step.Description,
			IsCompleted: step.IsCompleted,
			IsCancelled: step.IsCancelledMark,
			ShowDetails: step.ShowDetails,
			Date:        step.Date,
		}
	}
	return Timeline{
		Status:            t.Status.Code(),
		CancelledAtStatus: statusCode(t.CancelledAtStatus),
		Steps:             steps,
		Progress: Progress{
			Fraction: t.Progress.Fraction,
			StartPos: t.Progress.StartPos,
			EndPos:   t.Progress.EndPos,
			Length:   t.Progress.Length,
		},
	}
}

func toBookingPage(resp queries.GetBookingsQueryResponse, limit, offset int) BookingPage {
	items := make([]BookingListItem, len(resp.Items))
	for i, item := range resp.Items {
		items[i] = BookingListItem{
			ID:                item.ID.Bytes(),
			BookingID:         item.BookingID,
			Status:            item.Status.Code(),
			CancelledAtStatus: statusCode(item.CancelledAtStatus),
			CustomerName:      item.CustomerName,
			Category:          item.Category,
			Amount:            item.Amount,
			PaymentStatus:     item.PaymentStatus,
			Date:              item.Date,
		}
	}
	return BookingPage{Items: items, Total: resp.Total, Limit: limit, Offset: offset}
}
