package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"repairbooking/internal/core/application/usecases/commands"
	"repairbooking/internal/core/application/usecases/queries"
	"repairbooking/internal/core/domain/model/booking"
	"repairbooking/internal/core/domain/model/kernel"
	"repairbooking/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type CreateBookingHandler interface {
	Handle(ctx context.Context, cmd commands.CreateBookingCommand) error
}

type ChangeBookingStatusHandler interface {
	Handle(ctx context.Context, cmd commands.ChangeBookingStatusCommand) error
}

type GetBookingHandler interface {
	Handle(ctx context.Context, query queries.GetBookingQuery) (queries.GetBookingQueryResponse, error)
}

type GetBookingsHandler interface {
	Handle(ctx context.Context, query queries.GetBookingsQuery) (queries.GetBookingsQueryResponse, error)
}

// Server implements ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createBookingHandler       CreateBookingHandler
	changeBookingStatusHandler ChangeBookingStatusHandler

	// Query handlers
	getBookingHandler  GetBookingHandler
	getBookingsHandler GetBookingsHandler

	clock  kernel.Clock
	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createBookingHandler CreateBookingHandler,
	changeBookingStatusHandler ChangeBookingStatusHandler,
	getBookingHandler GetBookingHandler,
	getBookingsHandler GetBookingsHandler,
	clock kernel.Clock,
	logger *slog.Logger,
) *Server {
	return &Server{
		createBookingHandler:       createBookingHandler,
		changeBookingStatusHandler: changeBookingStatusHandler,
		getBookingHandler:          getBookingHandler,
		getBookingsHandler:         getBookingsHandler,
		clock:                      clock,
		logger:                     logger.With("component", "http"),
	}
}

// GetBookings handles GET /api/v1/bookings - pages through bookings.
func (s *Server) GetBookings(ctx echo.Context, params GetBookingsParams) error {
	var status *booking.Status
	if params.Status != nil {
		parsed, err := booking.ParseStatus(*params.Status)
		if err != nil {
			return s.errorResponse(ctx, err)
		}
		status = &parsed
	}

	var limit, offset int
	if params.Limit != nil {
		limit = *params.Limit
	}
	if params.Offset != nil {
		offset = *params.Offset
	}

	query, err := queries.NewGetBookingsQuery(status, limit, offset)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	page, err := s.getBookingsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toBookingPage(page, query.Limit(), query.Offset()))
}

// CreateBooking handles POST /api/v1/bookings - registers a new booking.
func (s *Server) CreateBooking(ctx echo.Context) error {
	var body NewBooking
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	id := kernel.NewUUID()
	bookingRef := commands.NewBookingRef(id, s.clock.Now())
	if body.BookingID != nil {
		bookingRef = *body.BookingID
	}

	details := booking.Details{
		Category:      body.Category,
		Amount:        body.Amount,
		PaymentStatus: body.PaymentStatus,
		PaymentMethod: body.PaymentMethod,
		Customer: booking.Customer{
			Name:    body.Customer.Name,
			Phone:   body.Customer.Phone,
			Email:   body.Customer.Email,
			Address: body.Customer.Address,
		},
		Images:          body.Images,
		AudioRecording:  body.AudioRecording,
		TextDescription: body.TextDescription,
	}

	cmd, err := commands.NewCreateBookingCommand(id, bookingRef, details)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	if err := s.createBookingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	created, err := s.lookup(ctx.Request().Context(), id.String())
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toBooking(created))
}

// GetBooking handles GET /api/v1/bookings/{id} - id is either the uuid or the booking reference.
func (s *Server) GetBooking(ctx echo.Context, id string) error {
	resp, err := s.lookup(ctx.Request().Context(), id)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toBooking(resp))
}

// GetBookingTimeline handles GET /api/v1/bookings/{id}/timeline.
func (s *Server) GetBookingTimeline(ctx echo.Context, id string) error {
	resp, err := s.lookup(ctx.Request().Context(), id)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toTimeline(resp.Timeline))
}

// ChangeBookingStatus handles POST /api/v1/bookings/{id}/status.
func (s *Server) ChangeBookingStatus(ctx echo.Context, id string) error {
	var body StatusChange
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target, err := booking.ParseStatus(body.Status)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	var details *booking.ServiceCenterDetails
	if target == booking.ServiceCenter && body.ServiceReason != nil {
		d, err := booking.NewServiceCenterDetails(*body.ServiceReason, body.ServiceAmount)
		if err != nil {
			return s.errorResponse(ctx, err)
		}
		details = &d
	}

	current, err := s.lookup(ctx.Request().Context(), id)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	cmd, err := commands.NewChangeBookingStatusCommand(current.ID, target, details)
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	if err := s.changeBookingStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	updated, err := s.lookup(ctx.Request().Context(), current.ID.String())
	if err != nil {
		return s.errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toBooking(updated))
}

// GetStatuses handles GET /api/v1/statuses - the status catalogue used by the admin UI.
func (s *Server) GetStatuses(ctx echo.Context) error {
	all := booking.AllStatuses()
	response := make([]StatusInfo, len(all))
	for i, status := range all {
		response[i] = StatusInfo{
			Code:        status.Code(),
			Label:       status.Label(),
			Description: status.Description(),
			Index:       status.StepIndex(),
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) lookup(ctx context.Context, id string) (queries.GetBookingQueryResponse, error) {
	var (
		query queries.GetBookingQuery
		err   error
	)
	if parsed, parseErr := kernel.UUIDFromString(id); parseErr == nil {
		query, err = queries.NewGetBookingQuery(parsed)
	} else {
		query, err = queries.NewGetBookingByRefQuery(id)
	}
	if err != nil {
		return queries.GetBookingQueryResponse{}, err
	}
	return s.getBookingHandler.Handle(ctx, query)
}

func (s *Server) errorResponse(ctx echo.Context, err error) error {
	code := statusFor(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		message = http.StatusText(code)
	}
	return ctx.JSON(code, Error{Code: code, Message: message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrTransitionIsNoop),
		errors.Is(err, booking.ErrBookingIsCancelled),
		errors.Is(err, booking.ErrBookingIDIsTaken):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
