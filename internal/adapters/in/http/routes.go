package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// GetBookingsParams defines parameters for GetBookings.
type GetBookingsParams struct {
	Status *string
	Limit  *int
	Offset *int
}

// ServerInterface represents all server handlers described in openapi.yaml.
type ServerInterface interface {
	// (GET /api/v1/bookings)
	GetBookings(ctx echo.Context, params GetBookingsParams) error
	// (POST /api/v1/bookings)
	CreateBooking(ctx echo.Context) error
	// (GET /api/v1/bookings/{id})
	GetBooking(ctx echo.Context, id string) error
	// (GET /api/v1/bookings/{id}/timeline)
	GetBookingTimeline(ctx echo.Context, id string) error
	// (POST /api/v1/bookings/{id}/status)
	ChangeBookingStatus(ctx echo.Context, id string) error
	// (GET /api/v1/statuses)
	GetStatuses(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) GetBookings(ctx echo.Context) error {
	var params GetBookingsParams

	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status); err != nil {
		return badParameter(ctx, "status", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit); err != nil {
		return badParameter(ctx, "limit", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "offset", ctx.QueryParams(), &params.Offset); err != nil {
		return badParameter(ctx, "offset", err)
	}

	return w.Handler.GetBookings(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateBooking(ctx echo.Context) error {
	return w.Handler.CreateBooking(ctx)
}

func (w *ServerInterfaceWrapper) GetBooking(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return badParameter(ctx, "id", err)
	}
	return w.Handler.GetBooking(ctx, id)
}

func (w *ServerInterfaceWrapper) GetBookingTimeline(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return badParameter(ctx, "id", err)
	}
	return w.Handler.GetBookingTimeline(ctx, id)
}

func (w *ServerInterfaceWrapper) ChangeBookingStatus(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return badParameter(ctx, "id", err)
	}
	return w.Handler.ChangeBookingStatus(ctx, id)
}

func (w *ServerInterfaceWrapper) GetStatuses(ctx echo.Context) error {
	return w.Handler.GetStatuses(ctx)
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.GET("/api/v1/bookings", wrapper.GetBookings)
	router.POST("/api/v1/bookings", wrapper.CreateBooking)
	router.GET("/api/v1/bookings/:id", wrapper.GetBooking)
	router.GET("/api/v1/bookings/:id/timeline", wrapper.GetBookingTimeline)
	router.POST("/api/v1/bookings/:id/status", wrapper.ChangeBookingStatus)
	router.GET("/api/v1/statuses", wrapper.GetStatuses)
}

func bindID(ctx echo.Context) (string, error) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	return id, err
}

func badParameter(ctx echo.Context, name string, err error) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: fmt.Sprintf("Invalid format for parameter %s: %s", name, err),
	})
}
