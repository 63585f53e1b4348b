package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apihttp "repairbooking/internal/adapters/in/http"
	"repairbooking/internal/core/application/usecases/commands"
	"repairbooking/internal/core/application/usecases/queries"
	"repairbooking/internal/core/domain/model/booking"
	"repairbooking/internal/core/domain/model/kernel"
	"repairbooking/internal/core/domain/services"
	"repairbooking/internal/pkg/errs"

	"github.com/AlekSi/pointer"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)

type MockCreateBookingHandler struct{ mock.Mock }

func (m *MockCreateBookingHandler) Handle(ctx context.Context, cmd commands.CreateBookingCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockChangeBookingStatusHandler struct{ mock.Mock }

func (m *MockChangeBookingStatusHandler) Handle(ctx context.Context, cmd commands.ChangeBookingStatusCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockGetBookingHandler struct{ mock.Mock }

func (m *MockGetBookingHandler) Handle(
	ctx context.Context,
	query queries.GetBookingQuery,
) (queries.GetBookingQueryResponse, error) {
	args := m.Called(ctx, query)
	resp, _ := args.Get(0).(queries.GetBookingQueryResponse)
	return resp, args.Error(1)
}

type MockGetBookingsHandler struct{ mock.Mock }

func (m *MockGetBookingsHandler) Handle(
	ctx context.Context,
	query queries.GetBookingsQuery,
) (queries.GetBookingsQueryResponse, error) {
	args := m.Called(ctx, query)
	resp, _ := args.Get(0).(queries.GetBookingsQueryResponse)
	return resp, args.Error(1)
}

type testServer struct {
	echo        *echo.Echo
	create      *MockCreateBookingHandler
	change      *MockChangeBookingStatusHandler
	getBooking  *MockGetBookingHandler
	getBookings *MockGetBookingsHandler
}

func newTestServer(t *testing.T) testServer {
	t.Helper()

	ts := testServer{
		create:      &MockCreateBookingHandler{},
		change:      &MockChangeBookingStatusHandler{},
		getBooking:  &MockGetBookingHandler{},
		getBookings: &MockGetBookingsHandler{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := apihttp.NewServer(ts.create, ts.change, ts.getBooking, ts.getBookings, kernel.FixedClock{At: now}, logger)

	e, err := apihttp.NewRouter(t.Context(), server, logger)
	require.NoError(t, err)
	ts.echo = e
	return ts
}

func (ts testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	ts.echo.ServeHTTP(rec, req)
	return rec
}

func bookingResponse(t *testing.T, status booking.Status) queries.GetBookingQueryResponse {
	t.Helper()

	b, err := booking.NewBooking(kernel.NewUUID(), "BK-20240305-0001", booking.Details{
		Category: "Laptop",
		Amount:   1499,
		Customer: booking.Customer{Name: "Priya Sharma", Phone: "+91 98765 43210"},
	}, now)
	require.NoError(t, err)
	if status != booking.Booked {
		var details *booking.ServiceCenterDetails
		if status == booking.ServiceCenter {
			d, err := booking.NewServiceCenterDetails("Screen replacement", pointer.To(2500.0))
			require.NoError(t, err)
			details = &d
		}
		require.NoError(t, b.RequestTransition(status, details, now.Add(time.Hour)))
	}

	timeline, err := services.NewDefaultTimelineProjector().Project(b, now)
	require.NoError(t, err)

	return queries.GetBookingQueryResponse{
		ID:                b.ID(),
		BookingID:         b.BookingID(),
		Status:            b.Status(),
		CancelledAtStatus: b.CancelledAtStatus(),
		ServiceReason:     b.ServiceReason(),
		ServiceAmount:     b.ServiceAmount(),
		Date:              b.Date(),
		Details:           b.Details(),
		Timeline:          timeline,
	}
}

func byID(id kernel.UUID) any {
	return mock.MatchedBy(func(q queries.GetBookingQuery) bool {
		got, ok := q.ID()
		return ok && got == id
	})
}

func byRef(ref string) any {
	return mock.MatchedBy(func(q queries.GetBookingQuery) bool {
		_, ok := q.ID()
		return !ok && q.BookingRef() == ref
	})
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestServer_Health(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_GetStatuses(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/api/v1/statuses", "")

	require.Equal(t, http.StatusOK, rec.Code)
	statuses := decode[[]apihttp.StatusInfo](t, rec)
	require.Len(t, statuses, 8)
	assert.Equal(t, apihttp.StatusInfo{
		Code: "booked", Label: "Booked", Description: booking.Booked.Description(), Index: 0,
	}, statuses[0])
	assert.Equal(t, "serviceCenter", statuses[3].Code)
	assert.Equal(t, "cancelled", statuses[7].Code)
	assert.Equal(t, -1, statuses[7].Index)
}

func TestServer_GetBooking_ByID(t *testing.T) {
	ts := newTestServer(t)
	resp := bookingResponse(t, booking.ServiceCenter)
	ts.getBooking.On("Handle", mock.Anything, byID(resp.ID)).Return(resp, nil)

	rec := ts.do(http.MethodGet, "/api/v1/bookings/"+resp.ID.String(), "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[apihttp.Booking](t, rec)
	assert.Equal(t, resp.BookingID, body.BookingID)
	assert.Equal(t, "serviceCenter", body.Status)
	assert.Equal(t, pointer.To("Screen replacement"), body.ServiceReason)
	assert.Equal(t, pointer.To(2500.0), body.ServiceAmount)
	assert.Equal(t, "Priya Sharma", body.Customer.Name)
	require.Len(t, body.Timeline.Steps, 7)
	assert.True(t, body.Timeline.Steps[3].IsCompleted)
	assert.False(t, body.Timeline.Steps[4].IsCompleted)
	assert.InDelta(t, 0.5, body.Timeline.Progress.Fraction, 1e-9)
}

func TestServer_GetBooking_ByRef(t *testing.T) {
	ts := newTestServer(t)
	resp := bookingResponse(t, booking.Booked)
	ts.getBooking.On("Handle", mock.Anything, byRef("BK-20240305-0001")).Return(resp, nil)

	rec := ts.do(http.MethodGet, "/api/v1/bookings/BK-20240305-0001", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, resp.ID.Bytes(), decode[apihttp.Booking](t, rec).ID)
}

func TestServer_GetBooking_NotFound(t *testing.T) {
	ts := newTestServer(t)
	ts.getBooking.On("Handle", mock.Anything, byRef("BK-missing")).
		Return(nil, errs.NewObjectNotFoundError("bookingId", "BK-missing"))

	rec := ts.do(http.MethodGet, "/api/v1/bookings/BK-missing", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, decode[apihttp.Error](t, rec).Code)
}

func TestServer_GetBooking_InternalErrorIsHidden(t *testing.T) {
	ts := newTestServer(t)
	ts.getBooking.On("Handle", mock.Anything, byRef("BK-1")).
		Return(nil, errors.New("connection refused"))

	rec := ts.do(http.MethodGet, "/api/v1/bookings/BK-1", "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", decode[apihttp.Error](t, rec).Message)
}

func TestServer_GetBookingTimeline_Cancelled(t *testing.T) {
	ts := newTestServer(t)
	resp := bookingResponse(t, booking.Cancelled)
	ts.getBooking.On("Handle", mock.Anything, byID(resp.ID)).Return(resp, nil)

	rec := ts.do(http.MethodGet, "/api/v1/bookings/"+resp.ID.String()+"/timeline", "")

	require.Equal(t, http.StatusOK, rec.Code)
	timeline := decode[apihttp.Timeline](t, rec)
	assert.Equal(t, "cancelled", timeline.Status)
	assert.Equal(t, pointer.To("booked"), timeline.CancelledAtStatus)
	assert.True(t, timeline.Steps[0].IsCancelled)
	assert.Zero(t, timeline.Progress.Fraction)
}

func TestServer_GetBookings(t *testing.T) {
	ts := newTestServer(t)
	item := queries.BookingListItem{
		ID:           kernel.NewUUID(),
		BookingID:    "BK-1",
		Status:       booking.Repair,
		CustomerName: "Priya Sharma",
		Date:         now,
	}
	ts.getBookings.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetBookingsQuery) bool {
		status, ok := q.Status()
		return ok && status == booking.Repair && q.Limit() == 5 && q.Offset() == 10
	})).Return(queries.GetBookingsQueryResponse{Items: []queries.BookingListItem{item}, Total: 11}, nil)

	rec := ts.do(http.MethodGet, "/api/v1/bookings?status=repair&limit=5&offset=10", "")

	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[apihttp.BookingPage](t, rec)
	assert.Equal(t, int64(11), page.Total)
	assert.Equal(t, 5, page.Limit)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "repair", page.Items[0].Status)
}

func TestServer_GetBookings_DefaultPaging(t *testing.T) {
	ts := newTestServer(t)
	ts.getBookings.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetBookingsQuery) bool {
		_, filtered := q.Status()
		return !filtered && q.Limit() == queries.DefaultPageSize && q.Offset() == 0
	})).Return(queries.GetBookingsQueryResponse{}, nil)

	rec := ts.do(http.MethodGet, "/api/v1/bookings", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[apihttp.BookingPage](t, rec).Items)
}

func TestServer_GetBookings_RejectedByValidator(t *testing.T) {
	ts := newTestServer(t)

	for _, target := range []string{
		"/api/v1/bookings?limit=500",
		"/api/v1/bookings?status=shipped",
		"/api/v1/bookings?offset=-1",
	} {
		rec := ts.do(http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
	ts.getBookings.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestServer_CreateBooking(t *testing.T) {
	ts := newTestServer(t)
	var created commands.CreateBookingCommand
	ts.create.On("Handle", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { created = args.Get(1).(commands.CreateBookingCommand) }).
		Return(nil)
	ts.getBooking.On("Handle", mock.Anything, mock.Anything).
		Return(bookingResponse(t, booking.Booked), nil)

	rec := ts.do(http.MethodPost, "/api/v1/bookings",
		`{"category":"Laptop","amount":1499,"customer":{"name":"Priya Sharma"}}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, strings.HasPrefix(created.BookingRef(), "BK-20240305-"))
	assert.Equal(t, "Priya Sharma", created.Details().Customer.Name)
	assert.Equal(t, "booked", decode[apihttp.Booking](t, rec).Status)
}

func TestServer_CreateBooking_DuplicateRef(t *testing.T) {
	ts := newTestServer(t)
	ts.create.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateBookingCommand) bool {
		return cmd.BookingRef() == "BK-1"
	})).Return(booking.ErrBookingIDIsTaken)

	rec := ts.do(http.MethodPost, "/api/v1/bookings", `{"bookingId":"BK-1","customer":{"name":"Priya Sharma"}}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestServer_CreateBooking_MissingCustomer(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/api/v1/bookings", `{"category":"Laptop"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	ts.create.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestServer_ChangeBookingStatus_ToServiceCenter(t *testing.T) {
	ts := newTestServer(t)
	current := bookingResponse(t, booking.Picked)
	updated := bookingResponse(t, booking.ServiceCenter)
	updated.ID = current.ID

	ts.getBooking.On("Handle", mock.Anything, byRef(current.BookingID)).Return(current, nil).Once()
	ts.getBooking.On("Handle", mock.Anything, byID(current.ID)).Return(updated, nil).Once()
	ts.change.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ChangeBookingStatusCommand) bool {
		details := cmd.ServiceCenterDetails()
		return cmd.BookingID() == current.ID &&
			cmd.Target() == booking.ServiceCenter &&
			details != nil &&
			details.Reason() == "Screen replacement" &&
			*details.Amount() == 2500
	})).Return(nil)

	rec := ts.do(http.MethodPost, "/api/v1/bookings/"+current.BookingID+"/status",
		`{"status":"serviceCenter","serviceReason":"Screen replacement","serviceAmount":2500}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "serviceCenter", decode[apihttp.Booking](t, rec).Status)
	ts.change.AssertExpectations(t)
}

func TestServer_ChangeBookingStatus_ServiceCenterWithoutReason(t *testing.T) {
	ts := newTestServer(t)
	current := bookingResponse(t, booking.Picked)
	ts.getBooking.On("Handle", mock.Anything, byID(current.ID)).Return(current, nil)

	rec := ts.do(http.MethodPost, "/api/v1/bookings/"+current.ID.String()+"/status", `{"status":"serviceCenter"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	ts.change.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestServer_ChangeBookingStatus_Conflicts(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "noop", err: booking.ErrTransitionIsNoop},
		{name: "cancelled", err: booking.ErrBookingIsCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			current := bookingResponse(t, booking.Cancelled)
			ts.getBooking.On("Handle", mock.Anything, byID(current.ID)).Return(current, nil)
			ts.change.On("Handle", mock.Anything, mock.Anything).Return(tt.err)

			rec := ts.do(http.MethodPost, "/api/v1/bookings/"+current.ID.String()+"/status", `{"status":"repair"}`)

			assert.Equal(t, http.StatusConflict, rec.Code)
		})
	}
}

func TestServer_ChangeBookingStatus_UnknownStatus(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/api/v1/bookings/BK-1/status", `{"status":"shipped"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	ts.getBooking.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}
