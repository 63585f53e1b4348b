package queries

import (
	"context"
	"database/sql"
	"time"

	"repairbooking/internal/core/domain/model/booking"
	"repairbooking/internal/core/domain/model/kernel"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gorm rewrites "?" into the dialect's placeholders itself.
var qb = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// GetBookingsQueryHandler reads the booking list with SQL built by squirrel and run through gorm.
type GetBookingsQueryHandler struct {
	db *gorm.DB
}

func NewGetBookingsQueryHandler(db *gorm.DB) GetBookingsQueryHandler {
	return GetBookingsQueryHandler{db: db}
}

type bookingListRow struct {
	ID                uuid.UUID
	BookingID         string
	Status            string
	CancelledAtStatus sql.NullString
	CustomerName      string
	Category          string
	Amount            float64
	PaymentStatus     string
	Date              time.Time
}

func (h GetBookingsQueryHandler) Handle(ctx context.Context, query GetBookingsQuery) (GetBookingsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBookingsQueryResponse{}, err
	}

	countBuilder := qb.Select("COUNT(*)").From("bookings")
	listBuilder := qb.
		Select(
			"id",
			"booking_id",
			"status",
			"cancelled_at_status",
			"customer_name",
			"category",
			"amount",
			"payment_status",
			"date",
		).
		From("bookings").
		OrderBy("date DESC", "booking_id").
		Limit(uint64(query.Limit())).
		Offset(uint64(query.Offset()))

	if status, ok := query.Status(); ok {
		countBuilder = countBuilder.Where(sq.Eq{"status": status.Code()})
		listBuilder = listBuilder.Where(sq.Eq{"status": status.Code()})
	}

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return GetBookingsQueryResponse{}, err
	}
	var total int64
	if err = h.db.WithContext(ctx).Raw(countSQL, countArgs...).Scan(&total).Error; err != nil {
		return GetBookingsQueryResponse{}, err
	}

	listSQL, listArgs, err := listBuilder.ToSql()
	if err != nil {
		return GetBookingsQueryResponse{}, err
	}
	var rows []bookingListRow
	if err = h.db.WithContext(ctx).Raw(listSQL, listArgs...).Scan(&rows).Error; err != nil {
		return GetBookingsQueryResponse{}, err
	}

	items := make([]BookingListItem, 0, len(rows))
	for _, row := range rows {
		item, mapErr := row.toItem()
		if mapErr != nil {
			return GetBookingsQueryResponse{}, mapErr
		}
		items = append(items, item)
	}

	return GetBookingsQueryResponse{Items: items, Total: total}, nil
}

func (r bookingListRow) toItem() (BookingListItem, error) {
	id, err := kernel.UUIDFromGoogle(r.ID)
	if err != nil {
		return BookingListItem{}, err
	}

	status, err := booking.ParseStatus(r.Status)
	if err != nil {
		return BookingListItem{}, err
	}

	item := BookingListItem{
		ID:            id,
		BookingID:     r.BookingID,
		Status:        status,
		CustomerName:  r.CustomerName,
		Category:      r.Category,
		Amount:        r.Amount,
		PaymentStatus: r.PaymentStatus,
		Date:          r.Date,
	}
	if r.CancelledAtStatus.Valid {
		cancelledAt, parseErr := booking.ParseStatus(r.CancelledAtStatus.String)
		if parseErr != nil {
			return BookingListItem{}, parseErr
		}
		item.CancelledAtStatus = &cancelledAt
	}
	return item, nil
}
