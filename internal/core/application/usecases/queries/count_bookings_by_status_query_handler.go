package queries

import (
	"context"

	"repairbooking/internal/core/domain/model/booking"

	"gorm.io/gorm"
)

type CountBookingsByStatusQueryHandler struct {
	db *gorm.DB
}

func NewCountBookingsByStatusQueryHandler(db *gorm.DB) CountBookingsByStatusQueryHandler {
	return CountBookingsByStatusQueryHandler{db: db}
}

// Handle skips rows whose stored status code is not recognised.
func (h CountBookingsByStatusQueryHandler) Handle(
	ctx context.Context,
	query CountBookingsByStatusQuery,
) (CountBookingsByStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statement, args, err := qb.
		Select("status", "COUNT(*) AS count").
		From("bookings").
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []struct {
		Status string
		Count  int64
	}
	if err = h.db.WithContext(ctx).Raw(statement, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(CountBookingsByStatusQueryResponse, len(booking.AllStatuses()))
	for _, s := range booking.AllStatuses() {
		counts[s] = 0
	}
	for _, row := range rows {
		s, parseErr := booking.ParseStatus(row.Status)
		if parseErr != nil {
			continue
		}
		counts[s] = row.Count
	}
	return counts, nil
}
