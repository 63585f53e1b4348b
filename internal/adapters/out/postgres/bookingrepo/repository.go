package bookingrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"repairbooking/internal/core/domain/model/booking"
	"repairbooking/internal/core/domain/model/kernel"
	"repairbooking/internal/pkg/errs"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
)

// gorm rewrites "?" into the dialect's placeholders itself.
var qb = sq.StatementBuilder.PlaceholderFormat(sq.Question)

var columns = map[booking.Field]string{
	booking.FieldStatus:            "status",
	booking.FieldCancelledAtStatus: "cancelled_at_status",
	booking.FieldServiceReason:     "service_reason",
	booking.FieldServiceAmount:     "service_amount",
	booking.FieldCompletedAt:       "completed_at",
}

// GormBookingRepository implements ports.BookingRepository using GORM.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GORM booking repository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Add saves a new booking to the database.
func (r *GormBookingRepository) Add(ctx context.Context, aggregate *booking.Booking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", booking.ErrBookingIDIsTaken, aggregate.BookingID())
		}
		return err
	}
	return nil
}

// Get retrieves a booking by ID.
func (r *GormBookingRepository) Get(ctx context.Context, id kernel.UUID) (*booking.Booking, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BookingDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("booking", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByBookingID retrieves a booking by its human readable reference.
func (r *GormBookingRepository) GetByBookingID(ctx context.Context, bookingID string) (*booking.Booking, error) {
	var dto BookingDTO
	if err := r.db.WithContext(ctx).First(&dto, "booking_id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("bookingId", bookingID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateFields writes only the payload's columns. Deleted fields become NULL, which
// toDomain reads back as absent.
func (r *GormBookingRepository) UpdateFields(ctx context.Context, id kernel.UUID, payload booking.PersistencePayload) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if payload.IsEmpty() {
		return nil
	}

	builder := qb.Update("bookings")
	for _, u := range payload.Updates() {
		column, ok := columns[u.Field]
		if !ok {
			return errs.NewValueIsInvalidErrorWithCause("payload field", fmt.Errorf("%q has no column", u.Field))
		}

		if u.Delete {
			builder = builder.Set(column, nil)
			continue
		}

		value, err := columnValue(u)
		if err != nil {
			return err
		}
		builder = builder.Set(column, value)
	}
	builder = builder.Where(sq.Eq{"id": id.String()})

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Exec(query, args...)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("booking", id.String())
	}

	return nil
}

func columnValue(u booking.FieldUpdate) (any, error) {
	switch v := u.Value.(type) {
	case booking.Status:
		return v.Code(), nil
	case string, float64:
		return v, nil
	case map[booking.Status]time.Time:
		return CompletedAtJSON(booking.CompletedAtCodes(v)), nil
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"payload value",
			fmt.Errorf("%T is not supported for %s", u.Value, u.Field),
		)
	}
}
