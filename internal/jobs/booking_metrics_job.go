package jobs

import (
	"context"
	"log/slog"

	"repairbooking/internal/core/application/usecases/queries"
	"repairbooking/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// DefaultBookingMetricsSchedule refreshes the gauge every thirty seconds.
const DefaultBookingMetricsSchedule = "*/30 * * * * *"

type CountBookingsByStatusHandler interface {
	Handle(
		ctx context.Context,
		query queries.CountBookingsByStatusQuery,
	) (queries.CountBookingsByStatusQueryResponse, error)
}

// BookingMetricsJob keeps the bookings_by_status gauge in line with storage.
type BookingMetricsJob struct {
	handler  CountBookingsByStatusHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewBookingMetricsJob(handler CountBookingsByStatusHandler, schedule string, logger *slog.Logger) *BookingMetricsJob {
	if schedule == "" {
		schedule = DefaultBookingMetricsSchedule
	}
	return &BookingMetricsJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "booking_metrics_job"),
	}
}

// Start refreshes the gauge once, then on every tick of the schedule.
func (j *BookingMetricsJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	go j.run(context.Background())

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Booking metrics job started", "schedule", j.schedule)
	return nil
}

func (j *BookingMetricsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Booking metrics job stopped")
}

func (j *BookingMetricsJob) run(ctx context.Context) {
	counts, err := j.handler.Handle(ctx, queries.NewCountBookingsByStatusQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Booking metrics job failed", "error", err)
		return
	}
	for status, count := range counts {
		metrics.BookingsByStatus.WithLabelValues(status.Code()).Set(float64(count))
	}
}
