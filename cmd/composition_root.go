package cmd

import (
	"log/slog"
	"strings"

	"repairbooking/internal/adapters/out/kafka"
	"repairbooking/internal/adapters/out/postgres"
	"repairbooking/internal/adapters/out/postgres/bookingrepo"
	"repairbooking/internal/core/application/usecases/commands"
	"repairbooking/internal/core/application/usecases/queries"
	"repairbooking/internal/core/domain/model/kernel"
	"repairbooking/internal/core/domain/services"
	"repairbooking/internal/jobs"
	"repairbooking/internal/pkg/retrier"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  *kafka.Publisher
	projector  *services.TimelineProjector
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	brokers := strings.Split(config.KafkaHost, ",")
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  kafka.NewPublisher(kafka.NewWriter(brokers, config.KafkaBookingStatusChangedTopic)),
		projector:  services.NewDefaultTimelineProjector(),
		clock:      kernel.SystemClock{},
		logger:     logger,
	}
}

func (c *CompositionRoot) Clock() kernel.Clock {
	return c.clock
}

func (c *CompositionRoot) CreateCreateBookingCommandHandler() commands.CreateBookingCommandHandler {
	var f commands.BookingUoWFactory = FuncBookingUoWFactory(func() commands.BookingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateBookingCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateChangeBookingStatusCommandHandler() commands.ChangeBookingStatusCommandHandler {
	var f commands.BookingUoWFactory = FuncBookingUoWFactory(func() commands.BookingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeBookingStatusCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreatePublishOutboxEventsCommandHandler() commands.PublishOutboxEventsCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPublishOutboxEventsCommandHandler(f, c.publisher, retrier.New(retrier.DefaultConfig()), c.clock)
}

func (c *CompositionRoot) CreateGetBookingQueryHandler() queries.GetBookingQueryHandler {
	return queries.NewGetBookingQueryHandler(bookingrepo.NewGormBookingRepository(c.gormDB), c.projector, c.clock)
}

func (c *CompositionRoot) CreateGetBookingsQueryHandler() queries.GetBookingsQueryHandler {
	return queries.NewGetBookingsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCountBookingsByStatusQueryHandler() queries.CountBookingsByStatusQueryHandler {
	return queries.NewCountBookingsByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	relay, err := jobs.NewOutboxRelayJob(
		c.CreatePublishOutboxEventsCommandHandler(),
		c.config.OutboxBatchSize,
		c.config.OutboxRelaySchedule,
		c.logger,
	)
	if err != nil {
		return nil, err
	}
	metricsJob := jobs.NewBookingMetricsJob(c.CreateCountBookingsByStatusQueryHandler(), c.config.MetricsSchedule, c.logger)
	return jobs.NewJobManager(relay, metricsJob), nil
}

// Close releases the broker connection.
func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

type FuncBookingUoWFactory func() commands.BookingUoW

func (f FuncBookingUoWFactory) Create() commands.BookingUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
