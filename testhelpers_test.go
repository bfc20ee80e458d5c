//go:build integration

package main_test

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/staynest/service-rental/internal/application"
	bookingDomain "github.com/staynest/service-rental/internal/domain/booking"
	propertyDomain "github.com/staynest/service-rental/internal/domain/property"
	rentalEvents "github.com/staynest/service-rental/internal/events"
	"github.com/staynest/service-rental/internal/platform/kafka"
	"github.com/staynest/service-rental/internal/repository"
)

// approvedStayExclusion mirrors the production migration so the overlap
// backstop is active in integration tests.
const approvedStayExclusion = `
CREATE EXTENSION IF NOT EXISTS btree_gist;
ALTER TABLE bookings ADD CONSTRAINT bookings_no_approved_overlap
    EXCLUDE USING gist (
        property_id WITH =,
        daterange(start_date, end_date) WITH &&
    ) WHERE (status = 'approved');
`

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	Redis        *redis.Client
	KafkaBrokers []string
	Cleanup      func()
}

// rentalStack holds wired-up rental service components.
type rentalStack struct {
	Bookings  *application.BookingService
	Reviews   *application.ReviewService
	Projector *rentalEvents.RatingProjector
	Cache     *repository.RedisRatingCache
	Cleanup   func()
}

// setupContainers starts PostgreSQL, Redis and Kafka testcontainers and
// returns connected clients.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	// Start PostgreSQL container with log-based wait strategy.
	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_rental",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_rental sslmode=disable", pgHost, pgPort.Port())

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(
		&repository.UserModel{},
		&repository.PropertyModel{},
		&repository.BookingModel{},
		&repository.ReviewModel{},
	))
	require.NoError(t, db.Exec(approvedStayExclusion).Error)

	// Start Redis container.
	redisReq := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor: wait.ForLog("Ready to accept connections").
			WithStartupTimeout(30 * time.Second),
	}
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: redisReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start Redis container")

	redisHost, err := redisContainer.Host(ctx)
	require.NoError(t, err)
	redisPort, err := redisContainer.MappedPort(ctx, "6379")
	require.NoError(t, err)

	redisClient := redis.NewClient(&redis.Options{
		Addr: net.JoinHostPort(redisHost, redisPort.Port()),
	})
	require.NoError(t, redisClient.Ping(ctx).Err())

	// Start Kafka container using confluent-local (supports KRaft natively).
	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	// Pre-create required topics.
	createTopics(t, kafkaBrokers, rentalEvents.TopicBookingEvents, rentalEvents.TopicReviewEvents)

	cleanup := func() {
		_ = redisClient.Close()
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
		if err := redisContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Redis container: %v", err)
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{
		DB:           db,
		Redis:        redisClient,
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

// setupRentalStack wires up the booking and review services against real
// infrastructure.
func setupRentalStack(t *testing.T, infra *testInfra) *rentalStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	bookingRepo := repository.NewGormBookingRepository(infra.DB)
	propertyRepo := repository.NewGormPropertyRepository(infra.DB)
	reviewRepo := repository.NewGormReviewRepository(infra.DB)
	ratingCache := repository.NewRedisRatingCache(infra.Redis)

	producer := kafka.NewProducer(infra.KafkaBrokers, logger)
	clock := clockwork.NewRealClock()

	bookingSvc := application.NewBookingService(
		bookingRepo, propertyRepo,
		bookingDomain.NewNightlyRatePricing(),
		producer, clock, logger,
	)
	reviewSvc := application.NewReviewService(
		reviewRepo, bookingRepo, propertyRepo,
		ratingCache, producer, clock, logger,
	)

	groupID := fmt.Sprintf("test-projector-%s", uuid.New().String()[:8])
	projector := rentalEvents.NewRatingProjector(infra.KafkaBrokers, groupID, reviewRepo, ratingCache, logger)

	return &rentalStack{
		Bookings:  bookingSvc,
		Reviews:   reviewSvc,
		Projector: projector,
		Cache:     ratingCache,
		Cleanup: func() {
			_ = producer.Close()
			_ = projector.Close()
		},
	}
}

// seedProperty inserts a property listing and returns its aggregate.
func seedProperty(t *testing.T, db *gorm.DB, ownerID uuid.UUID) *propertyDomain.Property {
	t.Helper()
	prop, err := propertyDomain.NewProperty(
		ownerID,
		"Integration test flat", "", "1 Harbour Way", "Seattle", "98101",
		10000,
		1, 1, 700,
		4, 1, 30,
		"", "",
		propertyDomain.Amenities{Wifi: true},
	)
	require.NoError(t, err)

	repo := repository.NewGormPropertyRepository(db)
	require.NoError(t, repo.Save(context.Background(), prop))
	return prop
}

// seedCompletedBooking inserts an approved booking whose stay already
// ended, so it is eligible for review.
func seedCompletedBooking(t *testing.T, db *gorm.DB, propertyID, tenantID uuid.UUID) uuid.UUID {
	t.Helper()
	now := time.Now().UTC()
	model := repository.BookingModel{
		ID:              uuid.New(),
		PropertyID:      propertyID,
		TenantID:        tenantID,
		StartDate:       now.AddDate(0, 0, -10),
		EndDate:         now.AddDate(0, 0, -5),
		Guests:          2,
		TotalPriceCents: 50000,
		Status:          "approved",
		Version:         2,
		CreatedAt:       now.AddDate(0, 0, -12),
		UpdatedAt:       now.AddDate(0, 0, -11),
	}
	require.NoError(t, db.Create(&model).Error, "failed to seed booking")
	return model.ID
}

// waitForCachedRating polls Redis until a rating summary for the host
// appears.
func waitForCachedRating(t *testing.T, cache *repository.RedisRatingCache, hostID uuid.UUID, timeout time.Duration) {
	t.Helper()
	require.Eventually(t, func() bool {
		summary, err := cache.GetHostRating(context.Background(), hostID)
		return err == nil && summary != nil
	}, timeout, 200*time.Millisecond, "host rating was not projected into the cache")
}

// consumeOneEvent reads from a Kafka topic until it finds an event of the expected type.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType string, timeout time.Duration) kafka.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		ce, err := kafka.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if ce.Type == expectedType {
			return ce
		}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
