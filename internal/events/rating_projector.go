package events

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	reviewDomain "github.com/staynest/service-rental/internal/domain/review"
	"github.com/staynest/service-rental/internal/platform/kafka"
)

// RatingProjector consumes review events and keeps the cached host rating
// summaries current, so host profile reads stay off the reviews table.
type RatingProjector struct {
	consumer *kafka.Consumer
	reviews  reviewDomain.ReviewRepository
	cache    reviewDomain.RatingCache
	logger   *zap.Logger
}

// NewRatingProjector creates a RatingProjector consuming the review topic.
func NewRatingProjector(
	brokers []string,
	groupID string,
	reviews reviewDomain.ReviewRepository,
	cache reviewDomain.RatingCache,
	logger *zap.Logger,
) *RatingProjector {
	consumer := kafka.NewConsumer(brokers, groupID, TopicReviewEvents, logger)
	return &RatingProjector{
		consumer: consumer,
		reviews:  reviews,
		cache:    cache,
		logger:   logger,
	}
}

// Start begins consuming review events. This blocks until the context is cancelled.
func (p *RatingProjector) Start(ctx context.Context) error {
	return p.consumer.Consume(ctx, p.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (p *RatingProjector) Close() error {
	return p.consumer.Close()
}

func (p *RatingProjector) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		p.logger.Error("failed to parse cloud event from review topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case ReviewCreated:
		return p.handleReviewCreated(ctx, cloudEvent)
	default:
		p.logger.Debug("ignoring unhandled review event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (p *RatingProjector) handleReviewCreated(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt ReviewCreatedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		p.logger.Error("failed to parse ReviewCreatedEvent data", zap.Error(err))
		return nil // Don't retry malformed data
	}

	if err := p.reproject(ctx, evt.HostID); err != nil {
		p.logger.Error("failed to reproject host rating",
			zap.String("host_id", evt.HostID.String()),
			zap.Error(err),
		)
		return err
	}

	p.logger.Info("host rating reprojected",
		zap.String("host_id", evt.HostID.String()),
		zap.String("review_id", evt.ReviewID.String()),
	)
	return nil
}

func (p *RatingProjector) reproject(ctx context.Context, hostID uuid.UUID) error {
	reviews, err := p.reviews.FindByHostID(ctx, hostID)
	if err != nil {
		return err
	}
	return p.cache.SetHostRating(ctx, hostID, reviewDomain.Summarize(reviews))
}
