package service

import (
	"context"
	"math/rand"
	"time"

	"storefront-service/internal/broker"
	"storefront-service/internal/models"
	"storefront-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutService is the mock checkout provider: a fixed processing delay
// followed by a random accept/decline, independent of the submitted data.
type CheckoutService struct {
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
	delay          time.Duration
	failureRate    float64
}

// NewCheckoutService creates a checkout service. eventPublisher may be nil;
// accepted orders are then only logged instead of published.
func NewCheckoutService(eventPublisher *broker.EventPublisher, delay time.Duration, failureRate float64) *CheckoutService {
	return &CheckoutService{
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
		delay:          delay,
		failureRate:    failureRate,
	}
}

// Process runs one checkout attempt. Returns the order ID and true on accept,
// false on decline. The outcome does not depend on req.
func (s *CheckoutService) Process(ctx context.Context, req *models.CheckoutRequest) (string, bool) {
	ctx, span := util.StartSpan(ctx, "CheckoutService.Process")
	defer span.End()

	util.CheckoutAttemptsTotal.Inc()
	start := time.Now()
	defer func() {
		util.CheckoutProcessingLatency.Observe(time.Since(start).Seconds())
	}()

	time.Sleep(s.delay)

	if rand.Float64() < s.failureRate {
		util.CheckoutFailedTotal.Inc()
		s.logger.Warn("Checkout declined",
			zap.Int("items", len(req.CartItems)),
			zap.Float64("total", req.Total()))
		return "", false
	}

	orderID := uuid.New().String()
	util.CheckoutSuccessTotal.Inc()
	s.logger.Info("Checkout accepted",
		zap.String("order_id", orderID),
		zap.Int("items", len(req.CartItems)),
		zap.Float64("total", req.Total()))

	if s.eventPublisher != nil {
		event := &models.OrderSubmittedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeOrderSubmitted,
				Timestamp: time.Now(),
			},
			OrderID:     orderID,
			UserData:    req.UserData,
			Items:       req.CartItems,
			TotalAmount: req.Total(),
		}

		if err := s.eventPublisher.PublishOrderSubmitted(ctx, event); err != nil {
			s.logger.Error("Failed to publish OrderSubmitted event", zap.Error(err))
		}
	}

	return orderID, true
}
