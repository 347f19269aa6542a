package worker

import (
	"context"
	"log"

	"storefront-service/internal/broker"
	"storefront-service/internal/models"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// OrderWorker is the order sink: it consumes submitted orders from the order
// topic and records them. The HTTP layer keeps no order state of its own.
type OrderWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	logger       *zap.Logger
}

// NewOrderWorker creates a new order worker
func NewOrderWorker(consumer *broker.Consumer) *OrderWorker {
	w := &OrderWorker{
		consumer: consumer,
		logger:   util.GetLogger(),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnOrderSubmitted(w.handleOrderSubmitted)
	w.eventHandler = eventHandler

	return w
}

func (w *OrderWorker) handleOrderSubmitted(ctx context.Context, event *models.OrderSubmittedEvent) error {
	util.OrdersReceivedTotal.Inc()
	w.logger.Info("Order received",
		zap.String("order_id", event.OrderID),
		zap.String("email", event.UserData.Email),
		zap.Int("items", len(event.Items)),
		zap.Float64("total", event.TotalAmount))
	return nil
}

// Start starts the worker
func (w *OrderWorker) Start(ctx context.Context) error {
	log.Println("Starting order worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *OrderWorker) Stop() error {
	log.Println("Stopping order worker...")
	return w.consumer.Close()
}
