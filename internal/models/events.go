package models

import "time"

// Event types
const (
	EventTypeOrderSubmitted = "ORDER_SUBMITTED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderSubmittedEvent is published when a checkout attempt succeeds. It is the
// order sink for the storefront: downstream consumers pick the order up from
// the topic, the HTTP layer keeps no order state.
type OrderSubmittedEvent struct {
	BaseEvent
	OrderID     string     `json:"order_id"`
	UserData    UserData   `json:"user_data"`
	Items       []CartItem `json:"items"`
	TotalAmount float64    `json:"total_amount"`
}
