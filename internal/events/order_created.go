package events

import "time"

const EventTypeOrderCreated = "OrderCreated"

type OrderCreated struct {
	EventType string      `json:"eventType"`
	OrderID   string      `json:"orderId"`
	UserID    string      `json:"userId"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"`
	Timestamp time.Time   `json:"timestamp"`
}

type OrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}
