package domain

import "time"

type OrderPlacedEvent struct {
	Phone    string    `json:"phone"`
	Date     int       `json:"date"`
	Total    float64   `json:"total"`
	Lines    int       `json:"lines"`
	PlacedAt time.Time `json:"placedAt"`
}

type OrderUpdatedEvent struct {
	OrderID       int       `json:"orderId"`
	Total         float64   `json:"total"`
	ChangeProduct bool      `json:"changeProduct"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type OrderStatusEvent struct {
	OrderID   int         `json:"orderId"`
	Status    OrderStatus `json:"status"`
	ChangedAt time.Time   `json:"changedAt"`
}
