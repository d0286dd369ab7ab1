package domain

import "time"

const (
	EventOrderPlaced        = "order_placed"
	EventOrderStatusChanged = "order_status_changed"
	EventNewReview          = "new_review"
)

// Event is the union of what arrives on the order and review topics.
type Event struct {
	Type         string      `json:"type"`
	OrderID      string      `json:"order_id"`
	RestaurantID string      `json:"restaurant_id"`
	MenuItemID   string      `json:"menu_item_id,omitempty"`
	Status       string      `json:"status,omitempty"`
	Rating       int         `json:"rating,omitempty"`
	Items        []EventItem `json:"items,omitempty"`
	Timestamp    time.Time   `json:"timestamp"`
}

type EventItem struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}
