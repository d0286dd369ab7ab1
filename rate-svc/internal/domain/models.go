package domain

import "time"

type Review struct {
	ID           int64     `json:"id"`
	MenuItemID   string    `json:"menu_item_id"`
	OrderID      string    `json:"order_id"`
	RestaurantID string    `json:"restaurant_id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

const EventNewReview = "new_review"

type ReviewEvent struct {
	Type         string    `json:"type"`
	MenuItemID   string    `json:"menu_item_id"`
	RestaurantID string    `json:"restaurant_id"`
	OrderID      string    `json:"order_id"`
	Rating       int       `json:"rating"`
	Timestamp    time.Time `json:"timestamp"`
}
