package domain

import (
	"time"

	"foodcourt/tracking"
)

type ItemAnalytics struct {
	MenuItemID     string  `json:"menu_item_id"`
	Name           string  `json:"name"`
	RestaurantID   string  `json:"restaurant_id"`
	RestaurantName string  `json:"restaurant_name"`
	Score          float64 `json:"score"`
	Rating         float64 `json:"rating"`
	ReviewCount    int     `json:"review_count"`
}

// ScoredMember is one entry of a popularity board.
type ScoredMember struct {
	Member string
	Score  float64
}

type Dashboard struct {
	TotalOrders      int             `json:"total_orders"`
	TotalRestaurants int             `json:"total_restaurants"`
	Revenue          int64           `json:"revenue"`
	PendingOrders    int             `json:"pending_orders"`
	PreparingOrders  int             `json:"preparing_orders"`
	DeliveredOrders  int             `json:"delivered_orders"`
	StatusBreakdown  map[string]int  `json:"status_breakdown"`
	TopItems         []ItemAnalytics `json:"top_items"`
}

type OrderSummary struct {
	OrderID   string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Timeline struct {
	OrderID string                   `json:"order_id"`
	Status  string                   `json:"status"`
	Entries []tracking.TimelineEntry `json:"entries"`
}
