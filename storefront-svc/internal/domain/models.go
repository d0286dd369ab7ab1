package domain

import "time"

type Restaurant struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Cuisine      []string  `json:"cuisine"`
	Rating       float64   `json:"rating"`
	DeliveryTime string    `json:"delivery_time"`
	PriceRange   string    `json:"price_range"`
	IsOpen       bool      `json:"is_open"`
	Featured     bool      `json:"featured"`
	Address      string    `json:"address,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// MenuItem prices are whole currency units.
type MenuItem struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        int64     `json:"price"`
	Category     string    `json:"category"`
	IsVeg        bool      `json:"is_veg"`
	IsBestseller bool      `json:"is_bestseller"`
	Rating       float64   `json:"rating,omitempty"`
	ReviewCount  int       `json:"review_count,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

type Order struct {
	ID                  string      `json:"id"`
	SessionID           string      `json:"session_id"`
	RestaurantID        string      `json:"restaurant_id"`
	RestaurantName      string      `json:"restaurant_name"`
	Subtotal            int64       `json:"subtotal"`
	DeliveryFee         int64       `json:"delivery_fee"`
	Taxes               int64       `json:"taxes"`
	TotalAmount         int64       `json:"total_amount"`
	Status              OrderStatus `json:"status"`
	DeliveryAddress     string      `json:"delivery_address"`
	SpecialInstructions string      `json:"special_instructions,omitempty"`
	QRCode              string      `json:"qr_code,omitempty"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
	Items               []OrderItem `json:"items"`
}

type OrderItem struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	Price      int64  `json:"price"`
}

const (
	EventOrderPlaced        = "order_placed"
	EventOrderStatusChanged = "order_status_changed"
)

type OrderEvent struct {
	Type         string           `json:"type"`
	OrderID      string           `json:"order_id"`
	RestaurantID string           `json:"restaurant_id"`
	Status       OrderStatus      `json:"status"`
	TotalAmount  int64            `json:"total_amount"`
	Items        []OrderEventItem `json:"items,omitempty"`
	Timestamp    time.Time        `json:"timestamp"`
}

type OrderEventItem struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}
