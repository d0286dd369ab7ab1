package service

import (
	"context"
	"errors"

	"foodcourt/storefront-svc/internal/assistant"
	"foodcourt/storefront-svc/internal/domain"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrSessionNotFound = errors.New("session not found")
	ErrItemNotFound    = errors.New("menu item not found")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrMissingAddress  = errors.New("delivery address is required")
	ErrInvalidStatus   = errors.New("unknown order status")
	ErrOrderClosed     = errors.New("order is already delivered or cancelled")
)

type CatalogRepository interface {
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error)
	CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	DeleteRestaurant(ctx context.Context, id string) (int64, error)

	ListMenuItems(ctx context.Context) ([]domain.MenuItem, error)
	ListMenu(ctx context.Context, restaurantID string) ([]domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
	UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error
	DeleteMenuItem(ctx context.Context, restaurantID, itemID string) (int64, error)
}

// CatalogCache holds the last catalog snapshot. A miss is (nil, false, nil).
type CatalogCache interface {
	Get(ctx context.Context) (*assistant.Catalog, bool, error)
	Set(ctx context.Context, catalog *assistant.Catalog) error
	Invalidate(ctx context.Context) error
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context, sessionID string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	SaveQRCode(ctx context.Context, id string, qr []byte) error
	GetQRCode(ctx context.Context, id string) ([]byte, error)
}

type OrderPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

// CatalogSource hands out the snapshot a new session works against.
type CatalogSource interface {
	Snapshot(ctx context.Context) (*assistant.Catalog, error)
}

type CatalogServiceInterface interface {
	CatalogSource
	Restaurants(ctx context.Context, cuisine string) ([]domain.Restaurant, error)
	Restaurant(ctx context.Context, id string) (*domain.Restaurant, error)
	Menu(ctx context.Context, restaurantID string) ([]domain.MenuItem, error)

	CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	DeleteRestaurant(ctx context.Context, id string) error
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
	UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error
	DeleteMenuItem(ctx context.Context, restaurantID, itemID string) error
}

type SessionServiceInterface interface {
	Create(ctx context.Context) (*Session, error)
	Get(id string) (*Session, error)
	Close(id string) error
	AddItem(sessionID, itemID string) (*Session, error)
	UpdateQuantity(sessionID, itemID string, quantity int) (*Session, error)
	RemoveItem(sessionID, itemID string) (*Session, error)
	ClearCart(sessionID string) (*Session, error)
}

type OrderServiceInterface interface {
	Checkout(ctx context.Context, sess *Session, req CheckoutRequest) (*domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, sessionID string) ([]domain.Order, error)
	QRCode(ctx context.Context, id string) ([]byte, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}

var (
	_ CatalogServiceInterface = (*CatalogService)(nil)
	_ SessionServiceInterface = (*SessionService)(nil)
	_ OrderServiceInterface   = (*OrderService)(nil)
)
