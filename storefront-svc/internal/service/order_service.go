package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"foodcourt/storefront-svc/internal/cart"
	"foodcourt/storefront-svc/internal/domain"
)

type CheckoutRequest struct {
	DeliveryAddress     string `json:"delivery_address"`
	SpecialInstructions string `json:"special_instructions"`
}

type OrderService struct {
	repo      OrderRepository
	publisher OrderPublisher
	qrEncoder QRGenerator
	log       *slog.Logger
	now       func() time.Time
}

func NewOrderService(repo OrderRepository, publisher OrderPublisher, qr QRGenerator, log *slog.Logger) *OrderService {
	return &OrderService{repo: repo, publisher: publisher, qrEncoder: qr, log: log, now: time.Now}
}

// Checkout turns the session cart into a pending order and clears the cart.
// The order is attributed to the restaurant of the first cart line.
func (s *OrderService) Checkout(ctx context.Context, sess *Session, req CheckoutRequest) (*domain.Order, error) {
	lines := sess.Cart.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	address := strings.TrimSpace(req.DeliveryAddress)
	if address == "" {
		return nil, ErrMissingAddress
	}

	breakdown := cart.PriceBreakdown(lines)
	now := s.now()
	order := &domain.Order{
		ID:                  uuid.NewString(),
		SessionID:           sess.ID,
		RestaurantID:        lines[0].MenuItem.RestaurantID,
		RestaurantName:      lines[0].RestaurantName,
		Subtotal:            breakdown.Subtotal,
		DeliveryFee:         breakdown.DeliveryFee,
		Taxes:               breakdown.Taxes,
		TotalAmount:         breakdown.Total,
		Status:              domain.StatusPending,
		DeliveryAddress:     address,
		SpecialInstructions: strings.TrimSpace(req.SpecialInstructions),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	for _, line := range lines {
		order.Items = append(order.Items, domain.OrderItem{
			MenuItemID: line.MenuItem.ID,
			Name:       line.MenuItem.Name,
			Quantity:   line.Quantity,
			Price:      line.MenuItem.Price,
		})
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if s.qrEncoder != nil {
		if qr, err := s.qrEncoder.Generate(order.ID); err == nil {
			_ = s.repo.SaveQRCode(ctx, order.ID, qr)
		}
	}
	order.QRCode = QRLink(order.ID)

	sess.Cart.RemoveOrdered(lines)

	s.publish(ctx, domain.EventOrderPlaced, order)
	s.log.Info("order placed",
		slog.String("order_id", order.ID),
		slog.String("session_id", sess.ID),
		slog.Int64("total", order.TotalAmount),
	)
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	order.QRCode = QRLink(order.ID)
	return order, nil
}

// List returns the orders of one session, or all orders when sessionID is
// empty.
func (s *OrderService) List(ctx context.Context, sessionID string) ([]domain.Order, error) {
	return s.repo.ListOrders(ctx, sessionID)
}

func (s *OrderService) QRCode(ctx context.Context, id string) ([]byte, error) {
	qr, err := s.repo.GetQRCode(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if len(qr) == 0 && s.qrEncoder != nil {
		if regenerated, err := s.qrEncoder.Generate(id); err == nil {
			_ = s.repo.SaveQRCode(ctx, id, regenerated)
			return regenerated, nil
		}
	}
	return qr, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if order.Status.Terminal() {
		return nil, ErrOrderClosed
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	order.Status = status
	order.UpdatedAt = s.now()
	order.QRCode = QRLink(order.ID)
	s.publish(ctx, domain.EventOrderStatusChanged, order)
	return order, nil
}

// publish failures are logged; the order is already stored.
func (s *OrderService) publish(ctx context.Context, eventType string, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	event := domain.OrderEvent{
		Type:         eventType,
		OrderID:      order.ID,
		RestaurantID: order.RestaurantID,
		Status:       order.Status,
		TotalAmount:  order.TotalAmount,
		Timestamp:    s.now(),
	}
	if eventType == domain.EventOrderPlaced {
		for _, item := range order.Items {
			event.Items = append(event.Items, domain.OrderEventItem{MenuItemID: item.MenuItemID, Quantity: item.Quantity})
		}
	}
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		s.log.Error("publish order event failed",
			slog.String("order_id", order.ID),
			slog.String("type", eventType),
			slog.Any("error", err),
		)
	}
}
