package service

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"

	"foodcourt/tracker-svc/internal/domain"
	"foodcourt/tracker-svc/internal/storage"
)

type StoreInterface interface {
	AppendStatus(ctx context.Context, orderID, status string, at time.Time) error
	RecordSale(ctx context.Context, items []domain.EventItem, at time.Time) error
	UpdateItemRating(ctx context.Context, menuItemID string) error
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context) error
	Process(ctx context.Context, event domain.Event) error
}

var (
	_ StoreInterface    = (*storage.Store)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
	_ MessageReader     = (*kafka.Reader)(nil)
)
