package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"foodcourt/tracker-svc/internal/domain"
)

var ErrIncompleteEvent = errors.New("event is missing required fields")

const (
	defaultRetryBackoff = 500 * time.Millisecond
	defaultMaxBackoff   = 30 * time.Second
)

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
	Log    *slog.Logger

	// RetryBackoff is the first wait after a failed read. It doubles on each
	// consecutive failure up to MaxBackoff.
	RetryBackoff time.Duration
	MaxBackoff   time.Duration
}

func NewConsumer(reader MessageReader, store StoreInterface, log *slog.Logger) *Consumer {
	return &Consumer{
		Reader:       reader,
		Store:        store,
		Log:          log,
		RetryBackoff: defaultRetryBackoff,
		MaxBackoff:   defaultMaxBackoff,
	}
}

// Start reads until ctx is cancelled or the reader is closed. Bad payloads
// and failed updates are logged and skipped so one poisoned message cannot
// stall the topic. Failed reads are retried with exponential backoff.
func (c *Consumer) Start(ctx context.Context) error {
	c.Log.Info("consumer started")
	backoff := c.RetryBackoff
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("reader closed: %w", err)
			}
			c.Log.Error("read message failed", slog.Any("error", err), slog.Duration("retry_in", backoff))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(backoff):
			}
			backoff = c.nextBackoff(backoff)
			continue
		}
		backoff = c.RetryBackoff

		var event domain.Event
		if err := json.Unmarshal(message.Value, &event); err != nil {
			c.Log.Warn("skipping malformed message",
				slog.String("topic", message.Topic),
				slog.Int64("offset", message.Offset),
				slog.Any("error", err))
			continue
		}

		if err := c.Process(ctx, event); err != nil {
			c.Log.Error("processing event failed",
				slog.String("type", event.Type),
				slog.String("order_id", event.OrderID),
				slog.Any("error", err))
		}
	}
}

func (c *Consumer) nextBackoff(current time.Duration) time.Duration {
	next := current * 2
	if next <= 0 {
		next = defaultRetryBackoff
	}
	if c.MaxBackoff > 0 && next > c.MaxBackoff {
		return c.MaxBackoff
	}
	return next
}

func (c *Consumer) Process(ctx context.Context, event domain.Event) error {
	switch event.Type {
	case domain.EventOrderPlaced:
		if event.OrderID == "" {
			return ErrIncompleteEvent
		}
		status := event.Status
		if status == "" {
			status = "pending"
		}
		if err := c.Store.AppendStatus(ctx, event.OrderID, status, event.Timestamp); err != nil {
			return fmt.Errorf("append status: %w", err)
		}
		if err := c.Store.RecordSale(ctx, event.Items, event.Timestamp); err != nil {
			return fmt.Errorf("record sale: %w", err)
		}
	case domain.EventOrderStatusChanged:
		if event.OrderID == "" || event.Status == "" {
			return ErrIncompleteEvent
		}
		if err := c.Store.AppendStatus(ctx, event.OrderID, event.Status, event.Timestamp); err != nil {
			return fmt.Errorf("append status: %w", err)
		}
	case domain.EventNewReview:
		if event.MenuItemID == "" {
			return ErrIncompleteEvent
		}
		if err := c.Store.UpdateItemRating(ctx, event.MenuItemID); err != nil {
			return fmt.Errorf("update rating: %w", err)
		}
	default:
		c.Log.Debug("ignoring event", slog.String("type", event.Type))
		return nil
	}

	c.Log.Info("event processed", slog.String("type", event.Type), slog.String("order_id", event.OrderID))
	return nil
}
