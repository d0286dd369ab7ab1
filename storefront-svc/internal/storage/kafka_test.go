package storage

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodcourt/storefront-svc/internal/domain"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func TestKafkaPublisher_PublishOrderEvent(t *testing.T) {
	writer := &recordingWriter{}
	publisher := NewKafkaPublisher(writer)

	event := domain.OrderEvent{
		Type:    domain.EventOrderPlaced,
		OrderID: "o1",
		Status:  domain.StatusPending,
		Items:   []domain.OrderEventItem{{MenuItemID: "b1", Quantity: 2}},
	}
	require.NoError(t, publisher.PublishOrderEvent(context.Background(), event))

	require.Len(t, writer.msgs, 1)
	assert.Equal(t, []byte("o1"), writer.msgs[0].Key)

	var decoded domain.OrderEvent
	require.NoError(t, json.Unmarshal(writer.msgs[0].Value, &decoded))
	assert.Equal(t, event.Items, decoded.Items)
	assert.Equal(t, domain.EventOrderPlaced, decoded.Type)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	publisher := NewKafkaPublisher(&recordingWriter{err: errors.New("broker down")})

	err := publisher.PublishOrderEvent(context.Background(), domain.OrderEvent{OrderID: "o1"})

	assert.EqualError(t, err, "broker down")
}
