package tests

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodcourt/tracker-svc/internal/domain"
)

// Payloads as written by the storefront and rate services.
func TestEvent_DecodesProducerPayloads(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    domain.Event
	}{
		{
			name: "order_placed",
			payload: `{"type":"order_placed","order_id":"o1","restaurant_id":"r1","status":"pending",
				"total_amount":1890,"items":[{"menu_item_id":"b1","quantity":2}],"timestamp":"2024-05-01T12:00:00Z"}`,
			want: domain.Event{
				Type: domain.EventOrderPlaced, OrderID: "o1", RestaurantID: "r1", Status: "pending",
				Items:     []domain.EventItem{{MenuItemID: "b1", Quantity: 2}},
				Timestamp: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
			},
		},
		{
			name:    "order_status_changed",
			payload: `{"type":"order_status_changed","order_id":"o1","restaurant_id":"r1","status":"preparing","total_amount":1890,"timestamp":"2024-05-01T12:05:00Z"}`,
			want: domain.Event{
				Type: domain.EventOrderStatusChanged, OrderID: "o1", RestaurantID: "r1", Status: "preparing",
				Timestamp: time.Date(2024, 5, 1, 12, 5, 0, 0, time.UTC),
			},
		},
		{
			name:    "new_review",
			payload: `{"type":"new_review","menu_item_id":"b1","restaurant_id":"r1","order_id":"o1","rating":4,"timestamp":"2024-05-02T09:00:00Z"}`,
			want: domain.Event{
				Type: domain.EventNewReview, MenuItemID: "b1", RestaurantID: "r1", OrderID: "o1", Rating: 4,
				Timestamp: time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC),
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			var got domain.Event
			require.NoError(t, json.Unmarshal([]byte(testCase.payload), &got))
			assert.Equal(t, testCase.want, got)
		})
	}
}
