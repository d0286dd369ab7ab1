// Package tracking holds the Redis layout shared by the tracker, which
// writes it, and analytics, which reads it.
package tracking

import "time"

const (
	PopularAllTimeKey = "popular:alltime"
	dailyKeyPrefix    = "popular:daily:"
	timelineKeyPrefix = "order:timeline:"
	ratingKeyPrefix   = "item:rating:"

	// DailyRetention keeps a week of daily popularity boards.
	DailyRetention = 7 * 24 * time.Hour
)

// TimelineEntry is one status transition of an order.
type TimelineEntry struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
}

func TimelineKey(orderID string) string {
	return timelineKeyPrefix + orderID
}

func PopularDailyKey(day time.Time) string {
	return dailyKeyPrefix + day.UTC().Format("2006-01-02")
}

func ItemRatingKey(menuItemID string) string {
	return ratingKeyPrefix + menuItemID
}
