package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"foodcourt/tracker-svc/internal/domain"
	"foodcourt/tracking"
)

type Store struct {
	db          *sql.DB
	rdb         *redis.Client
	timelineTTL time.Duration
}

func NewStore(db *sql.DB, rdb *redis.Client, timelineTTL time.Duration) *Store {
	return &Store{
		db:          db,
		rdb:         rdb,
		timelineTTL: timelineTTL,
	}
}

func (s *Store) AppendStatus(ctx context.Context, orderID, status string, at time.Time) error {
	if at.IsZero() {
		at = time.Now()
	}
	entry, err := json.Marshal(tracking.TimelineEntry{Status: status, At: at.UTC()})
	if err != nil {
		return err
	}

	key := tracking.TimelineKey(orderID)
	pipe := s.rdb.TxPipeline()
	pipe.RPush(ctx, key, entry)
	if s.timelineTTL > 0 {
		pipe.Expire(ctx, key, s.timelineTTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// RecordSale bumps the all-time and the daily popularity boards by the
// ordered quantity of each item.
func (s *Store) RecordSale(ctx context.Context, items []domain.EventItem, at time.Time) error {
	if len(items) == 0 {
		return nil
	}
	if at.IsZero() {
		at = time.Now()
	}

	dailyKey := tracking.PopularDailyKey(at)
	pipe := s.rdb.TxPipeline()
	for _, item := range items {
		if item.MenuItemID == "" || item.Quantity <= 0 {
			continue
		}
		pipe.ZIncrBy(ctx, tracking.PopularAllTimeKey, float64(item.Quantity), item.MenuItemID)
		pipe.ZIncrBy(ctx, dailyKey, float64(item.Quantity), item.MenuItemID)
	}
	pipe.Expire(ctx, dailyKey, tracking.DailyRetention)
	_, err := pipe.Exec(ctx)
	return err
}

// UpdateItemRating recomputes an item's rating from the reviews table and
// mirrors it into Redis for quick reads.
func (s *Store) UpdateItemRating(ctx context.Context, menuItemID string) error {
	var (
		avgRating   float64
		reviewCount int
	)
	err := s.db.QueryRowContext(ctx, `
		UPDATE menu_items
		SET rating = sub.avg_rating, review_count = sub.review_count
		FROM (
			SELECT COALESCE(ROUND(AVG(rating::numeric), 2), 0)::float8 AS avg_rating, COUNT(*) AS review_count
			FROM reviews
			WHERE menu_item_id = $1
		) sub
		WHERE menu_items.id = $1
		RETURNING menu_items.rating, menu_items.review_count
	`, menuItemID).Scan(&avgRating, &reviewCount)
	if err != nil {
		return err
	}

	key := tracking.ItemRatingKey(menuItemID)
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"avg_rating":   avgRating,
		"review_count": reviewCount,
		"last_updated": time.Now().Unix(),
	})
	pipe.Expire(ctx, key, 24*time.Hour)
	_, err = pipe.Exec(ctx)
	return err
}
