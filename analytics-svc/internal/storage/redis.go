package storage

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"foodcourt/analytics-svc/internal/domain"
	"foodcourt/tracking"
)

type RedisBoards struct {
	client *redis.Client
}

func NewRedisBoards(client *redis.Client) *RedisBoards {
	return &RedisBoards{client: client}
}

func (b *RedisBoards) Top(ctx context.Context, key string, limit int) ([]domain.ScoredMember, error) {
	result, err := b.client.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	members := make([]domain.ScoredMember, 0, len(result))
	for _, z := range result {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		members = append(members, domain.ScoredMember{Member: member, Score: z.Score})
	}
	return members, nil
}

func (b *RedisBoards) Timeline(ctx context.Context, orderID string) ([]tracking.TimelineEntry, error) {
	raw, err := b.client.LRange(ctx, tracking.TimelineKey(orderID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]tracking.TimelineEntry, 0, len(raw))
	for _, r := range raw {
		var entry tracking.TimelineEntry
		if err := json.Unmarshal([]byte(r), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
