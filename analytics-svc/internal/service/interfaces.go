package service

import (
	"context"
	"errors"
	"time"

	"foodcourt/analytics-svc/internal/domain"
	"foodcourt/tracking"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidLimit = errors.New("limit must be between 1 and 50")
)

type AnalyticsInterface interface {
	Dashboard(ctx context.Context) (*domain.Dashboard, error)
	TopAllTime(ctx context.Context, limit int) ([]domain.ItemAnalytics, error)
	TopToday(ctx context.Context, limit int) ([]domain.ItemAnalytics, error)
	OrderTimeline(ctx context.Context, orderID string) (*domain.Timeline, error)
	RatingDistribution(ctx context.Context, restaurantID string) (map[string]int, error)
}

type Repository interface {
	OrderTotals(ctx context.Context) (count int, revenue int64, err error)
	StatusCounts(ctx context.Context) (map[string]int, error)
	CountRestaurants(ctx context.Context) (int, error)
	MenuItems(ctx context.Context, ids []string) (map[string]domain.ItemAnalytics, error)
	TopSellers(ctx context.Context, since time.Time, limit int) ([]domain.ItemAnalytics, error)
	OrderSummary(ctx context.Context, orderID string) (*domain.OrderSummary, error)
	RatingDistribution(ctx context.Context, restaurantID string) (map[string]int, error)
}

type Boards interface {
	Top(ctx context.Context, key string, limit int) ([]domain.ScoredMember, error)
	Timeline(ctx context.Context, orderID string) ([]tracking.TimelineEntry, error)
}

var _ AnalyticsInterface = (*AnalyticsService)(nil)
