package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"foodcourt/analytics-svc/internal/domain"
	"foodcourt/tracking"
)

const (
	DefaultLimit   = 10
	MaxLimit       = 50
	dashboardItems = 5
)

type AnalyticsService struct {
	repo   Repository
	boards Boards
	log    *slog.Logger
	now    func() time.Time
}

func NewAnalyticsService(repo Repository, boards Boards, log *slog.Logger) *AnalyticsService {
	return &AnalyticsService{
		repo:   repo,
		boards: boards,
		log:    log,
		now:    time.Now,
	}
}

// WithClock replaces the clock used to pick today's board.
func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	s.now = now
	return s
}

// Dashboard runs its independent queries concurrently; any failure fails
// the whole dashboard except the top items, which are best effort.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	var (
		dashboard domain.Dashboard
		counts    map[string]int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, revenue, err := s.repo.OrderTotals(gctx)
		if err != nil {
			return fmt.Errorf("order totals: %w", err)
		}
		dashboard.TotalOrders, dashboard.Revenue = total, revenue
		return nil
	})
	g.Go(func() error {
		var err error
		if counts, err = s.repo.StatusCounts(gctx); err != nil {
			return fmt.Errorf("status counts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		n, err := s.repo.CountRestaurants(gctx)
		if err != nil {
			return fmt.Errorf("restaurants: %w", err)
		}
		dashboard.TotalRestaurants = n
		return nil
	})
	g.Go(func() error {
		top, err := s.TopAllTime(gctx, dashboardItems)
		if err != nil {
			s.log.Warn("dashboard top items unavailable", slog.Any("error", err))
			return nil
		}
		dashboard.TopItems = top
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if counts == nil {
		counts = map[string]int{}
	}
	dashboard.StatusBreakdown = counts
	dashboard.PendingOrders = counts["pending"] + counts["confirmed"]
	dashboard.PreparingOrders = counts["preparing"]
	dashboard.DeliveredOrders = counts["delivered"]
	if dashboard.TopItems == nil {
		dashboard.TopItems = []domain.ItemAnalytics{}
	}
	return &dashboard, nil
}

func (s *AnalyticsService) TopAllTime(ctx context.Context, limit int) ([]domain.ItemAnalytics, error) {
	return s.top(ctx, tracking.PopularAllTimeKey, time.Time{}, limit)
}

func (s *AnalyticsService) TopToday(ctx context.Context, limit int) ([]domain.ItemAnalytics, error) {
	now := s.now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return s.top(ctx, tracking.PopularDailyKey(now), midnight, limit)
}

// top reads a popularity board and falls back to counting order lines in
// the database when the board is empty or Redis is unavailable.
func (s *AnalyticsService) top(ctx context.Context, key string, since time.Time, limit int) ([]domain.ItemAnalytics, error) {
	if limit < 1 || limit > MaxLimit {
		return nil, ErrInvalidLimit
	}

	members, err := s.boards.Top(ctx, key, limit)
	if err != nil {
		s.log.Warn("popularity board unavailable", slog.String("key", key), slog.Any("error", err))
	}
	if err != nil || len(members) == 0 {
		return s.fromDB(ctx, since, limit)
	}

	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.Member)
	}
	items, err := s.repo.MenuItems(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("menu items: %w", err)
	}

	result := make([]domain.ItemAnalytics, 0, len(members))
	for _, m := range members {
		item, ok := items[m.Member]
		if !ok {
			continue
		}
		item.Score = m.Score
		result = append(result, item)
	}
	return result, nil
}

func (s *AnalyticsService) fromDB(ctx context.Context, since time.Time, limit int) ([]domain.ItemAnalytics, error) {
	items, err := s.repo.TopSellers(ctx, since, limit)
	if err != nil {
		return nil, fmt.Errorf("top sellers: %w", err)
	}
	if items == nil {
		items = []domain.ItemAnalytics{}
	}
	return items, nil
}

// OrderTimeline prefers the tracked transitions; orders that predate the
// tracker get a timeline rebuilt from the order row.
func (s *AnalyticsService) OrderTimeline(ctx context.Context, orderID string) (*domain.Timeline, error) {
	entries, err := s.boards.Timeline(ctx, orderID)
	if err != nil {
		s.log.Warn("timeline lookup failed", slog.String("order_id", orderID), slog.Any("error", err))
	}
	if err == nil && len(entries) > 0 {
		return &domain.Timeline{
			OrderID: orderID,
			Status:  entries[len(entries)-1].Status,
			Entries: entries,
		}, nil
	}

	summary, err := s.repo.OrderSummary(ctx, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	entries = []tracking.TimelineEntry{{Status: "pending", At: summary.CreatedAt}}
	if summary.Status != "pending" {
		entries = append(entries, tracking.TimelineEntry{Status: summary.Status, At: summary.UpdatedAt})
	}
	return &domain.Timeline{OrderID: orderID, Status: summary.Status, Entries: entries}, nil
}

// RatingDistribution counts reviews per star; an empty restaurant id
// covers every restaurant.
func (s *AnalyticsService) RatingDistribution(ctx context.Context, restaurantID string) (map[string]int, error) {
	counts, err := s.repo.RatingDistribution(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	distribution := map[string]int{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0}
	for star, n := range counts {
		distribution[star] = n
	}
	return distribution, nil
}
