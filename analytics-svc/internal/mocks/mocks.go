package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"foodcourt/analytics-svc/internal/domain"
	"foodcourt/tracking"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type Repository struct {
	mock.Mock
}

func (_m *Repository) OrderTotals(ctx context.Context) (int, int64, error) {
	ret := _m.Called(ctx)
	return ret.Int(0), ret.Get(1).(int64), ret.Error(2)
}

func (_m *Repository) StatusCounts(ctx context.Context) (map[string]int, error) {
	ret := _m.Called(ctx)
	var r0 map[string]int
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(map[string]int)
	}
	return r0, ret.Error(1)
}

func (_m *Repository) CountRestaurants(ctx context.Context) (int, error) {
	ret := _m.Called(ctx)
	return ret.Int(0), ret.Error(1)
}

func (_m *Repository) MenuItems(ctx context.Context, ids []string) (map[string]domain.ItemAnalytics, error) {
	ret := _m.Called(ctx, ids)
	var r0 map[string]domain.ItemAnalytics
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(map[string]domain.ItemAnalytics)
	}
	return r0, ret.Error(1)
}

func (_m *Repository) TopSellers(ctx context.Context, since time.Time, limit int) ([]domain.ItemAnalytics, error) {
	ret := _m.Called(ctx, since, limit)
	var r0 []domain.ItemAnalytics
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.ItemAnalytics)
	}
	return r0, ret.Error(1)
}

func (_m *Repository) OrderSummary(ctx context.Context, orderID string) (*domain.OrderSummary, error) {
	ret := _m.Called(ctx, orderID)
	var r0 *domain.OrderSummary
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.OrderSummary)
	}
	return r0, ret.Error(1)
}

func (_m *Repository) RatingDistribution(ctx context.Context, restaurantID string) (map[string]int, error) {
	ret := _m.Called(ctx, restaurantID)
	var r0 map[string]int
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(map[string]int)
	}
	return r0, ret.Error(1)
}

func NewRepository(t testingT) *Repository {
	m := &Repository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type Boards struct {
	mock.Mock
}

func (_m *Boards) Top(ctx context.Context, key string, limit int) ([]domain.ScoredMember, error) {
	ret := _m.Called(ctx, key, limit)
	var r0 []domain.ScoredMember
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.ScoredMember)
	}
	return r0, ret.Error(1)
}

func (_m *Boards) Timeline(ctx context.Context, orderID string) ([]tracking.TimelineEntry, error) {
	ret := _m.Called(ctx, orderID)
	var r0 []tracking.TimelineEntry
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]tracking.TimelineEntry)
	}
	return r0, ret.Error(1)
}

func NewBoards(t testingT) *Boards {
	m := &Boards{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type AnalyticsInterface struct {
	mock.Mock
}

func (_m *AnalyticsInterface) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	ret := _m.Called(ctx)
	var r0 *domain.Dashboard
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Dashboard)
	}
	return r0, ret.Error(1)
}

func (_m *AnalyticsInterface) TopAllTime(ctx context.Context, limit int) ([]domain.ItemAnalytics, error) {
	ret := _m.Called(ctx, limit)
	var r0 []domain.ItemAnalytics
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.ItemAnalytics)
	}
	return r0, ret.Error(1)
}

func (_m *AnalyticsInterface) TopToday(ctx context.Context, limit int) ([]domain.ItemAnalytics, error) {
	ret := _m.Called(ctx, limit)
	var r0 []domain.ItemAnalytics
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.ItemAnalytics)
	}
	return r0, ret.Error(1)
}

func (_m *AnalyticsInterface) OrderTimeline(ctx context.Context, orderID string) (*domain.Timeline, error) {
	ret := _m.Called(ctx, orderID)
	var r0 *domain.Timeline
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Timeline)
	}
	return r0, ret.Error(1)
}

func (_m *AnalyticsInterface) RatingDistribution(ctx context.Context, restaurantID string) (map[string]int, error) {
	ret := _m.Called(ctx, restaurantID)
	var r0 map[string]int
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(map[string]int)
	}
	return r0, ret.Error(1)
}

func NewAnalyticsInterface(t testingT) *AnalyticsInterface {
	m := &AnalyticsInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
