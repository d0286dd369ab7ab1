package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"foodcourt/storefront-svc/internal/assistant"
	"foodcourt/storefront-svc/internal/domain"
)

type CatalogRepository struct {
	mock.Mock
}

func (_m *CatalogRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	ret := _m.Called(ctx)
	var r0 []domain.Restaurant
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Restaurant)
	}
	return r0, ret.Error(1)
}

func (_m *CatalogRepository) GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.Restaurant
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Restaurant)
	}
	return r0, ret.Error(1)
}

func (_m *CatalogRepository) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	return _m.Called(ctx, rest).Error(0)
}

func (_m *CatalogRepository) UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	return _m.Called(ctx, rest).Error(0)
}

func (_m *CatalogRepository) DeleteRestaurant(ctx context.Context, id string) (int64, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *CatalogRepository) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	ret := _m.Called(ctx)
	var r0 []domain.MenuItem
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func (_m *CatalogRepository) ListMenu(ctx context.Context, restaurantID string) ([]domain.MenuItem, error) {
	ret := _m.Called(ctx, restaurantID)
	var r0 []domain.MenuItem
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func (_m *CatalogRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	return _m.Called(ctx, item).Error(0)
}

func (_m *CatalogRepository) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	return _m.Called(ctx, item).Error(0)
}

func (_m *CatalogRepository) DeleteMenuItem(ctx context.Context, restaurantID, itemID string) (int64, error) {
	ret := _m.Called(ctx, restaurantID, itemID)
	return ret.Get(0).(int64), ret.Error(1)
}

// NewCatalogRepository registers AssertExpectations as a test cleanup.
func NewCatalogRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *CatalogRepository {
	m := &CatalogRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type CatalogCache struct {
	mock.Mock
}

func (_m *CatalogCache) Get(ctx context.Context) (*assistant.Catalog, bool, error) {
	ret := _m.Called(ctx)
	var r0 *assistant.Catalog
	if v := ret.Get(0); v != nil {
		r0 = v.(*assistant.Catalog)
	}
	return r0, ret.Bool(1), ret.Error(2)
}

func (_m *CatalogCache) Set(ctx context.Context, catalog *assistant.Catalog) error {
	return _m.Called(ctx, catalog).Error(0)
}

func (_m *CatalogCache) Invalidate(ctx context.Context) error {
	return _m.Called(ctx).Error(0)
}

func NewCatalogCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *CatalogCache {
	m := &CatalogCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
