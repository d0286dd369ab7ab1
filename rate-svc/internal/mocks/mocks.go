package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"foodcourt/rate-svc/internal/domain"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type ReviewRepository struct {
	mock.Mock
}

func (_m *ReviewRepository) ValidateItemInOrder(ctx context.Context, menuItemID, orderID, restaurantID string) (bool, error) {
	ret := _m.Called(ctx, menuItemID, orderID, restaurantID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *ReviewRepository) GetExistingReviewID(ctx context.Context, menuItemID, orderID string) (int64, error) {
	ret := _m.Called(ctx, menuItemID, orderID)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *ReviewRepository) InsertReview(ctx context.Context, review *domain.Review) error {
	return _m.Called(ctx, review).Error(0)
}

func (_m *ReviewRepository) UpdateReview(ctx context.Context, id int64, review *domain.Review) error {
	return _m.Called(ctx, id, review).Error(0)
}

func (_m *ReviewRepository) ListItemReviews(ctx context.Context, menuItemID string) ([]domain.Review, error) {
	ret := _m.Called(ctx, menuItemID)
	var r0 []domain.Review
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Review)
	}
	return r0, ret.Error(1)
}

func NewReviewRepository(t testingT) *ReviewRepository {
	m := &ReviewRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type ReviewCache struct {
	mock.Mock
}

func (_m *ReviewCache) ReviewMarkerKey(menuItemID, orderID string) string {
	return _m.Called(menuItemID, orderID).String(0)
}

func (_m *ReviewCache) Exists(ctx context.Context, key string) (bool, error) {
	ret := _m.Called(ctx, key)
	return ret.Bool(0), ret.Error(1)
}

func (_m *ReviewCache) SetMarker(ctx context.Context, key string) error {
	return _m.Called(ctx, key).Error(0)
}

func NewReviewCache(t testingT) *ReviewCache {
	m := &ReviewCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type ReviewPublisher struct {
	mock.Mock
}

func (_m *ReviewPublisher) PublishReview(ctx context.Context, event domain.ReviewEvent) error {
	return _m.Called(ctx, event).Error(0)
}

func NewReviewPublisher(t testingT) *ReviewPublisher {
	m := &ReviewPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type ReviewServiceInterface struct {
	mock.Mock
}

func (_m *ReviewServiceInterface) CreateOrUpdate(ctx context.Context, review *domain.Review) error {
	return _m.Called(ctx, review).Error(0)
}

func (_m *ReviewServiceInterface) ListItemReviews(ctx context.Context, menuItemID string) ([]domain.Review, error) {
	ret := _m.Called(ctx, menuItemID)
	var r0 []domain.Review
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Review)
	}
	return r0, ret.Error(1)
}

func NewReviewServiceInterface(t testingT) *ReviewServiceInterface {
	m := &ReviewServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
