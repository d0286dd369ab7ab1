package service

import (
	"context"

	"foodcourt/rate-svc/internal/domain"
)

type ReviewServiceInterface interface {
	CreateOrUpdate(ctx context.Context, review *domain.Review) error
	ListItemReviews(ctx context.Context, menuItemID string) ([]domain.Review, error)
}

type ReviewRepository interface {
	ValidateItemInOrder(ctx context.Context, menuItemID, orderID, restaurantID string) (bool, error)
	GetExistingReviewID(ctx context.Context, menuItemID, orderID string) (int64, error)
	InsertReview(ctx context.Context, review *domain.Review) error
	UpdateReview(ctx context.Context, id int64, review *domain.Review) error
	ListItemReviews(ctx context.Context, menuItemID string) ([]domain.Review, error)
}

type ReviewCache interface {
	ReviewMarkerKey(menuItemID, orderID string) string
	Exists(ctx context.Context, key string) (bool, error)
	SetMarker(ctx context.Context, key string) error
}

type ReviewPublisher interface {
	PublishReview(ctx context.Context, event domain.ReviewEvent) error
}

var _ ReviewServiceInterface = (*ReviewService)(nil)
