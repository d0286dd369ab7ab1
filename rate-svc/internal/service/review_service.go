package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"foodcourt/rate-svc/internal/domain"
)

var (
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrItemNotInOrder  = errors.New("menu item was not part of a delivered order")
	ErrDuplicateReview = errors.New("review already exists for this item and order")
)

type ReviewService struct {
	repository ReviewRepository
	cache      ReviewCache
	publisher  ReviewPublisher
	log        *slog.Logger
}

func NewReviewService(repository ReviewRepository, cache ReviewCache, publisher ReviewPublisher, log *slog.Logger) *ReviewService {
	return &ReviewService{
		repository: repository,
		cache:      cache,
		publisher:  publisher,
		log:        log,
	}
}

// CreateOrUpdate stores one review per (menu item, order). A recent review
// leaves a marker in the cache and repeated submissions are rejected until
// it expires; after that the stored review is overwritten.
func (s *ReviewService) CreateOrUpdate(ctx context.Context, review *domain.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return ErrInvalidRating
	}

	valid, err := s.repository.ValidateItemInOrder(ctx, review.MenuItemID, review.OrderID, review.RestaurantID)
	if err != nil {
		return fmt.Errorf("validate order: %w", err)
	}
	if !valid {
		return ErrItemNotInOrder
	}

	cacheKey := s.cache.ReviewMarkerKey(review.MenuItemID, review.OrderID)
	exists, err := s.cache.Exists(ctx, cacheKey)
	if err != nil {
		s.log.Warn("review marker lookup failed", slog.String("key", cacheKey), slog.Any("error", err))
	}
	if exists {
		return ErrDuplicateReview
	}

	existingID, err := s.repository.GetExistingReviewID(ctx, review.MenuItemID, review.OrderID)
	if err == nil && existingID > 0 {
		if err := s.repository.UpdateReview(ctx, existingID, review); err != nil {
			return err
		}
		review.ID = existingID
	} else if err := s.repository.InsertReview(ctx, review); err != nil {
		return err
	}

	if err := s.cache.SetMarker(ctx, cacheKey); err != nil {
		s.log.Warn("review marker write failed", slog.String("key", cacheKey), slog.Any("error", err))
	}

	if s.publisher != nil {
		err := s.publisher.PublishReview(ctx, domain.ReviewEvent{
			Type:         domain.EventNewReview,
			MenuItemID:   review.MenuItemID,
			RestaurantID: review.RestaurantID,
			OrderID:      review.OrderID,
			Rating:       review.Rating,
			Timestamp:    time.Now(),
		})
		if err != nil {
			s.log.Error("publish review event failed", slog.String("menu_item_id", review.MenuItemID), slog.Any("error", err))
		}
	}

	return nil
}

func (s *ReviewService) ListItemReviews(ctx context.Context, menuItemID string) ([]domain.Review, error) {
	return s.repository.ListItemReviews(ctx, menuItemID)
}
