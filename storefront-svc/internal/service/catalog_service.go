package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"foodcourt/storefront-svc/internal/assistant"
	"foodcourt/storefront-svc/internal/domain"
)

type CatalogService struct {
	repo  CatalogRepository
	cache CatalogCache
	log   *slog.Logger
}

func NewCatalogService(repo CatalogRepository, cache CatalogCache, log *slog.Logger) *CatalogService {
	return &CatalogService{repo: repo, cache: cache, log: log}
}

// Snapshot returns every restaurant and menu item, from cache when possible.
// Cache failures are logged and the database is used instead.
func (s *CatalogService) Snapshot(ctx context.Context) (*assistant.Catalog, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn("catalog cache read failed", slog.Any("error", err))
		} else if ok {
			return cached, nil
		}
	}

	restaurants, err := s.repo.ListRestaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	items, err := s.repo.ListMenuItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	catalog := &assistant.Catalog{Restaurants: restaurants, Items: items}

	if s.cache != nil {
		if err := s.cache.Set(ctx, catalog); err != nil {
			s.log.Warn("catalog cache write failed", slog.Any("error", err))
		}
	}
	return catalog, nil
}

// Restaurants lists restaurants best rated first. cuisine matches any tag by
// case-insensitive substring; "" and "all" match everything.
func (s *CatalogService) Restaurants(ctx context.Context, cuisine string) ([]domain.Restaurant, error) {
	restaurants, err := s.repo.ListRestaurants(ctx)
	if err != nil {
		return nil, err
	}

	cuisine = strings.ToLower(strings.TrimSpace(cuisine))
	if cuisine == "" || cuisine == "all" {
		return restaurants, nil
	}

	filtered := make([]domain.Restaurant, 0, len(restaurants))
	for _, rest := range restaurants {
		for _, tag := range rest.Cuisine {
			if strings.Contains(strings.ToLower(tag), cuisine) {
				filtered = append(filtered, rest)
				break
			}
		}
	}
	return filtered, nil
}

func (s *CatalogService) Restaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	rest, err := s.repo.GetRestaurant(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return rest, nil
}

func (s *CatalogService) Menu(ctx context.Context, restaurantID string) ([]domain.MenuItem, error) {
	if _, err := s.Restaurant(ctx, restaurantID); err != nil {
		return nil, err
	}
	return s.repo.ListMenu(ctx, restaurantID)
}

func (s *CatalogService) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	if strings.TrimSpace(rest.Name) == "" {
		return fmt.Errorf("%w: restaurant name is required", ErrInvalidInput)
	}
	if rest.ID == "" {
		rest.ID = uuid.NewString()
	}
	if err := s.repo.CreateRestaurant(ctx, rest); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	if strings.TrimSpace(rest.Name) == "" {
		return fmt.Errorf("%w: restaurant name is required", ErrInvalidInput)
	}
	if err := s.repo.UpdateRestaurant(ctx, rest); err != nil {
		return notFound(err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) DeleteRestaurant(ctx context.Context, id string) error {
	rows, err := s.repo.DeleteRestaurant(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	if err := validateMenuItem(item); err != nil {
		return err
	}
	if _, err := s.Restaurant(ctx, item.RestaurantID); err != nil {
		return err
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if err := s.repo.CreateMenuItem(ctx, item); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	if err := validateMenuItem(item); err != nil {
		return err
	}
	if err := s.repo.UpdateMenuItem(ctx, item); err != nil {
		return notFound(err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) DeleteMenuItem(ctx context.Context, restaurantID, itemID string) error {
	rows, err := s.repo.DeleteMenuItem(ctx, restaurantID, itemID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("catalog cache invalidation failed", slog.Any("error", err))
	}
}

func validateMenuItem(item *domain.MenuItem) error {
	switch {
	case strings.TrimSpace(item.Name) == "":
		return fmt.Errorf("%w: menu item name is required", ErrInvalidInput)
	case item.Price < 0:
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
