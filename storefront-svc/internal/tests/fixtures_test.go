package tests

import (
	"context"
	"testing"

	"foodcourt/logger"
	"foodcourt/storefront-svc/internal/assistant"
	"foodcourt/storefront-svc/internal/domain"
	"foodcourt/storefront-svc/internal/service"
)

type staticCatalog struct {
	catalog *assistant.Catalog
	err     error
}

func (s staticCatalog) Snapshot(context.Context) (*assistant.Catalog, error) {
	return s.catalog, s.err
}

func sampleCatalog() *assistant.Catalog {
	return &assistant.Catalog{
		Restaurants: []domain.Restaurant{
			{ID: "r1", Name: "Burger Barn", Cuisine: []string{"American", "Fast Food"}, Rating: 4.2},
			{ID: "r2", Name: "Spice Garden", Cuisine: []string{"North Indian"}, Rating: 4.7},
		},
		Items: []domain.MenuItem{
			{ID: "b1", RestaurantID: "r1", Name: "Cheese Burger", Price: 150, Category: "Burgers"},
			{ID: "f1", RestaurantID: "r1", Name: "Fries", Price: 99, Category: "Sides", IsVeg: true},
			{ID: "s1", RestaurantID: "r2", Name: "Butter Chicken", Price: 320, Category: "Indian", IsBestseller: true},
		},
	}
}

func newSessionService(t *testing.T) *service.SessionService {
	t.Helper()
	sessions := service.NewSessionService(staticCatalog{catalog: sampleCatalog()}, service.SessionOptions{}, logger.Discard())
	t.Cleanup(sessions.CloseAll)
	return sessions
}
