package assistant

import "foodcourt/storefront-svc/internal/domain"

func testCatalog() *Catalog {
	return &Catalog{
		Restaurants: []domain.Restaurant{
			{ID: "r1", Name: "Burger Barn"},
			{ID: "r2", Name: "Pizza Palace"},
			{ID: "r3", Name: "Spice Garden"},
		},
		Items: []domain.MenuItem{
			{ID: "b1", RestaurantID: "r1", Name: "Cheese Burger", Description: "Beef patty with cheddar", Price: 150, Category: "Burgers"},
			{ID: "p1", RestaurantID: "r2", Name: "Margherita Pizza", Description: "Tomato and mozzarella", Price: 350, Category: "Pizza", IsBestseller: true, Rating: 4.5, ReviewCount: 120},
			{ID: "p2", RestaurantID: "r2", Name: "Pepperoni Pizza", Description: "Loaded with pepperoni", Price: 550, Category: "Pizza"},
			{ID: "s1", RestaurantID: "r3", Name: "Butter Chicken", Description: "Rich creamy curry", Price: 320, Category: "Indian", IsBestseller: true, Rating: 4.8, ReviewCount: 300},
		},
	}
}

func catalogWithout(ids ...string) *Catalog {
	c := testCatalog()
	drop := map[string]bool{}
	for _, id := range ids {
		drop[id] = true
	}
	items := c.Items[:0]
	for _, item := range c.Items {
		if !drop[item.ID] {
			items = append(items, item)
		}
	}
	c.Items = items
	return c
}
