package assistant

import "foodcourt/storefront-svc/internal/domain"

// Catalog is the read-only menu a conversation works against. Item order is
// significant: rules that pick "the first match" pick it in this order.
type Catalog struct {
	Restaurants []domain.Restaurant `json:"restaurants"`
	Items       []domain.MenuItem   `json:"items"`
}

func (c *Catalog) Item(id string) (domain.MenuItem, bool) {
	for _, item := range c.Items {
		if item.ID == id {
			return item, true
		}
	}
	return domain.MenuItem{}, false
}

func (c *Catalog) RestaurantName(id string) string {
	for _, r := range c.Restaurants {
		if r.ID == id {
			return r.Name
		}
	}
	return ""
}

func (c *Catalog) Filter(keep func(domain.MenuItem) bool) []domain.MenuItem {
	var out []domain.MenuItem
	for _, item := range c.Items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func (c *Catalog) Bestsellers() []domain.MenuItem {
	return c.Filter(func(item domain.MenuItem) bool { return item.IsBestseller })
}
