package storage

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/lib/pq"

	"foodcourt/analytics-svc/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) OrderTotals(ctx context.Context) (int, int64, error) {
	var (
		count   int
		revenue int64
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
	`).Scan(&count, &revenue)
	return count, revenue, err
}

func (r *PostgresRepository) StatusCounts(ctx context.Context) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT status, COUNT(*)
		FROM orders
		GROUP BY status
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *PostgresRepository) CountRestaurants(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM restaurants").Scan(&n)
	return n, err
}

func (r *PostgresRepository) MenuItems(ctx context.Context, ids []string) (map[string]domain.ItemAnalytics, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT m.id, m.name, m.restaurant_id, rs.name, COALESCE(m.rating, 0), COALESCE(m.review_count, 0)
		FROM menu_items m
		JOIN restaurants rs ON rs.id = m.restaurant_id
		WHERE m.id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[string]domain.ItemAnalytics, len(ids))
	for rows.Next() {
		var item domain.ItemAnalytics
		if err := rows.Scan(&item.MenuItemID, &item.Name, &item.RestaurantID, &item.RestaurantName, &item.Rating, &item.ReviewCount); err != nil {
			return nil, err
		}
		items[item.MenuItemID] = item
	}
	return items, rows.Err()
}

// TopSellers ranks items by quantity ordered since the given time; a zero
// time means all orders.
func (r *PostgresRepository) TopSellers(ctx context.Context, since time.Time, limit int) ([]domain.ItemAnalytics, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT m.id, m.name, m.restaurant_id, rs.name, SUM(oi.quantity)::float8 AS score,
			COALESCE(m.rating, 0), COALESCE(m.review_count, 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN menu_items m ON m.id = oi.menu_item_id
		JOIN restaurants rs ON rs.id = m.restaurant_id
		WHERE o.status <> 'cancelled' AND o.created_at >= $1
		GROUP BY m.id, m.name, m.restaurant_id, rs.name, m.rating, m.review_count
		ORDER BY score DESC, m.name
		LIMIT $2
	`, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.ItemAnalytics
	for rows.Next() {
		var item domain.ItemAnalytics
		if err := rows.Scan(&item.MenuItemID, &item.Name, &item.RestaurantID, &item.RestaurantName, &item.Score, &item.Rating, &item.ReviewCount); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) OrderSummary(ctx context.Context, orderID string) (*domain.OrderSummary, error) {
	summary := domain.OrderSummary{OrderID: orderID}
	err := r.DB.QueryRowContext(ctx, `
		SELECT status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, orderID).Scan(&summary.Status, &summary.CreatedAt, &summary.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *PostgresRepository) RatingDistribution(ctx context.Context, restaurantID string) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT rating, COUNT(*)
		FROM reviews
		WHERE $1 = '' OR restaurant_id = $1
		GROUP BY rating
		ORDER BY rating
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	distribution := make(map[string]int)
	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, err
		}
		distribution[strconv.Itoa(rating)] = count
	}
	return distribution, rows.Err()
}
