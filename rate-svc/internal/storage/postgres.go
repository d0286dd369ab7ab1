package storage

import (
	"context"
	"database/sql"
	"fmt"

	"foodcourt/rate-svc/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) ValidateItemInOrder(ctx context.Context, menuItemID, orderID, restaurantID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM order_items oi
			JOIN orders o ON oi.order_id = o.id
			WHERE oi.menu_item_id = $1 AND oi.order_id = $2 AND o.restaurant_id = $3 AND o.status = 'delivered'
		)
	`, menuItemID, orderID, restaurantID).Scan(&exists)
	return exists, err
}

func (r *PostgresRepository) GetExistingReviewID(ctx context.Context, menuItemID, orderID string) (int64, error) {
	var id int64
	err := r.DB.QueryRowContext(ctx, `
		SELECT id FROM reviews
		WHERE menu_item_id = $1 AND order_id = $2
	`, menuItemID, orderID).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PostgresRepository) InsertReview(ctx context.Context, review *domain.Review) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO reviews (menu_item_id, order_id, restaurant_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, review.MenuItemID, review.OrderID, review.RestaurantID, review.Rating, review.Comment).
		Scan(&review.ID, &review.CreatedAt)
}

func (r *PostgresRepository) UpdateReview(ctx context.Context, id int64, review *domain.Review) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE reviews
		SET rating = $1, comment = $2, created_at = CURRENT_TIMESTAMP
		WHERE id = $3
	`, review.Rating, review.Comment, id)
	return err
}

func (r *PostgresRepository) ListItemReviews(ctx context.Context, menuItemID string) ([]domain.Review, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, menu_item_id, order_id, restaurant_id, rating, COALESCE(comment, ''), created_at
		FROM reviews
		WHERE menu_item_id = $1
		ORDER BY created_at DESC
	`, menuItemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rev domain.Review
		if err := rows.Scan(&rev.ID, &rev.MenuItemID, &rev.OrderID, &rev.RestaurantID, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS reviews (
			id BIGSERIAL PRIMARY KEY,
			menu_item_id TEXT NOT NULL,
			order_id TEXT NOT NULL,
			restaurant_id TEXT NOT NULL,
			rating SMALLINT NOT NULL CHECK (rating BETWEEN 1 AND 5),
			comment TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (menu_item_id, order_id)
		)`,
		"CREATE INDEX IF NOT EXISTS reviews_restaurant_idx ON reviews (restaurant_id)",
	}
	for _, stmt := range statements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}
