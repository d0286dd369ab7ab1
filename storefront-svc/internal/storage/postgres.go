package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"foodcourt/storefront-svc/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

const restaurantColumns = `id, name, cuisine, rating, delivery_time, price_range, is_open, featured,
	COALESCE(address, ''), COALESCE(image_url, ''), created_at`

func scanRestaurant(row interface{ Scan(...any) error }, rest *domain.Restaurant) error {
	return row.Scan(&rest.ID, &rest.Name, pq.Array(&rest.Cuisine), &rest.Rating, &rest.DeliveryTime,
		&rest.PriceRange, &rest.IsOpen, &rest.Featured, &rest.Address, &rest.ImageURL, &rest.CreatedAt)
}

func (r *PostgresRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+restaurantColumns+` FROM restaurants ORDER BY rating DESC, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []domain.Restaurant
	for rows.Next() {
		var rest domain.Restaurant
		if err := scanRestaurant(rows, &rest); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, rest)
	}
	return restaurants, rows.Err()
}

func (r *PostgresRepository) GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	row := r.DB.QueryRowContext(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id)
	if err := scanRestaurant(row, &rest); err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *PostgresRepository) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO restaurants (id, name, cuisine, rating, delivery_time, price_range, is_open, featured, address, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`,
		rest.ID, rest.Name, pq.Array(rest.Cuisine), rest.Rating, rest.DeliveryTime, rest.PriceRange,
		rest.IsOpen, rest.Featured, rest.Address, rest.ImageURL,
	).Scan(&rest.CreatedAt)
}

func (r *PostgresRepository) UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	return r.DB.QueryRowContext(ctx, `
		UPDATE restaurants
		SET name=$1, cuisine=$2, rating=$3, delivery_time=$4, price_range=$5, is_open=$6, featured=$7, address=$8, image_url=$9
		WHERE id=$10
		RETURNING created_at`,
		rest.Name, pq.Array(rest.Cuisine), rest.Rating, rest.DeliveryTime, rest.PriceRange,
		rest.IsOpen, rest.Featured, rest.Address, rest.ImageURL, rest.ID,
	).Scan(&rest.CreatedAt)
}

func (r *PostgresRepository) DeleteRestaurant(ctx context.Context, id string) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM restaurants WHERE id=$1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const menuItemColumns = `id, restaurant_id, name, COALESCE(description, ''), price, category, is_veg, is_bestseller,
	COALESCE(rating, 0), COALESCE(review_count, 0), COALESCE(image_url, ''), created_at`

func scanMenuItem(row interface{ Scan(...any) error }, item *domain.MenuItem) error {
	return row.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description, &item.Price, &item.Category,
		&item.IsVeg, &item.IsBestseller, &item.Rating, &item.ReviewCount, &item.ImageURL, &item.CreatedAt)
}

func (r *PostgresRepository) queryMenuItems(ctx context.Context, query string, args ...any) ([]domain.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		if err := scanMenuItem(rows, &item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListMenuItems returns the whole menu in insertion order, which is the
// order the assistant picks "first match" in.
func (r *PostgresRepository) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	return r.queryMenuItems(ctx, `SELECT `+menuItemColumns+` FROM menu_items ORDER BY created_at, id`)
}

func (r *PostgresRepository) ListMenu(ctx context.Context, restaurantID string) ([]domain.MenuItem, error) {
	return r.queryMenuItems(ctx,
		`SELECT `+menuItemColumns+` FROM menu_items WHERE restaurant_id = $1 ORDER BY category, name`, restaurantID)
}

func (r *PostgresRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO menu_items (id, restaurant_id, name, description, price, category, is_veg, is_bestseller, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`,
		item.ID, item.RestaurantID, item.Name, item.Description, item.Price, item.Category,
		item.IsVeg, item.IsBestseller, item.ImageURL,
	).Scan(&item.CreatedAt)
}

func (r *PostgresRepository) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	return r.DB.QueryRowContext(ctx, `
		UPDATE menu_items
		SET name=$1, description=$2, price=$3, category=$4, is_veg=$5, is_bestseller=$6, image_url=$7
		WHERE id=$8 AND restaurant_id=$9
		RETURNING created_at`,
		item.Name, item.Description, item.Price, item.Category, item.IsVeg, item.IsBestseller, item.ImageURL,
		item.ID, item.RestaurantID,
	).Scan(&item.CreatedAt)
}

func (r *PostgresRepository) DeleteMenuItem(ctx context.Context, restaurantID, itemID string) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM menu_items WHERE id=$1 AND restaurant_id=$2", itemID, restaurantID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO orders (id, session_id, restaurant_id, restaurant_name, subtotal, delivery_fee, taxes,
			total_amount, status, delivery_address, special_instructions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		order.ID, order.SessionID, order.RestaurantID, order.RestaurantName, order.Subtotal, order.DeliveryFee,
		order.Taxes, order.TotalAmount, order.Status, order.DeliveryAddress, order.SpecialInstructions,
		order.CreatedAt, order.UpdatedAt,
	); err != nil {
		return err
	}

	for _, item := range order.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, name, quantity, price)
			VALUES ($1, $2, $3, $4, $5)`,
			order.ID, item.MenuItemID, item.Name, item.Quantity, item.Price); err != nil {
			return err
		}
	}

	return tx.Commit()
}

const orderColumns = `id, session_id, restaurant_id, restaurant_name, subtotal, delivery_fee, taxes, total_amount,
	status, delivery_address, COALESCE(special_instructions, ''), created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }, order *domain.Order) error {
	return row.Scan(&order.ID, &order.SessionID, &order.RestaurantID, &order.RestaurantName, &order.Subtotal,
		&order.DeliveryFee, &order.Taxes, &order.TotalAmount, &order.Status, &order.DeliveryAddress,
		&order.SpecialInstructions, &order.CreatedAt, &order.UpdatedAt)
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	if err := scanOrder(r.DB.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id), &order); err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT menu_item_id, name, quantity, price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.MenuItemID, &item.Name, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}
	return &order, rows.Err()
}

func (r *PostgresRepository) ListOrders(ctx context.Context, sessionID string) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var args []any
	if sessionID != "" {
		query += ` WHERE session_id = $1`
		args = append(args, sessionID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := scanOrder(rows, &order); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PostgresRepository) SaveQRCode(ctx context.Context, id string, qr []byte) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE orders SET qr_code = $1 WHERE id = $2`, qr, id)
	return err
}

func (r *PostgresRepository) GetQRCode(ctx context.Context, id string) ([]byte, error) {
	var qrCode []byte
	if err := r.DB.QueryRowContext(ctx, "SELECT qr_code FROM orders WHERE id = $1", id).Scan(&qrCode); err != nil {
		return nil, err
	}
	return qrCode, nil
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS restaurants (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			cuisine TEXT[] NOT NULL DEFAULT '{}',
			rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			delivery_time TEXT NOT NULL DEFAULT '',
			price_range TEXT NOT NULL DEFAULT '',
			is_open BOOLEAN NOT NULL DEFAULT TRUE,
			featured BOOLEAN NOT NULL DEFAULT FALSE,
			address TEXT,
			image_url TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id TEXT PRIMARY KEY,
			restaurant_id TEXT NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			description TEXT,
			price BIGINT NOT NULL CHECK (price >= 0),
			category TEXT NOT NULL DEFAULT '',
			is_veg BOOLEAN NOT NULL DEFAULT FALSE,
			is_bestseller BOOLEAN NOT NULL DEFAULT FALSE,
			rating DOUBLE PRECISION,
			review_count INTEGER,
			image_url TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			restaurant_id TEXT NOT NULL,
			restaurant_name TEXT NOT NULL DEFAULT '',
			subtotal BIGINT NOT NULL,
			delivery_fee BIGINT NOT NULL,
			taxes BIGINT NOT NULL,
			total_amount BIGINT NOT NULL,
			status TEXT NOT NULL,
			delivery_address TEXT NOT NULL,
			special_instructions TEXT,
			qr_code BYTEA,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id BIGSERIAL PRIMARY KEY,
			order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			menu_item_id TEXT NOT NULL,
			name TEXT NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			price BIGINT NOT NULL
		)`,
		"CREATE INDEX IF NOT EXISTS orders_session_idx ON orders (session_id)",
	}
	for _, stmt := range statements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
