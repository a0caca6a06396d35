package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/dejobratic/orderdesk/internal/orders/domain"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type batchSender interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Insert stores orders that do not exist yet. Existing ids are left untouched.
func (r *Repository) Insert(ctx context.Context, orders ...domain.Order) error {
	return insertOrders(ctx, r.pool, orders)
}

// SeedIfEmpty inserts orders only when the table holds no rows, and reports
// whether it did. The check and the insert share one transaction.
func (r *Repository) SeedIfEmpty(ctx context.Context, orders ...domain.Order) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Serializes concurrent seeders so two fresh instances cannot both see an empty table.
	if _, err := tx.Exec(ctx, `LOCK TABLE orders IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return false, fmt.Errorf("lock orders: %w", err)
	}

	var populated bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders)`).Scan(&populated); err != nil {
		return false, fmt.Errorf("check orders: %w", err)
	}
	if populated {
		return false, nil
	}

	if err := insertOrders(ctx, tx, orders); err != nil {
		return false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit seed: %w", err)
	}
	return true, nil
}

func insertOrders(ctx context.Context, db batchSender, orders []domain.Order) error {
	query := `
		INSERT INTO orders (id, customer_name, customer_email, total_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $6)
		ON CONFLICT (id) DO NOTHING
	`

	now := time.Now().UTC()
	batch := &pgx.Batch{}
	for i, order := range orders {
		// Offset created_at so FetchAll keeps the insertion order.
		createdAt := now.Add(time.Duration(i) * time.Microsecond)
		batch.Queue(query,
			order.ID,
			order.CustomerName,
			order.CustomerEmail,
			order.TotalPrice.String(),
			order.Status,
			createdAt,
		)
	}

	if err := db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert orders: %w", err)
	}

	return nil
}

func (r *Repository) FetchAll(ctx context.Context) ([]domain.Order, error) {
	query := `
		SELECT id, customer_name, customer_email, total_price::text, status
		FROM orders
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var (
			order domain.Order
			price string
		)
		if err := rows.Scan(
			&order.ID,
			&order.CustomerName,
			&order.CustomerEmail,
			&price,
			&order.Status,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}

		order.TotalPrice, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("parse total_price of %s: %w", order.ID, err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	return orders, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	query := `
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := r.pool.Exec(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update order status %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete order %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
