package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"

	"luxe-storefront/internal/models"
)

// Postgres implements the order, notification and intent stores on a single
// Postgres connection pool.
type Postgres struct {
	db *sql.DB
}

// Open connects to Postgres with retry and pool tuning.
func Open(databaseURL string) (*Postgres, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	maxRetries := 5
	for i := 0; i < maxRetries; i++ {
		err = db.Ping()
		if err == nil {
			log.Println("connected to Postgres")
			return &Postgres{db: db}, nil
		}
		log.Printf("database connection attempt %d/%d failed: %v", i+1, maxRetries, err)
		time.Sleep(2 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

// InitSchema creates the tables if they don't exist. The composite primary
// key on order_notification_intents is what makes notification emission
// idempotent across concurrent instances.
func (p *Postgres) InitSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			user_id UUID,
			stripe_session_id TEXT NOT NULL UNIQUE,
			amount BIGINT NOT NULL,
			items JSONB NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders (user_id)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			type TEXT NOT NULL,
			read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications (user_id)`,
		`CREATE TABLE IF NOT EXISTS order_notification_intents (
			session_id TEXT NOT NULL,
			status TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (session_id, status)
		)`,
	}

	for _, stmt := range statements {
		if _, err := p.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

func (p *Postgres) InsertOrder(ctx context.Context, order *models.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}

	_, err = p.db.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, stripe_session_id, amount, items, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		order.ID, nullString(order.UserID), order.StripeSessionID, order.Amount,
		items, order.Status, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (p *Postgres) OrderBySessionID(ctx context.Context, sessionID string) (*models.Order, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT id, user_id, stripe_session_id, amount, items, status, created_at, updated_at
		FROM orders WHERE stripe_session_id = $1`,
		sessionID,
	)
	return scanOrder(row)
}

func (p *Postgres) UpdateOrderStatus(ctx context.Context, sessionID string, status models.OrderStatus) (models.OrderStatus, error) {
	res, err := p.db.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = now()
		WHERE stripe_session_id = $2 AND status <> $3`,
		status, sessionID, models.OrderStatusCancelled,
	)
	if err != nil {
		return "", fmt.Errorf("update order status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("update order status: %w", err)
	}
	if affected > 0 {
		return status, nil
	}

	// Either there is no such order or it is terminally cancelled; report
	// what the row actually holds.
	var current string
	err = p.db.QueryRowContext(ctx,
		`SELECT status FROM orders WHERE stripe_session_id = $1`, sessionID,
	).Scan(&current)
	if err == sql.ErrNoRows {
		return "", ErrOrderNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read order status: %w", err)
	}
	return models.OrderStatus(current), nil
}

func (p *Postgres) OrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, user_id, stripe_session_id, amount, items, status, created_at, updated_at
		FROM orders WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func (p *Postgres) InsertNotification(ctx context.Context, n *models.Notification) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, title, description, type, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		n.ID, n.UserID, n.Title, n.Description, n.Type, n.Read, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (p *Postgres) NotificationsByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, user_id, title, description, type, read, created_at
		FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Description, &n.Type, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (p *Postgres) MarkNotificationRead(ctx context.Context, userID, id string) error {
	res, err := p.db.ExecContext(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`, id, userID,
	)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (p *Postgres) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	_, err := p.db.ExecContext(ctx,
		`UPDATE notifications SET read = TRUE WHERE user_id = $1`, userID,
	)
	if err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

func (p *Postgres) ClearNotifications(ctx context.Context, userID string) error {
	_, err := p.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE user_id = $1`, userID,
	)
	if err != nil {
		return fmt.Errorf("clear notifications: %w", err)
	}
	return nil
}

func (p *Postgres) ClaimIntent(ctx context.Context, sessionID string, status models.OrderStatus) (bool, error) {
	res, err := p.db.ExecContext(ctx, `
		INSERT INTO order_notification_intents (session_id, status)
		VALUES ($1, $2) ON CONFLICT (session_id, status) DO NOTHING`,
		sessionID, status,
	)
	if err != nil {
		return false, fmt.Errorf("claim notification intent: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("claim notification intent: %w", err)
	}
	return affected > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var (
		order  models.Order
		userID sql.NullString
		items  []byte
	)
	err := row.Scan(&order.ID, &userID, &order.StripeSessionID, &order.Amount,
		&items, &order.Status, &order.CreatedAt, &order.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan order: %w", err)
	}

	order.UserID = userID.String
	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	return &order, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
