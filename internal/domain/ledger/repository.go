package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	orderColumns   = `id, user_id, game_id, package_id, game_uid, amount, status, created_at, updated_at`
	requestColumns = `id, user_id, amount, sender_number, transaction_id, status, created_at, updated_at`

	orderViewSelect = `
		SELECT o.id, o.user_id, o.game_id, o.package_id, o.game_uid, o.amount, o.status, o.created_at, o.updated_at,
		       g.display_name AS game_name, p.name AS package_name, p.amount AS package_amount`
	orderViewJoins = `
		FROM orders o
		JOIN games g ON g.id = o.game_id
		JOIN packages p ON p.id = o.package_id`
)

// Repository persists orders and add-money requests.
// Methods ending in Tx run inside the caller's settlement transaction.
type Repository interface {
	BeginTx(ctx context.Context) (*sqlx.Tx, error)

	InsertOrderTx(ctx context.Context, tx *sqlx.Tx, order *Order) error
	GetOrder(ctx context.Context, id uuid.UUID) (*Order, error)
	LockOrderTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*Order, error)
	SetOrderStatusTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status OrderStatus) (*Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]OrderView, error)
	ListRecentOrders(ctx context.Context, limit int) ([]RecentOrder, error)
	ListAllOrders(ctx context.Context, page Page) ([]OrderView, int, error)

	InsertAddMoneyRequest(ctx context.Context, req *AddMoneyRequest) error
	GetAddMoneyRequest(ctx context.Context, id uuid.UUID) (*AddMoneyRequest, error)
	LockAddMoneyRequestTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*AddMoneyRequest, error)
	SetAddMoneyRequestStatusTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status RequestStatus) (*AddMoneyRequest, error)
	ListAddMoneyRequestsByUser(ctx context.Context, userID uuid.UUID) ([]AddMoneyRequest, error)
	ListAllAddMoneyRequests(ctx context.Context, page Page) ([]AddMoneyRequestView, int, error)

	Stats(ctx context.Context) (*Stats, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("ledger repository: begin tx: %w", err)
	}
	return tx, nil
}

func (r *repository) InsertOrderTx(ctx context.Context, tx *sqlx.Tx, order *Order) error {
	err := tx.QueryRowxContext(ctx, `
		INSERT INTO orders (id, user_id, game_id, package_id, game_uid, amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, order.ID, order.UserID, order.GameID, order.PackageID, order.GameUID, order.Amount, order.Status,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ledger repository insert order: %w", mapConstraint(err))
	}
	return nil
}

func (r *repository) GetOrder(ctx context.Context, id uuid.UUID) (*Order, error) {
	var o Order
	err := r.db.GetContext(ctx, &o, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ledger repository get order: %w", err)
	}
	return &o, nil
}

func (r *repository) LockOrderTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*Order, error) {
	var o Order
	err := tx.GetContext(ctx, &o, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ledger repository lock order: %w", err)
	}
	return &o, nil
}

// SetOrderStatusTx moves a pending order to status; a non-pending order yields ErrInvalidStateTransition
func (r *repository) SetOrderStatusTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status OrderStatus) (*Order, error) {
	var o Order
	err := tx.GetContext(ctx, &o, `
		UPDATE orders
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status = 'pending'
		RETURNING `+orderColumns, id, status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidStateTransition
	}
	if err != nil {
		return nil, fmt.Errorf("ledger repository set order status: %w", err)
	}
	return &o, nil
}

func (r *repository) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]OrderView, error) {
	orders := []OrderView{}
	err := r.db.SelectContext(ctx, &orders, orderViewSelect+orderViewJoins+`
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("ledger repository list user orders: %w", err)
	}
	return orders, nil
}

func (r *repository) ListRecentOrders(ctx context.Context, limit int) ([]RecentOrder, error) {
	orders := []RecentOrder{}
	err := r.db.SelectContext(ctx, &orders, `
		SELECT o.id, g.display_name AS game_name, p.name AS package_name, p.amount AS package_amount,
		       o.amount, o.status, o.created_at`+orderViewJoins+`
		ORDER BY o.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("ledger repository list recent orders: %w", err)
	}
	return orders, nil
}

func (r *repository) ListAllOrders(ctx context.Context, page Page) ([]OrderView, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM orders`); err != nil {
		return nil, 0, fmt.Errorf("ledger repository count orders: %w", err)
	}

	orders := []OrderView{}
	err := r.db.SelectContext(ctx, &orders, orderViewSelect+`, u.email AS user_email`+orderViewJoins+`
		JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC
		LIMIT $1 OFFSET $2
	`, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ledger repository list orders: %w", err)
	}
	return orders, total, nil
}

func (r *repository) InsertAddMoneyRequest(ctx context.Context, req *AddMoneyRequest) error {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO add_money_requests (id, user_id, amount, sender_number, transaction_id, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, req.ID, req.UserID, req.Amount, req.SenderNumber, req.TransactionID, req.Status,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ledger repository insert add money request: %w", mapConstraint(err))
	}
	return nil
}

func (r *repository) GetAddMoneyRequest(ctx context.Context, id uuid.UUID) (*AddMoneyRequest, error) {
	var req AddMoneyRequest
	err := r.db.GetContext(ctx, &req, `SELECT `+requestColumns+` FROM add_money_requests WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ledger repository get add money request: %w", err)
	}
	return &req, nil
}

func (r *repository) LockAddMoneyRequestTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*AddMoneyRequest, error) {
	var req AddMoneyRequest
	err := tx.GetContext(ctx, &req, `SELECT `+requestColumns+` FROM add_money_requests WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ledger repository lock add money request: %w", err)
	}
	return &req, nil
}

func (r *repository) SetAddMoneyRequestStatusTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status RequestStatus) (*AddMoneyRequest, error) {
	var req AddMoneyRequest
	err := tx.GetContext(ctx, &req, `
		UPDATE add_money_requests
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status = 'pending'
		RETURNING `+requestColumns, id, status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidStateTransition
	}
	if err != nil {
		return nil, fmt.Errorf("ledger repository set add money request status: %w", err)
	}
	return &req, nil
}

func (r *repository) ListAddMoneyRequestsByUser(ctx context.Context, userID uuid.UUID) ([]AddMoneyRequest, error) {
	requests := []AddMoneyRequest{}
	err := r.db.SelectContext(ctx, &requests, `
		SELECT `+requestColumns+`
		FROM add_money_requests
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("ledger repository list user add money requests: %w", err)
	}
	return requests, nil
}

func (r *repository) ListAllAddMoneyRequests(ctx context.Context, page Page) ([]AddMoneyRequestView, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM add_money_requests`); err != nil {
		return nil, 0, fmt.Errorf("ledger repository count add money requests: %w", err)
	}

	requests := []AddMoneyRequestView{}
	err := r.db.SelectContext(ctx, &requests, `
		SELECT a.id, a.user_id, a.amount, a.sender_number, a.transaction_id, a.status, a.created_at, a.updated_at,
		       u.email AS user_email
		FROM add_money_requests a
		JOIN users u ON u.id = a.user_id
		ORDER BY a.created_at DESC
		LIMIT $1 OFFSET $2
	`, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ledger repository list add money requests: %w", err)
	}
	return requests, total, nil
}

// Stats reads every figure in one statement
func (r *repository) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	err := r.db.GetContext(ctx, &s, `
		SELECT
			(SELECT COUNT(*) FROM orders) AS total_orders,
			(SELECT COALESCE(SUM(amount), 0) FROM orders) AS total_revenue,
			(SELECT COUNT(*) FROM users) AS active_users,
			(SELECT COUNT(*) FROM orders WHERE status = 'pending') AS pending_orders
	`)
	if err != nil {
		return nil, fmt.Errorf("ledger repository stats: %w", err)
	}
	return &s, nil
}

// mapConstraint turns a foreign key violation on the owner into ErrUserNotFound
func mapConstraint(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		switch pqErr.Constraint {
		case "orders_user_id_fkey", "add_money_requests_user_id_fkey":
			return ErrUserNotFound
		case "orders_package_id_fkey", "orders_game_id_fkey":
			return ErrPackageNotFound
		}
	}
	return err
}
