package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const userColumns = `id, email, first_name, last_name, profile_image_url, balance, role, created_at, updated_at`

// Repository is the account store. Balance is written only through AdjustBalanceTx.
type Repository interface {
	Upsert(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetBalance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)
	AdjustBalanceTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, firstName, lastName string) (*User, error)
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

// repository implements Repository
type repository struct {
	db *sqlx.DB
}

// NewRepository creates new user repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Upsert inserts a user on first sight or refreshes the provider-owned fields.
// The role can be promoted to admin here but never demoted.
func (r *repository) Upsert(ctx context.Context, user *User) (*User, error) {
	query := `
		INSERT INTO users (id, email, first_name, last_name, profile_image_url, balance, role)
		VALUES ($1, $2, $3, $4, $5, 0, $6)
		ON CONFLICT (id) DO UPDATE SET
			email = COALESCE(EXCLUDED.email, users.email),
			first_name = COALESCE(EXCLUDED.first_name, users.first_name),
			last_name = COALESCE(EXCLUDED.last_name, users.last_name),
			profile_image_url = COALESCE(EXCLUDED.profile_image_url, users.profile_image_url),
			role = CASE WHEN EXCLUDED.role = 'admin' THEN 'admin' ELSE users.role END,
			updated_at = now()
		RETURNING ` + userColumns

	var out User
	err := r.db.GetContext(ctx, &out, query,
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.ProfileImageURL,
		user.Role,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("user repository upsert: %w", err)
	}
	return &out, nil
}

// GetByID returns ErrUserNotFound when the account does not exist
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var out User
	err := r.db.GetContext(ctx, &out, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user repository get: %w", err)
	}
	return &out, nil
}

func (r *repository) GetBalance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.db.GetContext(ctx, &balance, `SELECT balance FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, ErrUserNotFound
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("user repository balance: %w", err)
	}
	return balance, nil
}

// AdjustBalanceTx applies delta inside tx and returns the new balance.
// The update is conditional on the result staying non-negative; the row lock it
// takes serializes concurrent adjustments of the same account until tx ends.
func (r *repository) AdjustBalanceTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := tx.GetContext(ctx, &balance, `
		UPDATE users
		SET balance = balance + $2, updated_at = now()
		WHERE id = $1 AND balance + $2 >= 0
		RETURNING balance
	`, id, delta)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("user repository adjust balance: %w", err)
	}

	var exists bool
	if err := tx.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id); err != nil {
		return decimal.Zero, fmt.Errorf("user repository adjust balance: %w", err)
	}
	if !exists {
		return decimal.Zero, ErrUserNotFound
	}
	return decimal.Zero, ErrInsufficientBalance
}

func (r *repository) UpdateProfile(ctx context.Context, id uuid.UUID, firstName, lastName string) (*User, error) {
	var out User
	err := r.db.GetContext(ctx, &out, `
		UPDATE users
		SET first_name = $2, last_name = $3, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns, id, firstName, lastName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user repository update profile: %w", err)
	}
	return &out, nil
}

// DeleteCascade removes the user's add-money requests, orders and the user in one transaction
func (r *repository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("user repository delete: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM add_money_requests WHERE user_id = $1`, id); err != nil {
		return fmt.Errorf("user repository delete requests: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE user_id = $1`, id); err != nil {
		return fmt.Errorf("user repository delete orders: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("user repository delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}

	return tx.Commit()
}
