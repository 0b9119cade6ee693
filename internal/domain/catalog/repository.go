package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	queryTimeout   = 3 * time.Second
	gameColumns    = `id, name, display_name, currency, icon, is_active, created_at`
	packageColumns = `id, game_id, name, amount, price, is_active, created_at`
)

// Repository is the read side of the catalog plus the seed writer
type Repository interface {
	ListActiveGames(ctx context.Context) ([]Game, error)
	GetGame(ctx context.Context, id uuid.UUID) (*Game, error)
	ListActivePackages(ctx context.Context, gameID uuid.UUID) ([]Package, error)
	GetOfferTx(ctx context.Context, tx *sqlx.Tx, packageID uuid.UUID) (*Offer, error)
	CountGames(ctx context.Context) (int, error)
	InsertGames(ctx context.Context, games []SeedGame) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListActiveGames(ctx context.Context) ([]Game, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	games := []Game{}
	err := r.db.SelectContext(ctx2, &games, `
		SELECT `+gameColumns+`
		FROM games
		WHERE is_active = TRUE
		ORDER BY display_name
	`)
	if err != nil {
		return nil, fmt.Errorf("catalog repository list games: %w", err)
	}
	return games, nil
}

func (r *repository) GetGame(ctx context.Context, id uuid.UUID) (*Game, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var g Game
	err := r.db.GetContext(ctx2, &g, `SELECT `+gameColumns+` FROM games WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("catalog repository get game: %w", err)
	}
	return &g, nil
}

func (r *repository) ListActivePackages(ctx context.Context, gameID uuid.UUID) ([]Package, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	packages := []Package{}
	err := r.db.SelectContext(ctx2, &packages, `
		SELECT `+packageColumns+`
		FROM packages
		WHERE game_id = $1 AND is_active = TRUE
		ORDER BY price
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("catalog repository list packages: %w", err)
	}
	return packages, nil
}

// GetOfferTx reads a package and its game's active flag inside tx.
// FOR SHARE keeps price and availability fixed until the order row is written.
func (r *repository) GetOfferTx(ctx context.Context, tx *sqlx.Tx, packageID uuid.UUID) (*Offer, error) {
	var o Offer
	err := tx.GetContext(ctx, &o, `
		SELECT p.id, p.game_id, p.name, p.amount, p.price, p.is_active, p.created_at,
		       g.is_active AS game_active
		FROM packages p
		JOIN games g ON g.id = p.game_id
		WHERE p.id = $1
		FOR SHARE OF p, g
	`, packageID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("catalog repository get offer: %w", err)
	}
	return &o, nil
}

func (r *repository) CountGames(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM games`); err != nil {
		return 0, fmt.Errorf("catalog repository count games: %w", err)
	}
	return n, nil
}

// InsertGames writes games and their packages in one transaction
func (r *repository) InsertGames(ctx context.Context, games []SeedGame) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("catalog repository seed: begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, g := range games {
		gameID := uuid.New()
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO games (id, name, display_name, currency, icon, is_active)
			VALUES ($1, $2, $3, $4, $5, TRUE)
		`, gameID, g.Name, g.DisplayName, g.Currency, g.Icon); err != nil {
			return fmt.Errorf("catalog repository seed game %s: %w", g.Name, err)
		}

		for _, p := range g.Packages {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO packages (id, game_id, name, amount, price, is_active)
				VALUES ($1, $2, $3, $4, $5, TRUE)
			`, uuid.New(), gameID, p.Name, p.Amount, p.Price); err != nil {
				return fmt.Errorf("catalog repository seed package %s: %w", p.Name, err)
			}
		}
	}

	return tx.Commit()
}
