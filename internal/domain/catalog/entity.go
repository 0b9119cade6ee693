package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Game is a catalog entry whose in-game currency is sold in packages
type Game struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	DisplayName string    `db:"display_name" json:"display_name"`
	Currency    string    `db:"currency" json:"currency"`
	Icon        string    `db:"icon" json:"icon"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Package is a purchasable bundle of a game's currency. Price is what an order debits.
type Package struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	GameID    uuid.UUID       `db:"game_id" json:"game_id"`
	Name      string          `db:"name" json:"name"`
	Amount    int             `db:"amount" json:"amount"`
	Price     decimal.Decimal `db:"price" json:"price"`
	IsActive  bool            `db:"is_active" json:"is_active"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// Offer is a package together with the availability of its game, as read for an order
type Offer struct {
	Package
	GameActive bool `db:"game_active"`
}

// Purchasable reports whether an order may be placed for the offer under gameID
func (o *Offer) Purchasable(gameID uuid.UUID) bool {
	return o.GameID == gameID && o.IsActive && o.GameActive
}
