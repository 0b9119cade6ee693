package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is pending until an admin completes or cancels the order
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// IsDecision reports whether s is a terminal status an admin may set
func (s OrderStatus) IsDecision() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// RequestStatus is pending until an admin approves or rejects the request
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

func (s RequestStatus) IsDecision() bool {
	return s == RequestApproved || s == RequestRejected
}

// Order records one package purchase. Amount is the package price at placement and never changes.
type Order struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	UserID    uuid.UUID       `db:"user_id" json:"user_id"`
	GameID    uuid.UUID       `db:"game_id" json:"game_id"`
	PackageID uuid.UUID       `db:"package_id" json:"package_id"`
	GameUID   string          `db:"game_uid" json:"game_uid"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	Status    OrderStatus     `db:"status" json:"status"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// OrderView is an order joined with its catalog entries, and the owner's email for admins
type OrderView struct {
	Order
	GameName      string  `db:"game_name" json:"game_name"`
	PackageName   string  `db:"package_name" json:"package_name"`
	PackageAmount int     `db:"package_amount" json:"package_amount"`
	UserEmail     *string `db:"user_email" json:"user_email,omitempty"`
}

// RecentOrder is the public activity feed entry; it carries no user data
type RecentOrder struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	GameName      string          `db:"game_name" json:"game_name"`
	PackageName   string          `db:"package_name" json:"package_name"`
	PackageAmount int             `db:"package_amount" json:"package_amount"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	Status        OrderStatus     `db:"status" json:"status"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// AddMoneyRequest is a user's claim of an external transfer awaiting review.
// Amount is credited as declared when approved.
type AddMoneyRequest struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	UserID        uuid.UUID       `db:"user_id" json:"user_id"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	SenderNumber  string          `db:"sender_number" json:"sender_number"`
	TransactionID string          `db:"transaction_id" json:"transaction_id"`
	Status        RequestStatus   `db:"status" json:"status"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

type AddMoneyRequestView struct {
	AddMoneyRequest
	UserEmail *string `db:"user_email" json:"user_email,omitempty"`
}

// Stats is the admin dashboard summary. Revenue sums every order regardless of status.
type Stats struct {
	TotalOrders   int             `db:"total_orders" json:"total_orders"`
	TotalRevenue  decimal.Decimal `db:"total_revenue" json:"total_revenue"`
	ActiveUsers   int             `db:"active_users" json:"active_users"`
	PendingOrders int             `db:"pending_orders" json:"pending_orders"`
}

// Page selects a slice of an admin listing
type Page struct {
	Limit  int
	Offset int
}
