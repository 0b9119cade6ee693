package user

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Role represents the stored user role
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is a storefront account with its wallet balance
type User struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	Email           *string         `db:"email" json:"email,omitempty"`
	FirstName       *string         `db:"first_name" json:"first_name,omitempty"`
	LastName        *string         `db:"last_name" json:"last_name,omitempty"`
	ProfileImageURL *string         `db:"profile_image_url" json:"profile_image_url,omitempty"`
	Balance         decimal.Decimal `db:"balance" json:"balance"`
	Role            Role            `db:"role" json:"role"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// IsAdmin returns true if user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
