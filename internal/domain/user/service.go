package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/topupstore/topup-api/internal/pkg/jwt"
	"github.com/topupstore/topup-api/internal/pkg/logger"
)

// Service manages storefront accounts
type Service struct {
	repo        Repository
	adminEmails map[string]struct{}
}

// NewService creates user service; accounts whose email is in adminEmails get the admin role
func NewService(repo Repository, adminEmails []string) *Service {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		admins[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	return &Service{repo: repo, adminEmails: admins}
}

// Sync upserts the account described by the identity provider
func (s *Service) Sync(ctx context.Context, id jwt.Identity) (*User, error) {
	role := RoleUser
	if _, ok := s.adminEmails[strings.ToLower(id.Email)]; ok && id.Email != "" {
		role = RoleAdmin
	}

	u, err := s.repo.Upsert(ctx, &User{
		ID:              id.UserID,
		Email:           nullable(id.Email),
		FirstName:       nullable(id.FirstName),
		LastName:        nullable(id.LastName),
		ProfileImageURL: nullable(id.ProfileImageURL),
		Role:            role,
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Debug().Str("user_id", u.ID.String()).Str("role", string(u.Role)).Msg("account synced")
	return u, nil
}

// Load returns the stored account, creating it on first sight
func (s *Service) Load(ctx context.Context, id jwt.Identity) (*User, error) {
	u, err := s.repo.GetByID(ctx, id.UserID)
	if errors.Is(err, ErrUserNotFound) {
		return s.Sync(ctx, id)
	}
	return u, err
}

func (s *Service) Balance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	return s.repo.GetBalance(ctx, id)
}

func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*User, error) {
	return s.repo.UpdateProfile(ctx, id, strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName))
}

// DeleteAccount removes the account together with its orders and add-money requests
func (s *Service) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		return err
	}
	logger.FromContext(ctx).Info().Str("user_id", id.String()).Msg("account deleted")
	return nil
}
