package ledger

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/topupstore/topup-api/internal/domain/catalog"
	"github.com/topupstore/topup-api/internal/pkg/logger"
	"github.com/topupstore/topup-api/internal/pkg/metrics"
	"github.com/topupstore/topup-api/internal/pkg/money"
)

// AccountStore is the balance primitive the ledger composes with its own writes
type AccountStore interface {
	AdjustBalanceTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error)
}

// CatalogStore gives the ledger the authoritative package price
type CatalogStore interface {
	GetOfferTx(ctx context.Context, tx *sqlx.Tx, packageID uuid.UUID) (*catalog.Offer, error)
}

// Config holds the ledger's business limits
type Config struct {
	MinAddMoneyAmount decimal.Decimal
	RecentOrdersLimit int
}

// Service owns every wallet balance mutation. Each money movement commits
// together with the order or request row it belongs to, or not at all.
type Service struct {
	repo     Repository
	accounts AccountStore
	catalog  CatalogStore
	cfg      Config
}

func NewService(repo Repository, accounts AccountStore, offers CatalogStore, cfg Config) *Service {
	if cfg.RecentOrdersLimit <= 0 {
		cfg.RecentOrdersLimit = 10
	}
	return &Service{repo: repo, accounts: accounts, catalog: offers, cfg: cfg}
}

// PlaceOrderInput is what a user submits; the amount always comes from the catalog
type PlaceOrderInput struct {
	GameID    uuid.UUID
	PackageID uuid.UUID
	GameUID   string
}

// PlaceOrder debits the package price and records a pending order
func (s *Service) PlaceOrder(ctx context.Context, userID uuid.UUID, in PlaceOrderInput) (*Order, error) {
	order, err := s.placeOrder(ctx, userID, in)
	switch {
	case err == nil:
		metrics.RecordOrderPlaced("ok")
	case errors.Is(err, ErrInsufficientBalance):
		metrics.RecordOrderPlaced("insufficient_balance")
	case IsNotFound(err):
		metrics.RecordOrderPlaced("not_found")
	case IsValidation(err):
		metrics.RecordOrderPlaced("invalid")
	default:
		metrics.RecordOrderPlaced("error")
	}
	return order, err
}

func (s *Service) placeOrder(ctx context.Context, userID uuid.UUID, in PlaceOrderInput) (*Order, error) {
	gameUID := strings.TrimSpace(in.GameUID)
	if gameUID == "" {
		return nil, ErrInvalidGameUID
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	offer, err := s.catalog.GetOfferTx(ctx, tx, in.PackageID)
	if err != nil {
		return nil, err
	}
	if !offer.Purchasable(in.GameID) {
		return nil, ErrPackageUnavailable
	}

	balance, err := s.accounts.AdjustBalanceTx(ctx, tx, userID, offer.Price.Neg())
	if err != nil {
		return nil, err
	}

	order := &Order{
		ID:        uuid.New(),
		UserID:    userID,
		GameID:    offer.GameID,
		PackageID: offer.ID,
		GameUID:   gameUID,
		Amount:    offer.Price,
		Status:    OrderPending,
	}
	if err := s.repo.InsertOrderTx(ctx, tx, order); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	metrics.RecordDebit(order.Amount.InexactFloat64())
	logger.FromContext(ctx).Info().
		Str("user_id", userID.String()).
		Str("order_id", order.ID.String()).
		Str("amount", money.Format(order.Amount)).
		Str("balance", money.Format(balance)).
		Msg("order placed")
	return order, nil
}

// DecideOrder completes or cancels a pending order. Cancellation does not refund the debit.
func (s *Service) DecideOrder(ctx context.Context, orderID uuid.UUID, decision OrderStatus) (*Order, error) {
	order, err := s.decideOrder(ctx, orderID, decision)
	metrics.RecordDecision("order", string(decision), outcome(err))
	return order, err
}

func (s *Service) decideOrder(ctx context.Context, orderID uuid.UUID, decision OrderStatus) (*Order, error) {
	if !decision.IsDecision() {
		return nil, ErrInvalidDecision
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	current, err := s.repo.LockOrderTx(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if current.Status != OrderPending {
		return nil, ErrInvalidStateTransition
	}

	order, err := s.repo.SetOrderStatusTx(ctx, tx, orderID, decision)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Str("order_id", orderID.String()).
		Str("status", string(decision)).
		Msg("order decided")
	return order, nil
}

// AddMoneyInput is a user's declaration of an external transfer
type AddMoneyInput struct {
	Amount        decimal.Decimal
	SenderNumber  string
	TransactionID string
}

// CreateAddMoneyRequest records a pending top-up claim; the balance is untouched until approval
func (s *Service) CreateAddMoneyRequest(ctx context.Context, userID uuid.UUID, in AddMoneyInput) (*AddMoneyRequest, error) {
	if !money.IsPositiveCents(in.Amount) {
		return nil, ErrInvalidAmount
	}
	if in.Amount.LessThan(s.cfg.MinAddMoneyAmount) {
		return nil, ErrAmountBelowMinimum
	}

	sender := strings.TrimSpace(in.SenderNumber)
	txnID := strings.TrimSpace(in.TransactionID)
	if sender == "" || txnID == "" {
		return nil, ErrInvalidTransferProof
	}

	req := &AddMoneyRequest{
		ID:            uuid.New(),
		UserID:        userID,
		Amount:        in.Amount,
		SenderNumber:  sender,
		TransactionID: txnID,
		Status:        RequestPending,
	}
	if err := s.repo.InsertAddMoneyRequest(ctx, req); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Str("user_id", userID.String()).
		Str("request_id", req.ID.String()).
		Str("amount", money.Format(req.Amount)).
		Msg("add money request submitted")
	return req, nil
}

// DecideAddMoneyRequest approves (crediting the declared amount) or rejects a pending request
func (s *Service) DecideAddMoneyRequest(ctx context.Context, requestID uuid.UUID, decision RequestStatus) (*AddMoneyRequest, error) {
	req, err := s.decideAddMoneyRequest(ctx, requestID, decision)
	metrics.RecordDecision("add_money_request", string(decision), outcome(err))
	return req, err
}

func (s *Service) decideAddMoneyRequest(ctx context.Context, requestID uuid.UUID, decision RequestStatus) (*AddMoneyRequest, error) {
	if !decision.IsDecision() {
		return nil, ErrInvalidDecision
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	current, err := s.repo.LockAddMoneyRequestTx(ctx, tx, requestID)
	if err != nil {
		return nil, err
	}
	if current.Status != RequestPending {
		return nil, ErrInvalidStateTransition
	}

	if decision == RequestApproved {
		if _, err := s.accounts.AdjustBalanceTx(ctx, tx, current.UserID, current.Amount); err != nil {
			return nil, err
		}
	}

	req, err := s.repo.SetAddMoneyRequestStatusTx(ctx, tx, requestID, decision)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	if decision == RequestApproved {
		metrics.RecordCredit(req.Amount.InexactFloat64())
	}
	logger.FromContext(ctx).Info().
		Str("user_id", req.UserID.String()).
		Str("request_id", requestID.String()).
		Str("amount", money.Format(req.Amount)).
		Str("status", string(decision)).
		Msg("add money request decided")
	return req, nil
}

func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}

func (s *Service) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]OrderView, error) {
	return s.repo.ListOrdersByUser(ctx, userID)
}

// GetUserOrder returns one of the caller's orders. Orders of other users read as not found.
func (s *Service) GetUserOrder(ctx context.Context, userID, orderID uuid.UUID) (*Order, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *Service) ListRecentOrders(ctx context.Context) ([]RecentOrder, error) {
	return s.repo.ListRecentOrders(ctx, s.cfg.RecentOrdersLimit)
}

func (s *Service) ListAllOrders(ctx context.Context, page Page) ([]OrderView, int, error) {
	return s.repo.ListAllOrders(ctx, page)
}

func (s *Service) ListUserAddMoneyRequests(ctx context.Context, userID uuid.UUID) ([]AddMoneyRequest, error) {
	return s.repo.ListAddMoneyRequestsByUser(ctx, userID)
}

func (s *Service) GetUserAddMoneyRequest(ctx context.Context, userID, requestID uuid.UUID) (*AddMoneyRequest, error) {
	req, err := s.repo.GetAddMoneyRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.UserID != userID {
		return nil, ErrRequestNotFound
	}
	return req, nil
}

func (s *Service) ListAllAddMoneyRequests(ctx context.Context, page Page) ([]AddMoneyRequestView, int, error) {
	return s.repo.ListAllAddMoneyRequests(ctx, page)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidStateTransition):
		return "not_pending"
	case IsNotFound(err):
		return "not_found"
	case IsValidation(err):
		return "invalid"
	default:
		return "error"
	}
}
