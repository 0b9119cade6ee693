package ledger

import (
	"errors"

	"github.com/topupstore/topup-api/internal/domain/catalog"
	"github.com/topupstore/topup-api/internal/domain/user"
)

var (
	ErrOrderNotFound          = errors.New("order not found")
	ErrRequestNotFound        = errors.New("add money request not found")
	ErrPackageUnavailable     = errors.New("package is not available for this game")
	ErrInvalidStateTransition = errors.New("record is no longer pending")
	ErrInvalidDecision        = errors.New("invalid decision")
	ErrInvalidGameUID         = errors.New("game uid is required")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrAmountBelowMinimum     = errors.New("amount is below the minimum")
	ErrInvalidTransferProof   = errors.New("sender number and transaction id are required")

	// Raised by the account and catalog stores, surfaced unchanged
	ErrInsufficientBalance = user.ErrInsufficientBalance
	ErrUserNotFound        = user.ErrUserNotFound
	ErrPackageNotFound     = catalog.ErrPackageNotFound
)

// IsNotFound reports whether err means a referenced record does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrRequestNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrPackageNotFound) ||
		errors.Is(err, ErrPackageUnavailable)
}

// IsValidation reports whether err is caused by malformed input
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidDecision) ||
		errors.Is(err, ErrInvalidGameUID) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrAmountBelowMinimum) ||
		errors.Is(err, ErrInvalidTransferProof)
}
