package user

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailTaken          = errors.New("email already belongs to another account")
	ErrInsufficientBalance = errors.New("insufficient balance")
)
