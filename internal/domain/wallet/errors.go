package wallet

import "errors"

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInsufficientFunds  = errors.New("insufficient wallet balance")
	ErrUserNotFound       = errors.New("wallet owner not found")
	ErrDuplicateReference = errors.New("duplicate reference")
	ErrReferenceConflict  = errors.New("reference conflicts with different amount")
)
