package approval

import (
	"errors"
	"fmt"

	"github.com/unibazaar/unibazaar-api/internal/domain/wallet"
)

var (
	ErrInvalidFee = errors.New("no fee configured for item kind")
)

// InsufficientBalanceError carries the current balance so callers can tell
// the user how short they are. Unwraps to wallet.ErrInsufficientFunds.
type InsufficientBalanceError struct {
	Balance  int64
	Required int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: have %d, need %d", e.Balance, e.Required)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return wallet.ErrInsufficientFunds
}
