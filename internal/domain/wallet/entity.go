package wallet

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TransactionTypeRecharge TransactionType = "recharge"
	TransactionTypeDebit    TransactionType = "debit"
	TransactionTypeRefund   TransactionType = "refund"
)

type Wallet struct {
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Balance   int64     `db:"balance" json:"balance"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Transaction is one signed ledger entry. Recharge and refund amounts are
// positive, debit amounts are negative; the wallet balance is always the
// running sum of its transactions.
type Transaction struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	UserID      uuid.UUID       `db:"user_id" json:"user_id"`
	Amount      int64           `db:"amount" json:"amount"`
	Type        TransactionType `db:"type" json:"type"`
	Description string          `db:"description" json:"description"`
	ReferenceID *string         `db:"reference_id" json:"reference_id,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}
