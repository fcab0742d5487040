package wallet

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// GetBalance returns the current balance, 0 when the user has no wallet row yet.
func (r *Repository) GetBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	var balance int64
	err := r.db.GetContext(ctx, &balance, `SELECT balance FROM user_wallets WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return balance, err
}

// ListTransactions returns the ledger entries for a user, newest first.
func (r *Repository) ListTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Transaction, error) {
	if limit <= 0 {
		limit = 20
	}

	transactions := make([]Transaction, 0)
	err := r.db.SelectContext(ctx, &transactions, `
		SELECT id, user_id, amount, type, description, reference_id, created_at
		FROM wallet_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	return transactions, err
}

// lockWallet creates the wallet row if missing and locks it for the duration
// of the transaction. Balance checks and updates after this call are safe
// against concurrent mutations of the same wallet.
func (r *Repository) lockWallet(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID) (int64, error) {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO user_wallets (user_id, balance)
		VALUES ($1, 0)
		ON CONFLICT (user_id) DO NOTHING
	`, userID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	var balance int64
	err := tx.GetContext(ctx, &balance, `SELECT balance FROM user_wallets WHERE user_id = $1 FOR UPDATE`, userID)
	return balance, err
}

func (r *Repository) getTransactionAmountByRef(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, txType TransactionType, referenceID string) (int64, bool, error) {
	if referenceID == "" {
		return 0, false, nil
	}

	var amount int64
	err := tx.GetContext(ctx, &amount, `
		SELECT amount
		FROM wallet_transactions
		WHERE user_id = $1 AND type = $2 AND reference_id = $3
		LIMIT 1
	`, userID, string(txType), referenceID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return amount, true, nil
}

func (r *Repository) updateBalance(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, balance int64) error {
	_, err := tx.ExecContext(ctx, `UPDATE user_wallets SET balance = $1, updated_at = now() WHERE user_id = $2`, balance, userID)
	return err
}

func (r *Repository) insertTransaction(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount int64, txType TransactionType, description, referenceID string) error {
	var ref interface{}
	if referenceID == "" {
		ref = nil
	} else {
		ref = referenceID
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO wallet_transactions (user_id, amount, type, description, reference_id)
		VALUES ($1, $2, $3, $4, $5)
	`, userID, amount, string(txType), description, ref)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateReference
		}
		return err
	}
	return nil
}

// applyTx applies one signed ledger mutation inside a caller-owned
// transaction. It locks the wallet row, replays idempotently when the same
// (type, reference) was already applied, and refuses any mutation that would
// take the balance below zero. The caller commits or rolls back.
func (r *Repository) applyTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount int64, txType TransactionType, description, referenceID string) error {
	balance, err := r.lockWallet(ctx, tx, userID)
	if err != nil {
		return err
	}

	existingAmount, exists, err := r.getTransactionAmountByRef(ctx, tx, userID, txType, referenceID)
	if err != nil {
		return err
	}
	if exists {
		if existingAmount != amount {
			return ErrReferenceConflict
		}
		return nil
	}

	nextBalance := balance + amount
	if nextBalance < 0 {
		return ErrInsufficientFunds
	}

	if err := r.updateBalance(ctx, tx, userID, nextBalance); err != nil {
		return err
	}

	if err := r.insertTransaction(ctx, tx, userID, amount, txType, description, referenceID); err != nil {
		if errors.Is(err, ErrDuplicateReference) {
			existingAmount, exists, checkErr := r.getTransactionAmountByRef(ctx, tx, userID, txType, referenceID)
			if checkErr != nil {
				return checkErr
			}
			if !exists || existingAmount != amount {
				return ErrReferenceConflict
			}
			return nil
		}
		return err
	}

	return nil
}

// apply runs applyTx in its own transaction.
func (r *Repository) apply(ctx context.Context, userID uuid.UUID, amount int64, txType TransactionType, description, referenceID string) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := r.applyTx(ctx, tx, userID, amount, txType, description, referenceID); err != nil {
		return err
	}

	return tx.Commit()
}

// Recharge adds funds in a self-contained transaction.
func (r *Repository) Recharge(ctx context.Context, userID uuid.UUID, amount int64, description, referenceID string) error {
	return r.apply(ctx, userID, amount, TransactionTypeRecharge, description, referenceID)
}

// DebitTx charges the wallet inside a caller-owned transaction so the debit
// commits or rolls back together with whatever the fee pays for.
func (r *Repository) DebitTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount int64, description, referenceID string) error {
	return r.applyTx(ctx, tx, userID, -amount, TransactionTypeDebit, description, referenceID)
}

// RefundTx returns funds inside a caller-owned transaction.
func (r *Repository) RefundTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount int64, description, referenceID string) error {
	return r.applyTx(ctx, tx, userID, amount, TransactionTypeRefund, description, referenceID)
}
