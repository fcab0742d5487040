package wallet

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.GetBalance(ctx, userID)
}

func (s *Service) ListTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Transaction, error) {
	return s.repo.ListTransactions(ctx, userID, limit, offset)
}

func (s *Service) Recharge(ctx context.Context, userID uuid.UUID, amount int64, description, referenceID string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if err := s.repo.Recharge(ctx, userID, amount, description, referenceID); err != nil {
		return err
	}
	log.Info().Str("user_id", userID.String()).Int64("amount", amount).Str("reference_id", referenceID).Msg("wallet recharge applied")
	return nil
}

// DebitTx charges a fee inside the caller's transaction. The reference id is
// required so a retried charge for the same item replays instead of
// double-debiting.
func (s *Service) DebitTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount int64, description, referenceID string) error {
	if amount <= 0 || referenceID == "" {
		return ErrInvalidAmount
	}
	return s.repo.DebitTx(ctx, tx, userID, amount, description, referenceID)
}

// RefundTx returns a fee inside the caller's transaction.
func (s *Service) RefundTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount int64, description, referenceID string) error {
	if amount <= 0 || referenceID == "" {
		return ErrInvalidAmount
	}
	return s.repo.RefundTx(ctx, tx, userID, amount, description, referenceID)
}
