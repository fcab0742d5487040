package approval

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/unibazaar/unibazaar-api/internal/domain/item"
	"github.com/unibazaar/unibazaar-api/internal/domain/wallet"
)

// Notifier receives moderation decisions after they commit.
type Notifier interface {
	ItemDecided(ctx context.Context, it *item.Item)
}

// CacheInvalidator drops cached listings affected by a decision.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, campus string)
}

// Service runs the wallet-funded approval workflow. Every operation is one
// all-or-nothing database transaction composing the ledger and the item
// store: a fee is never captured without its item, and an item is never
// rejected without its refund.
type Service struct {
	db       *sqlx.DB
	wallets  *wallet.Service
	items    item.Repository
	fees     FeeSchedule
	notifier Notifier
	cache    CacheInvalidator
}

// NewService creates the approval workflow service. notifier and cache may
// be nil.
func NewService(db *sqlx.DB, wallets *wallet.Service, items item.Repository, fees FeeSchedule, notifier Notifier, cache CacheInvalidator) *Service {
	if fees == nil {
		fees = DefaultFeeSchedule
	}
	return &Service{
		db:       db,
		wallets:  wallets,
		items:    items,
		fees:     fees,
		notifier: notifier,
		cache:    cache,
	}
}

// FeeFor returns the submission fee for a kind.
func (s *Service) FeeFor(kind item.Kind) int64 {
	return s.fees.For(kind)
}

func (s *Service) beginTx(ctx context.Context) (*sqlx.Tx, error) {
	return s.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
}

// Submit charges the advertising fee and creates the pending item in one
// transaction. On insufficient funds nothing is persisted and the caller
// gets the current balance back; on any later failure the debit rolls back
// with the item.
func (s *Service) Submit(ctx context.Context, ownerID uuid.UUID, campus string, req *SubmitRequest) (*item.Item, error) {
	kind := item.Kind(req.Kind)
	if !item.IsValidKind(req.Kind) {
		return nil, item.ErrInvalidKind
	}

	cost := s.fees.For(kind)
	if cost <= 0 {
		return nil, ErrInvalidFee
	}

	it := &item.Item{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Kind:        kind,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Campus:      campus,
		Payload:     req.Payload,
		Cost:        cost,
	}

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin submit tx: %w", err)
	}
	defer tx.Rollback()

	err = s.wallets.DebitTx(ctx, tx, ownerID, cost, "advertising fee for "+string(kind), it.ID.String())
	if err != nil {
		if errors.Is(err, wallet.ErrInsufficientFunds) {
			tx.Rollback()
			balance, balErr := s.wallets.GetBalance(ctx, ownerID)
			if balErr != nil {
				balance = 0
			}
			return nil, &InsufficientBalanceError{Balance: balance, Required: cost}
		}
		return nil, err
	}

	if err := s.items.CreateTx(ctx, tx, it); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit submit tx: %w", err)
	}

	log.Info().
		Str("item_id", it.ID.String()).
		Str("owner_id", ownerID.String()).
		Str("kind", string(kind)).
		Int64("cost", cost).
		Msg("item submitted for moderation")

	return it, nil
}

// Approve transitions a pending item to approved. No ledger mutation: the
// fee was captured at submission. A non-pending item yields
// item.ErrAlreadyProcessed.
func (s *Service) Approve(ctx context.Context, itemID uuid.UUID) (*item.Item, error) {
	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin approve tx: %w", err)
	}
	defer tx.Rollback()

	it, err := s.items.GetTx(ctx, tx, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.items.UpdateStatusTx(ctx, tx, itemID, item.StatusApproved, item.StatusPending); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit approve tx: %w", err)
	}

	it.Status = item.StatusApproved
	s.afterDecision(ctx, it)

	log.Info().
		Str("item_id", it.ID.String()).
		Str("owner_id", it.OwnerID.String()).
		Msg("item approved")

	return it, nil
}

// Reject transitions a pending item to rejected and refunds its recorded
// cost in the same transaction. A failed refund rolls the status change
// back, leaving the item pending and the reject safely retryable; a retried
// reject of an already-decided item yields item.ErrAlreadyProcessed and no
// second refund.
func (s *Service) Reject(ctx context.Context, itemID uuid.UUID) (*item.Item, error) {
	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin reject tx: %w", err)
	}
	defer tx.Rollback()

	it, err := s.items.GetTx(ctx, tx, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.items.UpdateStatusTx(ctx, tx, itemID, item.StatusRejected, item.StatusPending); err != nil {
		return nil, err
	}

	if it.Cost > 0 {
		err := s.wallets.RefundTx(ctx, tx, it.OwnerID, it.Cost, "refund for rejected "+string(it.Kind), it.ID.String())
		if err != nil {
			return nil, fmt.Errorf("refund on reject: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit reject tx: %w", err)
	}

	it.Status = item.StatusRejected
	s.afterDecision(ctx, it)

	log.Info().
		Str("item_id", it.ID.String()).
		Str("owner_id", it.OwnerID.String()).
		Int64("refund", it.Cost).
		Msg("item rejected and refunded")

	return it, nil
}

// ListPending returns the moderation queue.
func (s *Service) ListPending(ctx context.Context, limit, offset int) ([]*item.Item, int, error) {
	items, err := s.items.ListPending(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.items.CountPending(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// afterDecision runs post-commit side effects. They are best-effort: a
// committed decision stands whether or not the owner could be notified.
func (s *Service) afterDecision(ctx context.Context, it *item.Item) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, it.Campus)
	}
	if s.notifier != nil {
		s.notifier.ItemDecided(ctx, it)
	}
}
