package item

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines item data access interface
type Repository interface {
	// CreateTx inserts a new pending item inside a caller-owned transaction.
	CreateTx(ctx context.Context, tx *sqlx.Tx, item *Item) error

	Get(ctx context.Context, id uuid.UUID) (*Item, error)

	// GetTx loads and locks an item row inside a caller-owned transaction.
	GetTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*Item, error)

	// UpdateStatusTx transitions an item's status only when its current status
	// equals expected. A concurrent caller that lost the race observes
	// ErrAlreadyProcessed, never a silent second transition.
	UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, newStatus, expected Status) error

	ListPending(ctx context.Context, limit, offset int) ([]*Item, error)
	CountPending(ctx context.Context) (int, error)
	ListApprovedByCampus(ctx context.Context, campus string, limit, offset int) ([]*Item, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Item, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new item repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateTx(ctx context.Context, tx *sqlx.Tx, item *Item) error {
	query := `
		INSERT INTO items (id, owner_id, kind, title, description, price, campus, payload, status, cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	payload := item.Payload
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	_, err := tx.ExecContext(ctx, query,
		item.ID,
		item.OwnerID,
		item.Kind,
		item.Title,
		item.Description,
		item.Price,
		item.Campus,
		payload,
		StatusPending,
		item.Cost,
	)
	if err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	item.Status = StatusPending
	return nil
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*Item, error) {
	var it Item
	err := r.db.GetContext(ctx, &it, `SELECT * FROM items WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

func (r *repository) GetTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*Item, error) {
	var it Item
	err := tx.GetContext(ctx, &it, `SELECT * FROM items WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("get item for update: %w", err)
	}
	return &it, nil
}

func (r *repository) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, newStatus, expected Status) error {
	result, err := tx.ExecContext(ctx, `
		UPDATE items
		SET status = $3, decided_at = now(), updated_at = now()
		WHERE id = $1 AND status = $2
	`, id, expected, newStatus)
	if err != nil {
		return fmt.Errorf("update item status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Conditional update missed: absent item vs. lost race.
		var exists bool
		if err := tx.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM items WHERE id = $1)`, id); err != nil {
			return err
		}
		if !exists {
			return ErrItemNotFound
		}
		return ErrAlreadyProcessed
	}
	return nil
}

func (r *repository) ListPending(ctx context.Context, limit, offset int) ([]*Item, error) {
	if limit <= 0 {
		limit = 50
	}

	items := make([]*Item, 0)
	err := r.db.SelectContext(ctx, &items, `
		SELECT * FROM items
		WHERE status = 'pending'
		ORDER BY created_at ASC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	return items, err
}

func (r *repository) CountPending(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM items WHERE status = 'pending'`)
	return count, err
}

func (r *repository) ListApprovedByCampus(ctx context.Context, campus string, limit, offset int) ([]*Item, error) {
	if limit <= 0 {
		limit = 50
	}

	items := make([]*Item, 0)
	err := r.db.SelectContext(ctx, &items, `
		SELECT * FROM items
		WHERE status = 'approved' AND campus = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, campus, limit, offset)
	return items, err
}

func (r *repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Item, error) {
	items := make([]*Item, 0)
	err := r.db.SelectContext(ctx, &items, `
		SELECT * FROM items
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	return items, err
}
