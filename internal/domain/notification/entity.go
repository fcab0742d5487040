package notification

import (
	"time"

	"github.com/google/uuid"
)

// Type represents the kind of notification
type Type string

const (
	TypeItemApproved Type = "item_approved"
	TypeItemRejected Type = "item_rejected"
)

// Notification represents a persisted user notification
type Notification struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Type      Type      `db:"type" json:"type"`
	Title     string    `db:"title" json:"title"`
	Body      string    `db:"body" json:"body"`
	IsRead    bool      `db:"is_read" json:"is_read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
