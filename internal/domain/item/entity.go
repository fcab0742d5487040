package item

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Kind represents the category of an advertisable item (matches item_kind enum)
type Kind string

const (
	KindListing    Kind = "listing"
	KindEvent      Kind = "event"
	KindRestaurant Kind = "restaurant"
	KindStationary Kind = "stationary"
	KindFlat       Kind = "flat"
)

// Status represents the moderation status of an item (matches item_status enum)
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ValidKinds returns the closed set of item kinds
func ValidKinds() []Kind {
	return []Kind{KindListing, KindEvent, KindRestaurant, KindStationary, KindFlat}
}

// IsValidKind checks if kind belongs to the closed set
func IsValidKind(kind string) bool {
	for _, k := range ValidKinds() {
		if string(k) == kind {
			return true
		}
	}
	return false
}

// Item is an advertisable entry submitted for moderation. Cost is the fee
// captured at submission time and never changes afterwards; a rejected item
// is refunded exactly this amount.
type Item struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	OwnerID     uuid.UUID       `db:"owner_id" json:"owner_id"`
	Kind        Kind            `db:"kind" json:"kind"`
	Title       string          `db:"title" json:"title"`
	Description string          `db:"description" json:"description"`
	Price       int64           `db:"price" json:"price"`
	Campus      string          `db:"campus" json:"campus"`
	Payload     json.RawMessage `db:"payload" json:"payload,omitempty"`
	Status      Status          `db:"status" json:"status"`
	Cost        int64           `db:"cost" json:"cost"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
	DecidedAt   sql.NullTime    `db:"decided_at" json:"decided_at,omitempty"`
}

// IsPending returns true while the item awaits a moderation decision
func (i *Item) IsPending() bool {
	return i.Status == StatusPending
}
