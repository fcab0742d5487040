package approval

import (
	"encoding/json"

	"github.com/unibazaar/unibazaar-api/internal/domain/item"
)

// SubmitRequest represents a request to submit an item for moderation
type SubmitRequest struct {
	Kind        string          `json:"kind" validate:"required,item_kind"`
	Title       string          `json:"title" validate:"required,min=3,max=120"`
	Description string          `json:"description,omitempty" validate:"max=2000"`
	Price       int64           `json:"price" validate:"gte=0"`
	Payload     json.RawMessage `json:"payload,omitempty"`
}

// FeeSchedule maps item kinds to the advertising fee charged at submission.
type FeeSchedule map[item.Kind]int64

// DefaultFeeSchedule is the fee table used unless configured otherwise.
var DefaultFeeSchedule = FeeSchedule{
	item.KindListing:    150,
	item.KindEvent:      200,
	item.KindRestaurant: 250,
	item.KindStationary: 100,
	item.KindFlat:       300,
}

// For returns the fee for a kind, 0 when the kind is unknown.
func (f FeeSchedule) For(kind item.Kind) int64 {
	return f[kind]
}

// SubmitResponse is returned after a successful submission
type SubmitResponse struct {
	Item    *item.Item `json:"item"`
	Balance int64      `json:"balance"`
}
