package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/unibazaar/unibazaar-api/internal/domain/item"
)

// Service persists notifications and pushes them over the hub
type Service struct {
	repo Repository
	hub  *Hub
}

// NewService creates notification service. hub may be nil.
func NewService(repo Repository, hub *Hub) *Service {
	return &Service{repo: repo, hub: hub}
}

// ItemDecided notifies the owner about a moderation decision. Called after
// the decision committed; delivery is best-effort and never affects the
// decision itself.
func (s *Service) ItemDecided(ctx context.Context, it *item.Item) {
	n := &Notification{
		ID:        uuid.New(),
		UserID:    it.OwnerID,
		CreatedAt: time.Now(),
	}

	switch it.Status {
	case item.StatusApproved:
		n.Type = TypeItemApproved
		n.Title = "Your " + string(it.Kind) + " was approved"
		n.Body = it.Title + " is now visible on campus " + it.Campus + "."
	case item.StatusRejected:
		n.Type = TypeItemRejected
		n.Title = "Your " + string(it.Kind) + " was rejected"
		n.Body = it.Title + " was rejected; the advertising fee has been refunded to your wallet."
	default:
		return
	}

	if err := s.repo.Create(ctx, n); err != nil {
		log.Error().Err(err).Str("item_id", it.ID.String()).Msg("Failed to persist decision notification")
		return
	}

	if s.hub != nil {
		unread, _ := s.repo.CountUnread(ctx, it.OwnerID)
		payload := map[string]interface{}{
			"type": "notification:new",
			"data": map[string]interface{}{
				"notification": n,
				"unread_count": unread,
			},
		}
		if err := s.hub.SendToUserJSON(it.OwnerID, payload); err != nil {
			log.Warn().Err(err).Str("user_id", it.OwnerID.String()).Msg("Failed to push decision notification")
		}
	}
}

// List returns a user's notifications
func (s *Service) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Notification, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

// MarkRead marks a notification as read
func (s *Service) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.repo.MarkRead(ctx, id, userID)
}

// CountUnread returns the number of unread notifications
func (s *Service) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}
