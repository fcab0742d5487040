package item

import (
	"context"

	"github.com/google/uuid"
)

// Service handles item read paths. Writes go through the approval workflow.
type Service struct {
	repo  Repository
	cache *Cache
}

func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Item, error) {
	return s.repo.Get(ctx, id)
}

// ListApproved returns the approved items visible to a campus. The first
// page is served from cache when possible.
func (s *Service) ListApproved(ctx context.Context, campus string, limit, offset int) ([]*Item, error) {
	firstPage := offset == 0 && limit <= 0
	if firstPage {
		if items, ok := s.cache.GetApproved(ctx, campus); ok {
			return items, nil
		}
	}

	items, err := s.repo.ListApprovedByCampus(ctx, campus, limit, offset)
	if err != nil {
		return nil, err
	}

	if firstPage {
		s.cache.SetApproved(ctx, campus, items)
	}
	return items, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Item, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}
