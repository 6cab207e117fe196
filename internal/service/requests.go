package service

import (
	"context"
	"fmt"

	"github.com/Rehan1234890/inventory/internal/domain"
	"github.com/Rehan1234890/inventory/internal/port"
)

// Requests covers creation and listing, the boundary around the state
// machine.
type Requests struct {
	requests port.RequestStore
	items    port.ItemStore
}

func NewRequests(requests port.RequestStore, items port.ItemStore) *Requests {
	return &Requests{requests: requests, items: items}
}

// Create opens a new request in PENDING. The item must exist and the
// quantity must be positive.
func (s *Requests) Create(ctx context.Context, userID, itemID, quantity int64) (int64, error) {
	if quantity <= 0 {
		return 0, fmt.Errorf("%w: quantity must be positive, got %d", domain.ErrInvalidInput, quantity)
	}
	if _, err := s.items.GetItem(ctx, itemID); err != nil {
		return 0, fmt.Errorf("item %d: %w", itemID, err)
	}

	id, err := s.requests.CreateRequest(ctx, userID, itemID, quantity)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	return id, nil
}

// List returns every request for privileged viewers (admin and both manager
// tiers), and only the caller's own otherwise.
func (s *Requests) List(ctx context.Context, userID int64, role domain.Role) ([]domain.RequestListing, error) {
	if domain.PrivilegedViewer(role) {
		return s.requests.ListAllRequests(ctx)
	}
	return s.requests.ListRequestsByUser(ctx, userID)
}
