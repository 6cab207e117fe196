package service

import (
	"context"
	"fmt"

	"github.com/Rehan1234890/inventory/internal/domain"
	"github.com/Rehan1234890/inventory/internal/port"
)

// Handover converts an APPROVED request into consumed stock. The whole
// read-check-write sequence runs inside one storage transaction; on any
// failure the request keeps its prior status and inventory is untouched.
type Handover struct {
	store port.HandoverStore
}

func NewHandover(store port.HandoverStore) *Handover {
	return &Handover{store: store}
}

// Execute performs the handover for requestID.
//
// quantity is advisory: the stored request quantity is always what gets
// deducted. Zero means "use stored"; any other value must match the stored
// quantity or the call fails before touching anything. Re-checking the
// status inside the transaction makes a second call for an already
// handed-over request fail with domain.ErrInvalidTransition rather than
// deduct twice.
func (h *Handover) Execute(ctx context.Context, requestID, quantity int64) (*domain.HandoverResult, error) {
	var result *domain.HandoverResult

	err := h.store.WithinHandover(ctx, func(tx port.HandoverTx) error {
		req, err := tx.RequestForUpdate(ctx, requestID)
		if err != nil {
			return fmt.Errorf("fetch request %d: %w", requestID, err)
		}

		if req.Status != domain.StatusApproved {
			return fmt.Errorf("%w: handover requires %s, request %d is %s",
				domain.ErrInvalidTransition, domain.StatusApproved, requestID, req.Status)
		}
		if quantity != 0 && quantity != req.Quantity {
			return fmt.Errorf("%w: handover quantity %d does not match requested %d",
				domain.ErrInvalidTransition, quantity, req.Quantity)
		}

		item, err := tx.ItemForUpdate(ctx, req.ItemID)
		if err != nil {
			return fmt.Errorf("fetch item %d: %w", req.ItemID, err)
		}
		if item.Quantity < req.Quantity {
			return fmt.Errorf("%w: item %d has %d, request needs %d",
				domain.ErrInsufficientStock, item.ID, item.Quantity, req.Quantity)
		}

		remaining, err := tx.DeductItem(ctx, item.ID, req.Quantity)
		if err != nil {
			return fmt.Errorf("deduct item %d: %w", item.ID, err)
		}
		if err := tx.MarkHandedOver(ctx, requestID); err != nil {
			return fmt.Errorf("mark request %d: %w", requestID, err)
		}

		result = &domain.HandoverResult{
			RequestID:       requestID,
			ItemID:          item.ID,
			NewItemQuantity: remaining,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
