package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Rehan1234890/inventory/internal/domain"
	"github.com/Rehan1234890/inventory/internal/port"
)

// WithinHandover runs fn inside a single repeatable-read transaction. Any
// error out of fn (or a failed commit) rolls back every write made through
// the transaction, so a half-finished handover is never visible.
func (s *Store) WithinHandover(ctx context.Context, fn func(tx port.HandoverTx) error) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return fmt.Errorf("%w: begin: %v", domain.ErrTransactionFailed, err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&handoverTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit: %v", domain.ErrTransactionFailed, err)
	}
	return nil
}

type handoverTx struct {
	tx pgx.Tx
}

// RequestForUpdate reads the request under a row lock, serializing competing
// handovers of the same request.
func (h *handoverTx) RequestForUpdate(ctx context.Context, id int64) (*domain.Request, error) {
	var r domain.Request
	err := h.tx.QueryRow(ctx, `
		SELECT id, user_id, item_id, quantity, status, created_at, updated_at
		FROM requests WHERE id = $1 FOR UPDATE`, id,
	).Scan(&r.ID, &r.UserID, &r.ItemID, &r.Quantity, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("lock request: %w", err)
	}
	return &r, nil
}

// ItemForUpdate reads current stock under a row lock. Concurrent handovers
// draining the same item queue up here, so the sufficiency check never runs
// against a stale quantity.
func (h *handoverTx) ItemForUpdate(ctx context.Context, itemID int64) (*domain.InventoryItem, error) {
	var it domain.InventoryItem
	err := h.tx.QueryRow(ctx, `
		SELECT id, name, quantity, price, created_at, updated_at
		FROM items WHERE id = $1 FOR UPDATE`, itemID,
	).Scan(&it.ID, &it.Name, &it.Quantity, &it.Price, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("lock item: %w", err)
	}
	return &it, nil
}

func (h *handoverTx) DeductItem(ctx context.Context, itemID, qty int64) (int64, error) {
	var remaining int64
	err := h.tx.QueryRow(ctx, `
		UPDATE items SET quantity = quantity - $1, updated_at = now()
		WHERE id = $2 AND quantity >= $1
		RETURNING quantity`, qty, itemID,
	).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The guard can only fail if stock moved under us, which the
			// row lock is supposed to prevent.
			return 0, domain.ErrInsufficientStock
		}
		return 0, fmt.Errorf("deduct item: %w", err)
	}
	return remaining, nil
}

func (h *handoverTx) MarkHandedOver(ctx context.Context, requestID int64) error {
	tag, err := h.tx.Exec(ctx, `
		UPDATE requests SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3`,
		domain.StatusHandedOver, requestID, domain.StatusApproved,
	)
	if err != nil {
		return fmt.Errorf("mark handed over: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}
