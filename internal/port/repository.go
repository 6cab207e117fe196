package port

import (
	"context"

	"github.com/Rehan1234890/inventory/internal/domain"
)

// RequestStore is the durable request table as the lifecycle engine sees it.
// Implementations return domain.ErrNotFound for missing rows and
// domain.ErrConflict when the conditional write matches zero rows.
type RequestStore interface {
	CreateRequest(ctx context.Context, userID, itemID, quantity int64) (int64, error)
	GetRequest(ctx context.Context, id int64) (*domain.Request, error)

	// UpdateRequestStatus persists next only if the stored status still
	// equals observed, so a transition based on a stale read fails instead
	// of overwriting a concurrent one.
	UpdateRequestStatus(ctx context.Context, id int64, observed, next domain.Status) error

	ListAllRequests(ctx context.Context) ([]domain.RequestListing, error)
	ListRequestsByUser(ctx context.Context, userID int64) ([]domain.RequestListing, error)
}

// ItemStore is the read side of inventory needed outside the handover
// transaction (existence checks at request creation).
type ItemStore interface {
	GetItem(ctx context.Context, id int64) (*domain.InventoryItem, error)
}

// HandoverStore opens the atomic scope the handover coordinator runs in.
// The implementation must roll back every write made through the HandoverTx
// if fn returns an error, and only then surface that error unchanged.
// Begin/commit failures are reported as domain.ErrTransactionFailed.
type HandoverStore interface {
	WithinHandover(ctx context.Context, fn func(tx HandoverTx) error) error
}

// HandoverTx is the set of operations available inside one handover
// transaction. Reads take row locks: two transactions touching the same
// request or item serialize against each other.
type HandoverTx interface {
	RequestForUpdate(ctx context.Context, id int64) (*domain.Request, error)
	ItemForUpdate(ctx context.Context, itemID int64) (*domain.InventoryItem, error)

	// DeductItem subtracts qty and returns the remaining quantity. The
	// write itself refuses to take the stored quantity negative.
	DeductItem(ctx context.Context, itemID, qty int64) (int64, error)

	// MarkHandedOver flips the request to HANDED_OVER, conditional on it
	// still being APPROVED.
	MarkHandedOver(ctx context.Context, requestID int64) error
}
