// Package service holds the two operations with real design content: the
// request lifecycle state machine and the handover transaction. Everything
// else in the API is plain CRUD against the store.
package service

import (
	"context"
	"fmt"

	"github.com/Rehan1234890/inventory/internal/domain"
	"github.com/Rehan1234890/inventory/internal/port"
)

// Lifecycle validates and persists status transitions. It never touches
// inventory; the APPROVED -> HANDED_OVER edge belongs to the Handover
// coordinator and is refused here.
type Lifecycle struct {
	requests port.RequestStore
}

func NewLifecycle(requests port.RequestStore) *Lifecycle {
	return &Lifecycle{requests: requests}
}

// RequestTransition moves a request to target on behalf of actingRole.
//
// The persisted write is conditional on the status read here, so two
// concurrent transitions on one request cannot both win: the loser gets
// domain.ErrConflict instead of silently overwriting.
func (l *Lifecycle) RequestTransition(ctx context.Context, requestID int64, target string, actingRole domain.Role) (domain.Status, error) {
	targetStatus, ok := domain.ParseStatus(target)
	if !ok {
		return "", fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTransition, target)
	}

	req, err := l.requests.GetRequest(ctx, requestID)
	if err != nil {
		return "", fmt.Errorf("fetch request %d: %w", requestID, err)
	}

	if !domain.CanTransition(req.Status, targetStatus) {
		return "", fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, req.Status, targetStatus)
	}

	if targetStatus == domain.StatusHandedOver {
		// Reachable only through the handover transaction, which pairs the
		// status flip with the stock deduction.
		return "", fmt.Errorf("%w: %s -> %s requires a handover, not a status write",
			domain.ErrInvalidTransition, req.Status, targetStatus)
	}

	required, ok := l.requiredRole(req.Status, targetStatus)
	if !ok {
		return "", fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, req.Status, targetStatus)
	}
	if actingRole != required {
		return "", fmt.Errorf("%w: %s -> %s requires %s, got %s",
			domain.ErrUnauthorizedRole, req.Status, targetStatus, required, actingRole)
	}

	if err := l.requests.UpdateRequestStatus(ctx, requestID, req.Status, targetStatus); err != nil {
		return "", fmt.Errorf("persist transition %d: %w", requestID, err)
	}
	return targetStatus, nil
}

// requiredRole resolves who may perform current -> target: the designated
// authorizer for forward transitions, the current stage's owner for
// rejections.
func (l *Lifecycle) requiredRole(current, target domain.Status) (domain.Role, bool) {
	if target == domain.StatusRejected {
		return domain.StageOwner(current)
	}
	return domain.AuthorizerFor(target)
}
