package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Rehan1234890/inventory/internal/domain"
)

func TestHandover_Success(t *testing.T) {
	store := newMemStore()
	itemID := store.addItem(10)
	reqID := store.addRequest(itemID, 5, domain.StatusApproved)
	h := NewHandover(store)

	result, err := h.Execute(context.Background(), reqID, 0)
	if err != nil {
		t.Fatalf("handover failed: %v", err)
	}
	if result.NewItemQuantity != 5 {
		t.Errorf("expected remaining 5, got %d", result.NewItemQuantity)
	}
	if store.requestStatus(reqID) != domain.StatusHandedOver {
		t.Errorf("expected HANDED_OVER, got %s", store.requestStatus(reqID))
	}
	if store.itemQuantity(itemID) != 5 {
		t.Errorf("expected stock 5, got %d", store.itemQuantity(itemID))
	}
}

func TestHandover_MatchingExplicitQuantity(t *testing.T) {
	store := newMemStore()
	itemID := store.addItem(10)
	reqID := store.addRequest(itemID, 5, domain.StatusApproved)
	h := NewHandover(store)

	if _, err := h.Execute(context.Background(), reqID, 5); err != nil {
		t.Fatalf("handover with matching quantity failed: %v", err)
	}
}

func TestHandover_QuantityMismatch(t *testing.T) {
	store := newMemStore()
	itemID := store.addItem(10)
	reqID := store.addRequest(itemID, 5, domain.StatusApproved)
	h := NewHandover(store)

	_, err := h.Execute(context.Background(), reqID, 3)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if store.requestStatus(reqID) != domain.StatusApproved {
		t.Errorf("status changed: %s", store.requestStatus(reqID))
	}
	if store.itemQuantity(itemID) != 10 {
		t.Errorf("stock changed: %d", store.itemQuantity(itemID))
	}
}

func TestHandover_InsufficientStock(t *testing.T) {
	// Scenario: request for 5 approved while stock has drained to 3.
	store := newMemStore()
	itemID := store.addItem(3)
	reqID := store.addRequest(itemID, 5, domain.StatusApproved)
	h := NewHandover(store)

	_, err := h.Execute(context.Background(), reqID, 0)
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if store.requestStatus(reqID) != domain.StatusApproved {
		t.Errorf("status changed on failed handover: %s", store.requestStatus(reqID))
	}
	if store.itemQuantity(itemID) != 3 {
		t.Errorf("stock changed on failed handover: %d", store.itemQuantity(itemID))
	}
}

func TestHandover_NotApproved(t *testing.T) {
	store := newMemStore()
	itemID := store.addItem(10)
	h := NewHandover(store)

	for _, status := range []domain.Status{
		domain.StatusPending, domain.StatusVerifiedTier1,
		domain.StatusVerifiedTier2, domain.StatusRejected,
	} {
		reqID := store.addRequest(itemID, 5, status)
		_, err := h.Execute(context.Background(), reqID, 0)
		if !errors.Is(err, domain.ErrInvalidTransition) {
			t.Errorf("handover from %s: expected ErrInvalidTransition, got %v", status, err)
		}
	}
	if store.itemQuantity(itemID) != 10 {
		t.Errorf("stock changed: %d", store.itemQuantity(itemID))
	}
}

func TestHandover_SecondCallFails(t *testing.T) {
	store := newMemStore()
	itemID := store.addItem(10)
	reqID := store.addRequest(itemID, 5, domain.StatusApproved)
	h := NewHandover(store)

	if _, err := h.Execute(context.Background(), reqID, 0); err != nil {
		t.Fatalf("first handover failed: %v", err)
	}
	_, err := h.Execute(context.Background(), reqID, 0)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on second call, got %v", err)
	}

	// Deducted exactly once.
	if store.itemQuantity(itemID) != 5 {
		t.Errorf("expected stock 5 after repeat call, got %d", store.itemQuantity(itemID))
	}
}

func TestHandover_RequestNotFound(t *testing.T) {
	h := NewHandover(newMemStore())

	_, err := h.Execute(context.Background(), 42, 0)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHandover_ItemNotFound(t *testing.T) {
	store := newMemStore()
	reqID := store.addRequest(999, 5, domain.StatusApproved)
	h := NewHandover(store)

	_, err := h.Execute(context.Background(), reqID, 0)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHandover_CommitFailureRollsBack(t *testing.T) {
	store := newMemStore()
	itemID := store.addItem(10)
	reqID := store.addRequest(itemID, 5, domain.StatusApproved)
	store.commitErr = errors.New("connection reset")
	h := NewHandover(store)

	_, err := h.Execute(context.Background(), reqID, 0)
	if !errors.Is(err, domain.ErrTransactionFailed) {
		t.Fatalf("expected ErrTransactionFailed, got %v", err)
	}
	if store.requestStatus(reqID) != domain.StatusApproved {
		t.Errorf("status changed on failed commit: %s", store.requestStatus(reqID))
	}
	if store.itemQuantity(itemID) != 10 {
		t.Errorf("stock changed on failed commit: %d", store.itemQuantity(itemID))
	}
}

func TestHandover_ConcurrentSameItem(t *testing.T) {
	// Scenario: two approved requests for 5 against stock 5; exactly one
	// handover may win.
	store := newMemStore()
	itemID := store.addItem(5)
	reqA := store.addRequest(itemID, 5, domain.StatusApproved)
	reqB := store.addRequest(itemID, 5, domain.StatusApproved)
	h := NewHandover(store)

	var success, insufficient atomic.Int32
	var wg sync.WaitGroup
	for _, id := range []int64{reqA, reqB} {
		wg.Add(1)
		go func(reqID int64) {
			defer wg.Done()
			_, err := h.Execute(context.Background(), reqID, 0)
			switch {
			case err == nil:
				success.Add(1)
			case errors.Is(err, domain.ErrInsufficientStock):
				insufficient.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(id)
	}
	wg.Wait()

	if success.Load() != 1 || insufficient.Load() != 1 {
		t.Errorf("expected 1 success and 1 insufficient, got %d/%d", success.Load(), insufficient.Load())
	}
	if store.itemQuantity(itemID) != 0 {
		t.Errorf("expected stock 0, got %d", store.itemQuantity(itemID))
	}
}

func TestHandover_NoOversellUnderLoad(t *testing.T) {
	initialStock := int64(20)
	totalRequests := 50

	store := newMemStore()
	itemID := store.addItem(initialStock)
	h := NewHandover(store)

	ids := make([]int64, 0, totalRequests)
	for i := 0; i < totalRequests; i++ {
		ids = append(ids, store.addRequest(itemID, 1, domain.StatusApproved))
	}

	var success atomic.Int64
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(reqID int64) {
			defer wg.Done()
			if _, err := h.Execute(context.Background(), reqID, 0); err == nil {
				success.Add(1)
			}
		}(id)
	}
	wg.Wait()

	if success.Load() != initialStock {
		t.Errorf("expected %d successes, got %d", initialStock, success.Load())
	}
	if store.itemQuantity(itemID) != 0 {
		t.Errorf("expected stock 0, got %d", store.itemQuantity(itemID))
	}
}

// TestApprovalChainEndToEnd walks one request through the whole chain and
// the final handover.
func TestApprovalChainEndToEnd(t *testing.T) {
	store := newMemStore()
	itemID := store.addItem(10)
	engine := NewLifecycle(store)
	handover := NewHandover(store)
	requests := NewRequests(store, store)
	ctx := context.Background()

	reqID, err := requests.Create(ctx, 1, itemID, 5)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if store.requestStatus(reqID) != domain.StatusPending {
		t.Fatalf("new request not PENDING: %s", store.requestStatus(reqID))
	}

	chain := []struct {
		target string
		role   domain.Role
	}{
		{"VERIFIED_TIER_1", domain.RoleManagerTier1},
		{"VERIFIED_TIER_2", domain.RoleManagerTier2},
		{"APPROVED", domain.RoleAdmin},
	}
	for _, step := range chain {
		if _, err := engine.RequestTransition(ctx, reqID, step.target, step.role); err != nil {
			t.Fatalf("transition to %s failed: %v", step.target, err)
		}
	}

	result, err := handover.Execute(ctx, reqID, 0)
	if err != nil {
		t.Fatalf("handover failed: %v", err)
	}
	if result.NewItemQuantity != 5 {
		t.Errorf("expected final stock 5, got %d", result.NewItemQuantity)
	}
	if store.requestStatus(reqID) != domain.StatusHandedOver {
		t.Errorf("expected HANDED_OVER, got %s", store.requestStatus(reqID))
	}
}
