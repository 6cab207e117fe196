package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/Rehan1234890/inventory/internal/domain"
	"github.com/Rehan1234890/inventory/internal/port"
)

// memStore is an in-memory stand-in for the Postgres store. WithinHandover
// holds the mutex for the whole callback and stages writes until commit,
// mimicking the row-lock + rollback semantics of the real transaction.
type memStore struct {
	mu       sync.Mutex
	requests map[int64]domain.Request
	items    map[int64]domain.InventoryItem
	nextID   int64

	// beforeStatusUpdate runs between the engine's read and its conditional
	// write, to simulate a concurrent transition winning the race.
	beforeStatusUpdate func(m *memStore)
	commitErr          error
}

func newMemStore() *memStore {
	return &memStore{
		requests: make(map[int64]domain.Request),
		items:    make(map[int64]domain.InventoryItem),
	}
}

func (m *memStore) addItem(quantity int64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.items[m.nextID] = domain.InventoryItem{ID: m.nextID, Name: "widget", Quantity: quantity, Price: 100}
	return m.nextID
}

func (m *memStore) addRequest(itemID, quantity int64, status domain.Status) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.requests[m.nextID] = domain.Request{ID: m.nextID, UserID: 1, ItemID: itemID, Quantity: quantity, Status: status}
	return m.nextID
}

func (m *memStore) requestStatus(id int64) domain.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[id].Status
}

func (m *memStore) itemQuantity(id int64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[id].Quantity
}

func (m *memStore) setRequestStatus(id int64, status domain.Status) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.requests[id]
	r.Status = status
	m.requests[id] = r
}

// --- port.RequestStore ---

func (m *memStore) CreateRequest(ctx context.Context, userID, itemID, quantity int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.requests[m.nextID] = domain.Request{ID: m.nextID, UserID: userID, ItemID: itemID, Quantity: quantity, Status: domain.StatusPending}
	return m.nextID, nil
}

func (m *memStore) GetRequest(ctx context.Context, id int64) (*domain.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

func (m *memStore) UpdateRequestStatus(ctx context.Context, id int64, observed, next domain.Status) error {
	if m.beforeStatusUpdate != nil {
		hook := m.beforeStatusUpdate
		m.beforeStatusUpdate = nil
		hook(m)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok || r.Status != observed {
		return domain.ErrConflict
	}
	r.Status = next
	m.requests[id] = r
	return nil
}

func (m *memStore) ListAllRequests(ctx context.Context) ([]domain.RequestListing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.RequestListing
	for _, r := range m.requests {
		out = append(out, domain.RequestListing{ID: r.ID, Requester: "someone", ItemName: "widget", Quantity: r.Quantity, Status: r.Status})
	}
	return out, nil
}

func (m *memStore) ListRequestsByUser(ctx context.Context, userID int64) ([]domain.RequestListing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.RequestListing
	for _, r := range m.requests {
		if r.UserID == userID {
			out = append(out, domain.RequestListing{ID: r.ID, ItemName: "widget", Quantity: r.Quantity, Status: r.Status})
		}
	}
	return out, nil
}

// --- port.ItemStore ---

func (m *memStore) GetItem(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &it, nil
}

// --- port.HandoverStore ---

func (m *memStore) WithinHandover(ctx context.Context, fn func(tx port.HandoverTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memTx{
		store:    m,
		requests: make(map[int64]domain.Request),
		items:    make(map[int64]domain.InventoryItem),
	}
	if err := fn(tx); err != nil {
		return err // staged writes discarded
	}
	if m.commitErr != nil {
		return fmt.Errorf("%w: commit: %v", domain.ErrTransactionFailed, m.commitErr)
	}
	tx.apply()
	return nil
}

// memTx stages writes; apply publishes them on commit. Reads see the staged
// state first, matching read-your-writes inside a real transaction.
type memTx struct {
	store    *memStore
	requests map[int64]domain.Request
	items    map[int64]domain.InventoryItem
}

func (t *memTx) apply() {
	for id, r := range t.requests {
		t.store.requests[id] = r
	}
	for id, it := range t.items {
		t.store.items[id] = it
	}
}

func (t *memTx) RequestForUpdate(ctx context.Context, id int64) (*domain.Request, error) {
	if r, ok := t.requests[id]; ok {
		return &r, nil
	}
	r, ok := t.store.requests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

func (t *memTx) ItemForUpdate(ctx context.Context, itemID int64) (*domain.InventoryItem, error) {
	if it, ok := t.items[itemID]; ok {
		return &it, nil
	}
	it, ok := t.store.items[itemID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &it, nil
}

func (t *memTx) DeductItem(ctx context.Context, itemID, qty int64) (int64, error) {
	it, err := t.ItemForUpdate(ctx, itemID)
	if err != nil {
		return 0, err
	}
	if it.Quantity < qty {
		return 0, domain.ErrInsufficientStock
	}
	it.Quantity -= qty
	t.items[itemID] = *it
	return it.Quantity, nil
}

func (t *memTx) MarkHandedOver(ctx context.Context, requestID int64) error {
	r, err := t.RequestForUpdate(ctx, requestID)
	if err != nil {
		return err
	}
	if r.Status != domain.StatusApproved {
		return domain.ErrConflict
	}
	r.Status = domain.StatusHandedOver
	t.requests[requestID] = *r
	return nil
}
