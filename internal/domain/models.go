package domain

import "time"

// User is an authenticated actor. PasswordHash is never serialized.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// InventoryItem is a stocked good. Price is in cents. Quantity is guarded by
// the handover transaction and must never go negative.
type InventoryItem struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Quantity  int64     `json:"quantity"`
	Price     int64     `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Request is one unit of work moving through the approval chain.
type Request struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ItemID    int64     `json:"item_id"`
	Quantity  int64     `json:"quantity"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RequestListing is a request joined with the names a reviewer wants to see.
// Requester is empty for unprivileged callers, who only ever see their own.
type RequestListing struct {
	ID        int64  `json:"id"`
	Requester string `json:"requester,omitempty"`
	ItemName  string `json:"item_name"`
	Quantity  int64  `json:"quantity"`
	Status    Status `json:"status"`
}

// PermissionSet holds the coarse capability flags attached to a role. These
// gate route access only; transition authorization is keyed on the role
// itself.
type PermissionSet struct {
	ManageUsers     bool `json:"manage_users"`
	ManageInventory bool `json:"manage_inventory"`
	ApproveRequests bool `json:"approve_requests"`
	RequestItems    bool `json:"request_items"`
	ViewReports     bool `json:"view_reports"`
}

// HandoverResult reports the outcome of a successful handover.
type HandoverResult struct {
	RequestID       int64 `json:"request_id"`
	ItemID          int64 `json:"item_id"`
	NewItemQuantity int64 `json:"new_item_quantity"`
}
