package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/Rehan1234890/inventory/internal/domain"
)

// PermissionSource is the durable backing of the role-permission table.
type PermissionSource interface {
	ListPermissions(ctx context.Context) (map[domain.Role]domain.PermissionSet, error)
}

// Permissions is the process-wide, read-mostly role-permission table. It is
// loaded once at startup and swapped wholesale on Reload; lookups take a
// read lock only. Injected explicitly into whatever consults it.
type Permissions struct {
	source PermissionSource

	mu    sync.RWMutex
	flags map[domain.Role]domain.PermissionSet
}

// LoadPermissions reads the full table from source and returns a ready table.
func LoadPermissions(ctx context.Context, source PermissionSource) (*Permissions, error) {
	p := &Permissions{source: source}
	if err := p.Reload(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// Reload replaces the in-memory table with the current stored state. Callers
// invoke it after writing new flags; readers are never blocked mid-lookup.
func (p *Permissions) Reload(ctx context.Context) error {
	flags, err := p.source.ListPermissions(ctx)
	if err != nil {
		return fmt.Errorf("load permissions: %w", err)
	}

	p.mu.Lock()
	p.flags = flags
	p.mu.Unlock()
	return nil
}

// For returns the flag set for a role. Unknown roles get the zero set.
func (p *Permissions) For(role domain.Role) domain.PermissionSet {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.flags[role]
}
