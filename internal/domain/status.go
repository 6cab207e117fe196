package domain

import "strings"

// Status is a request's lifecycle state. PENDING is the sole initial state;
// REJECTED and HANDED_OVER are terminal.
type Status string

const (
	StatusPending       Status = "PENDING"
	StatusVerifiedTier1 Status = "VERIFIED_TIER_1"
	StatusVerifiedTier2 Status = "VERIFIED_TIER_2"
	StatusApproved      Status = "APPROVED"
	StatusRejected      Status = "REJECTED"
	StatusHandedOver    Status = "HANDED_OVER"
)

// Role is a named actor category with a fixed position in the approval chain.
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleManagerTier1 Role = "MANAGER_1"
	RoleManagerTier2 Role = "MANAGER_2"
	RoleStoreKeeper  Role = "STORE_KEEPER"
	RoleEmployee     Role = "EMPLOYEE"
)

// transitions is the allowed-transition table. Absent keys are terminal.
var transitions = map[Status][]Status{
	StatusPending:       {StatusVerifiedTier1, StatusRejected},
	StatusVerifiedTier1: {StatusVerifiedTier2, StatusRejected},
	StatusVerifiedTier2: {StatusApproved, StatusRejected},
	StatusApproved:      {StatusHandedOver},
}

// authorizers maps each forward transition target to the single role allowed
// to perform it. HANDED_OVER has no entry: that edge belongs to the handover
// transaction, never to a direct status write.
var authorizers = map[Status]Role{
	StatusVerifiedTier1: RoleManagerTier1,
	StatusVerifiedTier2: RoleManagerTier2,
	StatusApproved:      RoleAdmin,
}

// ParseStatus resolves a client-supplied status name case-insensitively,
// accepting hyphens or spaces in place of underscores.
func ParseStatus(s string) (Status, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	switch st := Status(normalized); st {
	case StatusPending, StatusVerifiedTier1, StatusVerifiedTier2,
		StatusApproved, StatusRejected, StatusHandedOver:
		return st, true
	}
	return "", false
}

// ParseRole resolves a role name with the same normalization as ParseStatus.
func ParseRole(s string) (Role, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	switch r := Role(normalized); r {
	case RoleAdmin, RoleManagerTier1, RoleManagerTier2, RoleStoreKeeper, RoleEmployee:
		return r, true
	}
	return "", false
}

// CanTransition reports whether target is reachable from current in one step.
func CanTransition(current, target Status) bool {
	for _, next := range transitions[current] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status has no outgoing transitions.
func IsTerminal(s Status) bool {
	return len(transitions[s]) == 0
}

// AuthorizerFor returns the role empowered to move a request into target.
// The second result is false for targets with no direct authorizer
// (PENDING, REJECTED, HANDED_OVER).
func AuthorizerFor(target Status) (Role, bool) {
	r, ok := authorizers[target]
	return r, ok
}

// StageOwner returns the role that owns the given stage: the authorizer of
// the forward transition out of it. The stage owner is who may reject.
func StageOwner(current Status) (Role, bool) {
	for _, next := range transitions[current] {
		if next == StatusRejected {
			continue
		}
		if r, ok := authorizers[next]; ok {
			return r, ok
		}
	}
	return "", false
}

// PrivilegedViewer reports whether a role sees every request in listings,
// rather than only its own.
func PrivilegedViewer(r Role) bool {
	return r == RoleAdmin || r == RoleManagerTier1 || r == RoleManagerTier2
}
