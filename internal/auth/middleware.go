package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Rehan1234890/inventory/internal/domain"
)

// Middleware gates routes on a verified bearer token and, per route group,
// on a coarse permission flag.
type Middleware struct {
	tokens *TokenIssuer
	perms  *Permissions
}

func NewMiddleware(tokens *TokenIssuer, perms *Permissions) *Middleware {
	return &Middleware{tokens: tokens, perms: perms}
}

// Authenticate verifies the Authorization header and attaches the caller's
// identity to the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			denyJSON(w, http.StatusUnauthorized, "Missing bearer token")
			return
		}

		claims, err := m.tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			denyJSON(w, http.StatusForbidden, "Invalid token")
			return
		}

		ctx := WithIdentity(r.Context(), Identity{UserID: claims.UserID, Role: claims.Role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Require wraps a handler with a permission-flag check. Reads pass for any
// authenticated caller; row-level scoping happens in the handlers.
func (m *Middleware) Require(flag func(domain.PermissionSet) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			id, ok := IdentityFrom(r.Context())
			if !ok {
				denyJSON(w, http.StatusUnauthorized, "Missing bearer token")
				return
			}
			if !flag(m.perms.For(id.Role)) {
				denyJSON(w, http.StatusForbidden, "Permission denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin restricts a route to the ADMIN role regardless of flags.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFrom(r.Context())
		if !ok {
			denyJSON(w, http.StatusUnauthorized, "Missing bearer token")
			return
		}
		if id.Role != domain.RoleAdmin {
			denyJSON(w, http.StatusForbidden, "Admins only")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func denyJSON(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
