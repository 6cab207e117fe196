package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Rehan1234890/inventory/internal/auth"
	"github.com/Rehan1234890/inventory/internal/domain"
)

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, users)
}

// CreateUser is the managed variant of Register, used by manage_users
// holders to provision accounts.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	h.Register(w, r)
}

func (h *Handler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var body struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Role == "" {
		respondWithError(w, http.StatusBadRequest, "Role is required")
		return
	}
	role, ok := domain.ParseRole(body.Role)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Unknown role")
		return
	}

	if err := h.store.UpdateUserRole(r.Context(), id, role); err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "User role updated"})
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.store.DeleteUser(r.Context(), id); err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}

// UpdatePermissions rewrites one role's flag set and reloads the in-memory
// table so the change takes effect without a restart.
func (h *Handler) UpdatePermissions(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Role        string               `json:"role"`
		Permissions domain.PermissionSet `json:"permissions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Role == "" {
		respondWithError(w, http.StatusBadRequest, "Role and permissions are required")
		return
	}
	role, ok := domain.ParseRole(body.Role)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Unknown role")
		return
	}

	if err := h.store.UpdatePermissions(r.Context(), role, body.Permissions); err != nil {
		h.respondDomainError(w, err)
		return
	}
	if err := h.perms.Reload(r.Context()); err != nil {
		// The write is durable; the stale table heals on next reload.
		h.log.Error("permission reload failed", zap.Error(err))
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Permissions updated"})
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func identity(r *http.Request) (auth.Identity, bool) {
	return auth.IdentityFrom(r.Context())
}
