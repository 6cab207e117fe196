package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Rehan1234890/inventory/internal/auth"
	"github.com/Rehan1234890/inventory/internal/domain"
	"github.com/Rehan1234890/inventory/internal/service"
	"github.com/Rehan1234890/inventory/internal/store"
)

type Handler struct {
	store      *store.Store
	requests   *service.Requests
	lifecycle  *service.Lifecycle
	handover   *service.Handover
	tokens     *auth.TokenIssuer
	perms      *auth.Permissions
	log        *zap.Logger
	bcryptCost int
}

func NewHandler(
	st *store.Store,
	requests *service.Requests,
	lifecycle *service.Lifecycle,
	handover *service.Handover,
	tokens *auth.TokenIssuer,
	perms *auth.Permissions,
	log *zap.Logger,
	bcryptCost int,
) *Handler {
	return &Handler{
		store:      st,
		requests:   requests,
		lifecycle:  lifecycle,
		handover:   handover,
		tokens:     tokens,
		perms:      perms,
		log:        log,
		bcryptCost: bcryptCost,
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondDomainError maps the error taxonomy to stable status codes and
// bodies. Anything outside the taxonomy is a 500 with a generic message;
// storage error text never reaches the client.
func (h *Handler) respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrDuplicate):
		respondWithError(w, http.StatusBadRequest, "Already exists")
	case errors.Is(err, domain.ErrInvalidTransition):
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrUnauthorizedRole):
		respondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrConflict):
		respondWithError(w, http.StatusConflict, "Status changed concurrently, re-read and retry")
	case errors.Is(err, domain.ErrInsufficientStock):
		respondWithError(w, http.StatusUnprocessableEntity, "Insufficient stock")
	case errors.Is(err, domain.ErrTransactionFailed):
		respondWithError(w, http.StatusInternalServerError, "Transaction failed")
	default:
		h.log.Error("unhandled error", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
