package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Missing bearer token")
		return
	}

	var body struct {
		ItemID   int64 `json:"item_id"`
		Quantity int64 `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Malformed JSON body")
		return
	}
	if body.ItemID == 0 || body.Quantity == 0 {
		respondWithError(w, http.StatusBadRequest, "Item ID and quantity are required")
		return
	}

	requestID, err := h.requests.Create(r.Context(), id.UserID, body.ItemID, body.Quantity)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message":    "Request submitted",
		"request_id": requestID,
	})
}

func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Missing bearer token")
		return
	}

	listings, err := h.requests.List(r.Context(), id.UserID, id.Role)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, listings)
}

// TransitionRequest drives the lifecycle state machine. The acting role
// comes from the verified token, never from the payload.
func (h *Handler) TransitionRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Missing bearer token")
		return
	}

	requestID, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		respondWithError(w, http.StatusBadRequest, "Status is required")
		return
	}

	newStatus, err := h.lifecycle.RequestTransition(r.Context(), requestID, body.Status, id.Role)
	if err != nil {
		transitionsTotal.WithLabelValues(body.Status, "error").Inc()
		h.respondDomainError(w, err)
		return
	}

	transitionsTotal.WithLabelValues(string(newStatus), "ok").Inc()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Request updated",
		"status":  newStatus,
	})
}

// HandoverRequest executes the terminal transition atomically with the
// stock deduction.
func (h *Handler) HandoverRequest(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	// Quantity is optional; when present it must match the request's stored
	// quantity.
	var body struct {
		Quantity int64 `json:"quantity"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondWithError(w, http.StatusBadRequest, "Malformed JSON body")
			return
		}
	}
	if body.Quantity < 0 {
		respondWithError(w, http.StatusBadRequest, "Quantity must be positive")
		return
	}

	result, err := h.handover.Execute(r.Context(), requestID, body.Quantity)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.log.Info("request handed over",
		zap.Int64("request_id", result.RequestID),
		zap.Int64("item_id", result.ItemID),
		zap.Int64("remaining", result.NewItemQuantity))
	respondWithJSON(w, http.StatusOK, result)
}
