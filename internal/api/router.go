package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Rehan1234890/inventory/internal/auth"
	"github.com/Rehan1234890/inventory/internal/domain"
)

// NewRouter wires the full HTTP surface. Register/login, health and metrics
// are open; everything else sits behind the bearer-token middleware plus a
// per-group permission flag.
func NewRouter(h *Handler, mw *auth.Middleware) *mux.Router {
	r := mux.NewRouter()
	r.Use(MetricsMiddleware)

	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")

	open := r.PathPrefix("/api/auth").Subrouter()
	open.HandleFunc("/register", h.Register).Methods("POST")
	open.HandleFunc("/login", h.Login).Methods("POST")

	authed := r.PathPrefix("/api").Subrouter()
	authed.Use(mw.Authenticate)

	authed.HandleFunc("/auth/me", h.Me).Methods("GET")

	users := authed.PathPrefix("/users").Subrouter()
	users.Use(mw.Require(func(p domain.PermissionSet) bool { return p.ManageUsers }))
	users.HandleFunc("", h.ListUsers).Methods("GET")
	users.HandleFunc("", h.CreateUser).Methods("POST")
	users.HandleFunc("/{id:[0-9]+}", h.UpdateUserRole).Methods("PUT")
	users.HandleFunc("/{id:[0-9]+}", h.DeleteUser).Methods("DELETE")

	admin := authed.PathPrefix("/admin").Subrouter()
	admin.Use(mw.RequireAdmin)
	admin.HandleFunc("/permissions", h.UpdatePermissions).Methods("PUT")

	inventory := authed.PathPrefix("/inventory").Subrouter()
	inventory.Use(mw.Require(func(p domain.PermissionSet) bool { return p.ManageInventory }))
	inventory.HandleFunc("", h.ListItems).Methods("GET")
	inventory.HandleFunc("", h.CreateItem).Methods("POST")
	inventory.HandleFunc("/{id:[0-9]+}", h.GetItem).Methods("GET")
	inventory.HandleFunc("/{id:[0-9]+}", h.UpdateItem).Methods("PUT")
	inventory.HandleFunc("/{id:[0-9]+}", h.DeleteItem).Methods("DELETE")

	requests := authed.PathPrefix("/requests").Subrouter()
	requests.HandleFunc("", h.ListRequests).Methods("GET")
	requests.Handle("", mw.Require(func(p domain.PermissionSet) bool { return p.RequestItems })(
		http.HandlerFunc(h.CreateRequest))).Methods("POST")
	requests.Handle("/{id:[0-9]+}/status", mw.Require(func(p domain.PermissionSet) bool { return p.ApproveRequests })(
		http.HandlerFunc(h.TransitionRequest))).Methods("PUT")
	requests.Handle("/{id:[0-9]+}/handover", mw.Require(func(p domain.PermissionSet) bool { return p.ManageInventory })(
		http.HandlerFunc(h.HandoverRequest))).Methods("POST")

	return r
}
