package main

import (
	"context"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/Rehan1234890/inventory/internal/api"
	"github.com/Rehan1234890/inventory/internal/auth"
	"github.com/Rehan1234890/inventory/internal/config"
	"github.com/Rehan1234890/inventory/internal/service"
	"github.com/Rehan1234890/inventory/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	st, err := store.NewStore(ctx, cfg.DBSource, logger)
	if err != nil {
		logger.Fatal("unable to connect to database", zap.Error(err))
	}
	defer st.Close()

	perms, err := auth.LoadPermissions(ctx, st)
	if err != nil {
		logger.Fatal("unable to load permission table", zap.Error(err))
	}

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	mw := auth.NewMiddleware(tokens, perms)

	requests := service.NewRequests(st, st)
	lifecycle := service.NewLifecycle(st)
	handover := service.NewHandover(st)

	handler := api.NewHandler(st, requests, lifecycle, handover, tokens, perms, logger, cfg.BcryptCost)
	router := api.NewRouter(handler, mw)

	logger.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
