package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/well2nest/hospital-system/internal/api"
	"github.com/well2nest/hospital-system/internal/core/service"
	"github.com/well2nest/hospital-system/internal/infrastructure/config"
	mongodb "github.com/well2nest/hospital-system/internal/infrastructure/db/mongo"
	redisdb "github.com/well2nest/hospital-system/internal/infrastructure/db/redis"
	"github.com/well2nest/hospital-system/internal/infrastructure/session"
	"github.com/well2nest/hospital-system/pkg/logger"
)

// @title        Well2Nest Hospital API
// @version      1.0
// @description  Hospital management backend: authentication, appointments, prescriptions, billing, pharmacy inventory.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close failed")
		}
	}()

	sessionPath := cfg.SessionFile
	if sessionPath == "" {
		sessionPath = session.DefaultPath()
	}
	sessions := session.NewFileStore(sessionPath)

	gateway := mongodb.NewGateway(db, logger.Component("gateway"))
	auth := service.NewAuthManager(gateway, sessions, logger.Component("auth"))
	auth.RestoreSession(ctx)

	e := api.NewRouter(db, rdb, auth, log)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
