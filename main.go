package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/little-lemon-api/config"
	"github.com/yeremiapane/little-lemon-api/database"
	"github.com/yeremiapane/little-lemon-api/router"
	"github.com/yeremiapane/little-lemon-api/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("load config: %v", err)
	}

	utils.InitLogger(cfg.LogLevel, cfg.LogFormat)
	utils.InitJWT(cfg.JWTSecret, cfg.JWTTTL)
	gin.SetMode(cfg.GinMode)

	db, err := config.InitDB(cfg, utils.InfoLogger)
	if err != nil {
		utils.ErrorLogger.Fatalf("init database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("migrate: %v", err)
	}
	if err := database.SeedAdmin(db, cfg); err != nil {
		utils.ErrorLogger.Fatalf("seed admin: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.SetupRouter(db, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.InfoLogger.WithField("addr", srv.Addr).Info("Little Lemon API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.InfoLogger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.ErrorLogger.Errorf("shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
