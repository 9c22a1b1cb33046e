package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "petclinic-rest/docs"
	"petclinic-rest/internal/adapters/auth/jwt"
	"petclinic-rest/internal/adapters/storage/postgres"
	"petclinic-rest/internal/platform/config"
	"petclinic-rest/internal/platform/logger"
	"petclinic-rest/internal/ports/auth"
	"petclinic-rest/internal/router"
)

// @title PetClinic REST
// @version 1.0
// @description Backend REST de la clínica veterinaria: owners, pets, visits, vets y cuentas de usuario.
// @BasePath /
func main() {
	cfg := config.FromEnv()

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	var db *sql.DB
	if cfg.DBDSN != "" {
		if err := postgres.Migrate(cfg.DBDSN, cfg.MigrationsPath); err != nil {
			log.Error("migrations failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		opened, err := postgres.Open(cfg.DBDSN)
		if err != nil {
			log.Error("db open failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		db = opened
		defer db.Close()
	} else {
		log.Warn("DB_DSN vacío, usando store in-memory", nil)
	}

	var verifier auth.AuthVerifier
	if cfg.JWTSecret != "" {
		verifier = jwt.NewVerifier(cfg.JWTSecret)
	} else {
		log.Warn("JWT_SECRET vacío, auth en modo dev (headers X-Debug-*)", nil)
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		DB:           db,
		Logger:       log,
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", map[string]any{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", map[string]any{"error": err.Error()})
	}
	log.Info("server stopped", nil)
}
