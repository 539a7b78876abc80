package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hcen-access/internal/adapters/auth/gubuy"
	"hcen-access/internal/adapters/dnic"
	pg "hcen-access/internal/adapters/storage/postgres"
	"hcen-access/internal/config"
	"hcen-access/internal/platform/logger"
	"hcen-access/internal/ports/auth"
	portdnic "hcen-access/internal/ports/dnic"
	"hcen-access/internal/router"

	"github.com/rs/zerolog/log"
)

// @title HCEN Access API
// @version 1.0
// @description Control de acceso a documentos clínicos gobernado por el paciente.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Init(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("starting hcen-access")

	var db *sql.DB
	if cfg.Database.DSN != "" {
		db, err = pg.Open(cfg.Database.DSN)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		defer db.Close()
		log.Info().Msg("postgres storage initialized")
	} else {
		log.Warn().Msg("DB_DSN not set, using in-memory storage")
	}

	var verifier auth.AuthVerifier
	if cfg.GubUy.BaseURL != "" {
		client, err := gubuy.NewClient(gubuy.Config{
			BaseURL: cfg.GubUy.BaseURL,
			Timeout: cfg.GubUy.Timeout,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to build gubuy client")
		}
		verifier = gubuy.NewVerifier(client)
		log.Info().Msg("gubuy token verification enabled")
	} else {
		log.Warn().Msg("GUBUY_BASE_URL not set, running in dev auth mode")
	}

	var persons portdnic.PersonLookup
	if cfg.DNIC.BaseURL != "" {
		client, err := dnic.NewClient(dnic.Config{
			BaseURL: cfg.DNIC.BaseURL,
			APIKey:  cfg.DNIC.APIKey,
			Timeout: cfg.DNIC.Timeout,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to build dnic client")
		}
		persons = client
		log.Info().Msg("dnic person lookup enabled")
	}

	r := router.NewRouter(router.Options{
		AuthVerifier:     verifier,
		DB:               db,
		Persons:          persons,
		PolicyDefaultTTL: cfg.Policy.DefaultTTL,
		CORSOrigins:      cfg.CORS.Origins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
