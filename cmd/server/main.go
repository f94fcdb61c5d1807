package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/phraseflash/internal/api"
	"github.com/vytor/phraseflash/internal/config"
	"github.com/vytor/phraseflash/internal/db"
	"github.com/vytor/phraseflash/internal/logger"
	"github.com/vytor/phraseflash/internal/practice"
	"github.com/vytor/phraseflash/internal/repository/sqlite"
	"github.com/vytor/phraseflash/internal/services"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(cfg.LogColors),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("PhraseFlash Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("character_languages=%v", cfg.CharacterLanguages)
	log.Debug("default_timezone=%s", cfg.DefaultTimezone)
	log.Debug("session_size=%d", cfg.SessionSize)
	log.Debug("cors_origins=%v", cfg.CORSOrigins)
	log.Debug("request_timeout=%v", cfg.RequestTimeout)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Initialize repositories
	userRepo := sqlite.NewUserRepository(database.DB)
	languageRepo := sqlite.NewLanguageRepository(database.DB)
	phraseRepo := sqlite.NewPhraseRepository(database.DB)
	logRepo := sqlite.NewPracticeLogRepository(database.DB)

	// Initialize services
	engine := practice.NewEngine(practice.WithCharacterLanguages(cfg.CharacterLanguages...))
	practiceCfg := services.PracticeConfig{
		SessionSize:     cfg.SessionSize,
		DefaultTimezone: cfg.DefaultTimezone,
	}

	srv := &api.Server{
		PracticeService: services.NewPracticeService(userRepo, languageRepo, phraseRepo, engine, practiceCfg),
		StatsService:    services.NewStatsService(userRepo, logRepo, practiceCfg),
		UserService:     services.NewUserService(userRepo, languageRepo),
		PhraseService:   services.NewPhraseService(languageRepo, phraseRepo, logRepo),
		DB:              database.DB,
		CORSOrigins:     cfg.CORSOrigins,
		RequestTimeout:  cfg.RequestTimeout,
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("PhraseFlash Server Stopped")
	log.Info("===========================================")
}
