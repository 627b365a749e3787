package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/cerebro/internal/api"
	"github.com/vytor/cerebro/internal/config"
	"github.com/vytor/cerebro/internal/db"
	"github.com/vytor/cerebro/internal/logger"
	"github.com/vytor/cerebro/internal/repository/sqlite"
	"github.com/vytor/cerebro/internal/services"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	loc, _ := cfg.Location()

	log.Info("===========================================")
	log.Info("Cerebro Server Starting")
	log.Info("===========================================")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("timezone=%s", loc)
	log.Debug("default_user_id=%d", cfg.DefaultUserID)
	log.Debug("allowed_origin=%s", cfg.AllowedOrigin)
	log.Debug("request_timeout=%s", cfg.RequestTimeout())

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	calendar := services.CalendarConfig{Location: loc, Now: time.Now}

	sessionRepo := sqlite.NewSessionRepository(database.DB)
	challengeRepo := sqlite.NewChallengeRepository(database.DB)
	progressRepo := sqlite.NewProgressRepository(database.DB)
	courseRepo := sqlite.NewCourseRepository(database.DB)
	topicRepo := sqlite.NewTopicRepository(database.DB)

	challengeService := services.NewChallengeService(challengeRepo, progressRepo, calendar)

	srv := &api.Server{
		Sessions:       services.NewSessionService(sessionRepo, courseRepo, topicRepo, challengeService, calendar),
		Challenges:     challengeService,
		Courses:        services.NewCourseService(courseRepo, topicRepo),
		Insights:       services.NewInsightsService(topicRepo),
		DB:             database,
		Location:       loc,
		DefaultUserID:  cfg.DefaultUserID,
		AllowedOrigin:  cfg.AllowedOrigin,
		RequestTimeout: cfg.RequestTimeout(),
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout() + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

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
	log.Info("Cerebro Server Stopped")
	log.Info("===========================================")
}
