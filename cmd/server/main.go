package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/streamspace/sessionctl/internal/config"
	"github.com/streamspace/sessionctl/internal/gateway"
	"github.com/streamspace/sessionctl/internal/lifecycle"
	"github.com/streamspace/sessionctl/internal/logger"
	"github.com/streamspace/sessionctl/internal/orchestrator"
	"github.com/streamspace/sessionctl/internal/profile"
	"github.com/streamspace/sessionctl/internal/registry"
	"github.com/streamspace/sessionctl/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger.Initialize(cfg.LogLevel, cfg.LogPretty)
	log := logger.GetLogger()
	log.Info().Msg("starting session control plane")

	s, err := store.New(store.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to store")
	}
	defer s.Close()

	orch, err := orchestrator.New(cfg.Namespace)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize orchestrator client")
	}

	p := profile.ByName(cfg.SessionProfile, cfg.BaseDomain)
	reg := registry.New(s, cfg.SessionTTLSeconds)
	engine := lifecycle.New(s, orch, reg, p, lifecycle.Options{
		Namespace:   cfg.Namespace,
		PodImage:    cfg.UserPodImage,
		PodPort:     int32(cfg.UserPodPort),
		BackupClaim: cfg.BackupClaim,
		BackupImage: cfg.BackupImage,
	})

	gw := gateway.New(engine, reg, s)

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gateway.Router(gw, cfg.APIKey)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,

		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutdown signal received")

	shutdownTimeout, err := time.ParseDuration(cfg.ShutdownTimeout)
	if err != nil {
		shutdownTimeout = 30 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	} else {
		log.Info().Msg("server stopped gracefully")
	}
}
