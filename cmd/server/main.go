package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"spotify-gateway/internal/api/middleware"
	"spotify-gateway/internal/config"
	gatewayEnv "spotify-gateway/internal/env"
	"spotify-gateway/internal/logging"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger := logging.NewWithLevel(logging.ParseLevel(cfg.LogLevel))

	// Build environment
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(30*time.Second))
	defer cancel()
	env, err := gatewayEnv.FromConfig(ctx, cfg, logger, reg)
	if err != nil {
		logger.Error("Failed to build environment", "error", err)
		os.Exit(1)
	}
	defer env.Close()
	if cfg.JWKSPath == "" {
		logger.Warn("JWKS_PATH not set, API authentication is disabled")
	}
	if env.Database == nil {
		logger.Info("DB_URL not set, failure journal is disabled")
	}

	// Create HTTP Handler
	router := mux.NewRouter()
	middleware.AddRoutes(router, env, reg)

	logger.Info("Serving at " + "0.0.0.0:" + cfg.Port)
	http.Handle("/", router)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+cfg.Port, nil))
}
