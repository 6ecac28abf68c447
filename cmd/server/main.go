package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"litenby.com/sound-locator-fleet/pkg/common"
	"litenby.com/sound-locator-fleet/pkg/db"
	"litenby.com/sound-locator-fleet/pkg/fleet"
	fleetHttp "litenby.com/sound-locator-fleet/pkg/http"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	var dbInstance *db.DB
	fleetDbType := os.Getenv(common.EnvKeyFleetDBType)
	switch fleetDbType {
	case "file":
		dbInstance = db.GetInstance(db.UseSqliteDialector())
	case "memory":
		dbInstance = db.GetInstance(db.UseMemorySqliteDialector())
	default:
		log.Fatal("Unknown FLEET_DB_TYPE: " + fleetDbType)
	}

	thresholds := loadThresholds()
	sweepPeriod := mustParseDuration(common.EnvKeyFleetSweepPeriod)

	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyFleetHttpHostPort))
	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":1080"
	}

	var defaultRate float64
	var defaultBurst int64

	if defaultRate, err = strconv.ParseFloat(os.Getenv(common.EnvKeyFleetDefaultRate), 64); err != nil {
		log.Fatal("Invalid FLEET_DEFAULT_RATE, or not set in .env, should be a float64 value")
	}

	if defaultBurst, err = strconv.ParseInt(os.Getenv(common.EnvKeyFleetDefaultBurst), 10, 64); err != nil {
		log.Fatal("Invalid FLEET_DEFAULT_BURST, or not set in .env, should be an int value")
	}

	mirrorQueue := 0
	if raw := strings.TrimSpace(os.Getenv(common.EnvKeyFleetMirrorQueue)); raw != "" {
		queue, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatal("Invalid FLEET_MIRROR_QUEUE, should be an int value")
		}
		mirrorQueue = queue
	}

	logger := common.GetLogger()

	fleetCore := fleet.New(*dbInstance, thresholds, mirrorQueue)

	if err := fleetCore.Rehydrate(); err != nil {
		// the mirror is recovery-only; a failed rehydrate just means we
		// start from an empty fleet
		logger.Warn("Rehydrate from mirror failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fleetCore.Start(ctx)

	sweeper := fleet.NewSweeper(fleetCore, sweepPeriod)
	sweeper.Start(ctx)
	logger.Info("Sweeper started", zap.Duration("period", sweepPeriod))

	rs := &fleetHttp.RestfulServer{
		Server:           gin.Default(),
		Fleet:            fleetCore,
		RateLimiterStore: fleet.NewRateLimiterStore(rate.Limit(defaultRate), int(defaultBurst)),
	}
	rs.Setup()

	srv := &http.Server{
		Addr:    httpHostPort,
		Handler: rs.Server,
	}

	go func() {
		logger.Info("Starting HTTP server on: " + httpHostPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server failed to serve: %v", err)
		}
	}()

	<-ctx.Done()

	logger.Info("Shutting down")
	sweeper.Stop()
	fleetCore.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server shutdown", zap.Error(err))
	}
}

func loadThresholds() fleet.ThresholdConfig {
	cfg := fleet.ThresholdConfig{
		Default: fleet.Thresholds{
			StaleAfter:   mustParseDuration(common.EnvKeyFleetStaleAfter),
			OfflineAfter: mustParseDuration(common.EnvKeyFleetOfflineAfter),
		},
	}

	if raw := strings.TrimSpace(os.Getenv(common.EnvKeyFleetKindThresholds)); raw != "" {
		perKind, err := fleet.ParseKindThresholds(raw)
		if err != nil {
			log.Fatalf("Invalid FLEET_KIND_THRESHOLDS: %v", err)
		}
		cfg.PerKind = perKind
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid thresholds: %v", err)
	}
	return cfg
}

func mustParseDuration(envKey string) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(envKey)))
	if err != nil {
		log.Fatalf("Invalid %s, or not set in .env, should be a duration like 15m or 5s", envKey)
	}
	return d
}
