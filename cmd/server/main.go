package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"liyu1981.xyz/trailer-fleet-service/pkg/clients"
	"liyu1981.xyz/trailer-fleet-service/pkg/common"
	"liyu1981.xyz/trailer-fleet-service/pkg/config"
	"liyu1981.xyz/trailer-fleet-service/pkg/db"
	"liyu1981.xyz/trailer-fleet-service/pkg/fleet"
	fleetHttp "liyu1981.xyz/trailer-fleet-service/pkg/http"
	"liyu1981.xyz/trailer-fleet-service/pkg/notify"
)

const shutdownTimeout = 10 * time.Second

func openDatabase(cfg *config.Config) (*db.DB, error) {
	switch cfg.DBType {
	case "file":
		return db.Open(db.UseSqliteDialector())
	case "memory":
		return db.Open(db.UseMemorySqliteDialector())
	case "postgres":
		return db.Open(db.UsePostgresDialector(cfg.DBDSN))
	default:
		return nil, fmt.Errorf("unknown %s: %s", common.EnvKeyFleetDBType, cfg.DBType)
	}
}

func main() {
	var err error

	if err = godotenv.Load(); err != nil && common.IsDevelopment() {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := common.GetLogger()

	dbInstance, err := openDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	hardware, err := config.LoadHardware(cfg.HardwareSpecPath)
	if err != nil {
		log.Fatalf("Failed to load hardware spec: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := fleet.Options{
		Store:    dbInstance,
		Hardware: hardware,
		Weather:  clients.NewWeatherClient(cfg.WeatherBaseURL, cfg.HttpClientTimeout),
		Geocoder: clients.NewGeocoderClient(cfg.GeocoderBaseURL, cfg.GeocoderUserAgent, cfg.HttpClientTimeout),
		Queue:    fleet.NewWriteQueue(0, 0),
		Limiters: fleet.NewRateLimiterStore(rate.Limit(cfg.DefaultRate), cfg.DefaultBurst),

		Location:               cfg.Location,
		Poll:                   cfg.Poll,
		ClusterThresholdMeters: cfg.ClusterThresholdMeters,
		AcceptZeroFix:          cfg.AcceptZeroFix,
		WeatherCacheTTL:        cfg.WeatherCacheTTL,
		GeocoderInterval:       cfg.GeocoderInterval,
	}

	if cfg.SolarEnabled() {
		opts.Solar = clients.NewSolarClient(cfg.Solar, cfg.HttpClientTimeout)
	} else {
		logger.Warn("Solar credentials not set, solar poller disabled")
	}
	if cfg.RouterEnabled() {
		opts.Routers = clients.NewRouterClient(cfg.Router, cfg.HttpClientTimeout)
	} else {
		logger.Warn("Router credentials not set, router poller disabled")
	}

	if cfg.RedisAddr != "" {
		publisher, err := notify.NewRedisPublisher(ctx, cfg.RedisAddr, cfg.RedisAlertChannel)
		if err != nil {
			log.Fatalf("Failed to create alert publisher: %v", err)
		}
		defer publisher.Close()
		opts.Publisher = publisher
	}

	fleetCore := fleet.New(opts)
	if err := fleetCore.LoadState(ctx); err != nil {
		logger.Warn("Starting with partial state", zap.Error(err))
	}

	// the queue outlives ctx so writes issued during shutdown still land
	opts.Queue.Start(context.Background())

	pollersDone := make(chan struct{})
	go func() {
		defer close(pollersDone)
		fleetCore.RunPollers(ctx)
	}()

	rs := &fleetHttp.RestfulServer{
		Server:           gin.Default(),
		Fleet:            fleetCore,
		RateLimiterStore: opts.Limiters,
	}
	rs.Setup()

	logger.Info("http server created with:",
		zap.String("default_limiter",
			fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", cfg.DefaultRate, cfg.DefaultBurst)))

	srv := &http.Server{
		Addr:    cfg.HttpHostPort,
		Handler: rs.Server,
	}
	go func() {
		logger.Info("Starting HTTP server on: " + cfg.HttpHostPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server failed to serve: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", zap.Error(err))
	}

	<-pollersDone
	opts.Queue.Close()
	logger.Info("Stopped", zap.Reflect("write_queue", opts.Queue.Stats()))
}
