package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/comprasmart/pricewatch/internal/api"
	"github.com/comprasmart/pricewatch/internal/config"
	"github.com/comprasmart/pricewatch/internal/middleware"
	"github.com/comprasmart/pricewatch/internal/repository"
	"github.com/comprasmart/pricewatch/internal/scheduler"
	"github.com/comprasmart/pricewatch/internal/service"
	"github.com/comprasmart/pricewatch/internal/ws"

	_ "github.com/comprasmart/pricewatch/docs"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const reportCacheTTL = 5 * time.Minute

// @title PriceWatch API
// @version 1.0
// @description Price tracking, alerting and reporting service.
// @BasePath /api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	store := repository.NewSeriesStore(cfg.RetentionDays)

	var alertRepo repository.AlertRepository
	if cfg.MongoURI != "" {
		client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to MongoDB")
		}
		defer client.Disconnect(context.Background())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Ping(ctx, nil); err != nil {
			log.Fatal().Err(err).Msg("failed to ping MongoDB")
		}

		alertRepo = repository.NewMongoAlertRepository(client, cfg.MongoDB, "alerts")
		log.Info().Msg("alert storage: MongoDB")
	} else {
		alertRepo = repository.NewMemoryAlertRepository()
		log.Info().Msg("alert storage: in-memory")
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, report cache disabled")
			redisClient = nil
		}
	}
	reportCache := repository.NewReportCache(redisClient, reportCacheTTL, log)

	hub := ws.NewHub(log)
	go hub.Run()
	wsHandler := ws.NewWebSocketHandler(hub)

	alertService := service.NewAlertService(alertRepo, store, log)
	monitorService := service.NewMonitorService(store, alertService, hub, log)
	analyticsService := service.NewAnalyticsService(store)
	reportService := service.NewReportService(store, analyticsService, service.SimulatedCompetitorSource{}, reportCache, log)

	if cfg.RefreshSpec != "" {
		source := scheduler.NewSimulatedSource(time.Now().UnixNano())
		refresher := scheduler.NewRefresher(store, monitorService, source, cfg.RefreshSpec, log)
		if err := refresher.Start(); err != nil {
			log.Fatal().Err(err).Msg("failed to start refresh scheduler")
		}
		defer refresher.Stop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	api.SetupRoutes(r, monitorService, alertService, analyticsService, reportService, wsHandler)

	addr := fmt.Sprintf("%s:%d", cfg.Address, cfg.Port)
	log.Info().Str("addr", addr).Str("base_url", cfg.BaseURL).Msg("starting server")

	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
