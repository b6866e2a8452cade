package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/luisortegam/fieldvisits-backend/api/routes"
	"github.com/luisortegam/fieldvisits-backend/internal/directory"
	"github.com/luisortegam/fieldvisits-backend/internal/schedule"
	"github.com/luisortegam/fieldvisits-backend/internal/visits"
	"github.com/luisortegam/fieldvisits-backend/pkg/config"
	"github.com/luisortegam/fieldvisits-backend/pkg/db"
	"github.com/luisortegam/fieldvisits-backend/pkg/enums"
	"github.com/luisortegam/fieldvisits-backend/pkg/logger"
	"github.com/luisortegam/fieldvisits-backend/pkg/metrics"
	"github.com/luisortegam/fieldvisits-backend/pkg/migrate"
	"github.com/luisortegam/fieldvisits-backend/pkg/redis"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	visitRepo := visits.NewRepository(dbClient.DB())
	directoryRepo := directory.NewRepository(dbClient.DB())

	visitService, err := visits.NewService(visitRepo, directoryRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create visit service", err)
		os.Exit(1)
	}

	directoryService, err := directory.NewService(directoryRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create directory service", err)
		os.Exit(1)
	}

	defaultVisitType, err := enums.ParseVisitType(cfg.Schedule.DefaultVisitType)
	if err != nil {
		logg.Error(context.Background(), "invalid default visit type", err)
		os.Exit(1)
	}

	scheduleMetrics := metrics.NewScheduleMetrics(prometheus.DefaultRegisterer)

	resolver, err := schedule.NewResolver(visitRepo, directoryRepo, scheduleMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create assignment resolver", err)
		os.Exit(1)
	}

	planner, err := schedule.NewPlanner(visitRepo, scheduleMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create transfer planner", err)
		os.Exit(1)
	}

	scheduleService, err := schedule.NewService(resolver, planner, visitRepo, defaultVisitType)
	if err != nil {
		logg.Error(context.Background(), "failed to create schedule service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, directoryService, visitService, scheduleService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
