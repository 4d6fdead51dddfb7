package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/skhan-ssq/studianclass-dashboard/internal/config"
	"github.com/skhan-ssq/studianclass-dashboard/internal/dataset"
	"github.com/skhan-ssq/studianclass-dashboard/internal/handler"
	"github.com/skhan-ssq/studianclass-dashboard/internal/middleware"
	"github.com/skhan-ssq/studianclass-dashboard/internal/router"
	"github.com/skhan-ssq/studianclass-dashboard/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cache, err := connectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	if cache != nil {
		defer cache.Close()
	}

	store := dataset.NewStore()
	loader := dataset.NewLoader(cfg.DataBaseURL, cfg.BuildVersion, cfg.FetchTimeout, logger)

	loadCtx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
	snap, err := loader.Load(loadCtx)
	cancel()
	if err != nil {
		// Serve the empty snapshot until a refresh succeeds.
		logger.Error().Err(err).Msg("initial snapshot load failed")
	} else {
		store.Replace(snap)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	dashboardService := service.NewDashboardService(store, cache, cfg.SummaryCacheTTL, logger)
	cohortService := service.NewCohortService(store, validate, logger)
	memberService := service.NewMemberService(store, logger)
	refreshService := service.NewRefreshService(loader, store, logger)

	dashboardHandler := handler.NewDashboardHandler(dashboardService, cfg.DefaultMinWeeklyCerts, logger)
	cohortHandler := handler.NewCohortHandler(cohortService, logger)
	memberHandler := handler.NewMemberHandler(memberService, logger)
	adminHandler := handler.NewAdminHandler(refreshService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		DashboardHandler: dashboardHandler,
		CohortHandler:    cohortHandler,
		MemberHandler:    memberHandler,
		AdminHandler:     adminHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

// connectRedis returns nil when no redis URL is configured; the summary
// cache is optional and the dashboard service tolerates a nil client.
func connectRedis(url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
