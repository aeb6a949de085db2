package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blockedby/jobboard/internal/api"
	"github.com/blockedby/jobboard/internal/cache"
	"github.com/blockedby/jobboard/internal/config"
	"github.com/blockedby/jobboard/internal/database"
	"github.com/blockedby/jobboard/internal/logger"
	"github.com/blockedby/jobboard/internal/migrator"
	"github.com/blockedby/jobboard/internal/nats"
	"github.com/blockedby/jobboard/internal/publisher"
	"github.com/blockedby/jobboard/internal/repository"
	"github.com/blockedby/jobboard/internal/search"
	"github.com/blockedby/jobboard/internal/web"
	"github.com/blockedby/jobboard/migrations"
)

var version = "dev"

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// 2. Initialize logger
	if err := logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	log := logger.Get()
	log.Info().Str("version", version).Msg("starting job board api")

	// 3. Setup context with graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 4. Run migrations
	m, err := migrator.NewWithFS(migrations.FS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load migrations")
	}
	if err := m.Up(ctx, cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}
	if v, dirty, err := m.Version(ctx, cfg.DatabaseURL); err == nil {
		log.Info().Uint("version", v).Bool("dirty", dirty).Msg("database schema ready")
	}

	// 5. Connect to database
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// 6. Load filter facets
	facets, err := search.LoadFacets(cfg.FacetsFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.FacetsFile).Msg("failed to load facets")
	}

	checks := []api.HealthCheck{{Name: "database", Check: db.Ping}}

	// 7. Connect to Redis
	var store cache.Store
	redisStore := cache.NewRedisStore(cache.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redisStore.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, job list caching disabled")
		_ = redisStore.Close()
	} else {
		store = redisStore
		defer redisStore.Close()
		checks = append(checks, api.HealthCheck{Name: "redis", Check: redisStore.Ping})
	}

	// 8. Connect to NATS
	var pub api.EventPublisher
	nc, err := nats.New(ctx, cfg.NatsURL)
	if err != nil {
		log.Warn().Err(err).Msg("failed to connect to nats, publishing disabled")
	} else {
		defer nc.Close()
		if err := nc.EnsureStream(ctx, nats.JobsStream, nats.JobsSubjects); err != nil {
			log.Warn().Err(err).Msg("failed to ensure jobs stream")
		}
		pub = publisher.NewNATSPublisher(nc)
		checks = append(checks, api.HealthCheck{Name: "nats", Check: func(context.Context) error {
			if !nc.IsConnected() {
				return errors.New("nats disconnected")
			}
			return nil
		}})
	}

	// 9. Initialize repositories
	jobsRepo := repository.NewJobsRepository(db.Pool)
	companiesRepo := repository.NewCompaniesRepository(db.Pool)
	contactsRepo := repository.NewContactsRepository(db.GORM)

	provider := cache.NewJobProvider(jobsRepo, store, cfg.JobsCacheTTL, log)
	if jobs, err := provider.Jobs(ctx); err != nil {
		log.Warn().Err(err).Msg("initial job list load failed")
	} else {
		log.Info().Int("jobs", len(jobs)).Msg("job list loaded")
	}

	// 10. Initialize WebSocket Hub
	hub := web.NewHub()
	go hub.Run()
	defer hub.Stop()

	// 11. Initialize Server
	server := api.NewServer(&api.Config{
		Port:         cfg.HTTPPort,
		Title:        "Job Board API",
		Description:  "Job search, recruiter postings, companies and contact messages",
		Version:      version,
		CORSOrigins:  cfg.CORSOrigins,
		ContactRPS:   cfg.ContactRPS,
		ContactBurst: cfg.ContactBurst,
		AdminToken:   cfg.AdminToken,
	}, &api.Dependencies{
		Jobs:          provider,
		JobsRepo:      jobsRepo,
		CompaniesRepo: companiesRepo,
		ContactsRepo:  contactsRepo,
		Publisher:     pub,
		Hub:           hub,
		Facets:        facets,
		Logger:        log,
		HealthChecks:  checks,
	})

	// 12. Start Server
	go func() {
		if err := server.Start(); err != nil {
			log.Error().Err(err).Msg("server error")
			cancel()
		}
	}()

	// 13. Wait for shutdown
	<-ctx.Done()
	log.Info().Msg("shutting down services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("shutdown complete")
}
