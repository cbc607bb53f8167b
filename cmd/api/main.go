package main

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/luminus-agency/luminus-backend/config"
	"github.com/luminus-agency/luminus-backend/internal/assistant/llm"
	"github.com/luminus-agency/luminus-backend/internal/bootstrap"
	"github.com/luminus-agency/luminus-backend/internal/luminus/reconcile"
	"github.com/luminus-agency/luminus-backend/internal/luminus/service"
	"github.com/luminus-agency/luminus-backend/internal/luminus/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	var (
		st   store.Store
		pool *pgxpool.Pool
		rdb  *redis.Client
	)
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		pool, err = bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN()})
		if err != nil {
			log.Fatalf("open postgres: %v", err)
		}
		defer pool.Close()
		st = store.NewPostgresStore(pool)
	case config.BackendRedis:
		rdb, err = bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatalf("open redis: %v", err)
		}
		defer rdb.Close()
		st = store.NewRedisStore(rdb)
	}
	log.Printf("store backend: %s", cfg.Store.Backend)

	var aiClient llm.Client
	if cfg.Assistant.APIKey != "" {
		aiClient = llm.NewGeminiClient(
			cfg.Assistant.BaseURL,
			cfg.Assistant.Model,
			cfg.Assistant.APIKey,
			llm.SystemPrompt,
			llm.AgencyTools(),
		)
	} else {
		log.Println("GEMINI_API_KEY not set, assistant endpoint disabled")
	}

	if cfg.Reconcile.Enabled {
		sched := reconcile.NewScheduler(service.NewReconcileService(st), cfg.Reconcile.CronSpec)
		if err := sched.Start(); err != nil {
			log.Fatalf("start reconcile scheduler: %v", err)
		}
		defer sched.Stop()
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    "luminus-backend",
		Version:        cfg.App.Version,
		CORSOrigins:    cfg.App.CORSOrigins,
		Store:          st,
		DB:             pool,
		Redis:          rdb,
		LLM:            aiClient,
		AssistantRate:  rate.Limit(cfg.Assistant.RatePerSecond),
		AssistantBurst: cfg.Assistant.RateBurst,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
