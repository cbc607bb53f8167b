package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	httpapi "github.com/luminus-agency/luminus-backend/internal/api/http"
	"github.com/luminus-agency/luminus-backend/internal/assistant"
	"github.com/luminus-agency/luminus-backend/internal/assistant/llm"
	"github.com/luminus-agency/luminus-backend/internal/auth"
	luminushttp "github.com/luminus-agency/luminus-backend/internal/luminus/http"
	"github.com/luminus-agency/luminus-backend/internal/luminus/service"
	"github.com/luminus-agency/luminus-backend/internal/luminus/store"
	"github.com/luminus-agency/luminus-backend/internal/middleware"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	CORSOrigins    []string
	Store          store.Store
	DB             *pgxpool.Pool // nil when the redis backend is selected
	Redis          *redis.Client // nil when the postgres backend is selected
	LLM            llm.Client    // nil disables the assistant endpoint
	AssistantRate  rate.Limit
	AssistantBurst int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestID())

	auth.Register(api.Group("/auth"))

	cascade := service.NewCascadeService(dep.Store)
	summary := service.NewSummaryService(dep.Store)
	reconcile := service.NewReconcileService(dep.Store)

	dashboard := api.Group("")
	dashboard.Use(middleware.Session())
	luminushttp.New(cascade, summary, reconcile, dep.Store).Register(dashboard)

	if dep.LLM != nil {
		ai := dashboard.Group("/assistant")
		ai.Use(middleware.RateLimit(dep.AssistantRate, dep.AssistantBurst))
		assistant.NewHandler(assistant.NewService(dep.LLM, cascade)).Register(ai)
	}

	return r
}
