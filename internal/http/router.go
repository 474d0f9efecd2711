package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/person-backend/internal/http/handlers"
	httpMW "github.com/yungbote/person-backend/internal/http/middleware"
	"github.com/yungbote/person-backend/internal/observability"
	"github.com/yungbote/person-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log     *logger.Logger
	Metrics *observability.Metrics

	ServiceName     string
	TracingEnabled  bool
	CORSOrigins     []string
	RateLimitRPS    float64
	RateLimitBurst  int
	MaxRequestBytes int64

	HealthHandler       *httpH.HealthHandler
	PersonHandler       *httpH.PersonHandler
	PersonRecordHandler *httpH.PersonRecordHandler
	MemoryMapHandler    *httpH.MemoryMapHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}
	r.Use(httpMW.CORS(cfg.CORSOrigins))
	if cfg.RateLimitRPS > 0 {
		r.Use(httpMW.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.Metrics))
	}
	if cfg.MaxRequestBytes > 0 {
		r.Use(httpMW.LimitBody(cfg.MaxRequestBytes))
	}
	if cfg.Metrics != nil {
		r.Use(httpMW.Metrics(cfg.Metrics))
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api/v1")
	{
		if cfg.HealthHandler != nil {
			api.GET("/health", cfg.HealthHandler.Health)
			api.GET("/health/ready", cfg.HealthHandler.Ready)
		}

		// Persons
		if cfg.PersonHandler != nil {
			persons := api.Group("/persons")
			persons.POST("", cfg.PersonHandler.Create)
			persons.GET("", cfg.PersonHandler.List)
			persons.GET("/search", cfg.PersonHandler.Search)
			persons.GET("/count", cfg.PersonHandler.Count)
			persons.GET("/document/:document_id", cfg.PersonHandler.GetByDocument)
			persons.GET("/cpf/:document_id", cfg.PersonHandler.GetByDocument)
			persons.GET("/:id", cfg.PersonHandler.Get)
			persons.PUT("/:id", cfg.PersonHandler.Update)
			persons.PATCH("/:id", cfg.PersonHandler.Patch)
			persons.DELETE("/:id", cfg.PersonHandler.Delete)
		}

		// Memory map
		if cfg.MemoryMapHandler != nil {
			api.GET("/memory-map/stats", cfg.MemoryMapHandler.Stats)
			api.GET("/memory-map/content", cfg.MemoryMapHandler.Content)
		}
	}

	// Person records
	if cfg.PersonRecordHandler != nil {
		records := r.Group("/person")
		records.GET("", cfg.PersonRecordHandler.List)
		records.POST("", cfg.PersonRecordHandler.Create)
		records.GET("/:id", cfg.PersonRecordHandler.Get)
		records.PUT("/:id", cfg.PersonRecordHandler.Update)
		records.PATCH("/:id", cfg.PersonRecordHandler.Patch)
		records.DELETE("/:id", cfg.PersonRecordHandler.Delete)
		records.GET("/:id/age", cfg.PersonRecordHandler.Age)
		records.GET("/:id/salary", cfg.PersonRecordHandler.Salary)
	}

	return r
}
