package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/catalogue-etl/internal/http/handlers"
	httpMW "github.com/yungbote/catalogue-etl/internal/http/middleware"
	"github.com/yungbote/catalogue-etl/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string

	ETLHandler    *httpH.ETLHandler
	SearchHandler *httpH.SearchHandler
	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// ETL
		if cfg.ETLHandler != nil {
			api.POST("/etl/process/:identifier", cfg.ETLHandler.ProcessDataset)
			api.POST("/etl/process-all", cfg.ETLHandler.ProcessAll)
			api.GET("/etl/status", cfg.ETLHandler.Status)
		}

		// Search
		if cfg.SearchHandler != nil {
			api.GET("/search", cfg.SearchHandler.Search)
			api.GET("/search/details/:identifier", cfg.SearchHandler.Details)
			api.GET("/search/stats", cfg.SearchHandler.Stats)
		}
	}

	return r
}
