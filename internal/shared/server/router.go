package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/karaksak1338/ChaosOrganizer/internal/documents"
	"github.com/karaksak1338/ChaosOrganizer/internal/shared/config"
	"github.com/karaksak1338/ChaosOrganizer/internal/shared/metrics"
	"github.com/karaksak1338/ChaosOrganizer/internal/shared/server/middleware"
	"github.com/karaksak1338/ChaosOrganizer/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config           config.Config
	DocumentsHandler *documents.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/health", func(c *gin.Context) {
		respond.OK(c, gin.H{
			"status": "ok",
			"time":   time.Now().UTC().Truncate(time.Second).Format(time.RFC3339),
		})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/")
	deps.DocumentsHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
