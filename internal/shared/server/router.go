package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-analysis/internal/resumes"
	"resume-analysis/internal/services/health"
	"resume-analysis/internal/shared/config"
	"resume-analysis/internal/shared/metrics"
	"resume-analysis/internal/shared/server/middleware"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config        config.Config
	HealthService *health.Service
	ResumeHandler *resumes.Handler
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

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, deps.HealthService.Status())
	})
	api.GET("/metrics", metrics.Handler())

	// AI-backed routes are throttled per client IP.
	limited := api.Group("")
	limited.Use(middleware.RateLimit(middleware.NewRateLimiter(nil), middleware.RateLimitRule{
		Rate:  deps.Config.AnalyzeRPM,
		Burst: deps.Config.AnalyzeBurst,
	}))
	deps.ResumeHandler.RegisterRoutes(api, limited)

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
