package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"srtm-backend/internal/categorizations"
	"srtm-backend/internal/designelements"
	"srtm-backend/internal/matrix"
	"srtm-backend/internal/requirements"
	"srtm-backend/internal/services/health"
	"srtm-backend/internal/shared/config"
	"srtm-backend/internal/shared/metrics"
	"srtm-backend/internal/shared/server/middleware"
	"srtm-backend/internal/shared/server/respond"
	"srtm-backend/internal/stig"
	"srtm-backend/internal/workflow"
)

const heavyRateLimitGroup = "HEAVY"

// RouterDeps carries the handlers mounted under /api/v1.
type RouterDeps struct {
	Config                 config.Config
	Health                 *health.Service
	RequirementsHandler    *requirements.Handler
	DesignElementsHandler  *designelements.Handler
	CategorizationsHandler *categorizations.Handler
	StigHandler            *stig.Handler
	WorkflowHandler        *workflow.Handler
	MatrixHandler          *matrix.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	rps, burst := deps.Config.RateLimitRPS, deps.Config.RateLimitBurst
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT":           {Rate: rps, Burst: burst},
				heavyRateLimitGroup: {Rate: rps / 4, Burst: max(burst/4, 1)},
			},
			GroupFor: rateLimitGroup,
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.JSON(c, http.StatusOK, gin.H{"ok": true})
			return
		}
		status := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if !status.OK {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})

	if deps.RequirementsHandler != nil {
		deps.RequirementsHandler.RegisterRoutes(api)
	}
	if deps.DesignElementsHandler != nil {
		deps.DesignElementsHandler.RegisterRoutes(api)
	}
	if deps.CategorizationsHandler != nil {
		deps.CategorizationsHandler.RegisterRoutes(api)
	}
	if deps.StigHandler != nil {
		deps.StigHandler.RegisterRoutes(api)
	}
	if deps.WorkflowHandler != nil {
		deps.WorkflowHandler.RegisterRoutes(api)
	}
	if deps.MatrixHandler != nil {
		deps.MatrixHandler.RegisterRoutes(api)
	}

	return r
}

// rateLimitGroup puts document uploads, imports and catalog changes in a
// tighter bucket than reads.
func rateLimitGroup(c *gin.Context) string {
	path := c.Request.URL.Path
	switch c.Request.Method {
	case http.MethodPost, http.MethodPut:
		if strings.HasPrefix(path, "/api/v1/workflow/") ||
			strings.HasPrefix(path, "/api/v1/stig/catalog/") ||
			strings.HasPrefix(path, "/api/v1/stig/library/") {
			return heavyRateLimitGroup
		}
	}
	return ""
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
