package api

import (
	"jobboard/internal/api/middleware"
	"jobboard/internal/metrics"
	"jobboard/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterConfig carries the cross-cutting pieces of the HTTP stack.
type RouterConfig struct {
	CORSOrigins        []string
	RateLimitPerMinute int
	Limiter            middleware.Limiter
	Metrics            *metrics.Manager
	Logger             *zap.Logger
}

// adminRoles may manage a company's applicants; ownership is checked per company.
var adminRoles = []models.UserRole{models.RoleCompanyAdmin, models.RoleAdmin, models.RoleDeveloper}

func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	registerValidator()

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var recorder middleware.HTTPRecorder
	if cfg.Metrics != nil {
		recorder = cfg.Metrics
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Metrics(recorder),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORSOrigins),
	)

	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	v1 := r.Group("/api/v1")
	v1.GET("/health", h.health)

	company := v1.Group("/companies/:companyId",
		middleware.Actor(),
		middleware.RequireRole(adminRoles...),
		middleware.RateLimit(cfg.Limiter, cfg.RateLimitPerMinute, logger),
		h.requireCompany,
	)
	{
		company.GET("/applicants", h.listCompanyApplicants)
		company.PUT("/applicants", h.updateApplicationStatus)
		company.GET("/jobs/:jobId/applicants", h.listJobApplicants)
		company.PATCH("/applications/:applicationId/status", h.patchApplicationStatus)
	}

	return r
}
