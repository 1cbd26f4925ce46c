package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/docforge-backend/internal/http/handlers"
	httpMW "github.com/yungbote/docforge-backend/internal/http/middleware"
	"github.com/yungbote/docforge-backend/internal/observability"
	"github.com/yungbote/docforge-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AllowedOrigins []string
	Metrics        *observability.Metrics

	AuthMiddleware *httpMW.AuthMiddleware
	AuthHandler    *httpH.AuthHandler
	UserHandler    *httpH.UserHandler
	ProjectHandler *httpH.ProjectHandler
	SectionHandler *httpH.SectionHandler
	AIHandler      *httpH.AIHandler
	ExportHandler  *httpH.ExportHandler
	HealthHandler  *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/auth/register", cfg.AuthHandler.Register)
			api.POST("/auth/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/auth/me", cfg.UserHandler.GetMe)
			protected.PATCH("/me", cfg.UserHandler.ChangeName)
			protected.DELETE("/me", cfg.UserHandler.DeleteAccount)
		}

		// Projects
		if cfg.ProjectHandler != nil {
			protected.POST("/projects", cfg.ProjectHandler.CreateProject)
			protected.GET("/projects", cfg.ProjectHandler.ListProjects)
			protected.GET("/projects/:id", cfg.ProjectHandler.GetProject)
			protected.DELETE("/projects/:id", cfg.ProjectHandler.DeleteProject)
			protected.PATCH("/projects/:id/status", cfg.ProjectHandler.SetStatus)
			protected.POST("/projects/:id/sections", cfg.ProjectHandler.AddSection)
		}

		// Sections
		if cfg.SectionHandler != nil {
			protected.PUT("/sections/:id/content", cfg.SectionHandler.UpdateContent)
			protected.GET("/sections/:id/refinements", cfg.SectionHandler.ListRefinements)
			protected.POST("/sections/:id/feedback", cfg.SectionHandler.AddFeedback)
			protected.POST("/sections/:id/comments", cfg.SectionHandler.AddComment)
			protected.GET("/sections/:id/comments", cfg.SectionHandler.ListComments)
			protected.PUT("/comments/:id", cfg.SectionHandler.UpdateComment)
			protected.DELETE("/comments/:id", cfg.SectionHandler.DeleteComment)
		}

		// AI generation
		if cfg.AIHandler != nil {
			protected.POST("/ai/generate-outline", cfg.AIHandler.GenerateOutline)
			protected.POST("/ai/generate-section-content", cfg.AIHandler.GenerateSectionContent)
			protected.POST("/ai/generate-all", cfg.AIHandler.GenerateAll)
			protected.POST("/ai/refine-content", cfg.AIHandler.RefineContent)
		}

		// Export
		if cfg.ExportHandler != nil {
			protected.GET("/export/:id", cfg.ExportHandler.ExportProject)
		}
	}

	return r
}
