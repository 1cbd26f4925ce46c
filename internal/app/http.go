package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/docforge-backend/internal/http"
	httpH "github.com/yungbote/docforge-backend/internal/http/handlers"
	httpMW "github.com/yungbote/docforge-backend/internal/http/middleware"
	"github.com/yungbote/docforge-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health  *httpH.HealthHandler
	Auth    *httpH.AuthHandler
	User    *httpH.UserHandler
	Project *httpH.ProjectHandler
	Section *httpH.SectionHandler
	AI      *httpH.AIHandler
	Export  *httpH.ExportHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:  httpH.NewHealthHandler(db),
		Auth:    httpH.NewAuthHandler(services.Auth),
		User:    httpH.NewUserHandler(services.User),
		Project: httpH.NewProjectHandler(services.Authoring),
		Section: httpH.NewSectionHandler(services.Authoring),
		AI:      httpH.NewAIHandler(services.Workflow),
		Export:  httpH.NewExportHandler(services.Export),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireServer(log *logger.Logger, cfg Config, clients Clients, handlers Handlers, middleware Middleware) *http.Server {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return http.NewServer(":"+cfg.Port, http.RouterConfig{
		Log:            log,
		ServiceName:    serviceName,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Metrics:        clients.Metrics,

		AuthMiddleware: middleware.Auth,
		AuthHandler:    handlers.Auth,
		UserHandler:    handlers.User,
		ProjectHandler: handlers.Project,
		SectionHandler: handlers.Section,
		AIHandler:      handlers.AI,
		ExportHandler:  handlers.Export,
		HealthHandler:  handlers.Health,
	})
}
