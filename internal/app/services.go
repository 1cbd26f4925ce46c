package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/docforge-backend/internal/generation"
	"github.com/yungbote/docforge-backend/internal/platform/logger"
	"github.com/yungbote/docforge-backend/internal/services"
)

type Services struct {
	Auth      services.AuthService
	User      services.UserService
	Authoring services.AuthoringService
	Workflow  services.WorkflowService
	Export    services.ExportService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) Services {
	log.Info("Wiring services...")

	orchestrator := generation.NewOrchestrator(clients.Generator, log, generation.WithMetrics(clients.Metrics))

	authoring := services.NewAuthoringService(
		db, log,
		repos.Project,
		repos.Section,
		repos.Refinement,
		repos.Feedback,
		repos.Comment,
	)
	return Services{
		Auth: services.NewAuthService(db, log, repos.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		User: services.NewUserService(db, log, repos.User, repos.Project, repos.Feedback, repos.Comment),
		Authoring: authoring,
		Workflow: services.NewWorkflowService(
			db, log,
			authoring,
			orchestrator,
			repos.Project,
			repos.Section,
			cfg.GenerationConcurrency,
		),
		Export: services.NewExportService(log, authoring, clients.Metrics),
	}
}
