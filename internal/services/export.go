package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/docforge-backend/internal/export"
	"github.com/yungbote/docforge-backend/internal/observability"
	"github.com/yungbote/docforge-backend/internal/platform/logger"
)

type ExportService interface {
	ExportProject(ctx context.Context, projectID, owner uuid.UUID) (*export.Document, error)
}

type exportService struct {
	log       *logger.Logger
	authoring AuthoringService
	metrics   *observability.Metrics
}

func NewExportService(baseLog *logger.Logger, authoringSvc AuthoringService, metrics *observability.Metrics) ExportService {
	return &exportService{
		log:       baseLog.With("service", "ExportService"),
		authoring: authoringSvc,
		metrics:   metrics,
	}
}

func (es *exportService) ExportProject(ctx context.Context, projectID, owner uuid.UUID) (*export.Document, error) {
	project, err := es.authoring.GetProject(ctx, projectID, owner)
	if err != nil {
		return nil, err
	}
	format := string(project.DocumentType)

	doc, err := export.Export(export.SnapshotOf(project))
	if err != nil {
		es.metrics.IncExport(format, "error")
		es.log.Warn("Export failed", "project_id", projectID, "format", format, "error", err)
		return nil, err
	}
	es.metrics.IncExport(format, "ok")
	es.log.Info("Project exported", "project_id", projectID, "format", format, "bytes", doc.Size)
	return doc, nil
}
