package services

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/docforge-backend/internal/data/repos"
	types "github.com/yungbote/docforge-backend/internal/domain"
	"github.com/yungbote/docforge-backend/internal/domain/authoring"
	"github.com/yungbote/docforge-backend/internal/generation"
	"github.com/yungbote/docforge-backend/internal/platform/apierr"
	"github.com/yungbote/docforge-backend/internal/platform/logger"
)

const defaultGenerationConcurrency = 3

// WorkflowService ties the orchestrator to the content store: it generates,
// persists the result, and advances the project status.
type WorkflowService interface {
	GenerateOutline(ctx context.Context, topic, documentType string, numSections int) ([]string, error)
	GenerateSectionContent(ctx context.Context, owner, projectID, sectionID uuid.UUID, additionalContext string) (*types.Section, error)
	GenerateAllSections(ctx context.Context, owner, projectID uuid.UUID, onlyMissing bool) (*types.Project, error)
	RefineSection(ctx context.Context, owner, sectionID uuid.UUID, instruction string) (*types.Refinement, error)
}

type workflowService struct {
	db           *gorm.DB
	log          *logger.Logger
	authoring    AuthoringService
	orchestrator *generation.Orchestrator
	projects     repos.ProjectRepo
	sections     repos.SectionRepo
	concurrency  int
}

func NewWorkflowService(
	db *gorm.DB,
	baseLog *logger.Logger,
	authoringSvc AuthoringService,
	orchestrator *generation.Orchestrator,
	projects repos.ProjectRepo,
	sections repos.SectionRepo,
	concurrency int,
) WorkflowService {
	if concurrency <= 0 {
		concurrency = defaultGenerationConcurrency
	}
	return &workflowService{
		db:           db,
		log:          baseLog.With("service", "WorkflowService"),
		authoring:    authoringSvc,
		orchestrator: orchestrator,
		projects:     projects,
		sections:     sections,
		concurrency:  concurrency,
	}
}

func (w *workflowService) GenerateOutline(ctx context.Context, topic, documentType string, numSections int) ([]string, error) {
	docType, ok := authoring.ParseDocumentType(documentType)
	if !ok {
		return nil, apierr.Validation("unsupported document_type %q", documentType)
	}
	return w.orchestrator.GenerateOutline(ctx, topic, docType, numSections)
}

func (w *workflowService) GenerateSectionContent(ctx context.Context, owner, projectID, sectionID uuid.UUID, additionalContext string) (*types.Section, error) {
	project, err := w.authoring.GetProject(ctx, projectID, owner)
	if err != nil {
		return nil, err
	}
	var section *types.Section
	for _, s := range project.Sections {
		if s.ID == sectionID {
			section = s
			break
		}
	}
	if section == nil {
		return nil, apierr.NotFound("section")
	}

	updated, err := w.generateInto(ctx, project, section, additionalContext)
	if err != nil {
		return nil, err
	}
	if err := w.advanceStatus(ctx, project.ID); err != nil {
		return nil, err
	}
	return updated, nil
}

// GenerateAllSections fills sections concurrently. The first failure cancels
// the remaining calls; content persisted before it stays persisted.
func (w *workflowService) GenerateAllSections(ctx context.Context, owner, projectID uuid.UUID, onlyMissing bool) (*types.Project, error) {
	project, err := w.authoring.GetProject(ctx, projectID, owner)
	if err != nil {
		return nil, err
	}
	if len(project.Sections) == 0 {
		return nil, apierr.Precondition("project has no sections")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)
	var generated atomic.Int32
	for _, s := range project.Sections {
		if onlyMissing && s.HasContent() {
			continue
		}
		section := s
		g.Go(func() error {
			if _, err := w.generateInto(gctx, project, section, ""); err != nil {
				return err
			}
			generated.Add(1)
			return nil
		})
	}
	genErr := g.Wait()

	if generated.Load() > 0 {
		if err := w.advanceStatus(ctx, project.ID); err != nil && genErr == nil {
			genErr = err
		}
	}
	if genErr != nil {
		w.log.Warn("GenerateAllSections stopped", "project_id", project.ID, "error", genErr)
		return nil, genErr
	}
	w.log.Info("Sections generated", "project_id", project.ID, "count", generated.Load())
	return w.authoring.GetProject(ctx, projectID, owner)
}

func (w *workflowService) RefineSection(ctx context.Context, owner, sectionID uuid.UUID, instruction string) (*types.Refinement, error) {
	section, project, err := w.authoring.GetOwnedSection(ctx, sectionID, owner)
	if err != nil {
		return nil, err
	}
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return nil, apierr.Validation("refinement_prompt is required")
	}
	if !section.HasContent() {
		return nil, apierr.Precondition("section has no content to refine")
	}

	refined, err := w.orchestrator.RefineContent(ctx, section.ContentText(), instruction, project.DocumentType)
	if err != nil {
		return nil, err
	}
	return w.authoring.ApplyRefinement(ctx, section.ID, instruction, refined)
}

func (w *workflowService) generateInto(ctx context.Context, project *types.Project, section *types.Section, additionalContext string) (*types.Section, error) {
	content, err := w.orchestrator.GenerateSectionContent(ctx, project.Topic, section.Title, project.DocumentType, additionalContext)
	if err != nil {
		return nil, err
	}
	return w.authoring.UpdateSectionContent(ctx, section.ID, content)
}

// advanceStatus moves a draft project to generating once content exists and
// to completed once every section has content.
func (w *workflowService) advanceStatus(ctx context.Context, projectID uuid.UUID) error {
	return w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := w.projects.GetByIDs(ctx, tx, []uuid.UUID{projectID})
		if err != nil {
			return apierr.Internal(fmt.Errorf("load project: %w", err))
		}
		if len(found) == 0 {
			return apierr.NotFound("project")
		}
		project := found[0]
		sections, err := w.sections.ListByProjectIDs(ctx, tx, []uuid.UUID{projectID})
		if err != nil {
			return apierr.Internal(fmt.Errorf("list sections: %w", err))
		}
		project.Sections = sections

		next := project.Status
		if next == types.StatusDraft {
			next = types.StatusGenerating
		}
		if next == types.StatusGenerating && project.HasAllContent() {
			next = types.StatusCompleted
		}
		if next == project.Status {
			return nil
		}
		if err := w.projects.UpdateStatus(ctx, tx, projectID, next); err != nil {
			return apierr.Internal(fmt.Errorf("update status: %w", err))
		}
		w.log.Debug("Project status advanced", "project_id", projectID, "from", project.Status, "to", next)
		return nil
	})
}
