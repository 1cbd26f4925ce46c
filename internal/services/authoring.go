package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/docforge-backend/internal/data/repos"
	types "github.com/yungbote/docforge-backend/internal/domain"
	"github.com/yungbote/docforge-backend/internal/domain/authoring"
	"github.com/yungbote/docforge-backend/internal/platform/apierr"
	"github.com/yungbote/docforge-backend/internal/platform/logger"
)

type SectionInput struct {
	Title    string  `json:"title"`
	Position int     `json:"position"`
	Content  *string `json:"content"`
}

type CreateProjectInput struct {
	Name         string         `json:"name"`
	DocumentType string         `json:"document_type"`
	Topic        string         `json:"main_topic"`
	Sections     []SectionInput `json:"sections"`
}

// AuthoringService owns the lifecycle of projects and everything beneath them.
// Every lookup that takes an owner is scoped by a single (id, owner) predicate.
type AuthoringService interface {
	CreateProject(ctx context.Context, owner uuid.UUID, in CreateProjectInput) (*types.Project, error)
	ListProjects(ctx context.Context, owner uuid.UUID) ([]*types.Project, error)
	GetProject(ctx context.Context, projectID, owner uuid.UUID) (*types.Project, error)
	DeleteProject(ctx context.Context, projectID, owner uuid.UUID) error
	SetProjectStatus(ctx context.Context, projectID, owner uuid.UUID, status string) (*types.Project, error)

	AddSection(ctx context.Context, projectID, owner uuid.UUID, in SectionInput) (*types.Section, error)
	GetSection(ctx context.Context, sectionID uuid.UUID) (*types.Section, error)
	GetOwnedSection(ctx context.Context, sectionID, owner uuid.UUID) (*types.Section, *types.Project, error)
	UpdateSectionContent(ctx context.Context, sectionID uuid.UUID, content string) (*types.Section, error)

	AddRefinement(ctx context.Context, sectionID uuid.UUID, instruction, result string) (*types.Refinement, error)
	ApplyRefinement(ctx context.Context, sectionID uuid.UUID, instruction, result string) (*types.Refinement, error)
	ListRefinements(ctx context.Context, sectionID, owner uuid.UUID) ([]*types.Refinement, error)

	AddFeedback(ctx context.Context, sectionID, user uuid.UUID, feedbackType string) (*types.Feedback, error)

	AddComment(ctx context.Context, sectionID, user uuid.UUID, text string) (*types.Comment, error)
	ListComments(ctx context.Context, sectionID, user uuid.UUID) ([]*types.Comment, error)
	UpdateComment(ctx context.Context, commentID, user uuid.UUID, text string) (*types.Comment, error)
	DeleteComment(ctx context.Context, commentID, user uuid.UUID) error
}

type authoringService struct {
	db          *gorm.DB
	log         *logger.Logger
	projects    repos.ProjectRepo
	sections    repos.SectionRepo
	refinements repos.RefinementRepo
	feedback    repos.FeedbackRepo
	comments    repos.CommentRepo
}

func NewAuthoringService(
	db *gorm.DB,
	baseLog *logger.Logger,
	projects repos.ProjectRepo,
	sections repos.SectionRepo,
	refinements repos.RefinementRepo,
	feedback repos.FeedbackRepo,
	comments repos.CommentRepo,
) AuthoringService {
	return &authoringService{
		db:          db,
		log:         baseLog.With("service", "AuthoringService"),
		projects:    projects,
		sections:    sections,
		refinements: refinements,
		feedback:    feedback,
		comments:    comments,
	}
}

func (s *authoringService) CreateProject(ctx context.Context, owner uuid.UUID, in CreateProjectInput) (*types.Project, error) {
	if owner == uuid.Nil {
		return nil, apierr.Unauthorized("missing user")
	}
	name := strings.TrimSpace(in.Name)
	topic := strings.TrimSpace(in.Topic)
	if name == "" {
		return nil, apierr.Validation("name is required")
	}
	if topic == "" {
		return nil, apierr.Validation("main_topic is required")
	}
	docType, ok := authoring.ParseDocumentType(in.DocumentType)
	if !ok {
		return nil, apierr.Validation("unsupported document_type %q", in.DocumentType)
	}
	sections := make([]*types.Section, 0, len(in.Sections))
	for i, si := range in.Sections {
		title := strings.TrimSpace(si.Title)
		if title == "" {
			return nil, apierr.Validation("section %d: title is required", i+1)
		}
		sections = append(sections, &types.Section{
			Title:    title,
			Position: si.Position,
			Content:  si.Content,
		})
	}

	project := &types.Project{
		UserID:       owner,
		Name:         name,
		DocumentType: docType,
		Topic:        topic,
		Status:       types.StatusDraft,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.projects.Create(ctx, tx, []*types.Project{project}); err != nil {
			return fmt.Errorf("create project: %w", err)
		}
		for _, sec := range sections {
			sec.ProjectID = project.ID
		}
		if _, err := s.sections.Create(ctx, tx, sections); err != nil {
			return fmt.Errorf("create sections: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Error("CreateProject failed", "owner_id", owner, "error", err)
		return nil, apierr.Internal(err)
	}
	project.Sections = orderedSections(sections)
	s.log.Info("Project created", "project_id", project.ID, "owner_id", owner, "sections", len(sections))
	return project, nil
}

func (s *authoringService) ListProjects(ctx context.Context, owner uuid.UUID) ([]*types.Project, error) {
	projects, err := s.projects.ListByOwner(ctx, nil, owner)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("list projects: %w", err))
	}
	if err := s.attachSections(ctx, nil, projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *authoringService) GetProject(ctx context.Context, projectID, owner uuid.UUID) (*types.Project, error) {
	return s.loadProject(ctx, nil, projectID, owner)
}

// loadProject returns the owner-scoped project with its sections in listing order.
func (s *authoringService) loadProject(ctx context.Context, tx *gorm.DB, projectID, owner uuid.UUID) (*types.Project, error) {
	project, err := s.projects.GetByIDForOwner(ctx, tx, projectID, owner)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("load project: %w", err))
	}
	if project == nil {
		return nil, apierr.NotFound("project")
	}
	if err := s.attachSections(ctx, tx, []*types.Project{project}); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *authoringService) attachSections(ctx context.Context, tx *gorm.DB, projects []*types.Project) error {
	if len(projects) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(projects))
	byID := make(map[uuid.UUID]*types.Project, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
		byID[p.ID] = p
		p.Sections = []*types.Section{}
	}
	sections, err := s.sections.ListByProjectIDs(ctx, tx, ids)
	if err != nil {
		return apierr.Internal(fmt.Errorf("list sections: %w", err))
	}
	for _, sec := range sections {
		if p := byID[sec.ProjectID]; p != nil {
			p.Sections = append(p.Sections, sec)
		}
	}
	return nil
}

func (s *authoringService) DeleteProject(ctx context.Context, projectID, owner uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := s.projects.GetByIDForOwner(ctx, tx, projectID, owner)
		if err != nil {
			return apierr.Internal(fmt.Errorf("load project: %w", err))
		}
		if project == nil {
			return apierr.NotFound("project")
		}
		if err := s.projects.DeleteCascade(ctx, tx, []uuid.UUID{project.ID}); err != nil {
			return apierr.Internal(fmt.Errorf("delete project: %w", err))
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("Project deleted", "project_id", projectID, "owner_id", owner)
	return nil
}

func (s *authoringService) SetProjectStatus(ctx context.Context, projectID, owner uuid.UUID, status string) (*types.Project, error) {
	next, ok := authoring.ParseProjectStatus(status)
	if !ok {
		return nil, apierr.Validation("unsupported status %q", status)
	}
	var out *types.Project
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := s.loadProject(ctx, tx, projectID, owner)
		if err != nil {
			return err
		}
		if !authoring.CanTransition(project.Status, next) {
			return apierr.Precondition("cannot move project from %s to %s", project.Status, next)
		}
		if project.Status != next {
			if err := s.projects.UpdateStatus(ctx, tx, project.ID, next); err != nil {
				return apierr.Internal(fmt.Errorf("update status: %w", err))
			}
			project.Status = next
		}
		out = project
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *authoringService) AddSection(ctx context.Context, projectID, owner uuid.UUID, in SectionInput) (*types.Section, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apierr.Validation("title is required")
	}
	project, err := s.projects.GetByIDForOwner(ctx, nil, projectID, owner)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("load project: %w", err))
	}
	if project == nil {
		return nil, apierr.NotFound("project")
	}
	section := &types.Section{
		ProjectID: project.ID,
		Title:     title,
		Position:  in.Position,
		Content:   in.Content,
	}
	if _, err := s.sections.Create(ctx, nil, []*types.Section{section}); err != nil {
		return nil, apierr.Internal(fmt.Errorf("create section: %w", err))
	}
	return section, nil
}

func (s *authoringService) GetSection(ctx context.Context, sectionID uuid.UUID) (*types.Section, error) {
	return s.getSection(ctx, nil, sectionID)
}

func (s *authoringService) getSection(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID) (*types.Section, error) {
	found, err := s.sections.GetByIDs(ctx, tx, []uuid.UUID{sectionID})
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("load section: %w", err))
	}
	if len(found) == 0 || found[0] == nil {
		return nil, apierr.NotFound("section")
	}
	return found[0], nil
}

// GetOwnedSection distinguishes a missing section (not found) from one whose
// project belongs to someone else (access denied).
func (s *authoringService) GetOwnedSection(ctx context.Context, sectionID, owner uuid.UUID) (*types.Section, *types.Project, error) {
	section, err := s.getSection(ctx, nil, sectionID)
	if err != nil {
		return nil, nil, err
	}
	project, err := s.projects.GetByIDForOwner(ctx, nil, section.ProjectID, owner)
	if err != nil {
		return nil, nil, apierr.Internal(fmt.Errorf("load project: %w", err))
	}
	if project == nil {
		return nil, nil, apierr.AccessDenied()
	}
	return section, project, nil
}

func (s *authoringService) UpdateSectionContent(ctx context.Context, sectionID uuid.UUID, content string) (*types.Section, error) {
	rows, err := s.sections.UpdateContent(ctx, nil, sectionID, content)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("update section content: %w", err))
	}
	if rows == 0 {
		return nil, apierr.NotFound("section")
	}
	return s.getSection(ctx, nil, sectionID)
}

// AddRefinement records a revision without touching the section's content.
func (s *authoringService) AddRefinement(ctx context.Context, sectionID uuid.UUID, instruction, result string) (*types.Refinement, error) {
	if _, err := s.getSection(ctx, nil, sectionID); err != nil {
		return nil, err
	}
	ref := &types.Refinement{SectionID: sectionID, Instruction: instruction, Result: result}
	if _, err := s.refinements.Create(ctx, nil, []*types.Refinement{ref}); err != nil {
		return nil, apierr.Internal(fmt.Errorf("create refinement: %w", err))
	}
	return ref, nil
}

// ApplyRefinement records the refinement and replaces the content atomically.
func (s *authoringService) ApplyRefinement(ctx context.Context, sectionID uuid.UUID, instruction, result string) (*types.Refinement, error) {
	ref := &types.Refinement{SectionID: sectionID, Instruction: instruction, Result: result}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := s.sections.UpdateContent(ctx, tx, sectionID, result)
		if err != nil {
			return apierr.Internal(fmt.Errorf("update section content: %w", err))
		}
		if rows == 0 {
			return apierr.NotFound("section")
		}
		if _, err := s.refinements.Create(ctx, tx, []*types.Refinement{ref}); err != nil {
			return apierr.Internal(fmt.Errorf("create refinement: %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ref, nil
}

func (s *authoringService) ListRefinements(ctx context.Context, sectionID, owner uuid.UUID) ([]*types.Refinement, error) {
	if _, _, err := s.GetOwnedSection(ctx, sectionID, owner); err != nil {
		return nil, err
	}
	refs, err := s.refinements.ListBySectionID(ctx, nil, sectionID)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("list refinements: %w", err))
	}
	return refs, nil
}

// AddFeedback keeps at most one feedback row per (section, user); the latest call wins.
func (s *authoringService) AddFeedback(ctx context.Context, sectionID, user uuid.UUID, feedbackType string) (*types.Feedback, error) {
	ft, ok := authoring.ParseFeedbackType(feedbackType)
	if !ok {
		return nil, apierr.Validation("feedback_type must be like or dislike")
	}
	if _, _, err := s.GetOwnedSection(ctx, sectionID, user); err != nil {
		return nil, err
	}
	fb, err := s.feedback.Upsert(ctx, nil, &types.Feedback{SectionID: sectionID, UserID: user, FeedbackType: ft})
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("upsert feedback: %w", err))
	}
	return fb, nil
}

func (s *authoringService) AddComment(ctx context.Context, sectionID, user uuid.UUID, text string) (*types.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apierr.Validation("comment_text is required")
	}
	if _, _, err := s.GetOwnedSection(ctx, sectionID, user); err != nil {
		return nil, err
	}
	c := &types.Comment{SectionID: sectionID, UserID: user, Text: text}
	if _, err := s.comments.Create(ctx, nil, []*types.Comment{c}); err != nil {
		return nil, apierr.Internal(fmt.Errorf("create comment: %w", err))
	}
	return c, nil
}

func (s *authoringService) ListComments(ctx context.Context, sectionID, user uuid.UUID) ([]*types.Comment, error) {
	if _, _, err := s.GetOwnedSection(ctx, sectionID, user); err != nil {
		return nil, err
	}
	out, err := s.comments.ListBySectionID(ctx, nil, sectionID)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("list comments: %w", err))
	}
	return out, nil
}

func (s *authoringService) UpdateComment(ctx context.Context, commentID, user uuid.UUID, text string) (*types.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apierr.Validation("comment_text is required")
	}
	c, err := s.ownComment(ctx, commentID, user)
	if err != nil {
		return nil, err
	}
	if err := s.comments.UpdateText(ctx, nil, c.ID, text); err != nil {
		return nil, apierr.Internal(fmt.Errorf("update comment: %w", err))
	}
	c.Text = text
	return c, nil
}

func (s *authoringService) DeleteComment(ctx context.Context, commentID, user uuid.UUID) error {
	c, err := s.ownComment(ctx, commentID, user)
	if err != nil {
		return err
	}
	if err := s.comments.DeleteByIDs(ctx, nil, []uuid.UUID{c.ID}); err != nil {
		return apierr.Internal(fmt.Errorf("delete comment: %w", err))
	}
	return nil
}

// ownComment loads a comment written by user; comments by others read as missing.
func (s *authoringService) ownComment(ctx context.Context, commentID, user uuid.UUID) (*types.Comment, error) {
	found, err := s.comments.GetByIDs(ctx, nil, []uuid.UUID{commentID})
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("load comment: %w", err))
	}
	if len(found) == 0 || found[0] == nil || found[0].UserID != user {
		return nil, apierr.NotFound("comment")
	}
	return found[0], nil
}

func orderedSections(in []*types.Section) []*types.Section {
	out := make([]*types.Section, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}
