package authoring

import (
	"context"
	"errors"

	"github.com/google/uuid"
	types "github.com/yungbote/docforge-backend/internal/domain"
	"github.com/yungbote/docforge-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type ProjectRepo interface {
	Create(ctx context.Context, tx *gorm.DB, projects []*types.Project) ([]*types.Project, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) ([]*types.Project, error)
	// GetByIDForOwner returns (nil, nil) when no project matches both id and owner.
	GetByIDForOwner(ctx context.Context, tx *gorm.DB, projectID, ownerID uuid.UUID) (*types.Project, error)
	ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.Project, error)
	ListIDsByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]uuid.UUID, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, status types.ProjectStatus) error
	DeleteCascade(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) error
}

type projectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
	repoLog := baseLog.With("repo", "ProjectRepo")
	return &projectRepo{db: db, log: repoLog}
}

func (pr *projectRepo) Create(ctx context.Context, tx *gorm.DB, projects []*types.Project) ([]*types.Project, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(projects) == 0 {
		return []*types.Project{}, nil
	}
	for _, p := range projects {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		if p.Status == "" {
			p.Status = types.StatusDraft
		}
	}

	// Sections are created by SectionRepo so their ids and order stay under our control.
	if err := transaction.WithContext(ctx).Omit("Sections").Create(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (pr *projectRepo) GetByIDs(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) ([]*types.Project, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Project
	if len(projectIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", projectIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *projectRepo) GetByIDForOwner(ctx context.Context, tx *gorm.DB, projectID, ownerID uuid.UUID) (*types.Project, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var project types.Project
	err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", projectID, ownerID).
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (pr *projectRepo) ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.Project, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Project
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *projectRepo) ListIDsByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.Project{}).
		Where("user_id = ?", ownerID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (pr *projectRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, status types.ProjectStatus) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Project{}).
		Where("id = ?", projectID).
		Update("status", status).Error
}

// DeleteCascade removes the projects and everything beneath them, children first.
// Callers wrap it in a transaction so a partial cascade is never visible.
func (pr *projectRepo) DeleteCascade(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(projectIDs) == 0 {
		return nil
	}
	t := transaction.WithContext(ctx)

	sectionIDs := t.Model(&types.Section{}).Select("id").Where("project_id IN ?", projectIDs)
	if err := t.Where("section_id IN (?)", sectionIDs).Delete(&types.Comment{}).Error; err != nil {
		return err
	}
	if err := t.Where("section_id IN (?)", sectionIDs).Delete(&types.Feedback{}).Error; err != nil {
		return err
	}
	if err := t.Where("section_id IN (?)", sectionIDs).Delete(&types.Refinement{}).Error; err != nil {
		return err
	}
	if err := t.Where("project_id IN ?", projectIDs).Delete(&types.Section{}).Error; err != nil {
		return err
	}
	return t.Where("id IN ?", projectIDs).Delete(&types.Project{}).Error
}
