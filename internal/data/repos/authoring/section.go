package authoring

import (
	"context"

	"github.com/google/uuid"
	types "github.com/yungbote/docforge-backend/internal/domain"
	"github.com/yungbote/docforge-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type SectionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sections []*types.Section) ([]*types.Section, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, sectionIDs []uuid.UUID) ([]*types.Section, error)
	// ListByProjectIDs returns sections in document order: position, then creation order.
	ListByProjectIDs(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) ([]*types.Section, error)
	UpdateContent(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID, content string) (int64, error)
}

type sectionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSectionRepo(db *gorm.DB, baseLog *logger.Logger) SectionRepo {
	repoLog := baseLog.With("repo", "SectionRepo")
	return &sectionRepo{db: db, log: repoLog}
}

func (sr *sectionRepo) Create(ctx context.Context, tx *gorm.DB, sections []*types.Section) ([]*types.Section, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if len(sections) == 0 {
		return []*types.Section{}, nil
	}
	for _, s := range sections {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
	}

	if err := transaction.WithContext(ctx).Create(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

func (sr *sectionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, sectionIDs []uuid.UUID) ([]*types.Section, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.Section
	if len(sectionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", sectionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *sectionRepo) ListByProjectIDs(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) ([]*types.Section, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.Section
	if len(projectIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("project_id IN ?", projectIDs).
		Order("position ASC, created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *sectionRepo) UpdateContent(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID, content string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Section{}).
		Where("id = ?", sectionID).
		Update("content", content)
	return res.RowsAffected, res.Error
}
