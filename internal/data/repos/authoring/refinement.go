package authoring

import (
	"context"

	"github.com/google/uuid"
	types "github.com/yungbote/docforge-backend/internal/domain"
	"github.com/yungbote/docforge-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type RefinementRepo interface {
	Create(ctx context.Context, tx *gorm.DB, refinements []*types.Refinement) ([]*types.Refinement, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, refinementIDs []uuid.UUID) ([]*types.Refinement, error)
	ListBySectionID(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID) ([]*types.Refinement, error)
}

type refinementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRefinementRepo(db *gorm.DB, baseLog *logger.Logger) RefinementRepo {
	repoLog := baseLog.With("repo", "RefinementRepo")
	return &refinementRepo{db: db, log: repoLog}
}

func (rr *refinementRepo) Create(ctx context.Context, tx *gorm.DB, refinements []*types.Refinement) ([]*types.Refinement, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if len(refinements) == 0 {
		return []*types.Refinement{}, nil
	}
	for _, r := range refinements {
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
	}

	if err := transaction.WithContext(ctx).Create(&refinements).Error; err != nil {
		return nil, err
	}
	return refinements, nil
}

func (rr *refinementRepo) GetByIDs(ctx context.Context, tx *gorm.DB, refinementIDs []uuid.UUID) ([]*types.Refinement, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Refinement
	if len(refinementIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", refinementIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *refinementRepo) ListBySectionID(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID) ([]*types.Refinement, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Refinement
	if err := transaction.WithContext(ctx).
		Where("section_id = ?", sectionID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
