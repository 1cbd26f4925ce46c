package authoring

import (
	"context"

	"github.com/google/uuid"
	types "github.com/yungbote/docforge-backend/internal/domain"
	"github.com/yungbote/docforge-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type CommentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, comments []*types.Comment) ([]*types.Comment, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, commentIDs []uuid.UUID) ([]*types.Comment, error)
	ListBySectionID(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID) ([]*types.Comment, error)
	UpdateText(ctx context.Context, tx *gorm.DB, commentID uuid.UUID, text string) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, commentIDs []uuid.UUID) error
	DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type commentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCommentRepo(db *gorm.DB, baseLog *logger.Logger) CommentRepo {
	repoLog := baseLog.With("repo", "CommentRepo")
	return &commentRepo{db: db, log: repoLog}
}

func (cr *commentRepo) Create(ctx context.Context, tx *gorm.DB, comments []*types.Comment) ([]*types.Comment, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if len(comments) == 0 {
		return []*types.Comment{}, nil
	}
	for _, c := range comments {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
	}

	if err := transaction.WithContext(ctx).Create(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (cr *commentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, commentIDs []uuid.UUID) ([]*types.Comment, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.Comment
	if len(commentIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", commentIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *commentRepo) ListBySectionID(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID) ([]*types.Comment, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.Comment
	if err := transaction.WithContext(ctx).
		Where("section_id = ?", sectionID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *commentRepo) UpdateText(ctx context.Context, tx *gorm.DB, commentID uuid.UUID, text string) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Comment{}).
		Where("id = ?", commentID).
		Update("comment_text", text).Error
}

func (cr *commentRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, commentIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(commentIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", commentIDs).
		Delete(&types.Comment{}).Error
}

func (cr *commentRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.Comment{}).Error
}
