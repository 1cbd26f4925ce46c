package authoring

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	types "github.com/yungbote/docforge-backend/internal/domain"
	"github.com/yungbote/docforge-backend/internal/platform/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FeedbackRepo interface {
	// Upsert relies on the (section_id, user_id) unique index: a second call for
	// the same pair overwrites feedback_type instead of inserting a row.
	Upsert(ctx context.Context, tx *gorm.DB, feedback *types.Feedback) (*types.Feedback, error)
	GetBySectionAndUser(ctx context.Context, tx *gorm.DB, sectionID, userID uuid.UUID) (*types.Feedback, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, feedbackIDs []uuid.UUID) ([]*types.Feedback, error)
	ListBySectionID(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID) ([]*types.Feedback, error)
	DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type feedbackRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFeedbackRepo(db *gorm.DB, baseLog *logger.Logger) FeedbackRepo {
	repoLog := baseLog.With("repo", "FeedbackRepo")
	return &feedbackRepo{db: db, log: repoLog}
}

func (fr *feedbackRepo) Upsert(ctx context.Context, tx *gorm.DB, feedback *types.Feedback) (*types.Feedback, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	if feedback == nil {
		return nil, errors.New("feedback is nil")
	}
	if feedback.ID == uuid.Nil {
		feedback.ID = uuid.New()
	}
	now := time.Now().UTC()
	feedback.CreatedAt = now
	feedback.UpdatedAt = now

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "section_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"feedback_type", "updated_at"}),
		}).
		Create(feedback).Error; err != nil {
		return nil, err
	}

	return fr.GetBySectionAndUser(ctx, transaction, feedback.SectionID, feedback.UserID)
}

func (fr *feedbackRepo) GetBySectionAndUser(ctx context.Context, tx *gorm.DB, sectionID, userID uuid.UUID) (*types.Feedback, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var fb types.Feedback
	err := transaction.WithContext(ctx).
		Where("section_id = ? AND user_id = ?", sectionID, userID).
		First(&fb).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fb, nil
}

func (fr *feedbackRepo) GetByIDs(ctx context.Context, tx *gorm.DB, feedbackIDs []uuid.UUID) ([]*types.Feedback, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var results []*types.Feedback
	if len(feedbackIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", feedbackIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (fr *feedbackRepo) ListBySectionID(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID) ([]*types.Feedback, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var results []*types.Feedback
	if err := transaction.WithContext(ctx).
		Where("section_id = ?", sectionID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (fr *feedbackRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	return transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.Feedback{}).Error
}
