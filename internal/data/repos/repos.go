package repos

import (
	"github.com/yungbote/docforge-backend/internal/data/repos/authoring"
	"github.com/yungbote/docforge-backend/internal/data/repos/user"
	"github.com/yungbote/docforge-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type UserRepo = user.UserRepo

type ProjectRepo = authoring.ProjectRepo
type SectionRepo = authoring.SectionRepo
type RefinementRepo = authoring.RefinementRepo
type FeedbackRepo = authoring.FeedbackRepo
type CommentRepo = authoring.CommentRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
	return authoring.NewProjectRepo(db, baseLog)
}
func NewSectionRepo(db *gorm.DB, baseLog *logger.Logger) SectionRepo {
	return authoring.NewSectionRepo(db, baseLog)
}
func NewRefinementRepo(db *gorm.DB, baseLog *logger.Logger) RefinementRepo {
	return authoring.NewRefinementRepo(db, baseLog)
}
func NewFeedbackRepo(db *gorm.DB, baseLog *logger.Logger) FeedbackRepo {
	return authoring.NewFeedbackRepo(db, baseLog)
}
func NewCommentRepo(db *gorm.DB, baseLog *logger.Logger) CommentRepo {
	return authoring.NewCommentRepo(db, baseLog)
}
