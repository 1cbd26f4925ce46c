package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/docforge-backend/internal/data/repos"
	"github.com/yungbote/docforge-backend/internal/platform/logger"
)

type Repos struct {
	User       repos.UserRepo
	Project    repos.ProjectRepo
	Section    repos.SectionRepo
	Refinement repos.RefinementRepo
	Feedback   repos.FeedbackRepo
	Comment    repos.CommentRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:       repos.NewUserRepo(db, log),
		Project:    repos.NewProjectRepo(db, log),
		Section:    repos.NewSectionRepo(db, log),
		Refinement: repos.NewRefinementRepo(db, log),
		Feedback:   repos.NewFeedbackRepo(db, log),
		Comment:    repos.NewCommentRepo(db, log),
	}
}
