package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/docforge-backend/internal/data/repos"
	types "github.com/yungbote/docforge-backend/internal/domain"
	"github.com/yungbote/docforge-backend/internal/platform/apierr"
	"github.com/yungbote/docforge-backend/internal/platform/ctxutil"
	"github.com/yungbote/docforge-backend/internal/platform/logger"
)

type UserService interface {
	GetMe(ctx context.Context) (*types.User, error)
	UpdateName(ctx context.Context, fullName string) (*types.User, error)
	DeleteAccount(ctx context.Context) error
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
	projects repos.ProjectRepo
	feedback repos.FeedbackRepo
	comments repos.CommentRepo
}

func NewUserService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	projects repos.ProjectRepo,
	feedback repos.FeedbackRepo,
	comments repos.CommentRepo,
) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		db:       db,
		log:      serviceLog,
		userRepo: userRepo,
		projects: projects,
		feedback: feedback,
		comments: comments,
	}
}

func (us *userService) currentUserID(ctx context.Context) (uuid.UUID, error) {
	userID := ctxutil.UserID(ctx)
	if userID == uuid.Nil {
		us.log.Warn("User id not set in request data")
		return uuid.Nil, apierr.Unauthorized("unauthorized")
	}
	return userID, nil
}

func (us *userService) getUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
	found, err := us.userRepo.GetByIDs(ctx, tx, []uuid.UUID{userID})
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("error fetching user: %w", err))
	}
	if len(found) == 0 || found[0] == nil {
		return nil, apierr.NotFound("user")
	}
	return found[0], nil
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
	userID, err := us.currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	return us.getUser(ctx, nil, userID)
}

func (us *userService) UpdateName(ctx context.Context, fullName string) (*types.User, error) {
	userID, err := us.currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, apierr.Validation("full_name is required")
	}
	if err := us.userRepo.UpdateFullName(ctx, nil, userID, fullName); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("user")
		}
		return nil, apierr.Internal(fmt.Errorf("update name: %w", err))
	}
	return us.getUser(ctx, nil, userID)
}

// DeleteAccount removes the user, every project they own, and the feedback and
// comments they left, in one transaction.
func (us *userService) DeleteAccount(ctx context.Context) error {
	userID, err := us.currentUserID(ctx)
	if err != nil {
		return err
	}
	err = us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := us.getUser(ctx, tx, userID); err != nil {
			return err
		}
		projectIDs, err := us.projects.ListIDsByOwner(ctx, tx, userID)
		if err != nil {
			return apierr.Internal(fmt.Errorf("list projects: %w", err))
		}
		if err := us.projects.DeleteCascade(ctx, tx, projectIDs); err != nil {
			return apierr.Internal(fmt.Errorf("delete projects: %w", err))
		}
		if err := us.feedback.DeleteByUserID(ctx, tx, userID); err != nil {
			return apierr.Internal(fmt.Errorf("delete feedback: %w", err))
		}
		if err := us.comments.DeleteByUserID(ctx, tx, userID); err != nil {
			return apierr.Internal(fmt.Errorf("delete comments: %w", err))
		}
		if err := us.userRepo.Delete(ctx, tx, userID); err != nil {
			return apierr.Internal(fmt.Errorf("delete user: %w", err))
		}
		return nil
	})
	if err != nil {
		return err
	}
	us.log.Info("Account deleted", "user_id", userID)
	return nil
}
