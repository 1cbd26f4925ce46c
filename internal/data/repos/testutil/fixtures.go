package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	types "github.com/yungbote/docforge-backend/internal/domain"
	"gorm.io/gorm"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "pw",
		FullName:     "A B",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedProject(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, docType types.DocumentType) *types.Project {
	tb.Helper()
	p := &types.Project{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         "project",
		DocumentType: docType,
		Topic:        "topic",
		Status:       types.StatusDraft,
	}
	if err := tx.WithContext(ctx).Omit("Sections").Create(p).Error; err != nil {
		tb.Fatalf("seed project: %v", err)
	}
	return p
}

func SeedSection(tb testing.TB, ctx context.Context, tx *gorm.DB, projectID uuid.UUID, position int, content *string) *types.Section {
	tb.Helper()
	s := &types.Section{
		ID:        uuid.New(),
		ProjectID: projectID,
		Title:     "section",
		Position:  position,
		Content:   content,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed section: %v", err)
	}
	return s
}

func PtrString(v string) *string { return &v }
