package authoring

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/yungbote/docforge-backend/internal/data/repos/testutil"
	types "github.com/yungbote/docforge-backend/internal/domain"
)

func TestFeedbackRepoUpsert(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewFeedbackRepo(db, testutil.Logger(t))

	owner := testutil.SeedUser(t, ctx, tx, "owner@example.com")
	project := testutil.SeedProject(t, ctx, tx, owner.ID, types.DocumentTypeSlideDeck)
	section := testutil.SeedSection(t, ctx, tx, project.ID, 0, nil)

	first, err := repo.Upsert(ctx, tx, &types.Feedback{SectionID: section.ID, UserID: owner.ID, FeedbackType: types.FeedbackLike})
	if err != nil || first == nil {
		t.Fatalf("Upsert: got=%v err=%v", first, err)
	}
	second, err := repo.Upsert(ctx, tx, &types.Feedback{SectionID: section.ID, UserID: owner.ID, FeedbackType: types.FeedbackDislike})
	if err != nil || second == nil {
		t.Fatalf("Upsert (overwrite): got=%v err=%v", second, err)
	}
	if second.ID != first.ID {
		t.Fatalf("Upsert: expected same row, got %s and %s", first.ID, second.ID)
	}
	if second.FeedbackType != types.FeedbackDislike {
		t.Fatalf("Upsert: expected dislike, got %s", second.FeedbackType)
	}

	rows, err := repo.ListBySectionID(ctx, tx, section.ID)
	if err != nil || len(rows) != 1 {
		t.Fatalf("ListBySectionID: err=%v len=%d", err, len(rows))
	}
	if got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{first.ID}); err != nil || len(got) != 1 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(got))
	}
	if got, err := repo.GetBySectionAndUser(ctx, tx, section.ID, uuid.New()); err != nil || got != nil {
		t.Fatalf("GetBySectionAndUser (missing): got=%v err=%v", got, err)
	}

	if err := repo.DeleteByUserID(ctx, tx, owner.ID); err != nil {
		t.Fatalf("DeleteByUserID: %v", err)
	}
	if rows, err := repo.ListBySectionID(ctx, tx, section.ID); err != nil || len(rows) != 0 {
		t.Fatalf("ListBySectionID after delete: err=%v len=%d", err, len(rows))
	}
}
