package authoring

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/yungbote/docforge-backend/internal/data/repos/testutil"
	types "github.com/yungbote/docforge-backend/internal/domain"
)

func TestSectionRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewSectionRepo(db, testutil.Logger(t))

	owner := testutil.SeedUser(t, ctx, tx, "owner@example.com")
	project := testutil.SeedProject(t, ctx, tx, owner.ID, types.DocumentTypeWord)

	created, err := repo.Create(ctx, tx, []*types.Section{
		{ProjectID: project.ID, Title: "Conclusion", Position: 2},
		{ProjectID: project.ID, Title: "Introduction", Position: 0},
		{ProjectID: project.ID, Title: "Analysis", Position: 1},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for _, s := range created {
		if s.ID == uuid.Nil {
			t.Fatalf("Create: id not assigned")
		}
		if s.Content != nil {
			t.Fatalf("Create: content must start absent")
		}
	}

	rows, err := repo.ListByProjectIDs(ctx, tx, []uuid.UUID{project.ID})
	if err != nil {
		t.Fatalf("ListByProjectIDs: %v", err)
	}
	want := []string{"Introduction", "Analysis", "Conclusion"}
	if len(rows) != len(want) {
		t.Fatalf("ListByProjectIDs: expected %d rows, got %d", len(want), len(rows))
	}
	for i, title := range want {
		if rows[i].Title != title {
			t.Fatalf("ListByProjectIDs[%d]: expected %q, got %q", i, title, rows[i].Title)
		}
	}

	n, err := repo.UpdateContent(ctx, tx, rows[0].ID, "Hello")
	if err != nil || n != 1 {
		t.Fatalf("UpdateContent: n=%d err=%v", n, err)
	}
	if n, err := repo.UpdateContent(ctx, tx, uuid.New(), "x"); err != nil || n != 0 {
		t.Fatalf("UpdateContent (missing): n=%d err=%v", n, err)
	}

	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{rows[0].ID})
	if err != nil || len(got) != 1 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(got))
	}
	if got[0].ContentText() != "Hello" {
		t.Fatalf("GetByIDs: expected content Hello, got %q", got[0].ContentText())
	}
}

func TestRefinementRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewRefinementRepo(db, testutil.Logger(t))

	owner := testutil.SeedUser(t, ctx, tx, "owner@example.com")
	project := testutil.SeedProject(t, ctx, tx, owner.ID, types.DocumentTypeWord)
	section := testutil.SeedSection(t, ctx, tx, project.ID, 0, testutil.PtrString("v1"))

	first, err := repo.Create(ctx, tx, []*types.Refinement{{SectionID: section.ID, Instruction: "shorter", Result: "v2"}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(ctx, tx, []*types.Refinement{{SectionID: section.ID, Instruction: "formal", Result: "v3"}}); err != nil {
		t.Fatalf("Create second: %v", err)
	}

	rows, err := repo.ListBySectionID(ctx, tx, section.ID)
	if err != nil || len(rows) != 2 {
		t.Fatalf("ListBySectionID: err=%v len=%d", err, len(rows))
	}
	if got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{first[0].ID}); err != nil || len(got) != 1 || got[0].Result != "v2" {
		t.Fatalf("GetByIDs: err=%v got=%v", err, got)
	}
}
