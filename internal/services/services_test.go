package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/docforge-backend/internal/data/repos"
	"github.com/yungbote/docforge-backend/internal/data/repos/testutil"
	types "github.com/yungbote/docforge-backend/internal/domain"
	"github.com/yungbote/docforge-backend/internal/generation"
	"github.com/yungbote/docforge-backend/internal/observability"
	"github.com/yungbote/docforge-backend/internal/platform/apierr"
	"github.com/yungbote/docforge-backend/internal/platform/ctxutil"
)

// scriptedGenerator answers prompts through reply and counts calls.
type scriptedGenerator struct {
	mu    sync.Mutex
	calls int
	reply func(prompt string) (string, error)
}

func (g *scriptedGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
	return g.reply(prompt)
}

func (g *scriptedGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

type fixture struct {
	db        *gorm.DB
	gen       *scriptedGenerator
	authoring AuthoringService
	workflow  WorkflowService
	export    ExportService
	auth      AuthService
	users     UserService
	metrics   *observability.Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	userRepo := repos.NewUserRepo(db, log)
	projectRepo := repos.NewProjectRepo(db, log)
	sectionRepo := repos.NewSectionRepo(db, log)
	refinementRepo := repos.NewRefinementRepo(db, log)
	feedbackRepo := repos.NewFeedbackRepo(db, log)
	commentRepo := repos.NewCommentRepo(db, log)

	gen := &scriptedGenerator{reply: func(string) (string, error) { return "Generated text.", nil }}
	metrics := observability.NewMetrics()
	orch := generation.NewOrchestrator(gen, log, generation.WithMetrics(metrics))

	authoringSvc := NewAuthoringService(db, log, projectRepo, sectionRepo, refinementRepo, feedbackRepo, commentRepo)
	return &fixture{
		db:        db,
		gen:       gen,
		authoring: authoringSvc,
		workflow:  NewWorkflowService(db, log, authoringSvc, orch, projectRepo, sectionRepo, 2),
		export:    NewExportService(log, authoringSvc, metrics),
		auth:      NewAuthService(db, log, userRepo, "test-secret", time.Hour),
		users:     NewUserService(db, log, userRepo, projectRepo, feedbackRepo, commentRepo),
		metrics:   metrics,
	}
}

func (f *fixture) user(t *testing.T, email string) *types.User {
	t.Helper()
	return testutil.SeedUser(t, context.Background(), f.db, email)
}

func (f *fixture) project(t *testing.T, owner *types.User, docType string, sections ...SectionInput) *types.Project {
	t.Helper()
	p, err := f.authoring.CreateProject(context.Background(), owner.ID, CreateProjectInput{
		Name:         "Q3 Report",
		DocumentType: docType,
		Topic:        "Quarterly sales",
		Sections:     sections,
	})
	require.NoError(t, err)
	return p
}

func asUser(u *types.User) context.Context {
	return ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: u.ID})
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, apierr.Is(err, code), "expected %s, got %v", code, err)
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func titles(sections []*types.Section) []string {
	out := make([]string, 0, len(sections))
	for _, s := range sections {
		out = append(out, s.Title)
	}
	return out
}
