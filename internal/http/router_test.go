package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/docforge-backend/internal/data/repos"
	"github.com/yungbote/docforge-backend/internal/data/repos/testutil"
	"github.com/yungbote/docforge-backend/internal/generation"
	httpH "github.com/yungbote/docforge-backend/internal/http/handlers"
	httpMW "github.com/yungbote/docforge-backend/internal/http/middleware"
	"github.com/yungbote/docforge-backend/internal/observability"
	"github.com/yungbote/docforge-backend/internal/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.DB(t)
	log := testutil.Logger(t)

	userRepo := repos.NewUserRepo(db, log)
	projectRepo := repos.NewProjectRepo(db, log)
	sectionRepo := repos.NewSectionRepo(db, log)
	refinementRepo := repos.NewRefinementRepo(db, log)
	feedbackRepo := repos.NewFeedbackRepo(db, log)
	commentRepo := repos.NewCommentRepo(db, log)

	gen := generation.GeneratorFunc(func(_ context.Context, prompt string) (string, error) {
		if strings.Contains(prompt, "Refinement Request") {
			return "Refined text.", nil
		}
		return "Generated paragraph.", nil
	})
	metrics := observability.NewMetrics()
	orch := generation.NewOrchestrator(gen, log, generation.WithMetrics(metrics))

	authSvc := services.NewAuthService(db, log, userRepo, "router-secret", time.Hour)
	userSvc := services.NewUserService(db, log, userRepo, projectRepo, feedbackRepo, commentRepo)
	authoring := services.NewAuthoringService(db, log, projectRepo, sectionRepo, refinementRepo, feedbackRepo, commentRepo)
	workflow := services.NewWorkflowService(db, log, authoring, orch, projectRepo, sectionRepo, 2)
	exports := services.NewExportService(log, authoring, metrics)

	return NewRouter(RouterConfig{
		Log:            log,
		Metrics:        metrics,
		AuthMiddleware: httpMW.NewAuthMiddleware(log, authSvc),
		AuthHandler:    httpH.NewAuthHandler(authSvc),
		UserHandler:    httpH.NewUserHandler(userSvc),
		ProjectHandler: httpH.NewProjectHandler(authoring),
		SectionHandler: httpH.NewSectionHandler(authoring),
		AIHandler:      httpH.NewAIHandler(workflow),
		ExportHandler:  httpH.NewExportHandler(exports),
		HealthHandler:  httpH.NewHealthHandler(db),
	})
}

func do(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func login(t *testing.T, r http.Handler, email string) string {
	t.Helper()
	rec := do(t, r, http.MethodPost, "/api/auth/register", "", gin.H{"email": email, "password": "long-enough"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = do(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": "long-enough"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token, _ := decode(t, rec)["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealthAndMetricsArePublic(t *testing.T) {
	r := newTestRouter(t)
	rec := do(t, r, http.MethodGet, "/healthcheck", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", decode(t, rec)["database"])
	require.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/metrics", "", nil).Code)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	r := newTestRouter(t)
	rec := do(t, r, http.MethodGet, "/api/projects", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	envelope, ok := decode(t, rec)["error"].(map[string]any)
	require.True(t, ok)
	require.NotEmpty(t, envelope["message"])
}

func TestDocumentLifecycleOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r, "author@example.com")

	rec := do(t, r, http.MethodPost, "/api/projects", token, gin.H{
		"name":          "Launch Plan",
		"document_type": "docx",
		"main_topic":    "Product launch",
		"sections": []gin.H{
			{"title": "Overview", "position": 1},
			{"title": "Timeline", "position": 2},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	project := decode(t, rec)["project"].(map[string]any)
	projectID := project["id"].(string)
	require.Equal(t, "draft", project["status"])

	rec = do(t, r, http.MethodPost, "/api/ai/generate-all", token, gin.H{"project_id": projectID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	project = decode(t, rec)["project"].(map[string]any)
	require.Equal(t, "completed", project["status"])
	sections := project["sections"].([]any)
	require.Len(t, sections, 2)
	first := sections[0].(map[string]any)
	require.Equal(t, "Overview", first["title"])
	require.Equal(t, "Generated paragraph.", first["content"])
	sectionID := first["id"].(string)

	rec = do(t, r, http.MethodPost, "/api/ai/refine-content", token, gin.H{
		"section_id":             sectionID,
		"refinement_instruction": "Make it shorter",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "Refined text.", decode(t, rec)["refined_content"])

	rec = do(t, r, http.MethodGet, "/api/sections/"+sectionID+"/refinements", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, r, http.MethodGet, "/api/export/"+projectID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, `attachment; filename="Launch_Plan.docx"`, rec.Header().Get("Content-Disposition"))
	require.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

func TestOtherUsersCannotSeeProjects(t *testing.T) {
	r := newTestRouter(t)
	owner := login(t, r, "owner@example.com")
	intruder := login(t, r, "intruder@example.com")

	rec := do(t, r, http.MethodPost, "/api/projects", owner, gin.H{
		"name":          "Private",
		"document_type": "pptx",
		"main_topic":    "Secrets",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	projectID := decode(t, rec)["project"].(map[string]any)["id"].(string)

	require.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/projects/"+projectID, intruder, nil).Code)
	require.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/export/"+projectID, intruder, nil).Code)
	require.Equal(t, http.StatusNotFound, do(t, r, http.MethodDelete, "/api/projects/"+projectID, intruder, nil).Code)
	require.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/projects/not-a-uuid", owner, nil).Code)
}

func TestBadRequestBodies(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r, "author@example.com")

	rec := do(t, r, http.MethodPost, "/api/ai/generate-all", token, gin.H{"project_id": "nope"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, r, http.MethodPost, "/api/projects", token, gin.H{
		"name":          "X",
		"document_type": "pdf",
		"main_topic":    "Y",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
