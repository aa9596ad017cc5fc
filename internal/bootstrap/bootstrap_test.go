package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/coursemap/internal/app/models/dto"
	"github.com/yigit/coursemap/internal/config"
	"github.com/yigit/coursemap/internal/db/dbtest"
	pkgAuth "github.com/yigit/coursemap/internal/pkg/auth"
	"github.com/yigit/coursemap/internal/seed"
	"golang.org/x/crypto/bcrypt"
)

const catalogSource = `[
  {"id":"A","name":"Intro","cycle":1,"credits":4,"prerequisites":[]},
  {"id":"B","name":"Adv","cycle":2,"credits":4,"prerequisites":["A"]}
]`

type testApp struct {
	router *gin.Engine
	deps   *Dependencies
}

func newTestApp(t *testing.T, seedSource string) *testApp {
	t.Helper()
	pkgAuth.BcryptCost = bcrypt.MinCost
	t.Cleanup(func() { pkgAuth.BcryptCost = 12 })

	cfg := config.Defaults()
	cfg.JWT.Secret = "test-secret"
	cfg.Seed.File = filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(cfg.Seed.File, []byte(seedSource), 0o600))

	deps := BuildDependencies(cfg, dbtest.Open(t), nil, zerolog.Nop())
	RunSeed(context.Background(), cfg, deps)

	return &testApp{router: SetupRouter(cfg, deps, zerolog.Nop()), deps: deps}
}

func (a *testApp) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) postJSON(t *testing.T, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return a.do(t, req)
}

func (a *testApp) get(t *testing.T, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return a.do(t, req)
}

func (a *testApp) login(t *testing.T, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"username": {email}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(t, req)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func register(t *testing.T, a *testApp, email string) string {
	t.Helper()
	rec := a.postJSON(t, "/register", `{"email":"`+email+`","password":"secret123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token := decode[dto.TokenResponse](t, rec)
	assert.Equal(t, "bearer", token.TokenType)
	require.NotEmpty(t, token.AccessToken)
	return token.AccessToken
}

func TestRouter_Graph(t *testing.T) {
	app := newTestApp(t, catalogSource)

	rec := app.get(t, "/graph", "")
	require.Equal(t, http.StatusOK, rec.Code)
	graph := decode[dto.GraphResponse](t, rec)

	require.Len(t, graph.Nodes, 2)
	assert.Equal(t, "A", graph.Nodes[0].ID)
	assert.Equal(t, dto.Position{X: 250, Y: 0}, graph.Nodes[0].Position)
	assert.Equal(t, "B", graph.Nodes[1].ID)
	assert.Equal(t, dto.Position{X: 500, Y: 0}, graph.Nodes[1].Position)
	assert.Equal(t, "B\nAdv", graph.Nodes[1].Data.Label)

	require.Len(t, graph.Edges, 1)
	assert.Equal(t, dto.EdgeResponse{ID: "eA-B", Source: "A", Target: "B", Animated: true}, graph.Edges[0])
}

func TestRouter_CourseDetail(t *testing.T) {
	app := newTestApp(t, catalogSource)

	rec := app.get(t, "/courses/A", "")
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[dto.CourseDetailResponse](t, rec)
	assert.Equal(t, "Intro", detail.Name)
	assert.Empty(t, detail.Requirements)
	require.Len(t, detail.RequiredFor, 1)
	assert.Equal(t, "B", detail.RequiredFor[0].ID)

	rec = app.get(t, "/courses/ZZZ", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, decode[dto.ErrorResponse](t, rec).Detail)
}

func TestRouter_RegisterLoginMe(t *testing.T) {
	app := newTestApp(t, catalogSource)

	token := register(t, app, "ana@uni.edu")

	rec := app.postJSON(t, "/register", `{"email":"ana@uni.edu","password":"other123"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already registered", decode[dto.ErrorResponse](t, rec).Detail)

	rec = app.login(t, "ana@uni.edu", "secret123")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, decode[dto.TokenResponse](t, rec).AccessToken)

	rec = app.login(t, "ana@uni.edu", "wrong-pass")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	assert.Equal(t, "Incorrect email or password", decode[dto.ErrorResponse](t, rec).Detail)

	rec = app.get(t, "/me", token)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[dto.UserResponse](t, rec)
	assert.Equal(t, "ana@uni.edu", me.Email)
	assert.NotEmpty(t, me.ID)
}

func TestRouter_RejectsMissingOrBadToken(t *testing.T) {
	app := newTestApp(t, catalogSource)

	for _, token := range []string{"", "not-a-jwt"} {
		rec := app.get(t, "/me", token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	}
}

func TestRouter_Progress(t *testing.T) {
	app := newTestApp(t, catalogSource)
	token := register(t, app, "ana@uni.edu")

	rec := app.postJSON(t, "/sync-progress",
		`{"progress":[{"course_id":"A","status":"completed"},{"course_id":"B","status":"pending"}]}`, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "success", decode[dto.StatusResponse](t, rec).Status)

	rec = app.postJSON(t, "/sync-progress", `{"progress":[{"course_id":"B","status":"in-progress"}]}`, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = app.get(t, "/progress", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []dto.ProgressResponse{
		{CourseID: "A", Status: "completed"},
		{CourseID: "B", Status: "in-progress"},
	}, decode[[]dto.ProgressResponse](t, rec))

	rec = app.postJSON(t, "/sync-progress", `{"progress":[{"course_id":"A","status":"lost"}]}`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.postJSON(t, "/sync-progress", `{"progress":[{"course_id":"ZZZ","status":"completed"}]}`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.get(t, "/progress", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_ProgressIsPerUser(t *testing.T) {
	app := newTestApp(t, catalogSource)
	ana := register(t, app, "ana@uni.edu")
	bob := register(t, app, "bob@uni.edu")

	rec := app.postJSON(t, "/sync-progress", `{"progress":[{"course_id":"A","status":"completed"}]}`, ana)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.get(t, "/progress", bob)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]dto.ProgressResponse](t, rec))
}

func TestRouter_HealthAndReady(t *testing.T) {
	app := newTestApp(t, catalogSource)

	rec := app.get(t, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	health := decode[dto.HealthResponse](t, rec)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, string(seed.StatusSeeded), health.Seed.Status)
	assert.Equal(t, 2, health.Seed.CoursesWritten)

	rec = app.get(t, "/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_ReadyFailsWhenSeedFails(t *testing.T) {
	app := newTestApp(t, `{not json`)

	rec := app.get(t, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	health := decode[dto.HealthResponse](t, rec)
	assert.Equal(t, string(seed.StatusFailed), health.Seed.Status)
	assert.NotEmpty(t, health.Seed.Error)

	rec = app.get(t, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_ReadyFailsForEmptySeedSource(t *testing.T) {
	for _, source := range []string{"null", "[]"} {
		t.Run(source, func(t *testing.T) {
			app := newTestApp(t, source)

			rec := app.get(t, "/ready", "")
			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
			health := decode[dto.HealthResponse](t, rec)
			assert.Equal(t, string(seed.StatusFailed), health.Seed.Status)
			assert.Equal(t, seed.ErrEmptySource.Error(), health.Seed.Error)
		})
	}
}

func TestRunSeed_Disabled(t *testing.T) {
	cfg := config.Defaults()
	cfg.JWT.Secret = "test-secret"
	cfg.Seed.Enabled = false

	deps := BuildDependencies(cfg, dbtest.Open(t), nil, zerolog.Nop())
	result := RunSeed(context.Background(), cfg, deps)
	assert.Equal(t, seed.StatusSkipped, result.Status)
	assert.True(t, deps.SeedTracker.Ready())
}
