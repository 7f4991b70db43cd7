package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/analytics"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/logger"
	"github.com/Zachkp/portfolio/internal/metrics"
	"github.com/Zachkp/portfolio/internal/notion"
	"github.com/Zachkp/portfolio/internal/server"
)

type fakeContent struct {
	projects []content.Project
	posts    map[string]*content.BlogPost
	about    *notion.Page
}

func (f *fakeContent) ListProjects(context.Context) []content.Project { return f.projects }

func (f *fakeContent) ListBlogPosts(context.Context) []content.BlogPost { return []content.BlogPost{} }

func (f *fakeContent) ListCertificates(context.Context) []content.Certificate {
	return []content.Certificate{}
}

func (f *fakeContent) About(context.Context) *notion.Page { return f.about }

func (f *fakeContent) BlogPost(_ context.Context, id string) *content.BlogPost { return f.posts[id] }

type fixedStats struct{}

func (fixedStats) Stats(context.Context) (*analytics.Stats, error) {
	return &analytics.Stats{TotalVisits: 2}, nil
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func newRouter(fc *fakeContent, adminToken string) *gin.Engine {
	return server.NewRouter(server.Deps{
		Content: fc,
		Contact: func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "ok"})
		},
		Metrics:    metrics.New(),
		Stats:      fixedStats{},
		AdminToken: adminToken,
		Logger:     logger.NewNop(),
	})
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	w := get(newRouter(&fakeContent{}, ""), "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(server.RequestIDHeader))
}

func TestRouter_RequestIDEchoed(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(server.RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	newRouter(&fakeContent{}, "").ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(server.RequestIDHeader))
}

func TestRouter_Projects(t *testing.T) {
	t.Parallel()

	fc := &fakeContent{projects: []content.Project{
		{Page: content.Page{ID: "p1", Title: "Site", Tags: []string{}, Category: "General"}, Technologies: []string{"Go"}},
	}}
	w := get(newRouter(fc, ""), "/api/projects")

	require.Equal(t, http.StatusOK, w.Code)
	var got []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0]["id"])
	assert.Equal(t, "Site", got[0]["title"])
	assert.Equal(t, []any{"Go"}, got[0]["technologies"])
}

func TestRouter_EmptyListsAreArrays(t *testing.T) {
	t.Parallel()

	r := newRouter(&fakeContent{projects: []content.Project{}}, "")
	for _, path := range []string{"/api/projects", "/api/blog", "/api/certificates"} {
		w := get(r, path)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, "[]", w.Body.String(), path)
	}
}

func TestRouter_BlogPost(t *testing.T) {
	t.Parallel()

	fc := &fakeContent{posts: map[string]*content.BlogPost{
		"post-1": {Page: content.Page{ID: "post-1", Title: "Hello"}, Content: "A\n\nB"},
	}}
	r := newRouter(fc, "")

	w := get(r, "/api/blog/post-1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"content":"A\n\nB"`)

	w = get(r, "/api/blog/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Post not found"}`, w.Body.String())
}

func TestRouter_About(t *testing.T) {
	t.Parallel()

	w := get(newRouter(&fakeContent{}, ""), "/api/about")
	assert.Equal(t, http.StatusNotFound, w.Code)

	fc := &fakeContent{about: &notion.Page{Object: "page", ID: "about-1"}}
	w = get(newRouter(fc, ""), "/api/about")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"about-1"`)
}

func TestRouter_Contact(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader("email=a%40b.co"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	newRouter(&fakeContent{}, "").ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()

	r := newRouter(&fakeContent{}, "")
	get(r, "/health")

	w := get(r, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `portfolio_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestRouter_AdminStats(t *testing.T) {
	t.Parallel()

	// Without a token the route does not exist.
	assert.Equal(t, http.StatusNotFound, get(newRouter(&fakeContent{}, ""), "/api/admin/stats").Code)

	r := newRouter(&fakeContent{}, "secret")
	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/admin/stats").Code)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_visits":2`)
}

func TestRouter_RecoversPanics(t *testing.T) {
	t.Parallel()

	r := server.NewRouter(server.Deps{
		Contact: func(*gin.Context) { panic("boom") },
		Logger:  logger.NewNop(),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	s := server.New(0, http.NotFoundHandler(), logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, s.Run(ctx))
}
