package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creative-radar/cmd/api/services"
	"creative-radar/config"
	"creative-radar/db"
	"creative-radar/eventbus"
	"creative-radar/models"
	"creative-radar/pipeline"
)

type nopRunner struct{}

func (nopRunner) Run(ctx context.Context, req pipeline.Request) (*pipeline.Response, error) {
	return &pipeline.Response{SearchID: "x", Results: []models.ScoredResult{}}, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	cfg.Storage.SQLitePath = ":memory:"
	store, err := db.Open(context.Background(), cfg.Storage)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return New(Deps{
		Search:      services.NewSearchService(nopRunner{}, store, nil, eventbus.Topic{}),
		Projects:    services.NewProjectService(store),
		Templates:   services.NewTemplateService(store),
		CORSOrigins: []string{"http://localhost:5173"},
	})
}

func TestRoutes(t *testing.T) {
	r := newTestRouter(t)

	testCases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/api/v1/health", http.StatusOK},
		{http.MethodGet, "/api/v1/search", http.StatusOK},
		{http.MethodGet, "/api/v1/search/unknown", http.StatusNotFound},
		{http.MethodGet, "/api/v1/projects", http.StatusOK},
		{http.MethodGet, "/api/v1/templates", http.StatusOK},
		{http.MethodDelete, "/api/v1/templates/unknown", http.StatusNotFound},
		{http.MethodGet, "/api/v1/nope", http.StatusNotFound},
	}

	for _, testCase := range testCases {
		t.Run(testCase.method+" "+testCase.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(testCase.method, testCase.path, nil)
			r.ServeHTTP(w, req)
			assert.Equal(t, testCase.want, w.Code, w.Body.String())
		})
	}
}

func TestSeededTemplatesServed(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/templates", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var templates []models.Template
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &templates))
	assert.Len(t, templates, 7)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/search", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
