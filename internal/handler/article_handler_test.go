package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"github.com/cohen2you/wiim-project-v2-sub002/internal/model"
)

type fakeGenerator struct {
	result  *model.GenerationResult
	rewrite *model.RewriteResult
	err     error
	lastJob model.GenerationJob
}

func (f *fakeGenerator) Generate(job model.GenerationJob) (*model.GenerationResult, error) {
	f.lastJob = job
	return f.result, f.err
}

func (f *fakeGenerator) Rewrite(original, instructions string) (*model.RewriteResult, error) {
	return f.rewrite, f.err
}

type fakeEnqueuer struct {
	err     error
	lastJob model.GenerationJob
}

func (f *fakeEnqueuer) Enqueue(job model.GenerationJob) error {
	f.lastJob = job
	return f.err
}

func newTestRouter(g ArticleGenerator, q JobEnqueuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewArticleHandler(g, q)
	r.POST("/articles/generate", h.GenerateArticle)
	r.POST("/articles/generate/async", h.EnqueueArticle)
	r.POST("/articles/rewrite", h.RewriteArticle)
	r.GET("/health", h.GetHealth)
	return r
}

func TestGenerateArticle_OK(t *testing.T) {
	g := &fakeGenerator{
		result: &model.GenerationResult{
			Headline:       "Acme Rallies On Upgrade",
			Body:           "Body text here.",
			Ticker:         "ACME",
			PriceTarget:    150,
			PublicationDay: "Monday",
			ModelUsed:      "gpt-4o",
		},
	}
	r := newTestRouter(g, nil)

	w := httptest.NewRecorder()
	body := `{"source_text":"(ACME, Buy, $150 PT) Acme beat.","ticker":"ACME"}`
	req := httptest.NewRequest("POST", "/articles/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res GenerateResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "Acme Rallies On Upgrade", res.Headline)
	assert.Equal(t, "ACME", res.Ticker)
	assert.Equal(t, 150.0, res.PriceTarget)
	assert.Equal(t, "ACME", g.lastJob.Ticker)
}

func TestGenerateArticle_MissingSourceText(t *testing.T) {
	r := newTestRouter(&fakeGenerator{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/articles/generate", strings.NewReader(`{"ticker":"ACME"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateArticle_GeneratorError(t *testing.T) {
	r := newTestRouter(&fakeGenerator{err: errors.New("provider down")}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/articles/generate", strings.NewReader(`{"source_text":"note"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestEnqueueArticle_Accepted(t *testing.T) {
	q := &fakeEnqueuer{}
	r := newTestRouter(&fakeGenerator{}, q)

	w := httptest.NewRecorder()
	body := `{"source_text":"(ACME, Buy, $150 PT) Acme beat.","ticker":"ACME"}`
	req := httptest.NewRequest("POST", "/articles/generate/async", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)

	var res EnqueueResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, model.StatusPending, res.Status)
	assert.NotEqual(t, "", res.JobID)
	assert.Equal(t, res.JobID, q.lastJob.ID)
	assert.Equal(t, "ACME", q.lastJob.Ticker)
}

func TestEnqueueArticle_MissingSourceText(t *testing.T) {
	r := newTestRouter(&fakeGenerator{}, &fakeEnqueuer{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/articles/generate/async", strings.NewReader(`{"ticker":"ACME"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEnqueueArticle_QueueNotConfigured(t *testing.T) {
	r := newTestRouter(&fakeGenerator{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/articles/generate/async", strings.NewReader(`{"source_text":"note"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestEnqueueArticle_QueueError(t *testing.T) {
	r := newTestRouter(&fakeGenerator{}, &fakeEnqueuer{err: errors.New("redis down")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/articles/generate/async", strings.NewReader(`{"source_text":"note"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRewriteArticle_OK(t *testing.T) {
	g := &fakeGenerator{
		rewrite: &model.RewriteResult{Text: "Tightened text.", UnrecoveredLinks: 0},
	}
	r := newTestRouter(g, nil)

	w := httptest.NewRecorder()
	body := `{"text":"Original text.","instructions":"tighten"}`
	req := httptest.NewRequest("POST", "/articles/rewrite", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res RewriteResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "Tightened text.", res.Text)
	assert.Equal(t, false, res.Reverted)
}

func TestRewriteArticle_ReportsRevert(t *testing.T) {
	g := &fakeGenerator{
		rewrite: &model.RewriteResult{Text: "Original text.", UnrecoveredLinks: 3, Reverted: true},
	}
	r := newTestRouter(g, nil)

	w := httptest.NewRecorder()
	body := `{"text":"Original text.","instructions":"tighten"}`
	req := httptest.NewRequest("POST", "/articles/rewrite", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var res RewriteResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, true, res.Reverted)
	assert.Equal(t, 3, res.UnrecoveredLinks)
}

func TestRewriteArticle_MissingText(t *testing.T) {
	r := newTestRouter(&fakeGenerator{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/articles/rewrite", strings.NewReader(`{"instructions":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetHealth(t *testing.T) {
	r := newTestRouter(&fakeGenerator{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
