package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cohen2you/wiim-project-v2-sub002/internal/model"
)

type ArticleGenerator interface {
	Generate(job model.GenerationJob) (*model.GenerationResult, error)
	Rewrite(original, instructions string) (*model.RewriteResult, error)
}

// JobEnqueuer pushes a generation job onto the worker queue. Nil disables
// the async endpoint.
type JobEnqueuer interface {
	Enqueue(job model.GenerationJob) error
}

type ArticleHandler struct {
	generator ArticleGenerator
	queue     JobEnqueuer
}

func NewArticleHandler(generator ArticleGenerator, queue JobEnqueuer) *ArticleHandler {
	return &ArticleHandler{generator: generator, queue: queue}
}

func (h *ArticleHandler) GenerateArticle(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.SourceText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source_text is required"})
		return
	}

	result, err := h.generator.Generate(model.GenerationJob{
		SourceText:   req.SourceText,
		Ticker:       req.Ticker,
		RelatedLinks: req.RelatedLinks,
	})
	if err != nil {
		slog.Error("error generating article", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Generation error"})
		return
	}

	c.JSON(http.StatusOK, GenerateResponse{
		Headline:         result.Headline,
		Body:             result.Body,
		Ticker:           result.Ticker,
		PriceTarget:      result.PriceTarget,
		PublicationDay:   result.PublicationDay,
		InaccurateQuotes: result.InaccurateQuotes,
		UnrecoveredLinks: result.UnrecoveredLinks,
		ModelUsed:        result.ModelUsed,
		GeneratedAt:      result.GeneratedAt.Format(time.RFC3339),
	})
}

// EnqueueArticle accepts the same payload as GenerateArticle but hands the
// job to the worker queue instead of generating inline.
func (h *ArticleHandler) EnqueueArticle(c *gin.Context) {
	if h.queue == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Async generation is not configured"})
		return
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.SourceText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source_text is required"})
		return
	}

	job := model.GenerationJob{
		ID:           fmt.Sprintf("%d", time.Now().UnixNano()),
		SourceText:   req.SourceText,
		Ticker:       req.Ticker,
		RelatedLinks: req.RelatedLinks,
	}
	if err := h.queue.Enqueue(job); err != nil {
		slog.Error("error enqueueing generation job", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Enqueue error"})
		return
	}

	c.JSON(http.StatusAccepted, EnqueueResponse{
		JobID:  job.ID,
		Status: model.StatusPending,
	})
}

func (h *ArticleHandler) RewriteArticle(c *gin.Context) {
	var req RewriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	result, err := h.generator.Rewrite(req.Text, req.Instructions)
	if err != nil {
		slog.Error("error rewriting article", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Rewrite error"})
		return
	}

	c.JSON(http.StatusOK, RewriteResponse{
		Text:             result.Text,
		UnrecoveredLinks: result.UnrecoveredLinks,
		Reverted:         result.Reverted,
	})
}

func (h *ArticleHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
