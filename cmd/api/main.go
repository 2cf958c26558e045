package main

import (
	"encoding/json"
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/cohen2you/wiim-project-v2-sub002/db"
	"github.com/cohen2you/wiim-project-v2-sub002/internal/generator"
	"github.com/cohen2you/wiim-project-v2-sub002/internal/handler"
	"github.com/cohen2you/wiim-project-v2-sub002/internal/model"
	"github.com/cohen2you/wiim-project-v2-sub002/pkg/llm"
	"github.com/cohen2you/wiim-project-v2-sub002/pkg/market"
)

// redisJobQueue feeds the generation worker via the shared Redis list.
type redisJobQueue struct{}

func (redisJobQueue) Enqueue(job model.GenerationJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return db.PushToQueue(db.GenerateQueueKey, string(data))
}

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	llmClient, err := llm.New(llmConfigFromEnv())
	if err != nil {
		log.Fatalf("error creating LLM client: %v", err)
	}

	var quotes generator.Quoter
	if key := os.Getenv("FINNHUB_API_KEY"); key != "" {
		quotes = market.NewQuoteClient(key)
	} else {
		slog.Warn("FINNHUB_API_KEY not set, price action lines disabled")
	}

	var queue handler.JobEnqueuer
	if os.Getenv("REDIS_URL") != "" {
		if err := db.ConnectRedis(); err != nil {
			log.Fatalf("error connecting to Redis: %v", err)
		}
		defer db.CloseRedis()
		queue = redisJobQueue{}
	} else {
		slog.Warn("REDIS_URL not set, async generation disabled")
	}

	pipeline := generator.New(llmClient, quotes)
	articleHandler := handler.NewArticleHandler(pipeline, queue)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.POST("/articles/generate", articleHandler.GenerateArticle)
	r.POST("/articles/generate/async", articleHandler.EnqueueArticle)
	r.POST("/articles/rewrite", articleHandler.RewriteArticle)
	r.GET("/health", articleHandler.GetHealth)

	err = r.Run(":8080")
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

func llmConfigFromEnv() llm.Config {
	provider := os.Getenv("LLM_PROVIDER")

	apiKey := os.Getenv("OPENAI_API_KEY")
	if provider == llm.ProviderAnthropic {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	return llm.Config{
		Provider:      provider,
		APIKey:        apiKey,
		Model:         os.Getenv("LLM_MODEL"),
		FallbackModel: os.Getenv("LLM_FALLBACK_MODEL"),
	}
}
