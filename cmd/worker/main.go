package main

import (
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/cohen2you/wiim-project-v2-sub002/db"
	"github.com/cohen2you/wiim-project-v2-sub002/internal/generator"
	"github.com/cohen2you/wiim-project-v2-sub002/internal/model"
	"github.com/cohen2you/wiim-project-v2-sub002/pkg/llm"
	"github.com/cohen2you/wiim-project-v2-sub002/pkg/market"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	const maxRetries = 3

	err := db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	llmClient, err := llm.New(llmConfigFromEnv())
	if err != nil {
		log.Fatalf("error creating LLM client: %v", err)
	}

	var quotes generator.Quoter
	if key := os.Getenv("FINNHUB_API_KEY"); key != "" {
		quotes = market.NewQuoteClient(key)
	}

	pipeline := generator.New(llmClient, quotes)

	for {
		payload, err := db.PopFromQueue(db.GenerateQueueKey, 0)
		if err != nil {
			slog.Error("error popping from Redis queue", "error", err)
			break
		}

		var job model.GenerationJob
		if err := json.Unmarshal([]byte(payload), &job); err != nil {
			slog.Error("invalid job payload in queue", "error", err)
			continue
		}

		if job.AttemptCount >= maxRetries {
			slog.Warn("job exceeded max retries, moving to dead letter queue",
				"job_id", job.ID, "attempts", job.AttemptCount, "status", model.StatusFailed)
			db.PushToQueue(db.DeadLetterKey, payload)
			continue
		}

		result, err := pipeline.Generate(job)
		if err != nil {
			slog.Error("error generating article", "error", err, "job_id", job.ID)

			job.AttemptCount++
			if data, mErr := json.Marshal(job); mErr == nil {
				db.PushToQueue(db.GenerateQueueKey, string(data))
			}

			time.Sleep(5 * time.Second)
			continue
		}

		backlog, _ := db.GetQueueLength(db.GenerateQueueKey)
		slog.Info("article generated",
			"job_id", job.ID,
			"status", model.StatusCompleted,
			"ticker", result.Ticker,
			"model", result.ModelUsed,
			"inaccurate_quotes", result.InaccurateQuotes,
			"unrecovered_links", result.UnrecoveredLinks,
			"queue_depth", backlog)
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
