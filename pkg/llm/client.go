package llm

import "fmt"

// ArticleRequest carries the source material and the facts extracted from
// it. The prompt builder folds the facts in so the model does not have to
// rediscover them.
type ArticleRequest struct {
	SourceText     string
	Ticker         string
	PriceTarget    float64
	PublicationDay string
	RelatedLinks   []string
}

type ArticleDraft struct {
	Headline  string
	Body      string
	ModelUsed string
}

type Client interface {
	GenerateArticle(req ArticleRequest) (*ArticleDraft, error)
	Rewrite(text, instructions string) (string, error)
}

const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// Config selects and configures a provider. It is passed explicitly at
// construction; there is no process-wide provider state.
type Config struct {
	Provider string
	APIKey   string

	// Model overrides the provider's default primary model;
	// FallbackModel is tried once when the primary request fails.
	Model         string
	FallbackModel string
}

func New(cfg Config) (Client, error) {
	switch cfg.Provider {
	case ProviderAnthropic:
		return NewAnthropicClient(cfg), nil
	case ProviderOpenAI, "":
		return NewOpenAIClient(cfg), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
