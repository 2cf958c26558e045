package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicClient struct {
	client   *anthropic.Client
	model    anthropic.Model
	fallback anthropic.Model
}

func NewAnthropicClient(cfg Config) *AnthropicClient {
	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))
	c := &AnthropicClient{
		client:   &client,
		model:    anthropic.Model("claude-sonnet-4-5"),
		fallback: anthropic.Model("claude-haiku-4-5"),
	}
	if cfg.Model != "" {
		c.model = anthropic.Model(cfg.Model)
	}
	if cfg.FallbackModel != "" {
		c.fallback = anthropic.Model(cfg.FallbackModel)
	}
	return c
}

// complete issues one message request, retrying once on the fallback model.
func (c *AnthropicClient) complete(system, user string) (string, anthropic.Model, error) {
	for _, model := range []anthropic.Model{c.model, c.fallback} {
		resp, err := c.client.Messages.New(context.Background(), anthropic.MessageNewParams{
			Model:     model,
			MaxTokens: 4096,
			System: []anthropic.TextBlockParam{
				{Text: system},
			},
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
			},
		})
		if err != nil {
			continue
		}
		if len(resp.Content) == 0 {
			continue
		}
		return resp.Content[0].Text, model, nil
	}
	return "", "", fmt.Errorf("anthropic: no response from %s or fallback %s", c.model, c.fallback)
}

func (c *AnthropicClient) GenerateArticle(req ArticleRequest) (*ArticleDraft, error) {
	content, model, err := c.complete(articleSystemPrompt, buildArticlePrompt(req))
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Headline string `json:"headline"`
		Body     string `json:"body"`
	}
	if err := json.Unmarshal([]byte(cleanJSONResponse(content)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w, content: %s", err, content)
	}

	return &ArticleDraft{
		Headline:  parsed.Headline,
		Body:      parsed.Body,
		ModelUsed: string(model),
	}, nil
}

func (c *AnthropicClient) Rewrite(text, instructions string) (string, error) {
	content, _, err := c.complete(rewriteSystemPrompt, instructions+"\n\n"+text)
	if err != nil {
		return "", err
	}
	return cleanTextResponse(content), nil
}
