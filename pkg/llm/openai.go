package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIClient struct {
	client   *openai.Client
	model    openai.ChatModel
	fallback openai.ChatModel
}

func NewOpenAIClient(cfg Config) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(cfg.APIKey))
	c := &OpenAIClient{
		client:   &client,
		model:    openai.ChatModelGPT4o,
		fallback: openai.ChatModelGPT4oMini,
	}
	if cfg.Model != "" {
		c.model = openai.ChatModel(cfg.Model)
	}
	if cfg.FallbackModel != "" {
		c.fallback = openai.ChatModel(cfg.FallbackModel)
	}
	return c
}

func (c *OpenAIClient) complete(system, user string) (string, openai.ChatModel, error) {
	for _, model := range []openai.ChatModel{c.model, c.fallback} {
		resp, err := c.client.Chat.Completions.New(context.Background(), openai.ChatCompletionNewParams{
			Model: model,
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(system),
				openai.UserMessage(user),
			},
		})
		if err != nil {
			continue
		}
		if len(resp.Choices) == 0 {
			continue
		}
		return resp.Choices[0].Message.Content, model, nil
	}
	return "", "", fmt.Errorf("openai: no response from %s or fallback %s", c.model, c.fallback)
}

func (c *OpenAIClient) GenerateArticle(req ArticleRequest) (*ArticleDraft, error) {
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

func (c *OpenAIClient) Rewrite(text, instructions string) (string, error) {
	content, _, err := c.complete(rewriteSystemPrompt, instructions+"\n\n"+text)
	if err != nil {
		return "", err
	}
	return cleanTextResponse(content), nil
}
