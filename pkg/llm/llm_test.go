package llm

import (
	"strings"
	"testing"
)

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON unchanged",
			input: `{"headline":"test"}`,
			want:  `{"headline":"test"}`,
		},
		{
			name:  "strips json fenced block",
			input: "```json\n{\"headline\":\"test\"}\n```",
			want:  `{"headline":"test"}`,
		},
		{
			name:  "strips plain fenced block",
			input: "```\n{\"headline\":\"test\"}\n```",
			want:  `{"headline":"test"}`,
		},
		{
			name:  "drops prose around JSON",
			input: "Here is the article:\n{\"headline\":\"test\"}\nLet me know!",
			want:  `{"headline":"test"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanJSONResponse(tt.input)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanTextResponse(t *testing.T) {
	input := "```html\n<strong>Acme</strong> rallied.\n```"
	want := "<strong>Acme</strong> rallied."

	if got := cleanTextResponse(input); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildArticlePrompt(t *testing.T) {
	req := ArticleRequest{
		SourceText:     "Acme beat estimates.",
		Ticker:         "ACME",
		PriceTarget:    150,
		PublicationDay: "Monday",
		RelatedLinks:   []string{`<a href="https://example.com/x">Also Read: Related</a>`},
	}

	got := buildArticlePrompt(req)

	for _, want := range []string{
		"Acme beat estimates.",
		"Ticker: ACME",
		"Analyst price target: $150.00",
		"Publication day: Monday",
		"Include this link:",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q:\n%s", want, got)
		}
	}
}

func TestBuildArticlePrompt_OmitsAbsentFacts(t *testing.T) {
	got := buildArticlePrompt(ArticleRequest{SourceText: "Generic market note."})

	for _, bad := range []string{"Ticker:", "price target", "Publication day:"} {
		if strings.Contains(got, bad) {
			t.Errorf("prompt contains %q for absent fact:\n%s", bad, got)
		}
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(Config{Provider: "cohere"})
	if err == nil {
		t.Fatal("want error for unknown provider")
	}
}

func TestNew_SelectsProvider(t *testing.T) {
	c, err := New(Config{Provider: ProviderAnthropic, APIKey: "k"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*AnthropicClient); !ok {
		t.Errorf("got %T, want *AnthropicClient", c)
	}

	c, err = New(Config{Provider: ProviderOpenAI, APIKey: "k"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*OpenAIClient); !ok {
		t.Errorf("got %T, want *OpenAIClient", c)
	}
}
