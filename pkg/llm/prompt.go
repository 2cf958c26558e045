package llm

import (
	"fmt"
	"strings"
)

const articleSystemPrompt = `You are a financial newswriter producing short market-moving news articles.

Rules:
1. Write a headline and an article body from the source material
2. Use only facts present in the source; never invent numbers, quotes or names
3. Quote the source verbatim when using quotation marks
4. Keep every hyperlink anchor tag from the source intact, unchanged
5. Use <strong> for the first mention of the company, <h2> for section titles, and no other HTML tags
6. Neutral tone; no urgency words, no ALL CAPS

Output as JSON only, no other text:
{
  "headline": "article headline",
  "body": "article body HTML"
}`

const rewriteSystemPrompt = `You are a financial news editor. Rewrite the article per the instructions while preserving all facts, numbers, quotations and hyperlink anchor tags exactly. Output only the rewritten article text, nothing else.`

func buildArticlePrompt(req ArticleRequest) string {
	var sb strings.Builder
	sb.WriteString("Source material:\n")
	sb.WriteString(req.SourceText)
	sb.WriteString("\n\n")

	if req.Ticker != "" {
		sb.WriteString(fmt.Sprintf("Ticker: %s\n", req.Ticker))
	}
	if req.PriceTarget > 0 {
		sb.WriteString(fmt.Sprintf("Analyst price target: $%.2f\n", req.PriceTarget))
	}
	if req.PublicationDay != "" {
		sb.WriteString(fmt.Sprintf("Publication day: %s\n", req.PublicationDay))
	}
	for _, link := range req.RelatedLinks {
		sb.WriteString(fmt.Sprintf("Include this link: %s\n", link))
	}

	return sb.String()
}

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}

func cleanTextResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```html")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
