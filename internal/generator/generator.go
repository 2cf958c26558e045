// Package generator wires the text pipeline together: fact extraction feeds
// the prompt, the LLM draft passes through style normalization, quote
// verification, hyperlink restoration and finally the price action footer.
package generator

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cohen2you/wiim-project-v2-sub002/internal/model"
	"github.com/cohen2you/wiim-project-v2-sub002/pkg/extract"
	"github.com/cohen2you/wiim-project-v2-sub002/pkg/links"
	"github.com/cohen2you/wiim-project-v2-sub002/pkg/llm"
	"github.com/cohen2you/wiim-project-v2-sub002/pkg/priceaction"
	"github.com/cohen2you/wiim-project-v2-sub002/pkg/quotecheck"
	"github.com/cohen2you/wiim-project-v2-sub002/pkg/style"
)

// Quoter supplies a live quote for the price action line. Nil disables the
// footer.
type Quoter interface {
	Quote(symbol string) (*model.PriceQuote, error)
}

type Pipeline struct {
	llm    llm.Client
	quotes Quoter
	loc    *time.Location
	now    func() time.Time
}

func New(client llm.Client, quotes Quoter) *Pipeline {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}
	return &Pipeline{
		llm:    client,
		quotes: quotes,
		loc:    loc,
		now:    time.Now,
	}
}

// Generate runs the full pipeline for one job. Quote-accuracy violations
// are logged, never fixed; a missing ticker degrades to a generic article
// with no price action footer.
func (p *Pipeline) Generate(job model.GenerationJob) (*model.GenerationResult, error) {
	facts := extract.Extract(job.SourceText, p.now())

	ticker := job.Ticker
	if ticker == "" {
		ticker = facts.Ticker
	}

	draft, err := p.llm.GenerateArticle(llm.ArticleRequest{
		SourceText:     job.SourceText,
		Ticker:         ticker,
		PriceTarget:    facts.PriceTarget,
		PublicationDay: facts.PublicationDay,
		RelatedLinks:   job.RelatedLinks,
	})
	if err != nil {
		return nil, fmt.Errorf("generate article: %w", err)
	}

	headline := style.NormalizeHeadline(draft.Headline)
	body := style.Normalize(draft.Body)

	report := quotecheck.Verify(quotecheck.FindSpans(body, headline), job.SourceText)
	for _, span := range report.Spans {
		if span.Kind == quotecheck.MatchUnverified {
			slog.Warn("quotation not found in source",
				"job_id", job.ID, "quote", span.Text, "coverage", span.Coverage)
		}
	}

	anchorSource := job.SourceText
	if len(job.RelatedLinks) > 0 {
		anchorSource += "\n" + strings.Join(job.RelatedLinks, "\n")
	}
	body, unrecovered := links.Restore(anchorSource, body)
	if unrecovered > 0 {
		slog.Warn("hyperlinks lost in generated article",
			"job_id", job.ID, "unrecovered", unrecovered)
	}

	if p.quotes != nil && ticker != "" {
		body = p.appendPriceAction(body, ticker, job.ID)
	}

	return &model.GenerationResult{
		Headline:         headline,
		Body:             body,
		Ticker:           ticker,
		PriceTarget:      facts.PriceTarget,
		PublicationDay:   facts.PublicationDay,
		InaccurateQuotes: report.Inaccurate,
		UnrecoveredLinks: unrecovered,
		ModelUsed:        draft.ModelUsed,
		GeneratedAt:      p.now(),
	}, nil
}

// Rewrite runs one LLM rewrite round over an existing article. Citation
// integrity beats prose quality: when more links are lost than the
// tolerance allows, the rewrite is discarded and the original returned.
func (p *Pipeline) Rewrite(original, instructions string) (*model.RewriteResult, error) {
	rewritten, err := p.llm.Rewrite(original, instructions)
	if err != nil {
		return nil, fmt.Errorf("rewrite article: %w", err)
	}

	body := style.Normalize(rewritten)
	body, unrecovered := links.Restore(original, body)

	if tol := linkTolerance(len(links.Anchors(original))); unrecovered > tol {
		slog.Warn("rewrite discarded, too many hyperlinks lost",
			"unrecovered", unrecovered, "tolerance", tol)
		return &model.RewriteResult{
			Text:             original,
			UnrecoveredLinks: unrecovered,
			Reverted:         true,
		}, nil
	}

	return &model.RewriteResult{
		Text:             body,
		UnrecoveredLinks: unrecovered,
	}, nil
}

func linkTolerance(anchorCount int) int {
	if anchorCount <= 10 {
		return 1
	}
	return 2
}

func (p *Pipeline) appendPriceAction(body, ticker, jobID string) string {
	q, err := p.quotes.Quote(ticker)
	if err != nil {
		slog.Warn("price quote unavailable, omitting price action line",
			"job_id", jobID, "ticker", ticker, "error", err)
		return body
	}

	local := p.now().In(p.loc)
	line := priceaction.Compose(ticker, *q, priceaction.SessionAt(local), local.Weekday().String())
	return body + "\n" + line
}
