// Package quotecheck verifies quotations in generated copy against the
// source material. It is advisory only: the report surfaces suspected
// hallucinated quotes for the caller to log, and never edits the article,
// since auto-rewriting a legitimate paraphrase would do more damage than a
// flagged discrepancy.
package quotecheck

import (
	"regexp"
	"strings"
)

type MatchKind string

const (
	MatchExact      MatchKind = "exact"
	MatchFuzzy      MatchKind = "fuzzy"
	MatchUnverified MatchKind = "unverified"
)

// Span is one quoted passage lifted from generated text. Headline spans are
// held to the exact-match standard; body spans accept a fuzzy in-order
// word-coverage match.
type Span struct {
	Text     string
	Headline bool

	Kind     MatchKind
	Coverage float64
}

type Report struct {
	Spans      []Span
	Inaccurate int
}

const (
	headlineMinLen = 3
	bodyMinLen     = 4
	bodyThreshold  = 0.70
)

var (
	quotedSpanRe = regexp.MustCompile(`"([^"]+)"`)
	anchorTagRe  = regexp.MustCompile(`(?s)<a\s+[^>]*>(.*?)</a>`)
)

// FindSpans pulls double-quoted passages out of generated HTML so the
// orchestrator can feed them to Verify. Anchor tags are reduced to their
// inner text first; an href attribute is quoted markup, not a quotation.
// Spans shorter than the minimum for their position are dropped here; they
// are almost always stray quote marks, not quotations.
func FindSpans(body string, headline string) []Span {
	var spans []Span
	for _, m := range quotedSpanRe.FindAllStringSubmatch(headline, -1) {
		if len(m[1]) >= headlineMinLen {
			spans = append(spans, Span{Text: m[1], Headline: true})
		}
	}
	body = anchorTagRe.ReplaceAllString(body, "$1")
	for _, m := range quotedSpanRe.FindAllStringSubmatch(body, -1) {
		if len(m[1]) >= bodyMinLen {
			spans = append(spans, Span{Text: m[1]})
		}
	}
	return spans
}

// Verify classifies each span against source. Exact means a case-insensitive
// verbatim substring; fuzzy means enough of the quote's significant words
// appear in the source in left-to-right order; anything else is unverified
// and counted as inaccurate.
func Verify(spans []Span, source string) Report {
	report := Report{}
	lowerSource := strings.ToLower(source)

	for _, span := range spans {
		minLen := bodyMinLen
		if span.Headline {
			minLen = headlineMinLen
		}
		if len(span.Text) < minLen {
			continue
		}

		quote := strings.ToLower(span.Text)
		if strings.Contains(lowerSource, quote) {
			span.Kind = MatchExact
			span.Coverage = 1.0
			report.Spans = append(report.Spans, span)
			continue
		}

		span.Coverage = inOrderCoverage(quote, lowerSource)
		switch {
		case !span.Headline && span.Coverage >= bodyThreshold:
			span.Kind = MatchFuzzy
		default:
			span.Kind = MatchUnverified
			report.Inaccurate++
		}
		report.Spans = append(report.Spans, span)
	}

	return report
}

// inOrderCoverage walks the source left to right looking for each
// significant quote word (length > 2). A word found after the cursor
// advances the cursor past it and counts as found in order; a word only
// found before the cursor restarts the scan from its position but does not
// count, so reordered quotes score below verbatim ones.
func inOrderCoverage(quote, source string) float64 {
	var words []string
	for _, w := range strings.FieldsFunc(quote, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9' || r == '\'')
	}) {
		if len(w) > 2 {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return 0
	}

	cursor := 0
	found := 0
	for _, w := range words {
		idx := indexWord(source[cursor:], w)
		if idx >= 0 {
			cursor += idx + len(w)
			found++
			continue
		}
		// Word may occur earlier in the source, out of strict order; it
		// repositions the cursor but does not count toward coverage.
		idx = indexWord(source, w)
		if idx >= 0 {
			cursor = idx + len(w)
		}
	}

	return float64(found) / float64(len(words))
}

func indexWord(s, w string) int {
	offset := 0
	for {
		idx := strings.Index(s[offset:], w)
		if idx < 0 {
			return -1
		}
		start := offset + idx
		end := start + len(w)
		if (start == 0 || !isWordRune(s[start-1])) && (end == len(s) || !isWordRune(s[end])) {
			return start
		}
		offset = start + 1
	}
}

func isWordRune(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z' || '0' <= b && b <= '9'
}
