// Package style enforces house style on LLM-generated article HTML through
// an ordered pipeline of idempotent regex passes. The article uses an HTML
// subset of exactly three tags: <strong>, <a> and <h2>. Pass order is load
// bearing and is expressed as a visible list rather than by convention;
// each pass's output is the next pass's input.
package style

import (
	"regexp"
	"strings"
)

type pass struct {
	name string
	fn   func(string) string
}

// bodyPasses run in order over the full article buffer. Ordering
// constraints: stray-quote and numeric-unbold cleanup must precede
// possessive repair; possessive repair must precede quote-dialect
// conversion; possessive repair runs again last because later passes can
// move text and reintroduce the letter-quote pattern.
var bodyPasses = []pass{
	{"markdown-bold", convertMarkdownBold},
	{"stray-quote-before-number", toFixpoint(dropQuoteBeforeNumber)},
	{"numeric-unbold", unboldNumbers},
	{"possessive-repair", repairPossessives},
	{"body-quote-dialect", toFixpoint(singleToDoubleQuotes)},
	{"leading-header", dropLeadingHeaders},
	{"header-promotion", promoteHeaders},
	{"scoped-unbold", unboldRepeatMentions},
	{"possessive-repair-final", repairPossessives},
}

// Normalize applies the full pass pipeline to article body HTML.
// Re-running it on its own output produces no further changes.
func Normalize(html string) string {
	for _, p := range bodyPasses {
		html = p.fn(html)
	}
	return html
}

// toFixpoint reapplies a pass until it stops changing the buffer. Needed
// where the regex consumes a boundary character that an adjacent match also
// needs, so one application can leave convertible text behind.
func toFixpoint(fn func(string) string) func(string) string {
	return func(s string) string {
		for {
			next := fn(s)
			if next == s {
				return s
			}
			s = next
		}
	}
}

// NormalizeHeadline applies headline style: apostrophe repair, then single
// quotes exclusively.
func NormalizeHeadline(s string) string {
	s = repairPossessives(s)
	s = doubleToSingleQuotes(s)
	return s
}

// A dollar amount, bare number or percentage with nothing else around it.
// These must never carry emphasis.
var pureNumberRe = regexp.MustCompile(`^\$?[\d,]*\d(?:\.\d+)?%?$`)

var markdownBoldRe = regexp.MustCompile(`\*\*([^*]+)\*\*`)

func convertMarkdownBold(s string) string {
	return markdownBoldRe.ReplaceAllStringFunc(s, func(m string) string {
		inner := strings.TrimSuffix(strings.TrimPrefix(m, "**"), "**")
		if pureNumberRe.MatchString(strings.TrimSpace(inner)) {
			return inner
		}
		return "<strong>" + inner + "</strong>"
	})
}

// A double quote directly before a dollar amount or number is a misplaced
// quotation mark from the model, not a real quote. The quote must open the
// span (start of text or after whitespace or an opening bracket): a quote
// attached to the preceding word closes a real quoted span and stays.
var quoteBeforeNumberRe = regexp.MustCompile(`(^|[\s([])"(\s*\$?\d)`)

func dropQuoteBeforeNumber(s string) string {
	return quoteBeforeNumberRe.ReplaceAllString(s, "$1$2")
}

var boldNumberRe = regexp.MustCompile(`<strong>\s*(\$?[\d,]*\d(?:\.\d+)?%?)\s*</strong>`)

func unboldNumbers(s string) string {
	return boldNumberRe.ReplaceAllString(s, "$1")
}

// Letter + double quote + s/t/d at a word boundary is a possessive or
// contraction whose apostrophe was rendered as a double quote.
var possessiveRe = regexp.MustCompile(`([A-Za-z])"([sdtSDT])\b`)

func repairPossessives(s string) string {
	return possessiveRe.ReplaceAllString(s, "$1'$2")
}

// Bounded single-quoted spans in body text become double quotes. The span
// must start with a letter so converted numbers never produce the
// quote-before-number pattern again, and the bounds must be word or
// punctuation boundaries so apostrophes inside words survive.
var singleQuotedSpanRe = regexp.MustCompile(`(^|[\s(])'([A-Za-z][^']+?)'($|[\s).,;:!?])`)

func singleToDoubleQuotes(s string) string {
	return singleQuotedSpanRe.ReplaceAllString(s, `$1"$2"$3`)
}

var doubleQuotedSpanRe = regexp.MustCompile(`"([^"]+)"`)

func doubleToSingleQuotes(s string) string {
	return doubleQuotedSpanRe.ReplaceAllString(s, "'$1'")
}

// Openers that mark a line as the lede paragraph, never a section title.
var ledeOpeners = []string{"In a", "In an", "Analysts", "Shares of"}

// dropLeadingHeaders deletes title-looking lines sitting above the lede.
// A header must never precede the first paragraph.
func dropLeadingHeaders(s string) string {
	s = strings.TrimLeft(s, "\n")
	for {
		line, rest, found := strings.Cut(s, "\n")
		if !found {
			return s
		}
		if !looksLikeTitle(line) {
			return s
		}
		s = strings.TrimLeft(rest, "\n")
	}
}

func looksLikeTitle(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 10 || len(trimmed) > 100 {
		return false
	}
	if trimmed[0] < 'A' || trimmed[0] > 'Z' {
		return false
	}
	if strings.Contains(trimmed, ".") {
		return false
	}
	for _, opener := range ledeOpeners {
		if strings.HasPrefix(trimmed, opener) {
			return false
		}
	}
	return true
}

// Section titles that stay inline-emphasized instead of becoming block
// headers.
var protectedTitles = []string{"Price Action:", "Also Read:"}

// promoteHeaders wraps title-looking lines after the lede in <h2>, keeping
// the protected titles as <strong>.
func promoteHeaders(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if i == 0 {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if protected := protectedTitle(trimmed); protected {
			lines[i] = "<strong>" + trimmed + "</strong>"
			continue
		}
		if looksLikeTitle(trimmed) {
			lines[i] = "<h2>" + trimmed + "</h2>"
		}
	}
	return strings.Join(lines, "\n")
}

func protectedTitle(line string) bool {
	for _, title := range protectedTitles {
		if line == title {
			return true
		}
	}
	return false
}

var (
	strongSpanRe   = regexp.MustCompile(`<strong>([^<]+)</strong>`)
	companyFirstRe = regexp.MustCompile(`<strong>([^<]+)</strong>\s*\((?:NYSE|NASDAQ|AMEX|OTC|OTCQX|OTCQB|CBOE|TSX):\s?[A-Z]{1,5}\)`)
	personNameRe   = regexp.MustCompile(`^(?:[A-Z][A-Za-z'-]+ ){1,2}[A-Z][A-Za-z'-]+$`)
	analystBoldRe  = regexp.MustCompile(`(?i)(analyst\s+)<strong>([^<]+)</strong>`)
)

var corpSuffixes = []string{" Inc.", " Inc", " Corporation", " Corp.", " Corp", " Company", " Co.", " Ltd.", " Ltd", " PLC"}

func stripCorpSuffix(name string) string {
	for _, suffix := range corpSuffixes {
		if strings.HasSuffix(name, suffix) {
			return strings.TrimSuffix(name, suffix)
		}
	}
	return name
}

// unboldRepeatMentions enforces first-mention-only bolding. The first bold
// company name followed by an exchange:ticker parenthetical is canonical;
// every later bold occurrence of that name, with or without corporate
// suffix, loses its tags. The same rule applies independently to executive
// full names keyed on last name, and analyst names lose bold everywhere.
func unboldRepeatMentions(s string) string {
	s = analystBoldRe.ReplaceAllString(s, "$1$2")
	s = unboldCompanyRepeats(s)
	s = unboldExecutiveRepeats(s)
	return s
}

func unboldCompanyRepeats(s string) string {
	loc := companyFirstRe.FindStringSubmatchIndex(s)
	if loc == nil {
		return s
	}
	base := stripCorpSuffix(s[loc[2]:loc[3]])

	head, tail := s[:loc[1]], s[loc[1]:]
	repeatRe, err := regexp.Compile(`<strong>` + regexp.QuoteMeta(base) + `(?: (?:Inc|Corporation|Corp|Company|Co|Ltd|PLC)\.?)?</strong>`)
	if err != nil {
		return s
	}
	tail = repeatRe.ReplaceAllStringFunc(tail, func(m string) string {
		return strings.TrimSuffix(strings.TrimPrefix(m, "<strong>"), "</strong>")
	})
	return head + tail
}

func unboldExecutiveRepeats(s string) string {
	companyLoc := companyFirstRe.FindStringSubmatchIndex(s)

	seen := map[string]bool{}
	var out strings.Builder
	last := 0
	for _, loc := range strongSpanRe.FindAllStringSubmatchIndex(s, -1) {
		// The canonical company mention is not a person.
		if companyLoc != nil && loc[0] == companyLoc[0] {
			continue
		}
		name := s[loc[2]:loc[3]]
		words := strings.Fields(name)

		unbold := false
		switch {
		case personNameRe.MatchString(name):
			lastName := words[len(words)-1]
			if seen[lastName] {
				unbold = true
			}
			seen[lastName] = true
		case len(words) == 1 && seen[name]:
			// A bare surname repeat; a lone bold word never establishes
			// a name on its own.
			unbold = true
		}
		if !unbold {
			continue
		}
		out.WriteString(s[last:loc[0]])
		out.WriteString(name)
		last = loc[1]
	}
	out.WriteString(s[last:])
	return out.String()
}
