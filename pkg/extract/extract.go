// Package extract pulls structured facts (ticker, publication date, analyst
// price target) out of raw source material such as analyst notes and press
// releases. Extraction never fails: every field has a documented fallback
// and callers treat absence as "generic" mode.
package extract

import (
	"regexp"
	"strconv"
	"time"
)

// Facts holds what could be recovered from one source text. Ticker is empty
// and PriceTarget is zero when nothing matched; PublicationDay falls back to
// "today".
type Facts struct {
	Ticker           string
	TickerConfidence int
	PublicationDay   string
	PriceTarget      float64
}

// DayUnknown is the publication-day sentinel used when no date literal is
// found in the source text.
const DayUnknown = "today"

// Extract runs the ticker, date and price-target matchers over text. The
// caller supplies the clock so the current-year default for short dates
// stays deterministic in tests.
func Extract(text string, now time.Time) Facts {
	ticker, confidence := extractTicker(text)
	return Facts{
		Ticker:           ticker,
		TickerConfidence: confidence,
		PublicationDay:   extractPublicationDay(text, now),
		PriceTarget:      extractPriceTarget(text),
	}
}

type tickerPattern struct {
	re       *regexp.Regexp
	filtered bool
}

// Patterns are tried in strict precedence order; the first hit wins and its
// ordinal becomes the confidence. Analyst notes conventionally open with
// "(TICKER, Rating, $Target PT)", so the rating-parenthetical form ranks
// highest.
var tickerPatterns = []tickerPattern{
	{re: regexp.MustCompile(`\(([A-Z]{2,5}),\s*(?:Buy|Sell|Hold|Outperform|Underperform|Overweight|Underweight|Neutral|Market Perform|Equal-?Weight|Accumulate|Reduce)\b`)},
	{re: regexp.MustCompile(`\((?:NYSE|NASDAQ|AMEX|OTC|OTCQX|OTCQB|CBOE|TSX):\s?([A-Z]{1,5})\)`)},
	{re: regexp.MustCompile(`\(([A-Z]{2,5})\)`), filtered: true},
	{re: regexp.MustCompile(`(?m)^([A-Z]{2,5})\s+US\b`)},
	{re: regexp.MustCompile(`\b([A-Z]{2,5})\s+(?:US|NASDAQ|NYSE|shares|stock|ticker)\b`), filtered: true},
}

// Common English words and corporate abbreviations that collide with the
// 2-5-uppercase-letter ticker shape.
var excludedTickers = map[string]bool{
	"THE": true, "AND": true, "FOR": true, "ARE": true, "BUT": true,
	"NOT": true, "ALL": true, "NEW": true, "CAN": true, "HAS": true,
	"WAS": true, "ONE": true, "OUT": true, "NOW": true, "ITS": true,
	"INC": true, "LLC": true, "LTD": true, "CORP": true, "PLC": true,
	"CEO": true, "CFO": true, "COO": true, "CTO": true, "IPO": true,
	"ETF": true, "SEC": true, "FDA": true, "FTC": true, "DOJ": true,
	"USA": true, "USD": true, "GDP": true, "EPS": true, "GAAP": true,
	"YOY": true, "QOQ": true, "FY": true, "EST": true, "EDT": true,
}

func extractTicker(text string) (string, int) {
	for i, p := range tickerPatterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			symbol := m[1]
			if len(symbol) < 2 {
				continue
			}
			if p.filtered && excludedTickers[symbol] {
				continue
			}
			return symbol, i + 1
		}
	}
	return "", 0
}

var monthNames = `January|February|March|April|May|June|July|August|September|October|November|December`

type datePattern struct {
	re    *regexp.Regexp
	parse func(m []string, now time.Time) (int, int, int)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

var monthOrdinals = map[string]int{
	"January": 1, "February": 2, "March": 3, "April": 4, "May": 5,
	"June": 6, "July": 7, "August": 8, "September": 9, "October": 10,
	"November": 11, "December": 12,
}

// Date literals are tried in order; the first parse that survives the
// validity check wins. Two-digit years are always read as 20xx.
var datePatterns = []datePattern{
	{
		re: regexp.MustCompile(`(` + monthNames + `)\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})`),
		parse: func(m []string, _ time.Time) (int, int, int) {
			return atoi(m[3]), monthOrdinals[m[1]], atoi(m[2])
		},
	},
	{
		re: regexp.MustCompile(`(` + monthNames + `)\s+(\d{1,2})(?:st|nd|rd|th)?\b`),
		parse: func(m []string, now time.Time) (int, int, int) {
			return now.Year(), monthOrdinals[m[1]], atoi(m[2])
		},
	},
	{
		re: regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`),
		parse: func(m []string, _ time.Time) (int, int, int) {
			return atoi(m[1]), atoi(m[2]), atoi(m[3])
		},
	},
	{
		re: regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`),
		parse: func(m []string, _ time.Time) (int, int, int) {
			return atoi(m[3]), atoi(m[1]), atoi(m[2])
		},
	},
	{
		re: regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{2})\b`),
		parse: func(m []string, _ time.Time) (int, int, int) {
			return 2000 + atoi(m[3]), atoi(m[1]), atoi(m[2])
		},
	},
}

func extractPublicationDay(text string, now time.Time) string {
	for _, p := range datePatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		year, month, day := p.parse(m, now)
		if month < 1 || month > 12 || day < 1 || day > 31 {
			continue
		}
		d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		// time.Date normalizes out-of-range days (Feb 30 -> Mar 2), so a
		// round-trip mismatch means the literal was not a real date.
		if d.Day() != day || int(d.Month()) != month {
			continue
		}
		return d.Weekday().String()
	}
	return DayUnknown
}

// Price-target templates anchored on the dollar sign. Multiple templates can
// match the same sentence with different captures; the first template in
// this list wins and no cross-validation is attempted.
var priceTargetPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\([A-Z]{2,5},[^)]*?\$(\d+(?:\.\d+)?)\s*PT\)`),
	regexp.MustCompile(`(?i)price target (?:of |to |at )?\$(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)\$(\d+(?:\.\d+)?)\s*(?:price target|PT\b)`),
	regexp.MustCompile(`(?i)\bPT (?:of |to )?\$(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)target (?:price )?(?:of |to |at )?\$(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)(?:raised|raises|lowered|lowers|boosted|boosts|cut|cuts)[^.\n]*? to \$(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)\bto \$(\d+(?:\.\d+)?)`),
}

func extractPriceTarget(text string) float64 {
	for _, re := range priceTargetPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		target, err := strconv.ParseFloat(m[1], 64)
		if err != nil || target <= 0 {
			continue
		}
		return target
	}
	return 0
}
