// Package links guarantees that the anchor tags present in an article
// survive AI rewriting. Every anchor captured from the pre-rewrite text is
// checked against the rewritten text and, when missing, re-inserted via a
// cascade of increasingly permissive strategies. The unrecovered count lets
// the caller decide whether citation integrity warrants discarding the
// rewrite altogether.
package links

import (
	"regexp"
	"strings"
)

// Anchor is one hyperlink captured from the pre-rewrite text.
type Anchor struct {
	URL      string
	Text     string
	Tag      string
	Position int
}

var anchorRe = regexp.MustCompile(`(?s)<a\s+href="([^"]*)"[^>]*>(.*?)</a>`)

// Labels that introduce inline citation anchors. Labeled anchors get the
// structural strategies: they belong to a known article slot rather than a
// natural sentence position.
var citationLabels = []string{"Also Read:", "Read Next:", "Also Read", "Read Next"}

// Section-boundary lines recognized by the structural strategies.
var sectionMarkers = []string{"What To Know:", "What Happened:", "Why It Matters:"}

// Anchors lists every anchor tag in text in document order.
func Anchors(text string) []Anchor {
	var anchors []Anchor
	for i, m := range anchorRe.FindAllStringSubmatch(text, -1) {
		anchors = append(anchors, Anchor{
			URL:      m[1],
			Text:     m[2],
			Tag:      m[0],
			Position: i,
		})
	}
	return anchors
}

// strategy attempts to re-insert one missing anchor, returning the patched
// text and whether it succeeded. Strategies are tried in slice order and the
// first success wins.
type strategy func(a Anchor, text string) (string, bool)

var strategies = []strategy{
	matchExactText,
	matchWithoutLabel,
	matchThreeWordWindow,
	insertAfterSectionMarker,
	matchKeyword,
}

// Restore re-inserts every anchor from original that is missing from
// rewritten. The returned count is the number of anchors for which no
// textual trace survived; anchors force-inserted by the final structural
// fallback still count as unrecovered, since their placement is arbitrary.
func Restore(original, rewritten string) (string, int) {
	text := rewritten
	unrecovered := 0
	var lost []Anchor

	for _, a := range Anchors(original) {
		if strings.Contains(text, a.Tag) {
			continue
		}

		restored := false
		for _, try := range strategies {
			if patched, ok := try(a, text); ok {
				text = patched
				restored = true
				break
			}
		}
		if !restored {
			unrecovered++
			lost = append(lost, a)
		}
	}

	// Last resort for labeled citation anchors: splice them in after a
	// section marker or the first paragraph, ignoring natural placement.
	for _, a := range lost {
		if !hasCitationLabel(a.Text) {
			continue
		}
		text = spliceAfterAnchorSlot(a, text)
	}

	return text, unrecovered
}

func hasCitationLabel(text string) bool {
	for _, label := range citationLabels {
		if strings.HasPrefix(text, label) {
			return true
		}
	}
	return false
}

// wrapFirst wraps the first whole-word occurrence of phrase outside any
// existing anchor tag in an anchor pointing at url.
func wrapFirst(text, phrase, url string) (string, bool) {
	if strings.TrimSpace(phrase) == "" {
		return text, false
	}
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`)
	if err != nil {
		return text, false
	}

	taken := anchorRe.FindAllStringIndex(text, -1)
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if insideAny(loc, taken) {
			continue
		}
		matched := text[loc[0]:loc[1]]
		return text[:loc[0]] + `<a href="` + url + `">` + matched + `</a>` + text[loc[1]:], true
	}
	return text, false
}

func insideAny(loc []int, spans [][]int) bool {
	for _, s := range spans {
		if loc[0] >= s[0] && loc[1] <= s[1] {
			return true
		}
	}
	return false
}

func matchExactText(a Anchor, text string) (string, bool) {
	return wrapFirst(text, a.Text, a.URL)
}

func matchWithoutLabel(a Anchor, text string) (string, bool) {
	for _, label := range citationLabels {
		if strings.HasPrefix(a.Text, label) {
			stripped := strings.TrimSpace(strings.TrimPrefix(a.Text, label))
			return wrapFirst(text, stripped, a.URL)
		}
	}
	return text, false
}

func matchThreeWordWindow(a Anchor, text string) (string, bool) {
	words := strings.Fields(a.Text)
	if len(words) < 3 {
		return text, false
	}
	for i := 0; i+3 <= len(words); i++ {
		window := strings.Join(words[i:i+3], " ")
		if patched, ok := wrapFirst(text, window, a.URL); ok {
			return patched, true
		}
	}
	return text, false
}

func insertAfterSectionMarker(a Anchor, text string) (string, bool) {
	if !hasCitationLabel(a.Text) {
		return text, false
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !isSectionMarker(line) {
			continue
		}
		lines = append(lines[:i+1], append([]string{a.Tag}, lines[i+1:]...)...)
		return strings.Join(lines, "\n"), true
	}
	return text, false
}

func isSectionMarker(line string) bool {
	for _, marker := range sectionMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

const keywordTextMinLen = 50

func matchKeyword(a Anchor, text string) (string, bool) {
	if len(a.Text) <= keywordTextMinLen {
		return text, false
	}
	tried := 0
	for _, w := range strings.Fields(a.Text) {
		w = strings.Trim(w, `.,;:!?"'()`)
		if len(w) <= 4 {
			continue
		}
		if patched, ok := wrapFirst(text, w, a.URL); ok {
			return patched, true
		}
		tried++
		if tried == 3 {
			break
		}
	}
	return text, false
}

// spliceAfterAnchorSlot force-inserts the full anchor tag after a section
// marker, or after the first paragraph when no marker exists.
func spliceAfterAnchorSlot(a Anchor, text string) string {
	lines := strings.Split(text, "\n")
	at := -1
	for i, line := range lines {
		if isSectionMarker(line) {
			at = i
			break
		}
	}
	if at < 0 {
		for i, line := range lines {
			if strings.TrimSpace(line) != "" {
				at = i
				break
			}
		}
	}
	if at < 0 {
		return text + "\n" + a.Tag
	}
	lines = append(lines[:at+1], append([]string{a.Tag}, lines[at+1:]...)...)
	return strings.Join(lines, "\n")
}
