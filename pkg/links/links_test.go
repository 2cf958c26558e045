package links

import (
	"strings"
	"testing"
)

const originalText = `Acme Corp posted record earnings on Tuesday.

What To Know: The company beat consensus by a wide margin.

Also Read: <a href="https://example.com/related">Also Read: Acme Rival Stumbles On Guidance</a>

Analysts at <a href="https://example.com/firm">Bigbank Securities</a> maintained a Buy rating, citing comments from <a href="https://example.com/ceo">Chief Executive Jane Castellanos-Whitfield of Acme Corporation</a>.`

func TestRestore_PresentAnchorsUntouched(t *testing.T) {
	text, unrecovered := Restore(originalText, originalText)

	if unrecovered != 0 {
		t.Fatalf("unrecovered = %d, want 0", unrecovered)
	}
	if text != originalText {
		t.Errorf("text changed for identical rewrite")
	}
}

func TestRestore_ExactTextMatch(t *testing.T) {
	rewritten := "Analysts at Bigbank Securities kept their Buy rating intact."

	text, unrecovered := Restore(`<a href="https://example.com/firm">Bigbank Securities</a> said so.`, rewritten)

	if !strings.Contains(text, `<a href="https://example.com/firm">Bigbank Securities</a>`) {
		t.Errorf("anchor not restored: %q", text)
	}
	if unrecovered != 0 {
		t.Errorf("unrecovered = %d, want 0", unrecovered)
	}
}

func TestRestore_ExactTextMatchIsCaseInsensitive(t *testing.T) {
	rewritten := "Analysts at BIGBANK SECURITIES kept their rating."

	text, unrecovered := Restore(`<a href="https://example.com/firm">Bigbank Securities</a> said so.`, rewritten)

	if !strings.Contains(text, `<a href="https://example.com/firm">BIGBANK SECURITIES</a>`) {
		t.Errorf("matched occurrence not wrapped as found: %q", text)
	}
	if unrecovered != 0 {
		t.Errorf("unrecovered = %d, want 0", unrecovered)
	}
}

func TestRestore_LabelStrippedMatch(t *testing.T) {
	original := `<a href="https://example.com/related">Also Read: Acme Rival Stumbles On Guidance</a>`
	rewritten := "In related coverage, Acme Rival Stumbles On Guidance drew attention."

	text, unrecovered := Restore(original, rewritten)

	if !strings.Contains(text, `<a href="https://example.com/related">Acme Rival Stumbles On Guidance</a>`) {
		t.Errorf("label-stripped match failed: %q", text)
	}
	if unrecovered != 0 {
		t.Errorf("unrecovered = %d, want 0", unrecovered)
	}
}

func TestRestore_ThreeWordWindow(t *testing.T) {
	original := `<a href="https://example.com/story">Acme Shares Surge After Earnings Beat</a>`
	rewritten := "The stock jumped as shares surge after the report landed."

	text, unrecovered := Restore(original, rewritten)

	if !strings.Contains(text, `<a href="https://example.com/story">shares surge after</a>`) {
		t.Errorf("three-word window match failed: %q", text)
	}
	if unrecovered != 0 {
		t.Errorf("unrecovered = %d, want 0", unrecovered)
	}
}

func TestRestore_StructuralInsertAfterMarker(t *testing.T) {
	original := `<a href="https://example.com/related">Also Read: Completely Unrelated Headline Text</a>`
	rewritten := "Acme posted earnings.\nWhat To Know: Margins expanded sharply.\nThe guidance was raised."

	text, unrecovered := Restore(original, rewritten)

	lines := strings.Split(text, "\n")
	if len(lines) != 4 || lines[2] != original {
		t.Errorf("anchor not spliced after marker: %q", text)
	}
	if unrecovered != 0 {
		t.Errorf("unrecovered = %d, want 0", unrecovered)
	}
}

func TestRestore_KeywordMatchForLongAnchorText(t *testing.T) {
	original := `<a href="https://example.com/ceo">Chief Executive Jane Castellanos-Whitfield of Acme Corporation</a>`
	rewritten := "Comments from Castellanos-Whitfield drove the move."

	text, unrecovered := Restore(original, rewritten)

	if !strings.Contains(text, `<a href="https://example.com/ceo">Castellanos-Whitfield</a>`) {
		t.Errorf("keyword match failed: %q", text)
	}
	if unrecovered != 0 {
		t.Errorf("unrecovered = %d, want 0", unrecovered)
	}
}

func TestRestore_UnrecoverableCounted(t *testing.T) {
	original := `<a href="https://example.com/firm">Bigbank Securities</a>`
	rewritten := "Nothing in this text mentions that firm at all."

	text, unrecovered := Restore(original, rewritten)

	if unrecovered != 1 {
		t.Errorf("unrecovered = %d, want 1", unrecovered)
	}
	if strings.Contains(text, "example.com/firm") {
		t.Errorf("unlabeled anchor should not be force-inserted: %q", text)
	}
}

func TestRestore_LabeledFallbackStillCountsUnrecovered(t *testing.T) {
	original := `<a href="https://example.com/related">Also Read: Zero Trace Headline Here</a>`
	rewritten := "First paragraph of the rewrite.\nSecond paragraph follows."

	text, unrecovered := Restore(original, rewritten)

	if unrecovered != 1 {
		t.Errorf("unrecovered = %d, want 1", unrecovered)
	}
	lines := strings.Split(text, "\n")
	if len(lines) != 3 || lines[1] != original {
		t.Errorf("labeled anchor not force-inserted after first paragraph: %q", text)
	}
}

func TestRestore_AllAnchorsConserved(t *testing.T) {
	// Each anchor leaves a textual trace in the rewrite, so every one must
	// come back and the count must be zero.
	rewritten := `Acme Corp had a strong day on Tuesday.
What To Know: The beat was broad-based.
Coverage of Acme Rival Stumbles On Guidance continued, while Bigbank Securities stayed bullish on comments from Castellanos-Whitfield.`

	text, unrecovered := Restore(originalText, rewritten)

	if unrecovered != 0 {
		t.Fatalf("unrecovered = %d, want 0", unrecovered)
	}
	for _, a := range Anchors(originalText) {
		if !strings.Contains(text, a.URL) {
			t.Errorf("anchor %q lost", a.URL)
		}
	}
}

func TestAnchors_DocumentOrder(t *testing.T) {
	anchors := Anchors(originalText)

	if len(anchors) != 3 {
		t.Fatalf("anchors = %d, want 3", len(anchors))
	}
	if anchors[0].URL != "https://example.com/related" || anchors[0].Position != 0 {
		t.Errorf("first anchor = %+v", anchors[0])
	}
	if anchors[2].Text != "Chief Executive Jane Castellanos-Whitfield of Acme Corporation" {
		t.Errorf("third anchor text = %q", anchors[2].Text)
	}
}
