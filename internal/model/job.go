package model

import "time"

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// GenerationJob is the payload carried on the worker queue. SourceText is
// the raw analyst note or press release; RelatedLinks are anchor tags the
// finished article must retain.
type GenerationJob struct {
	ID           string   `json:"id"`
	SourceText   string   `json:"source_text"`
	Ticker       string   `json:"ticker,omitempty"`
	RelatedLinks []string `json:"related_links,omitempty"`
	AttemptCount int      `json:"attempt_count"`
}

// RewriteResult reports one rewrite round. Reverted means too many
// hyperlinks were lost and Text is the pre-rewrite original.
type RewriteResult struct {
	Text             string
	UnrecoveredLinks int
	Reverted         bool
}

type GenerationResult struct {
	Headline         string
	Body             string
	Ticker           string
	PriceTarget      float64
	PublicationDay   string
	InaccurateQuotes int
	UnrecoveredLinks int
	ModelUsed        string
	GeneratedAt      time.Time
}
