package handler

type GenerateRequest struct {
	SourceText   string   `json:"source_text"`
	Ticker       string   `json:"ticker"`
	RelatedLinks []string `json:"related_links"`
}

type GenerateResponse struct {
	Headline         string  `json:"headline"`
	Body             string  `json:"body"`
	Ticker           string  `json:"ticker,omitempty"`
	PriceTarget      float64 `json:"price_target,omitempty"`
	PublicationDay   string  `json:"publication_day"`
	InaccurateQuotes int     `json:"inaccurate_quotes"`
	UnrecoveredLinks int     `json:"unrecovered_links"`
	ModelUsed        string  `json:"model_used"`
	GeneratedAt      string  `json:"generated_at"`
}

type EnqueueResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

type RewriteRequest struct {
	Text         string `json:"text"`
	Instructions string `json:"instructions"`
}

type RewriteResponse struct {
	Text             string `json:"text"`
	UnrecoveredLinks int    `json:"unrecovered_links"`
	Reverted         bool   `json:"reverted"`
}
