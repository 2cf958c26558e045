// Package market wraps the Finnhub API into the quote shape the price
// action composer consumes. It is a plain fetch-and-map layer: missing
// fields stay zero and absence of extended-hours data is normal.
package market

import (
	"context"
	"fmt"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"

	"github.com/cohen2you/wiim-project-v2-sub002/internal/model"
)

type QuoteClient struct {
	client *finnhub.DefaultApiService
}

func NewQuoteClient(apiKey string) *QuoteClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &QuoteClient{client: client}
}

func (c *QuoteClient) Quote(symbol string) (*model.PriceQuote, error) {
	res, _, err := c.client.Quote(context.Background()).Symbol(symbol).Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub quote %s: %w", symbol, err)
	}

	q := &model.PriceQuote{
		Symbol:    symbol,
		FetchedAt: time.Now(),
	}

	if res.C != nil {
		q.LastPrice = float64(*res.C)
		q.Close = float64(*res.C)
	}
	if res.D != nil {
		q.Change = float64(*res.D)
	}
	if res.Dp != nil {
		q.ChangePercent = float64(*res.Dp)
	}
	if res.Pc != nil {
		q.PreviousClose = float64(*res.Pc)
	}

	profile, _, err := c.client.CompanyProfile2(context.Background()).Symbol(symbol).Execute()
	if err == nil && profile.Name != nil {
		q.CompanyName = *profile.Name
	}

	return q, nil
}
