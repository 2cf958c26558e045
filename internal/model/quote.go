package model

import "time"

type PriceQuote struct {
	Symbol        string
	CompanyName   string
	LastPrice     float64
	Change        float64
	ChangePercent float64
	Close         float64
	PreviousClose float64

	// Extended-hours fields are zero when the upstream source has no
	// pre/post-market data for the symbol.
	ExtendedHoursPrice         float64
	ExtendedHoursChangePercent float64

	FetchedAt time.Time
}
