// Package priceaction renders the canonical closing sentence reporting a
// stock's recent move. Prices always carry two decimals and percentages are
// rendered as absolute values with a direction word; a leading minus sign
// never appears in copy.
package priceaction

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cohen2you/wiim-project-v2-sub002/internal/model"
)

type Session string

const (
	SessionPremarket  Session = "premarket"
	SessionRegular    Session = "regular"
	SessionAfterHours Session = "afterhours"
	SessionClosed     Session = "closed"
)

// Exchange session windows in minutes after midnight, local exchange time.
const (
	premarketOpen = 4 * 60
	regularOpen   = 9*60 + 30
	regularClose  = 16 * 60
	afterClose    = 20 * 60
)

// SessionAt classifies t, which must already be in the exchange's local
// timezone. The caller owns the clock; this package never reads one.
func SessionAt(t time.Time) Session {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return SessionClosed
	}
	minutes := t.Hour()*60 + t.Minute()
	switch {
	case minutes >= premarketOpen && minutes < regularOpen:
		return SessionPremarket
	case minutes >= regularOpen && minutes < regularClose:
		return SessionRegular
	case minutes >= regularClose && minutes < afterClose:
		return SessionAfterHours
	default:
		return SessionClosed
	}
}

func price(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// pctMove returns the absolute percentage and a direction flag. The
// regular-session move is always recomputed from close and previous close;
// the upstream change-percent field may already reflect extended-hours
// trading and cannot be trusted for the regular clause.
func regularMove(q model.PriceQuote) (string, bool) {
	if q.PreviousClose == 0 {
		return absPct(q.ChangePercent)
	}
	prev := decimal.NewFromFloat(q.PreviousClose)
	pct := decimal.NewFromFloat(q.Close).Sub(prev).Div(prev).Mul(decimal.NewFromInt(100))
	return pct.Abs().StringFixed(2), pct.Sign() >= 0
}

func absPct(v float64) (string, bool) {
	d := decimal.NewFromFloat(v)
	return d.Abs().StringFixed(2), d.Sign() >= 0
}

func direction(up bool, present bool) string {
	if present {
		if up {
			return "up"
		}
		return "down"
	}
	if up {
		return "rose"
	}
	return "fell"
}

// Compose renders the price action line for one ticker. The quote is
// externally supplied and read-only; dayOfWeek is the publication day name.
func Compose(ticker string, q model.PriceQuote, session Session, dayOfWeek string) string {
	name := q.CompanyName
	if name == "" {
		name = ticker
	}

	var clause string
	switch session {
	case SessionPremarket:
		// A zero or missing premarket delta is stale data, not an
		// unchanged print; the percentage is omitted rather than shown
		// as 0.00%.
		if q.ChangePercent != 0 {
			pct, u := absPct(q.ChangePercent)
			clause = fmt.Sprintf("%s shares were %s %s%% at $%s during premarket trading on %s",
				name, direction(u, true), pct, price(q.LastPrice), dayOfWeek)
		} else {
			clause = fmt.Sprintf("%s shares were trading at $%s during premarket trading on %s",
				name, price(q.LastPrice), dayOfWeek)
		}
	case SessionAfterHours:
		pct, u := regularMove(q)
		if q.ExtendedHoursPrice != 0 && q.ExtendedHoursChangePercent != 0 {
			extPct, extUp := absPct(q.ExtendedHoursChangePercent)
			clause = fmt.Sprintf("%s shares %s %s%% to close at $%s and were %s %s%% at $%s during after-hours trading on %s",
				name, direction(u, false), pct, price(q.Close),
				direction(extUp, true), extPct, price(q.ExtendedHoursPrice), dayOfWeek)
		} else {
			clause = fmt.Sprintf("%s shares %s %s%% to close at $%s on %s; the stock is currently in the after-hours session",
				name, direction(u, false), pct, price(q.Close), dayOfWeek)
		}
	case SessionClosed:
		pct, u := regularMove(q)
		clause = fmt.Sprintf("%s shares %s %s%% to $%s during regular trading on %s",
			name, direction(u, false), pct, price(q.Close), dayOfWeek)
	default:
		pct, u := regularMove(q)
		clause = fmt.Sprintf("%s shares were %s %s%% at $%s at the time of publication on %s",
			name, direction(u, true), pct, price(q.LastPrice), dayOfWeek)
	}

	return "<strong>Price Action:</strong> " + clause + "."
}
