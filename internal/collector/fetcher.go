package collector

import "github.com/imposera/remora-tracker/internal/model"

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchDailyBars returns daily bars covering the given Yahoo-style
	// range string ("6mo", "1y", ...), oldest first.
	FetchDailyBars(symbol, rng string) ([]model.Bar, error)
	// FetchLiveQuote returns the latest regular-market price.
	FetchLiveQuote(symbol string) (float64, error)
	Name() string
}
