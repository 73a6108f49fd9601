package collector

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/imposera/remora-tracker/internal/model"
)

// ErrNoData signals that the feed returned an empty result set.
var ErrNoData = errors.New("no price data available")

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64
	Bars  []model.Bar
	Err   error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_, rng string) ([]model.Bar, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	return GenerateMockBars(m.Price, 126), nil // ~6 months of trading days
}

func (m *MockFetcher) FetchLiveQuote(_ string) (float64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Price, nil
}

// GenerateMockBars produces a gently drifting series around basePrice.
func GenerateMockBars(basePrice float64, count int) []model.Bar {
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector fetches the trailing price history and resolves the current price.
type Collector struct {
	Fetcher      Fetcher
	Symbol       string
	HistoryRange string
	UseLiveQuote bool
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbol, historyRange string, useLiveQuote bool) *Collector {
	return &Collector{
		Fetcher:      fetcher,
		Symbol:       symbol,
		HistoryRange: historyRange,
		UseLiveQuote: useLiveQuote,
	}
}

// Collect fetches the daily series and determines the current price.
// An empty feed result maps to ErrNoData rather than a transport error.
func (c *Collector) Collect() (*model.PriceSeries, error) {
	bars, err := c.Fetcher.FetchDailyBars(c.Symbol, c.HistoryRange)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars: %w", err)
	}
	if len(bars) == 0 {
		return nil, ErrNoData
	}

	current := bars[len(bars)-1].Close
	if c.UseLiveQuote {
		if px, err := c.Fetcher.FetchLiveQuote(c.Symbol); err != nil {
			log.Printf("[WARN] live quote failed: %v, using last close", err)
		} else if px > 0 {
			current = px
		}
	}

	return &model.PriceSeries{
		Symbol:       c.Symbol,
		Bars:         bars,
		CurrentPrice: current,
		FetchedAt:    time.Now(),
	}, nil
}
