package model

import "time"

// Bar represents a single daily candlestick bar.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64 // adjusted close when the feed provides one
	Volume float64
}

// PriceSeries holds the trailing daily close history fetched for one
// refresh tick. It is rebuilt from scratch every tick and never cached.
type PriceSeries struct {
	Symbol       string
	Bars         []Bar
	CurrentPrice float64
	FetchedAt    time.Time
}

// Closes returns the close prices in chronological order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}
