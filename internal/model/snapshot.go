package model

import "time"

// BufferResult holds the computed distance-to-barrier metrics for one tick.
type BufferResult struct {
	CurrentPrice float64 `json:"current_price"`
	LongBuffer   float64 `json:"long_buffer"`
	ShortBuffer  float64 `json:"short_buffer"`
	Gearing      float64 `json:"gearing"`
	RiskTag      string  `json:"risk_tag"`
	LongColor    string  `json:"long_color"`
	ShortColor   string  `json:"short_color"`
}

// Simulation is a grid of simulated forward prices: Grid[step][path].
// Row 0 holds the current price in every column.
type Simulation struct {
	Steps   int         `json:"steps"`
	Paths   int         `json:"paths"`
	Drift   float64     `json:"drift"`
	Vol     float64     `json:"vol"`
	Grid    [][]float64 `json:"grid"`
	LongKO  float64     `json:"long_ko"`
	ShortKO float64     `json:"short_ko"`
}

// Snapshot is the composed output of one refresh tick. Either Buffers and
// Simulation are set, or Error carries a single human-readable message and
// the charts stay empty.
type Snapshot struct {
	Instrument  Instrument    `json:"instrument"`
	Buffers     *BufferResult `json:"buffers,omitempty"`
	Simulation  *Simulation   `json:"simulation,omitempty"`
	Error       string        `json:"error,omitempty"`
	GeneratedAt time.Time     `json:"generated_at"`
}
