package simulator

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/imposera/remora-tracker/internal/model"
)

// Grid dimensions of the forward simulation.
const (
	Steps     = 30
	PathCount = 10
)

// ErrInsufficientData signals that the price history is too short to form
// even one log-return, so no simulation can run.
var ErrInsufficientData = errors.New("insufficient price history to simulate")

// LogReturns computes daily log-returns ln(p[t]/p[t-1]) for consecutive
// closes. Requires at least 2 positive prices.
func LogReturns(closes []float64) ([]float64, error) {
	if len(closes) < 2 {
		return nil, ErrInsufficientData
	}
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] <= 0 || closes[i] <= 0 {
			return nil, errors.New("non-positive price in series")
		}
		returns = append(returns, math.Log(closes[i]/closes[i-1]))
	}
	return returns, nil
}

// EstimateDriftVol returns the sample mean and sample standard deviation of
// the log-return series. A single return yields zero volatility.
func EstimateDriftVol(returns []float64) (mu, sigma float64) {
	n := len(returns)
	if n == 0 {
		return 0, 0
	}
	for _, r := range returns {
		mu += r
	}
	mu /= float64(n)

	if n < 2 {
		return mu, 0
	}
	var ss float64
	for _, r := range returns {
		d := r - mu
		ss += d * d
	}
	sigma = math.Sqrt(ss / float64(n-1))
	return mu, sigma
}

// Simulate generates the forward price grid using geometric Brownian motion:
// S(t+1) = S(t) * exp((mu - sigma^2/2) + sigma * Z). Drift and volatility are
// estimated from the series' daily log-returns; every path starts at the
// current price. rng may be nil, in which case a time-seeded source is used.
func Simulate(series *model.PriceSeries, inst model.Instrument, rng *rand.Rand) (*model.Simulation, error) {
	returns, err := LogReturns(series.Closes())
	if err != nil {
		return nil, err
	}
	if series.CurrentPrice <= 0 {
		return nil, errors.New("current price must be positive")
	}
	mu, sigma := EstimateDriftVol(returns)

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	grid := make([][]float64, Steps)
	grid[0] = make([]float64, PathCount)
	for j := 0; j < PathCount; j++ {
		grid[0][j] = series.CurrentPrice
	}
	drift := mu - 0.5*sigma*sigma
	for i := 1; i < Steps; i++ {
		grid[i] = make([]float64, PathCount)
		for j := 0; j < PathCount; j++ {
			z := rng.NormFloat64()
			grid[i][j] = grid[i-1][j] * math.Exp(drift+sigma*z)
		}
	}

	return &model.Simulation{
		Steps:   Steps,
		Paths:   PathCount,
		Drift:   mu,
		Vol:     sigma,
		Grid:    grid,
		LongKO:  inst.LongKO,
		ShortKO: inst.ShortKO,
	}, nil
}
