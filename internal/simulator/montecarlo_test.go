package simulator

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/imposera/remora-tracker/internal/model"
)

func seriesFromCloses(closes []float64) *model.PriceSeries {
	bars := make([]model.Bar, len(closes))
	base := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		bars[i] = model.Bar{Time: base.AddDate(0, 0, i), Close: c}
	}
	s := &model.PriceSeries{Symbol: "WES.AX", Bars: bars, FetchedAt: time.Now()}
	if len(closes) > 0 {
		s.CurrentPrice = closes[len(closes)-1]
	}
	return s
}

func TestLogReturns(t *testing.T) {
	returns, err := LogReturns([]float64{100, 110, 121})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(returns) != 2 {
		t.Fatalf("expected 2 returns, got %d", len(returns))
	}
	want := math.Log(1.1)
	for i, r := range returns {
		if math.Abs(r-want) > 1e-12 {
			t.Errorf("return %d: expected %.12f, got %.12f", i, want, r)
		}
	}
}

func TestLogReturns_InsufficientData(t *testing.T) {
	for _, closes := range [][]float64{nil, {}, {100}} {
		if _, err := LogReturns(closes); err != ErrInsufficientData {
			t.Errorf("closes %v: expected ErrInsufficientData, got %v", closes, err)
		}
	}
}

func TestLogReturns_NonPositivePrice(t *testing.T) {
	if _, err := LogReturns([]float64{100, 0, 110}); err == nil {
		t.Error("expected error for zero price")
	}
}

func TestEstimateDriftVol(t *testing.T) {
	mu, sigma := EstimateDriftVol([]float64{0.01, 0.03})
	if math.Abs(mu-0.02) > 1e-12 {
		t.Errorf("expected drift 0.02, got %.12f", mu)
	}
	// sample stddev of {0.01, 0.03} = sqrt(2*0.0001/1) ≈ 0.0141421
	if math.Abs(sigma-math.Sqrt(0.0002)) > 1e-12 {
		t.Errorf("expected vol %.12f, got %.12f", math.Sqrt(0.0002), sigma)
	}

	mu, sigma = EstimateDriftVol([]float64{0.05})
	if mu != 0.05 || sigma != 0 {
		t.Errorf("single return: expected (0.05, 0), got (%.4f, %.4f)", mu, sigma)
	}
}

func TestSimulate_GridShape(t *testing.T) {
	series := seriesFromCloses([]float64{100, 101, 99, 102, 103})
	inst := model.Instrument{LongKO: 60, ShortKO: 97.14}

	sim, err := Simulate(series, inst, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sim.Steps != 30 || sim.Paths != 10 {
		t.Fatalf("expected 30x10 grid, got %dx%d", sim.Steps, sim.Paths)
	}
	if len(sim.Grid) != 30 {
		t.Fatalf("expected 30 rows, got %d", len(sim.Grid))
	}
	for i, row := range sim.Grid {
		if len(row) != 10 {
			t.Fatalf("row %d: expected 10 columns, got %d", i, len(row))
		}
	}
	for j, v := range sim.Grid[0] {
		if v != series.CurrentPrice {
			t.Errorf("row 0 col %d: expected current price %.2f, got %.2f", j, series.CurrentPrice, v)
		}
	}
	for i, row := range sim.Grid {
		for j, v := range row {
			if math.IsNaN(v) || v <= 0 {
				t.Fatalf("grid[%d][%d] = %v, expected positive finite price", i, j, v)
			}
		}
	}
	if sim.LongKO != 60 || sim.ShortKO != 97.14 {
		t.Errorf("expected barrier levels carried through, got (%.2f, %.2f)", sim.LongKO, sim.ShortKO)
	}
}

func TestSimulate_InsufficientData(t *testing.T) {
	series := seriesFromCloses([]float64{100})
	inst := model.Instrument{LongKO: 60, ShortKO: 97.14}
	if _, err := Simulate(series, inst, nil); err != ErrInsufficientData {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestSimulate_Deterministic(t *testing.T) {
	series := seriesFromCloses([]float64{100, 102, 101, 104, 103, 105})
	inst := model.Instrument{LongKO: 60, ShortKO: 97.14}

	a, err := Simulate(series, inst, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Simulate(series, inst, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range a.Grid {
		for j := range a.Grid[i] {
			if a.Grid[i][j] != b.Grid[i][j] {
				t.Fatalf("grid[%d][%d] differs across identically seeded runs", i, j)
			}
		}
	}
}

func TestSimulate_ZeroVolatility(t *testing.T) {
	// Constant-ratio series: every log-return is ln(1.1), volatility is 0,
	// so each step multiplies by exactly exp(mu).
	series := seriesFromCloses([]float64{100, 110, 121})
	inst := model.Instrument{LongKO: 60, ShortKO: 97.14}

	sim, err := Simulate(series, inst, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < sim.Steps; i++ {
		for j := 0; j < sim.Paths; j++ {
			want := sim.Grid[i-1][j] * 1.1
			if math.Abs(sim.Grid[i][j]-want) > 1e-6 {
				t.Fatalf("grid[%d][%d]: expected %.6f, got %.6f", i, j, want, sim.Grid[i][j])
			}
		}
	}
}
