package calculator

import (
	"math"
	"testing"

	"github.com/imposera/remora-tracker/internal/model"
)

func TestBuffers_ExactValues(t *testing.T) {
	longBuf, shortBuf, err := Buffers(100, 60, 97.14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// (100-60)/60*100 = 66.666...
	if math.Abs(longBuf-66.666667) > 1e-6 {
		t.Errorf("long buffer: expected 66.67, got %.6f", longBuf)
	}
	// (97.14-100)/97.14*100 = -2.9442...
	if math.Abs(shortBuf-(-2.944204)) > 1e-6 {
		t.Errorf("short buffer: expected -2.94, got %.6f", shortBuf)
	}
}

func TestBuffers_InvalidInputs(t *testing.T) {
	tests := []struct {
		name                   string
		price, longKO, shortKO float64
	}{
		{"zero price", 0, 60, 97.14},
		{"negative price", -1, 60, 97.14},
		{"zero long barrier", 100, 0, 97.14},
		{"negative short barrier", 100, 60, -97.14},
	}
	for _, tt := range tests {
		if _, _, err := Buffers(tt.price, tt.longKO, tt.shortKO); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestRiskTag_StepFunction(t *testing.T) {
	tests := []struct {
		gearing float64
		tag     string
	}{
		{73, RiskHigh},
		{51, RiskHigh},
		{50, RiskModerate},
		{40, RiskModerate},
		{31, RiskModerate},
		{30, RiskStable},
		{20, RiskStable},
	}
	for _, tt := range tests {
		if got := RiskTag(tt.gearing); got != tt.tag {
			t.Errorf("gearing %.0f: expected %q, got %q", tt.gearing, tt.tag, got)
		}
	}
}

func TestGaugeColors_Threshold(t *testing.T) {
	tests := []struct {
		longBuf, shortBuf     float64
		longColor, shortColor string
	}{
		{10, 10, ColorGreen, ColorRed},
		{5, 5, ColorGreen, ColorRed},
		{4.9, 4.9, ColorOrange, ColorDarkRed},
		{-3, -3, ColorOrange, ColorDarkRed},
	}
	for _, tt := range tests {
		lc, sc := GaugeColors(tt.longBuf, tt.shortBuf)
		if lc != tt.longColor || sc != tt.shortColor {
			t.Errorf("buffers (%.1f, %.1f): expected (%s, %s), got (%s, %s)",
				tt.longBuf, tt.shortBuf, tt.longColor, tt.shortColor, lc, sc)
		}
	}
}

func TestEvaluate_ComposedResult(t *testing.T) {
	inst := model.Instrument{Symbol: "WES.AX", LongKO: 60, ShortKO: 97.14, Gearing: 73}
	res, err := Evaluate(70.50, inst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CurrentPrice != 70.50 {
		t.Errorf("expected current price 70.50, got %.2f", res.CurrentPrice)
	}
	if res.RiskTag != RiskHigh {
		t.Errorf("expected %q for gearing 73, got %q", RiskHigh, res.RiskTag)
	}
	// long buffer (70.5-60)/60*100 = 17.5 >= 5 -> green
	if res.LongColor != ColorGreen {
		t.Errorf("expected green long gauge, got %s", res.LongColor)
	}
	// short buffer (97.14-70.5)/97.14*100 = 27.4 >= 5 -> red
	if res.ShortColor != ColorRed {
		t.Errorf("expected red short gauge, got %s", res.ShortColor)
	}
}

func TestEvaluate_InvalidGearing(t *testing.T) {
	inst := model.Instrument{LongKO: 60, ShortKO: 97.14}
	if _, err := Evaluate(100, inst); err == nil {
		t.Error("expected error for zero gearing")
	}
}
