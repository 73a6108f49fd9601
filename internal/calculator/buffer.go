package calculator

import (
	"errors"

	"github.com/imposera/remora-tracker/internal/model"
)

// Risk classification labels keyed on gearing.
const (
	RiskHigh     = "HIGH RISK"
	RiskModerate = "MODERATE"
	RiskStable   = "Stable"
)

// Gauge color hints for the two buffer sides.
const (
	ColorGreen   = "green"
	ColorOrange  = "orange"
	ColorRed     = "red"
	ColorDarkRed = "darkred"
)

// safetyThreshold is the buffer percentage at which the gauge color flips.
const safetyThreshold = 5.0

// Buffers computes the percentage distance from the current price to each
// knock-out barrier. All inputs must be positive.
func Buffers(price, longKO, shortKO float64) (longBuf, shortBuf float64, err error) {
	if price <= 0 {
		return 0, 0, errors.New("price must be positive")
	}
	if longKO <= 0 {
		return 0, 0, errors.New("long barrier must be positive")
	}
	if shortKO <= 0 {
		return 0, 0, errors.New("short barrier must be positive")
	}
	longBuf = (price - longKO) / longKO * 100
	shortBuf = (shortKO - price) / shortKO * 100
	return longBuf, shortBuf, nil
}

// RiskTag classifies leverage risk as a step function of gearing.
func RiskTag(gearing float64) string {
	switch {
	case gearing > 50:
		return RiskHigh
	case gearing > 30:
		return RiskModerate
	default:
		return RiskStable
	}
}

// GaugeColors returns the chart color hints for each buffer side.
func GaugeColors(longBuf, shortBuf float64) (longColor, shortColor string) {
	longColor = ColorOrange
	if longBuf >= safetyThreshold {
		longColor = ColorGreen
	}
	shortColor = ColorDarkRed
	if shortBuf >= safetyThreshold {
		shortColor = ColorRed
	}
	return longColor, shortColor
}

// Evaluate composes the full buffer result for an instrument at the given price.
func Evaluate(price float64, inst model.Instrument) (*model.BufferResult, error) {
	if inst.Gearing <= 0 {
		return nil, errors.New("gearing must be positive")
	}
	longBuf, shortBuf, err := Buffers(price, inst.LongKO, inst.ShortKO)
	if err != nil {
		return nil, err
	}
	longColor, shortColor := GaugeColors(longBuf, shortBuf)
	return &model.BufferResult{
		CurrentPrice: price,
		LongBuffer:   longBuf,
		ShortBuffer:  shortBuf,
		Gearing:      inst.Gearing,
		RiskTag:      RiskTag(inst.Gearing),
		LongColor:    longColor,
		ShortColor:   shortColor,
	}, nil
}
