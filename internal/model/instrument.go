package model

// Instrument describes a knock-out warrant pair tracked against one
// underlying equity. Built from config at startup and never mutated.
type Instrument struct {
	Label   string  `json:"label"`
	Symbol  string  `json:"symbol"`
	LongKO  float64 `json:"long_ko"`
	ShortKO float64 `json:"short_ko"`
	Gearing float64 `json:"gearing"`
}
