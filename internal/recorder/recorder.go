package recorder

// TickRecord holds the data persisted for one refresh tick.
type TickRecord struct {
	Price       float64
	LongBuffer  float64
	ShortBuffer float64
	RiskTag     string
	Error       string
}

// Recorder persists tick history for later analysis.
type Recorder interface {
	RecordTick(rec *TickRecord) error
	Close() error
}
