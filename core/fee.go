package core

// fee.go – PlatariumCore
//
// Load-adaptive fee schedule. Pure integer functions only; no floating
// point, no wall-clock time.

const (
	MicroPLPPerPLP    = 1_000_000
	BaseTxFeeMicroPLP = 1
	MaxBatchSize      = 1000
	MinFeeMicroPLP    = 1
)

// LoadPercentage returns the mempool load as an integer percentage of
// MaxBatchSize, capped at 100.
func LoadPercentage(pending uint64) uint64 {
	if pending >= MaxBatchSize {
		return 100
	}
	return (pending * 100) / MaxBatchSize
}

// Multiplier maps a load percentage to a fee multiplier: 1, 2, 3, or 5
// for the inclusive buckets [0,30], [31,60], [61,80], [81,100].
func Multiplier(loadPct uint64) uint64 {
	switch {
	case loadPct <= 30:
		return 1
	case loadPct <= 60:
		return 2
	case loadPct <= 80:
		return 3
	default:
		return 5
	}
}

// FeeFromLoad returns the per-transaction fee in microPLP for the given
// number of pending mempool transactions. Never returns 0.
func FeeFromLoad(pending uint64) uint64 {
	return BaseTxFeeMicroPLP * Multiplier(LoadPercentage(pending))
}
