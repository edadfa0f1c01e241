package rosomaxa

import "runtime"

// Config holds the manager's tunable parameters. All fields are fixed at
// construction time; there is no reload path.
type Config struct {
	// SelectionSize is the number of parent references Select yields.
	SelectionSize int

	// EliteSize is the elite archive's capacity.
	EliteSize int

	// NodeSize is each GSOM node's per-node archive capacity.
	NodeSize int

	// SpreadFactor sets the GSOM growth threshold; must be in (0,1].
	SpreadFactor float64

	// ReductionFactor is the GSOM error-redistribution ratio on
	// distribute; must be in (0,1).
	ReductionFactor float64

	// DistributionFactor scales neighbour weight updates relative to the
	// BMU's; must be in (0,1).
	DistributionFactor float64

	// LearningRate scales the BMU's own weight update; must be in (0,1).
	LearningRate float64

	// HitMemory is the generation period between optimizeNetwork calls;
	// must be > 0.
	HitMemory uint64

	// ExplorationRatio is the termination-estimate threshold at which the
	// manager leaves Exploration for Exploitation.
	ExplorationRatio float64

	// FitnessEpsilon is the tolerance below which two fitness components
	// are considered equal.
	FitnessEpsilon float64

	// OnEvent, if non-nil, receives a diagnostic Event for notable
	// internal transitions. The manager never performs I/O itself; this
	// is the only hook a driver has into its internal bookkeeping.
	OnEvent func(Event)
}

// DefaultConfig returns the reference parameterization: SelectionSize set
// to the host's CPU count, everything else a fixed constant tuned for the
// reference search.
func DefaultConfig() Config {
	return Config{
		SelectionSize:      runtime.NumCPU(),
		EliteSize:          2,
		NodeSize:           2,
		SpreadFactor:       0.5,
		ReductionFactor:    0.1,
		DistributionFactor: 0.25,
		LearningRate:       0.1,
		HitMemory:          1000,
		ExplorationRatio:   0.9,
		FitnessEpsilon:     1e-9,
	}
}

func (c Config) validate() bool {
	return c.EliteSize >= 2 && c.NodeSize >= 2 && c.SelectionSize >= 4
}
