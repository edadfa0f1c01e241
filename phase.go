package rosomaxa

import "github.com/vrp-toolkit/rosomaxa/gsom"

// phase is the manager's algebraic state: exactly one of initialPhase,
// explorationPhase, or exploitationPhase is active at a time. Transitions
// replace the whole value so stale sub-state (e.g. a drained bootstrap
// list) can never be observed after promotion.
type phase interface {
	tag() SelectionPhase
}

type initialPhase struct {
	bootstrap []Individual
}

func (*initialPhase) tag() SelectionPhase { return PhaseInitial }

type explorationPhase struct {
	time    uint64
	network *gsom.Network[*nodeStorage]

	// shuffled holds the non-empty node archives in PRNG-shuffled order,
	// recomputed once per generation by fillPopulations.
	shuffled []*nodeStorage
}

func (*explorationPhase) tag() SelectionPhase { return PhaseExploration }

type exploitationPhase struct{}

func (*exploitationPhase) tag() SelectionPhase { return PhaseExploitation }
