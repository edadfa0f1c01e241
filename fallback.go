package rosomaxa

import "github.com/vrp-toolkit/rosomaxa/elitism"

// pureElitism is the fallback Population returned by NewWithFallback when
// Config fails validation: a Population backed by nothing but an elite
// archive, with no GSOM network and no phase transitions. It always
// reports PhaseExploitation, since "archive-only selection" is exactly
// what Exploitation means for the full manager.
type pureElitism struct {
	cfg   Config
	elite *elitism.Archive
}

var _ Population = (*pureElitism)(nil)

func newPureElitism(cfg Config, rng Random) *pureElitism {
	capacity := cfg.EliteSize
	if capacity < 1 {
		capacity = 1
	}
	selectionSize := cfg.SelectionSize
	if selectionSize < 1 {
		selectionSize = 1
	}
	epsilon := cfg.FitnessEpsilon
	if epsilon <= 0 {
		epsilon = 1e-9
	}
	return &pureElitism{
		cfg:   cfg,
		elite: elitism.New(capacity, selectionSize, epsilon, rng),
	}
}

func (p *pureElitism) Add(ind Individual) bool {
	return p.elite.Add(wrap(ind.DeepCopy()))
}

func (p *pureElitism) AddAll(inds []Individual) bool {
	improved := false
	for _, ind := range inds {
		if p.Add(ind) {
			improved = true
		}
	}
	return improved
}

func (p *pureElitism) OnGeneration(Statistics) {}

func (p *pureElitism) Cmp(a, b Individual) int {
	return p.elite.Cmp(wrap(a), wrap(b))
}

func (p *pureElitism) Select() Iterator {
	return truncate(wrapArchiveIterator(p.elite.Select()), p.cfg.SelectionSize)
}

func (p *pureElitism) Ranked() RankedIterator {
	return wrapArchiveRanked(p.elite.Ranked())
}

func (p *pureElitism) Size() int { return p.elite.Size() }

func (p *pureElitism) SelectionPhase() SelectionPhase { return PhaseExploitation }

func (p *pureElitism) String() string { return archiveState(p.elite) }
