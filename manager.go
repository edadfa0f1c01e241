package rosomaxa

import (
	"fmt"
	"sort"

	"github.com/vrp-toolkit/rosomaxa/elitism"
	"github.com/vrp-toolkit/rosomaxa/gsom"
	"github.com/vrp-toolkit/rosomaxa/internal/runningstats"
)

const (
	optimizePercentileThreshold = 0.25
	optimizeRebalanceCount      = 10
)

// RosomaxaPopulation is the adaptive population manager: one elite
// archive, one GSOM network of node-local archives, and the three-phase
// state machine that routes Add calls and shapes Select's output.
type RosomaxaPopulation struct {
	cfg   Config
	rng   Random
	elite *elitism.Archive
	phase phase
}

var _ Population = (*RosomaxaPopulation)(nil)

// NewRosomaxaPopulation validates cfg (EliteSize >= 2, NodeSize >= 2,
// SelectionSize >= 4) and constructs a manager in the Initial phase. On
// validation failure it returns ErrInvalidConfig; callers that want a
// working Population regardless should use NewWithFallback instead.
func NewRosomaxaPopulation(cfg Config, rng Random) (*RosomaxaPopulation, error) {
	if !cfg.validate() {
		return nil, fmt.Errorf("%w: elite_size=%d node_size=%d selection_size=%d must satisfy elite_size>=2, node_size>=2, selection_size>=4",
			ErrInvalidConfig, cfg.EliteSize, cfg.NodeSize, cfg.SelectionSize)
	}
	if cfg.FitnessEpsilon <= 0 {
		cfg.FitnessEpsilon = 1e-9
	}
	return &RosomaxaPopulation{
		cfg:   cfg,
		rng:   rng,
		elite: elitism.New(cfg.EliteSize, cfg.SelectionSize, cfg.FitnessEpsilon, rng),
		phase: &initialPhase{},
	}, nil
}

// NewWithFallback constructs a RosomaxaPopulation, or -- if cfg fails
// validation -- a pure-elitism Population with the same EliteSize and
// SelectionSize. It never returns an error; this is the constructor a
// driver should reach for when it cannot sensibly react to a construction
// failure.
func NewWithFallback(cfg Config, rng Random) Population {
	pop, err := NewRosomaxaPopulation(cfg, rng)
	if err != nil {
		return newPureElitism(cfg, rng)
	}
	return pop
}

// Add deep-copies ind, routes the copy into the current phase's sinks
// (bootstrap list in Initial, network in Exploration, nowhere in
// Exploitation), and attempts elite-archive admission guarded by the
// improvement test. It reports whether ind was admitted to the archive.
func (p *RosomaxaPopulation) Add(ind Individual) bool {
	switch ph := p.phase.(type) {
	case *initialPhase:
		if len(ph.bootstrap) < 4 {
			ph.bootstrap = append(ph.bootstrap, ind.DeepCopy())
		}
	case *explorationPhase:
		ph.network.Store(newIndividualInput(ind.DeepCopy()), ph.time)
	case *exploitationPhase:
		// the network is no longer fed once exploitation begins.
	}

	if p.isImprovement(ind) {
		return p.elite.Add(wrap(ind.DeepCopy()))
	}
	return false
}

// AddAll calls Add for each individual in order and reports whether any
// one of them was admitted.
func (p *RosomaxaPopulation) AddAll(inds []Individual) bool {
	improved := false
	for _, ind := range inds {
		if p.Add(ind) {
			improved = true
		}
	}
	return improved
}

// isImprovement reports whether ind would be an improvement over the
// elite archive's current best: the archive is empty, or ind is strictly
// better than best under the archive's fitness comparator.
func (p *RosomaxaPopulation) isImprovement(ind Individual) bool {
	best, ok := p.elite.Best()
	if !ok {
		return true
	}
	return p.elite.Cmp(wrap(ind), best) < 0
}

// OnGeneration advances the phase machine for the given generation's
// statistics: promotes Initial to Exploration once four solutions have
// arrived, runs periodic network optimization and the node-archive
// reshuffle while in Exploration, and demotes Exploration to Exploitation
// once the termination estimate crosses ExplorationRatio.
func (p *RosomaxaPopulation) OnGeneration(stats Statistics) {
	switch ph := p.phase.(type) {
	case *initialPhase:
		if len(ph.bootstrap) >= 4 {
			p.enterExploration(ph.bootstrap, stats.Generation)
		}
	case *explorationPhase:
		if stats.TerminationEstimate < p.cfg.ExplorationRatio {
			ph.time = stats.Generation
			if best, ok := p.elite.Best(); ok && p.cfg.HitMemory > 0 && ph.time%p.cfg.HitMemory == 0 {
				p.optimizeNetwork(ph.network, unwrap(best), ph.time)
			}
			p.fillPopulations(ph)
		} else {
			p.phase = &exploitationPhase{}
			p.cfg.emit(Event{
				Kind:        EventPhaseTransition,
				Generation:  stats.Generation,
				Phase:       PhaseExploitation,
				ArchiveSize: p.elite.Size(),
				Detail:      "exploration -> exploitation",
			})
		}
	case *exploitationPhase:
		// terminal phase; nothing left to transition to.
	}
}

func (p *RosomaxaPopulation) enterExploration(bootstrap []Individual, generation uint64) {
	var seed [4]gsom.Input
	for i := 0; i < 4; i++ {
		seed[i] = newIndividualInput(bootstrap[i])
	}
	network := gsom.NewNetwork(seed, p.cfg.SpreadFactor, p.cfg.ReductionFactor, p.cfg.DistributionFactor,
		p.cfg.LearningRate, p.cfg.HitMemory, func() *nodeStorage {
			return newNodeStorage(p.cfg.NodeSize, p.cfg.FitnessEpsilon, p.rng)
		})
	p.phase = &explorationPhase{network: network}
	p.cfg.emit(Event{
		Kind:        EventPhaseTransition,
		Generation:  generation,
		Phase:       PhaseExploration,
		NodeCount:   len(network.Nodes()),
		ArchiveSize: p.elite.Size(),
		Detail:      "initial -> exploration",
	})
}

// optimizeNetwork compacts the network, pruning nodes that are both
// populated and close (in fitness space) to the archive's best, while
// always retaining empty nodes and far-from-best nodes -- this preserves
// diversity rather than density around the current best.
func (p *RosomaxaPopulation) optimizeNetwork(network *gsom.Network[*nodeStorage], best Individual, generation uint64) {
	bestFitness := best.FitnessValues()

	distance := func(n *gsom.Node[*nodeStorage]) (float64, bool) {
		nodeBest, ok := n.Storage.best()
		if !ok {
			return 0, false
		}
		return relativeDistance(bestFitness, nodeBest.FitnessValues()), true
	}

	nodes := network.Nodes()
	distances := make([]float64, 0, len(nodes))
	var summary runningstats.Stats
	for _, n := range nodes {
		if d, ok := distance(n); ok {
			distances = append(distances, d)
			summary = summary.Insert(d)
		}
	}
	if len(distances) == 0 {
		return
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(distances)))
	idx := int(float64(len(distances)) * optimizePercentileThreshold)
	if idx >= len(distances) {
		idx = len(distances) - 1
	}
	threshold := distances[idx]

	network.Optimize(optimizeRebalanceCount, func(n *gsom.Node[*nodeStorage]) bool {
		d, ok := distance(n)
		return shouldRetainNode(ok, d, threshold)
	})

	p.cfg.emit(Event{
		Kind:             EventNetworkOptimized,
		Generation:       generation,
		Phase:            PhaseExploration,
		NodeCount:        len(network.Nodes()),
		ArchiveSize:      p.elite.Size(),
		DistanceMean:     summary.Mean(),
		DistanceVariance: summary.Variance(),
		Detail:           "optimize_network pass completed",
	})
}

// shouldRetainNode is optimizeNetwork's keep predicate: a node is kept
// when it has no stored individual to measure (hasBest is false) or its
// distance from the archive's best exceeds threshold. A populated node
// close to the best is the only case that returns false -- pruning is
// biased toward preserving diversity, not density around the best.
func shouldRetainNode(hasBest bool, distance, threshold float64) bool {
	return !hasBest || distance > threshold
}

// fillPopulations recomputes the exploration phase's shuffled view of
// non-empty node archives, in the PRNG's order.
func (p *RosomaxaPopulation) fillPopulations(ph *explorationPhase) {
	var nonEmpty []*nodeStorage
	for _, n := range ph.network.Nodes() {
		if n.Storage.Size() > 0 {
			nonEmpty = append(nonEmpty, n.Storage)
		}
	}
	p.rng.Shuffle(len(nonEmpty), func(i, j int) {
		nonEmpty[i], nonEmpty[j] = nonEmpty[j], nonEmpty[i]
	})
	ph.shuffled = nonEmpty
}

// Cmp exposes the elite archive's fitness comparator.
func (p *RosomaxaPopulation) Cmp(a, b Individual) int {
	return p.elite.Cmp(wrap(a), wrap(b))
}

// Select returns a lazy sequence of parent references. In Initial and
// Exploitation it is simply the elite archive's Select truncated to
// SelectionSize. In Exploration it interleaves two picks from the elite
// archive with two picks from each shuffled node archive, in that fixed
// order, until SelectionSize references have been yielded.
func (p *RosomaxaPopulation) Select() Iterator {
	ph, ok := p.phase.(*explorationPhase)
	if !ok {
		return truncate(wrapArchiveIterator(p.elite.Select()), p.cfg.SelectionSize)
	}
	return truncate(newExplorationIterator(p.elite, ph.shuffled), p.cfg.SelectionSize)
}

// Ranked returns the elite archive's members in sorted order; the network
// is opaque to external ranking.
func (p *RosomaxaPopulation) Ranked() RankedIterator {
	return wrapArchiveRanked(p.elite.Ranked())
}

// Size returns the elite archive's current member count.
func (p *RosomaxaPopulation) Size() int { return p.elite.Size() }

// SelectionPhase reports the manager's current phase.
func (p *RosomaxaPopulation) SelectionPhase() SelectionPhase { return p.phase.tag() }

// String renders the GSOM grid state during Exploration, and the elite
// archive's contents otherwise.
func (p *RosomaxaPopulation) String() string {
	if ph, ok := p.phase.(*explorationPhase); ok {
		return networkState(ph.network)
	}
	return archiveState(p.elite)
}
