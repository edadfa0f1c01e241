package rosomaxa_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrp-toolkit/rosomaxa"
	"github.com/vrp-toolkit/rosomaxa/prng"
)

func TestNewRosomaxaPopulationRejectsInvalidConfig(t *testing.T) {
	cfg := rosomaxa.DefaultConfig()
	cfg.EliteSize = 1
	_, err := rosomaxa.NewRosomaxaPopulation(cfg, prng.New(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, rosomaxa.ErrInvalidConfig)
}

func TestNewWithFallbackDegradesToPureElitism(t *testing.T) {
	cfg := rosomaxa.DefaultConfig()
	cfg.SelectionSize = 1 // invalid: must be >= 4
	pop := rosomaxa.NewWithFallback(cfg, prng.New(1))
	require.NotNil(t, pop)

	pop.Add(newInd(1, 0))
	assert.Equal(t, rosomaxa.PhaseExploitation, pop.SelectionPhase())
	assert.Equal(t, 1, pop.Size())
}

// bootstrap to exploration.
func TestBootstrapToExploration(t *testing.T) {
	cfg := rosomaxa.DefaultConfig()
	pop, err := rosomaxa.NewRosomaxaPopulation(cfg, prng.New(1))
	require.NoError(t, err)

	pop.Add(newInd(10, 0))
	pop.Add(newInd(5, 1))
	pop.Add(newInd(8, 2))
	pop.OnGeneration(rosomaxa.Statistics{Generation: 3, TerminationEstimate: 0})
	assert.Equal(t, rosomaxa.PhaseInitial, pop.SelectionPhase())

	pop.Add(newInd(5, 3))
	pop.OnGeneration(rosomaxa.Statistics{Generation: 4, TerminationEstimate: 0})
	require.Equal(t, rosomaxa.PhaseExploration, pop.SelectionPhase())
	assert.True(t, strings.Contains(pop.String(), "4 nodes"))
}

// exploration to exploitation.
func TestExplorationToExploitation(t *testing.T) {
	pop := bootstrapIntoExploration(t)
	pop.OnGeneration(rosomaxa.Statistics{Generation: 100, TerminationEstimate: 0.9})
	assert.Equal(t, rosomaxa.PhaseExploitation, pop.SelectionPhase())
}

// invariant 3: AddAll returns true iff at least one member was admitted.
func TestAddAllReturnsTrueIffAnyAdmitted(t *testing.T) {
	cfg := rosomaxa.DefaultConfig()
	pop, err := rosomaxa.NewRosomaxaPopulation(cfg, prng.New(7))
	require.NoError(t, err)

	worse := newInd(10, 0)
	better := newInd(3, 1)

	assert.True(t, pop.AddAll([]rosomaxa.Individual{better}))
	// same fitness as the current best: not an improvement, not admitted.
	assert.False(t, pop.AddAll([]rosomaxa.Individual{better.DeepCopy()}))
	// strictly worse than the current best: not an improvement either,
	// regardless of whether the archive still has a free slot.
	assert.False(t, pop.AddAll([]rosomaxa.Individual{worse}))
}

// selection shape during Exploration.
func TestSelectionShapeInExploration(t *testing.T) {
	cfg := rosomaxa.DefaultConfig()
	cfg.SelectionSize = 6
	pop, err := rosomaxa.NewRosomaxaPopulation(cfg, prng.New(42))
	require.NoError(t, err)

	// bootstrap fitness descending, so the elite archive holds 70 and 80.
	pop.Add(newInd(100, 0))
	pop.Add(newInd(90, 10))
	pop.Add(newInd(80, 20))
	pop.Add(newInd(70, 30))
	pop.OnGeneration(rosomaxa.Statistics{Generation: 1, TerminationEstimate: 0})
	require.Equal(t, rosomaxa.PhaseExploration, pop.SelectionPhase())

	// land two inputs on the seed node at d=0 and two on the seed node at d=10.
	// Fitness 1 beats the elite best and enters the archive (evicting 80);
	// 2, 3 and 4 do not beat 1, so the archive ends as {1, 70}.
	pop.Add(newInd(1, 0))
	pop.Add(newInd(2, 0))
	pop.Add(newInd(3, 10))
	pop.Add(newInd(4, 10))
	pop.OnGeneration(rosomaxa.Statistics{Generation: 2, TerminationEstimate: 0})

	var got []float64
	for it := pop.Select(); ; it.Next() {
		v := it.Value()
		if v == nil {
			break
		}
		got = append(got, v.FitnessValues()[0])
	}

	require.Len(t, got, 6)
	assert.Equal(t, []float64{1, 70}, got[0:2], "elite best then elite second")

	pairA, pairB := got[2:4], got[4:6]
	group1 := map[float64]bool{1: true, 2: true}
	group2 := map[float64]bool{3: true, 4: true}
	sameGroup := func(pair []float64, group map[float64]bool) bool {
		return group[pair[0]] && group[pair[1]] && pair[0] < pair[1]
	}
	assert.True(t,
		(sameGroup(pairA, group1) && sameGroup(pairB, group2)) ||
			(sameGroup(pairA, group2) && sameGroup(pairB, group1)),
		"expected the two node archives' (best, second) pairs in some order, got %v", got)
}

// invariant 9: optimizeNetwork never reduces the elite archive.
func TestOptimizeNetworkNeverReducesArchive(t *testing.T) {
	cfg := rosomaxa.DefaultConfig()
	cfg.HitMemory = 1 // force optimizeNetwork on every eligible generation
	pop, err := rosomaxa.NewRosomaxaPopulation(cfg, prng.New(3))
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		pop.Add(newInd(float64(10-i), float64(i)))
	}
	pop.OnGeneration(rosomaxa.Statistics{Generation: 1, TerminationEstimate: 0})
	before := pop.Size()

	for gen := uint64(2); gen < 10; gen++ {
		pop.Add(newInd(float64(gen), float64(gen)))
		pop.OnGeneration(rosomaxa.Statistics{Generation: gen, TerminationEstimate: 0})
	}

	assert.GreaterOrEqual(t, pop.Size(), before)
	assert.LessOrEqual(t, pop.Size(), cfg.EliteSize)
}

func TestOptimizeNetworkEmitsDistanceDistribution(t *testing.T) {
	var optimized []rosomaxa.Event
	cfg := rosomaxa.DefaultConfig()
	cfg.HitMemory = 1
	cfg.OnEvent = func(e rosomaxa.Event) {
		if e.Kind == rosomaxa.EventNetworkOptimized {
			optimized = append(optimized, e)
		}
	}
	pop, err := rosomaxa.NewRosomaxaPopulation(cfg, prng.New(3))
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		pop.Add(newInd(float64(10-i), float64(i)))
	}
	pop.OnGeneration(rosomaxa.Statistics{Generation: 1, TerminationEstimate: 0})
	pop.Add(newInd(5, 2))
	pop.OnGeneration(rosomaxa.Statistics{Generation: 2, TerminationEstimate: 0})

	require.NotEmpty(t, optimized)
	assert.GreaterOrEqual(t, optimized[0].DistanceMean, 0.0)
	assert.GreaterOrEqual(t, optimized[0].DistanceVariance, 0.0)
}

// invariant 10: determinism for a fixed seed and input sequence.
func TestDeterminism(t *testing.T) {
	run := func(seed int64) (fitnesses []float64, nodes string) {
		cfg := rosomaxa.DefaultConfig()
		cfg.SelectionSize = 6
		pop, err := rosomaxa.NewRosomaxaPopulation(cfg, prng.New(seed))
		require.NoError(t, err)

		for i := 0; i < 4; i++ {
			pop.Add(newInd(float64(100-i*10), float64(i*10)))
		}
		pop.OnGeneration(rosomaxa.Statistics{Generation: 1, TerminationEstimate: 0})
		for i := 0; i < 8; i++ {
			pop.Add(newInd(float64(i), float64(i%4)*10))
		}
		pop.OnGeneration(rosomaxa.Statistics{Generation: 2, TerminationEstimate: 0})

		for it := pop.Select(); ; it.Next() {
			v := it.Value()
			if v == nil {
				break
			}
			fitnesses = append(fitnesses, v.FitnessValues()[0])
		}
		return fitnesses, pop.String()
	}

	f1, n1 := run(99)
	f2, n2 := run(99)
	assert.Equal(t, f1, f2)
	assert.Equal(t, n1, n2)
}

func TestOnEventFiresOnPhaseTransitions(t *testing.T) {
	var events []rosomaxa.Event
	cfg := rosomaxa.DefaultConfig()
	cfg.OnEvent = func(e rosomaxa.Event) { events = append(events, e) }
	pop, err := rosomaxa.NewRosomaxaPopulation(cfg, prng.New(5))
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		pop.Add(newInd(float64(i), float64(i)))
	}
	pop.OnGeneration(rosomaxa.Statistics{Generation: 1, TerminationEstimate: 0})
	pop.OnGeneration(rosomaxa.Statistics{Generation: 2, TerminationEstimate: 0.95})

	require.Len(t, events, 2)
	assert.Equal(t, rosomaxa.EventPhaseTransition, events[0].Kind)
	assert.Equal(t, rosomaxa.PhaseExploration, events[0].Phase)
	assert.Equal(t, rosomaxa.PhaseExploitation, events[1].Phase)
}

func bootstrapIntoExploration(t *testing.T) rosomaxa.Population {
	t.Helper()
	cfg := rosomaxa.DefaultConfig()
	pop, err := rosomaxa.NewRosomaxaPopulation(cfg, prng.New(11))
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		pop.Add(newInd(float64(i), float64(i)))
	}
	pop.OnGeneration(rosomaxa.Statistics{Generation: 1, TerminationEstimate: 0})
	require.Equal(t, rosomaxa.PhaseExploration, pop.SelectionPhase())
	return pop
}
