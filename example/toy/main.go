// toy drives a rosomaxa.Population through a handful of generations over a
// one-dimensional toy fitness landscape, to demonstrate the library's
// calling convention: AddAll, then OnGeneration, then Select, repeated.
package main

import (
	"fmt"
	"math/rand"

	"github.com/vrp-toolkit/rosomaxa"
	"github.com/vrp-toolkit/rosomaxa/prng"
)

// candidate is the simplest possible rosomaxa.Individual: one fitness
// component (squared distance from a hidden target) and five descriptor features
// derived from the same scalar gene, so nearby genes land on nearby GSOM
// nodes.
type candidate struct {
	gene float64
}

const target = 7.0

func (c *candidate) FitnessValues() []float64 { return []float64{(c.gene - target) * (c.gene - target)} }

func (c *candidate) DeepCopy() rosomaxa.Individual { return &candidate{gene: c.gene} }

func (c *candidate) LoadVariance() float64       { return c.gene }
func (c *candidate) CustomerDeviation() float64  { return c.gene / 2 }
func (c *candidate) DurationMean() float64       { return c.gene / 3 }
func (c *candidate) DistanceMean() float64       { return c.gene / 4 }
func (c *candidate) DistanceGravityMean() float64 { return c.gene / 5 }

func randomCandidate(r *rand.Rand) *candidate {
	return &candidate{gene: r.Float64() * 20}
}

func mutate(r *rand.Rand, parent rosomaxa.Individual) *candidate {
	c := parent.(*candidate)
	return &candidate{gene: c.gene + r.NormFloat64()}
}

func main() {
	const generations = 50
	const popSize = 16

	cfg := rosomaxa.DefaultConfig()
	cfg.SelectionSize = 6
	cfg.OnEvent = func(e rosomaxa.Event) {
		fmt.Printf("event: phase=%s detail=%s\n", e.Phase, e.Detail)
	}

	rng := prng.New(1)
	pop := rosomaxa.NewWithFallback(cfg, rng)

	mutationSource := rand.New(rand.NewSource(1))

	initial := make([]rosomaxa.Individual, popSize)
	for i := range initial {
		initial[i] = randomCandidate(mutationSource)
	}
	pop.AddAll(initial)

	for gen := uint64(1); gen <= generations; gen++ {
		var parents []rosomaxa.Individual
		for it := pop.Select(); ; it.Next() {
			v := it.Value()
			if v == nil {
				break
			}
			parents = append(parents, v)
		}

		offspring := make([]rosomaxa.Individual, 0, popSize)
		for len(offspring) < popSize {
			parent := parents[mutationSource.Intn(len(parents))]
			offspring = append(offspring, mutate(mutationSource, parent))
		}
		pop.AddAll(offspring)

		estimate := float64(gen) / float64(generations)
		pop.OnGeneration(rosomaxa.Statistics{Generation: gen, TerminationEstimate: estimate})
	}

	fmt.Println(pop)
}
