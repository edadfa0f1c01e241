package rosomaxa

import "github.com/vrp-toolkit/rosomaxa/elitism"

// wrappedIndividual adapts an Individual to elitism.Individual. The two
// interfaces are structurally identical except for DeepCopy's return type,
// which elitism deliberately declares in terms of its own Individual so
// the archive package never imports this one.
type wrappedIndividual struct{ ind Individual }

func wrap(ind Individual) elitism.Individual { return wrappedIndividual{ind} }

func (w wrappedIndividual) FitnessValues() []float64 { return w.ind.FitnessValues() }

func (w wrappedIndividual) DeepCopy() elitism.Individual {
	return wrappedIndividual{w.ind.DeepCopy()}
}

func unwrap(e elitism.Individual) Individual { return e.(wrappedIndividual).ind }
