package rosomaxa_test

import "github.com/vrp-toolkit/rosomaxa"

// testIndividual is a minimal Individual: a single fitness component and a
// single descriptor value repeated across all five descriptor accessors,
// so a test can place it on the GSOM grid by choosing one number.
type testIndividual struct {
	fitness    []float64
	descriptor float64
}

func newInd(fitness float64, descriptor float64) *testIndividual {
	return &testIndividual{fitness: []float64{fitness}, descriptor: descriptor}
}

func (t *testIndividual) FitnessValues() []float64 { return t.fitness }

func (t *testIndividual) DeepCopy() rosomaxa.Individual {
	return &testIndividual{fitness: append([]float64(nil), t.fitness...), descriptor: t.descriptor}
}

func (t *testIndividual) LoadVariance() float64       { return t.descriptor }
func (t *testIndividual) CustomerDeviation() float64  { return t.descriptor }
func (t *testIndividual) DurationMean() float64       { return t.descriptor }
func (t *testIndividual) DistanceMean() float64       { return t.descriptor }
func (t *testIndividual) DistanceGravityMean() float64 { return t.descriptor }
