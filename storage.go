package rosomaxa

import (
	"github.com/vrp-toolkit/rosomaxa/elitism"
	"github.com/vrp-toolkit/rosomaxa/gsom"
)

// individualInput adapts an Individual to gsom.Input by exposing its five
// descriptor features as the network's weight vector. The weights are
// computed once at construction; the network never mutates an input.
type individualInput struct {
	individual Individual
	weights    []float64
}

func newIndividualInput(ind Individual) individualInput {
	return individualInput{
		individual: ind,
		weights: []float64{
			ind.LoadVariance(),
			ind.CustomerDeviation(),
			ind.DurationMean(),
			ind.DistanceMean(),
			ind.DistanceGravityMean(),
		},
	}
}

func (i individualInput) Weights() []float64 { return i.weights }

// nodeStorage is a GSOM node's storage bucket: a small elitism archive
// addressed directly (not through an unsafe cast), since gsom.Node owns
// its Storage value outright -- see gsom.Node[S].
type nodeStorage struct {
	archive *elitism.Archive
}

func newNodeStorage(nodeSize int, epsilon float64, rng elitism.Random) *nodeStorage {
	return &nodeStorage{archive: elitism.New(nodeSize, nodeSize, epsilon, rng)}
}

func (s *nodeStorage) Add(in gsom.Input) {
	s.archive.Add(wrap(in.(individualInput).individual))
}

func (s *nodeStorage) All() []gsom.Input {
	out := make([]gsom.Input, 0, s.archive.Size())
	for r := s.archive.Ranked(); ; r.Next() {
		v, _ := r.Value()
		if v == nil {
			break
		}
		out = append(out, newIndividualInput(unwrap(v)))
	}
	return out
}

func (s *nodeStorage) Size() int { return s.archive.Size() }

func (s *nodeStorage) Drain() []gsom.Input {
	items := s.archive.Drain()
	out := make([]gsom.Input, len(items))
	for i, it := range items {
		out[i] = newIndividualInput(unwrap(it))
	}
	return out
}

// best returns the node's best-fitness individual, if its archive is
// non-empty.
func (s *nodeStorage) best() (Individual, bool) {
	v, ok := s.archive.Best()
	if !ok {
		return nil, false
	}
	return unwrap(v), true
}
