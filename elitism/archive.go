package elitism

import (
	"math"
	"sort"
)

// Individual is the subset of a candidate solution the archive needs:
// a lexicographic fitness key and the ability to be copied independently
// of the original.
type Individual interface {
	// FitnessValues returns the fitness components in comparison order.
	// Lower is better in each component.
	FitnessValues() []float64

	// DeepCopy returns an independent copy of the individual.
	DeepCopy() Individual
}

// Random is the slice of the PRNG the archive needs for its uniform,
// with-replacement sampling in Select.
type Random interface {
	// UniformInt returns an integer in [low, high).
	UniformInt(low, high int) int
}

// Archive is a bounded collection of individuals kept sorted by fitness,
// best first. It rejects candidates that are same-fitness with an
// existing member, and once full, admits a new candidate only when it is
// strictly better than the current worst member.
type Archive struct {
	capacity      int
	selectionSize int
	epsilon       float64
	rng           Random
	items         []Individual // sorted ascending: items[0] is best
}

// New creates an archive with the given capacity, selection size (the
// number of references Select yields), fitness-equality tolerance, and
// PRNG handle used for Select's random draws.
func New(capacity, selectionSize int, epsilon float64, rng Random) *Archive {
	if capacity < 1 {
		capacity = 1
	}
	if selectionSize < 1 {
		selectionSize = 1
	}
	return &Archive{
		capacity:      capacity,
		selectionSize: selectionSize,
		epsilon:       epsilon,
		rng:           rng,
	}
}

// compareFitness returns -1 if a is better than b, +1 if a is worse, and 0
// if they compare equal within epsilon on every component.
func compareFitness(a, b []float64, epsilon float64) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		if math.Abs(d) > epsilon {
			if d < 0 {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Cmp exposes the archive's fitness comparator: -1 if a is better than b,
// +1 if a is worse, 0 if same-fitness.
func (a *Archive) Cmp(x, y Individual) int {
	return compareFitness(x.FitnessValues(), y.FitnessValues(), a.epsilon)
}

// sameFitness reports whether x and y are same-fitness under the
// archive's tolerance.
func (a *Archive) sameFitness(x, y Individual) bool {
	return a.Cmp(x, y) == 0
}

// Add inserts ind into the archive if admissible, returning whether it was
// admitted. On success, when the archive was already full, the previous
// worst member is evicted.
func (a *Archive) Add(ind Individual) bool {
	for _, existing := range a.items {
		if a.sameFitness(ind, existing) {
			return false
		}
	}

	full := len(a.items) >= a.capacity
	if full {
		worst := a.items[len(a.items)-1]
		if a.Cmp(ind, worst) >= 0 {
			return false
		}
	}

	idx := sort.Search(len(a.items), func(i int) bool {
		return a.Cmp(a.items[i], ind) > 0
	})
	a.items = append(a.items, nil)
	copy(a.items[idx+1:], a.items[idx:])
	a.items[idx] = ind

	if len(a.items) > a.capacity {
		a.items = a.items[:a.capacity]
	}
	return true
}

// Size returns the number of members currently held.
func (a *Archive) Size() int {
	return len(a.items)
}

// Best returns the archive's best member, if any.
func (a *Archive) Best() (Individual, bool) {
	if len(a.items) == 0 {
		return nil, false
	}
	return a.items[0], true
}

// Drain empties the archive, returning its former contents best-first.
func (a *Archive) Drain() []Individual {
	out := a.items
	a.items = nil
	return out
}

// Iterator yields a lazy, nil-terminated sequence of individual
// references: call Value until it returns nil, calling Next in between.
type Iterator interface {
	// Value returns the current element, or nil once the sequence is
	// exhausted.
	Value() Individual

	// Next advances to the next element.
	Next()
}

// Select returns a lazy sequence of at most the archive's configured
// selection size. The first element is always the best member. Remaining
// elements are drawn uniformly at random, with replacement, from the
// non-best members; if only one member exists it is repeated.
func (a *Archive) Select() Iterator {
	it := &selectIterator{archive: a}
	it.compute()
	return it
}

type selectIterator struct {
	archive *Archive
	pos     int
	val     Individual
}

func (it *selectIterator) compute() {
	n := len(it.archive.items)
	if n == 0 || it.pos >= it.archive.selectionSize {
		it.val = nil
		return
	}
	if it.pos == 0 {
		it.val = it.archive.items[0]
		return
	}
	if n == 1 {
		it.val = it.archive.items[0]
		return
	}
	j := 1 + it.archive.rng.UniformInt(0, n-1)
	it.val = it.archive.items[j]
}

func (it *selectIterator) Value() Individual {
	return it.val
}

func (it *selectIterator) Next() {
	it.pos++
	it.compute()
}

// RankedIterator yields a lazy, nil-terminated sequence of (member, rank)
// pairs in sorted order; rank is 0-based.
type RankedIterator interface {
	// Value returns the current element and its rank, or (nil, 0) once
	// exhausted.
	Value() (Individual, int)

	// Next advances to the next element.
	Next()
}

// Ranked returns the archive's members in sorted order paired with their
// 0-based rank.
func (a *Archive) Ranked() RankedIterator {
	return &rankedIterator{archive: a}
}

type rankedIterator struct {
	archive *Archive
	pos     int
}

func (it *rankedIterator) Value() (Individual, int) {
	if it.pos >= len(it.archive.items) {
		return nil, 0
	}
	return it.archive.items[it.pos], it.pos
}

func (it *rankedIterator) Next() {
	it.pos++
}
