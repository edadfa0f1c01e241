package rosomaxa

import "github.com/vrp-toolkit/rosomaxa/elitism"

// archiveIterator adapts an elitism.Iterator to the package's Iterator.
type archiveIterator struct{ it elitism.Iterator }

func wrapArchiveIterator(it elitism.Iterator) Iterator { return archiveIterator{it} }

func (a archiveIterator) Value() Individual {
	v := a.it.Value()
	if v == nil {
		return nil
	}
	return unwrap(v)
}

func (a archiveIterator) Next() { a.it.Next() }

// archiveRanked adapts an elitism.RankedIterator to the package's
// RankedIterator.
type archiveRanked struct{ it elitism.RankedIterator }

func wrapArchiveRanked(it elitism.RankedIterator) RankedIterator { return archiveRanked{it} }

func (a archiveRanked) Value() (Individual, int) {
	v, rank := a.it.Value()
	if v == nil {
		return nil, 0
	}
	return unwrap(v), rank
}

func (a archiveRanked) Next() { a.it.Next() }

// boundedIterator caps the number of non-nil values an inner Iterator
// yields, without otherwise altering its laziness: values beyond the cap
// are never requested from inner.
type boundedIterator struct {
	inner     Iterator
	remaining int
}

func truncate(inner Iterator, n int) Iterator {
	return &boundedIterator{inner: inner, remaining: n}
}

func (b *boundedIterator) Value() Individual {
	if b.remaining <= 0 {
		return nil
	}
	return b.inner.Value()
}

func (b *boundedIterator) Next() {
	b.remaining--
	if b.remaining > 0 {
		b.inner.Next()
	}
}

// explorationIterator composes Select's Exploration-phase shape: two
// picks from the elite archive, then two picks from each node archive in
// turn, lazily -- a later stage's archive.Select() is never invoked until
// the caller has actually exhausted the previous stage.
type explorationIterator struct {
	nodes   []*nodeStorage
	stage   int // 0 = elite stage consumed, 1..len(nodes) = nodes[stage-1] consumed
	current Iterator
}

func newExplorationIterator(elite *elitism.Archive, nodes []*nodeStorage) Iterator {
	return &explorationIterator{
		nodes:   nodes,
		current: truncate(wrapArchiveIterator(elite.Select()), 2),
	}
}

func (e *explorationIterator) Value() Individual {
	for e.current != nil {
		if v := e.current.Value(); v != nil {
			return v
		}
		if e.stage >= len(e.nodes) {
			e.current = nil
			return nil
		}
		e.current = truncate(wrapArchiveIterator(e.nodes[e.stage].archive.Select()), 2)
		e.stage++
	}
	return nil
}

func (e *explorationIterator) Next() {
	if e.current != nil {
		e.current.Next()
	}
}
