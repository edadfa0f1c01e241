package gsom

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Network is a Growing Self-Organizing Map over per-node storage of type
// S. The zero value is not usable; construct with NewNetwork.
type Network[S Storage] struct {
	nodes map[Coord]*Node[S]

	dimension          int
	spreadFactor       float64
	reductionFactor    float64
	distributionFactor float64
	learningRate       float64
	hitMemory          uint64
	growthThreshold    float64
	newStorage         func() S
	currentTime        uint64
}

// seedCoords are the four positions occupied at construction, per the
// network's fixed topology.
var seedCoords = [4]Coord{{0, 0}, {0, 1}, {1, 0}, {1, 1}}

// NewNetwork constructs a network seeded with four inputs at (0,0), (0,1),
// (1,0), (1,1). spreadFactor must be in (0,1], reductionFactor and
// distributionFactor in (0,1), learningRate in (0,1), hitMemory > 0.
func NewNetwork[S Storage](seed [4]Input, spreadFactor, reductionFactor, distributionFactor, learningRate float64, hitMemory uint64, newStorage func() S) *Network[S] {
	dimension := len(seed[0].Weights())

	n := &Network[S]{
		nodes:              make(map[Coord]*Node[S], 4),
		dimension:          dimension,
		spreadFactor:       spreadFactor,
		reductionFactor:    reductionFactor,
		distributionFactor: distributionFactor,
		learningRate:       learningRate,
		hitMemory:          hitMemory,
		growthThreshold:    -float64(dimension) * math.Log2(spreadFactor),
		newStorage:         newStorage,
	}

	for i, coord := range seedCoords {
		w := append([]float64(nil), seed[i].Weights()...)
		n.nodes[coord] = &Node[S]{
			Coord:   coord,
			Weight:  w,
			Storage: newStorage(),
		}
	}

	return n
}

// Nodes returns the network's current nodes, sorted ascending by
// coordinate so that iteration order is reproducible for a fixed seed
// regardless of Go's randomized map order.
func (n *Network[S]) Nodes() []*Node[S] {
	out := make([]*Node[S], 0, len(n.nodes))
	for _, node := range n.nodes {
		out = append(out, node)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Coord.Less(out[j].Coord) })
	return out
}

// Dimension returns D, the fixed weight-vector length.
func (n *Network[S]) Dimension() int { return n.dimension }

// GrowthThreshold returns GT = -D * log2(spreadFactor).
func (n *Network[S]) GrowthThreshold() float64 { return n.growthThreshold }

// HitMemory returns the configured node hit-memory period, used by callers
// to decide how often to invoke periodic maintenance such as Optimize.
func (n *Network[S]) HitMemory() uint64 { return n.hitMemory }

// Store inserts one input, stamped with the given time: it finds the
// best-matching unit, nudges the BMU and its present neighbours toward the
// input, records the input in the BMU's storage, accumulates error, and
// triggers growth or error redistribution if the BMU's accumulated error
// now exceeds the growth threshold.
//
// Store panics if the network has no nodes; an empty network is an
// impossible state the caller must not produce.
func (n *Network[S]) Store(input Input, time uint64) {
	if len(n.nodes) == 0 {
		panic("gsom: Store called on an empty network")
	}

	weights := input.Weights()
	bmu := n.findBMU(weights)

	preDistance := euclidean(bmu.Weight, weights)
	n.applyDelta(bmu, weights, n.learningRate)
	for _, dir := range fourDirections {
		if neighbor, ok := n.nodes[bmu.Coord.add(dir)]; ok {
			n.applyDelta(neighbor, weights, n.learningRate*n.distributionFactor)
		}
	}

	bmu.Storage.Add(input)
	bmu.Error += preDistance
	bmu.LastHitGeneration = time
	bmu.Hits++
	if time > n.currentTime {
		n.currentTime = time
	}

	n.growthCheck(bmu, time)
}

func (n *Network[S]) findBMU(weights []float64) *Node[S] {
	var best *Node[S]
	var bestDist float64
	for _, node := range n.nodes {
		d := euclidean(node.Weight, weights)
		if best == nil || d < bestDist || (d == bestDist && node.Coord.Less(best.Coord)) {
			best = node
			bestDist = d
		}
	}
	return best
}

func (n *Network[S]) applyDelta(node *Node[S], target []float64, rate float64) {
	for i := range node.Weight {
		node.Weight[i] += rate * (target[i] - node.Weight[i])
	}
}

func (n *Network[S]) growthCheck(bmu *Node[S], time uint64) {
	if bmu.Error <= n.growthThreshold {
		return
	}

	var missing []Coord
	for _, dir := range fourDirections {
		pos := bmu.Coord.add(dir)
		if _, ok := n.nodes[pos]; !ok {
			missing = append(missing, dir)
		}
	}

	if len(missing) == 0 {
		n.distribute(bmu)
		return
	}

	for _, dir := range missing {
		pos := bmu.Coord.add(dir)
		weight := make([]float64, n.dimension)
		if opp, ok := n.nodes[bmu.Coord.add(oppositeOf[dir])]; ok {
			for i := range weight {
				weight[i] = 2*bmu.Weight[i] - opp.Weight[i]
			}
		} else {
			copy(weight, bmu.Weight)
		}
		n.nodes[pos] = &Node[S]{
			Coord:             pos,
			Weight:            weight,
			Storage:           n.newStorage(),
			LastHitGeneration: time,
		}
	}
	bmu.Error = 0
}

// distribute handles the case where the BMU's error exceeds the growth
// threshold but all four neighbours already exist: the BMU's own error is
// reduced by (1-reductionFactor) and the remainder is spread evenly across
// its four neighbours. Unlike growth, distribution does not zero the
// BMU's error outright -- it only relieves pressure, letting it
// accumulate again until growth becomes possible elsewhere.
func (n *Network[S]) distribute(bmu *Node[S]) {
	total := bmu.Error
	bmu.Error = total * (1 - n.reductionFactor)
	share := total * n.reductionFactor / float64(len(fourDirections))
	for _, dir := range fourDirections {
		if neighbor, ok := n.nodes[bmu.Coord.add(dir)]; ok {
			neighbor.Error += share
		}
	}
}

// Optimize compacts the network: nodes for which retain returns false are
// removed (except the four corners of the current bounding box, which are
// never removed), the remaining grid is healed back into a single
// 4-connected component using up to rebalanceCount synthetic bridge nodes,
// and the contents drained from removed nodes are re-stored into the
// healed network so no input is silently lost.
func (n *Network[S]) Optimize(rebalanceCount int, retain func(*Node[S]) bool) {
	corners := n.boundingBoxCorners()

	var drained []Input
	for coord, node := range n.nodes {
		if corners[coord] {
			continue
		}
		if retain(node) {
			continue
		}
		drained = append(drained, node.Storage.Drain()...)
		delete(n.nodes, coord)
	}

	n.heal(rebalanceCount)

	for _, input := range drained {
		n.Store(input, n.currentTime)
	}
}

func (n *Network[S]) boundingBoxCorners() map[Coord]bool {
	if len(n.nodes) == 0 {
		return nil
	}
	first := true
	var minX, maxX, minY, maxY int
	for coord := range n.nodes {
		if first {
			minX, maxX, minY, maxY = coord.X, coord.X, coord.Y, coord.Y
			first = false
			continue
		}
		if coord.X < minX {
			minX = coord.X
		}
		if coord.X > maxX {
			maxX = coord.X
		}
		if coord.Y < minY {
			minY = coord.Y
		}
		if coord.Y > maxY {
			maxY = coord.Y
		}
	}
	corners := map[Coord]bool{
		{minX, minY}: true,
		{minX, maxY}: true,
		{maxX, minY}: true,
		{maxX, maxY}: true,
	}
	return corners
}

func (n *Network[S]) components() [][]Coord {
	visited := make(map[Coord]bool, len(n.nodes))
	var comps [][]Coord
	for start := range n.nodes {
		if visited[start] {
			continue
		}
		var comp []Coord
		queue := []Coord{start}
		visited[start] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			comp = append(comp, cur)
			for _, dir := range fourDirections {
				next := cur.add(dir)
				if _, ok := n.nodes[next]; ok && !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}
		comps = append(comps, comp)
	}
	sort.Slice(comps, func(i, j int) bool { return len(comps[i]) > len(comps[j]) })
	return comps
}

// heal reconnects the grid into a single 4-connected component, spending
// up to rebalanceCount synthetic bridge nodes placed along a manhattan
// path between the largest component and the nearest node of any other
// component, repeating until one component remains. Each bridge
// node's weight is the linear interpolation of its path endpoints.
func (n *Network[S]) heal(rebalanceCount int) {
	budget := rebalanceCount
	for budget > 0 {
		comps := n.components()
		if len(comps) <= 1 {
			return
		}

		a := comps[0]
		bestDist := -1
		var bestA, bestB Coord
		found := false
		for i := 1; i < len(comps); i++ {
			for _, ca := range a {
				for _, cb := range comps[i] {
					d := manhattan(ca, cb)
					if !found || d < bestDist {
						bestDist, bestA, bestB, found = d, ca, cb, true
					}
				}
			}
		}
		if !found {
			return
		}

		path := manhattanPath(bestA, bestB)
		total := len(path) - 1
		wa := n.nodes[bestA].Weight
		wb := n.nodes[bestB].Weight

		placed := false
		for idx := 1; idx < len(path)-1 && budget > 0; idx++ {
			pos := path[idx]
			if _, exists := n.nodes[pos]; exists {
				continue
			}
			t := float64(idx) / float64(total)
			w := make([]float64, n.dimension)
			for k := range w {
				w[k] = wa[k] + t*(wb[k]-wa[k])
			}
			n.nodes[pos] = &Node[S]{
				Coord:             pos,
				Weight:            w,
				Storage:           n.newStorage(),
				LastHitGeneration: n.currentTime,
			}
			budget--
			placed = true
		}
		if !placed {
			// the direct path is fully occupied by nodes from other
			// components; nothing more this budget can do for this pair.
			return
		}
	}
}

func manhattan(a, b Coord) int {
	return absInt(a.X-b.X) + absInt(a.Y-b.Y)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func manhattanPath(a, b Coord) []Coord {
	path := []Coord{a}
	cur := a
	for cur.X != b.X {
		if cur.X < b.X {
			cur.X++
		} else {
			cur.X--
		}
		path = append(path, cur)
	}
	for cur.Y != b.Y {
		if cur.Y < b.Y {
			cur.Y++
		} else {
			cur.Y--
		}
		path = append(path, cur)
	}
	return path
}

func euclidean(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}
