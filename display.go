package rosomaxa

import (
	"fmt"
	"strings"

	"github.com/vrp-toolkit/rosomaxa/elitism"
	"github.com/vrp-toolkit/rosomaxa/gsom"
)

// networkState renders one line per node: its coordinate, hit count,
// error accumulator, and weight vector, sorted for reproducible output.
func networkState(network *gsom.Network[*nodeStorage]) string {
	var b strings.Builder
	nodes := network.Nodes()
	fmt.Fprintf(&b, "gsom network: %d nodes, dimension=%d, growth_threshold=%.6f\n",
		len(nodes), network.Dimension(), network.GrowthThreshold())
	for _, n := range nodes {
		fmt.Fprintf(&b, "  (%d,%d) hits=%d error=%.6f storage=%d weight=%v\n",
			n.Coord.X, n.Coord.Y, n.Hits, n.Error, n.Storage.Size(), n.Weight)
	}
	return b.String()
}

// archiveState renders the elite archive's members, best first.
func archiveState(archive *elitism.Archive) string {
	var b strings.Builder
	fmt.Fprintf(&b, "elite archive: %d members\n", archive.Size())
	for r := archive.Ranked(); ; r.Next() {
		v, rank := r.Value()
		if v == nil {
			break
		}
		fmt.Fprintf(&b, "  [%d] fitness=%v\n", rank, v.FitnessValues())
	}
	return b.String()
}
