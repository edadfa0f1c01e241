// Package elitism implements a bounded, fitness-ranked archive of
// individuals: a sorted collection that admits any candidate while it has
// room, and once full only a candidate that improves on the archive's
// worst member (evicting that member on success). It rejects
// near-duplicates under a fitness-equality tolerance.
//
// The archive is the quality-pressure primitive shared by the standalone
// population fallback and by each node of a growing self-organizing map;
// see the rosomaxa package for how the two are composed.
package elitism
