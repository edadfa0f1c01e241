// Package gsom implements a Growing Self-Organizing Map: an online,
// unsupervised network of nodes arranged on an integer 2-D grid, each
// holding a fixed-dimension weight vector and a caller-supplied storage
// bucket. The network supports online insertion (best-matching-unit
// search, neighbour weight updates, and growth/error-redistribution) and
// periodic compaction that prunes nodes, heals grid connectivity, and
// re-routes the pruned nodes' contents back into the network.
//
// Network is generic over its per-node Storage type so that callers (see
// the rosomaxa package) can hold their own archive inside each node
// without an unsafe downcast: the network owns the grid of nodes, and the
// caller's Storage type is reachable directly as a typed field.
package gsom
