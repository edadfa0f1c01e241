// Package rosomaxa implements an adaptive population manager for an
// evolutionary search: a bounded elitism archive, a Growing Self-Organizing
// Map of node-local archives (package gsom), and a three-phase state
// machine that routes incoming solutions and selects parents for the next
// generation.
//
// The manager is driven by a single sequential loop: AddAll, then
// OnGeneration, then Select. It holds no internal lock and is not safe for
// concurrent calls to those three methods -- see the Population doc comment.
package rosomaxa
