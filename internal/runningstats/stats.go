// Package runningstats provides an online (Welford's algorithm) summary of
// a stream of float64 samples, used to describe the distribution of
// node-to-best distances computed during network optimization without
// retaining the whole sample set.
package runningstats

import "math"

// Stats is an immutable running summary; Insert returns an updated copy.
type Stats struct {
	max, min float64
	mean     float64
	sumsq    float64 // sum of squares of deviation from the mean
	count    float64
}

// Insert folds x into the summary, returning the updated summary.
func (s Stats) Insert(x float64) Stats {
	if s.count == 0 {
		s.max = math.Inf(-1)
		s.min = math.Inf(1)
	}

	delta := x - s.mean
	newCount := s.count + 1

	s.max = math.Max(s.max, x)
	s.min = math.Min(s.min, x)
	s.mean += delta / newCount
	s.sumsq += delta * delta * (s.count / newCount)
	s.count = newCount

	return s
}

// Max returns the largest sample inserted.
func (s Stats) Max() float64 { return s.max }

// Min returns the smallest sample inserted.
func (s Stats) Min() float64 { return s.min }

// Mean returns the running average.
func (s Stats) Mean() float64 { return s.mean }

// Variance returns the population variance of the inserted samples.
func (s Stats) Variance() float64 {
	if s.count == 0 {
		return 0
	}
	return s.sumsq / s.count
}

// Count returns the number of samples inserted.
func (s Stats) Count() int { return int(s.count) }
