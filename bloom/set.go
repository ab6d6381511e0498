// Package bloom remembers which URLs a run has already queued, in memory
// bounded by the expected URL count rather than the URLs themselves.
package bloom

import (
	"math"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// DefaultFalsePositiveRate is used when New is given a rate outside (0, 1).
const DefaultFalsePositiveRate = 0.001

// Set is a probabilistic set of strings. Contains never misses an inserted
// key but may report a key that was never inserted.
//
// Set is safe for concurrent use.
type Set struct {
	mu       sync.Mutex
	filter   *bloom.BloomFilter
	inserted uint
}

// New returns a Set sized for n keys at the given false positive rate.
func New(n uint, fpRate float64) *Set {
	if n == 0 {
		n = 1
	}
	if fpRate <= 0 || fpRate >= 1 {
		fpRate = DefaultFalsePositiveRate
	}
	return &Set{filter: bloom.NewWithEstimates(n, fpRate)}
}

// Insert adds key and reports whether it was new. A false positive makes
// Insert report a new key as present.
func (s *Set) Insert(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.filter.TestAndAddString(key) {
		return false
	}
	s.inserted++
	return true
}

// Contains reports whether key may have been inserted.
func (s *Set) Contains(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter.TestString(key)
}

// Len returns the number of keys Insert accepted as new.
func (s *Set) Len() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inserted
}

// FalsePositiveRate estimates the chance that Contains reports a key that
// was never inserted, given the keys inserted so far.
func (s *Set) FalsePositiveRate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := float64(s.filter.Cap())
	k := float64(s.filter.K())
	n := float64(s.inserted)
	return math.Pow(1-math.Exp(-k*n/m), k)
}
