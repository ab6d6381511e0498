package crawl

import (
	"container/heap"
	"strings"
	"sync"

	"github.com/fwojciec/ldcurate"
	"github.com/fwojciec/ldcurate/bloom"
)

// Compile-time interface verification.
var _ ldcurate.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory queue of discovery candidates ordered by
// pre-score, with Bloom filter deduplication. Candidates with equal scores
// pop in insertion order. It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Set
	queue *candidateHeap
	seq   uint64
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	h := &candidateHeap{}
	heap.Init(h)
	return &Frontier{
		seen:  bloom.New(n, fpRate),
		queue: h,
	}
}

// Push adds a candidate to the frontier.
// Returns false if the URL has already been seen.
// URL fragments are stripped before deduplication - URLs differing only by fragment
// are considered duplicates.
func (f *Frontier) Push(c ldcurate.Candidate) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	c.URL = stripFragment(c.URL)
	if !f.seen.Insert(c.URL) {
		return false
	}

	heap.Push(f.queue, queued{Candidate: c, seq: f.seq})
	f.seq++
	return true
}

// Pop returns the candidate with the highest pre-score.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (ldcurate.Candidate, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return ldcurate.Candidate{}, false
	}
	item, _ := heap.Pop(f.queue).(queued)
	return item.Candidate, true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// Seen returns true if the URL has been processed or queued.
// URL fragments are stripped before checking.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Contains(stripFragment(rawURL))
}

func stripFragment(rawURL string) string {
	if idx := strings.Index(rawURL, "#"); idx != -1 {
		return rawURL[:idx]
	}
	return rawURL
}

type queued struct {
	ldcurate.Candidate
	seq uint64
}

// candidateHeap implements heap.Interface as a max-heap on Score.
type candidateHeap []queued

func (h candidateHeap) Len() int { return len(h) }

func (h candidateHeap) Less(i, j int) bool {
	if h[i].Score != h[j].Score {
		return h[i].Score > h[j].Score
	}
	return h[i].seq < h[j].seq
}

func (h candidateHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *candidateHeap) Push(x any) {
	item, _ := x.(queued)
	*h = append(*h, item)
}

func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
