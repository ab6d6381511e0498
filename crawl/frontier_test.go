package crawl_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/ldcurate"
	"github.com/fwojciec/ldcurate/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(url string, score float64) ldcurate.Candidate {
	return ldcurate.Candidate{PreScore: ldcurate.PreScore{URL: url, Score: score}}
}

func TestFrontier_Push_rejects_duplicate_URLs(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	c := candidate("https://example.com/faq", 70)

	assert.True(t, f.Push(c), "first push should succeed")
	assert.False(t, f.Push(c), "duplicate URL should be rejected")
}

func TestFrontier_Push_strips_fragments(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	require.True(t, f.Push(candidate("https://example.com/faq#shipping", 70)))
	assert.False(t, f.Push(candidate("https://example.com/faq", 70)))
	assert.True(t, f.Seen("https://example.com/faq#returns"))

	c, ok := f.Pop()
	require.True(t, ok)
	assert.Equal(t, "https://example.com/faq", c.URL)
}

func TestFrontier_Pop_returns_highest_score_first(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	f.Push(candidate("https://example.com/about", 45))
	f.Push(candidate("https://example.com/faq", 82.5))
	f.Push(candidate("https://example.com/blog/post", 60))
	f.Push(candidate("https://example.com/how-to/fix", 77.5))

	var got []string
	for {
		c, ok := f.Pop()
		if !ok {
			break
		}
		got = append(got, c.URL)
	}

	assert.Equal(t, []string{
		"https://example.com/faq",
		"https://example.com/how-to/fix",
		"https://example.com/blog/post",
		"https://example.com/about",
	}, got)
}

func TestFrontier_Pop_keeps_insertion_order_for_equal_scores(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	for i := range 5 {
		f.Push(candidate(fmt.Sprintf("https://example.com/%d", i), 50))
	}

	for i := range 5 {
		c, ok := f.Pop()
		require.True(t, ok)
		assert.Equal(t, fmt.Sprintf("https://example.com/%d", i), c.URL)
	}
}

func TestFrontier_Pop_keeps_candidate_fields(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(10, 0.01)

	in := candidate("https://example.com/faq", 70)
	in.Domain = "example.com"
	in.Tier = ldcurate.TierGold
	in.Category = "ecommerce"
	f.Push(in)

	out, ok := f.Pop()

	require.True(t, ok)
	assert.Equal(t, in, out)
}

func TestFrontier_Len_tracks_queue_size(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	assert.Equal(t, 0, f.Len(), "new frontier should be empty")

	f.Push(candidate("https://example.com/a", 50))
	assert.Equal(t, 1, f.Len())

	f.Push(candidate("https://example.com/b", 50))
	assert.Equal(t, 2, f.Len())

	f.Pop()
	assert.Equal(t, 1, f.Len())

	f.Pop()
	assert.Equal(t, 0, f.Len())

	_, ok := f.Pop()
	assert.False(t, ok, "pop on empty frontier should return false")
}

func TestFrontier_Seen_tracks_all_pushed_URLs(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	assert.False(t, f.Seen("https://example.com/page"), "unseen URL should return false")

	f.Push(candidate("https://example.com/page", 50))
	assert.True(t, f.Seen("https://example.com/page"), "pushed URL should be seen")

	f.Pop()
	assert.True(t, f.Seen("https://example.com/page"), "popped URL should still be seen")
}

func TestFrontier_concurrent_access(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(10000, 0.01)

	const numGoroutines = 10
	const numOpsPerGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines * 2)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOpsPerGoroutine; j++ {
				f.Push(candidate(fmt.Sprintf("https://example.com/%d/%d", id, j), float64(j)))
			}
		}(i)
	}

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < numOpsPerGoroutine; j++ {
				f.Pop()
				f.Len()
			}
		}()
	}

	wg.Wait()

	for i := 0; i < numGoroutines; i++ {
		for j := 0; j < numOpsPerGoroutine; j++ {
			url := fmt.Sprintf("https://example.com/%d/%d", i, j)
			assert.True(t, f.Seen(url), "pushed URL %s should be seen", url)
		}
	}
}
