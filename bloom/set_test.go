package bloom_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/ldcurate/bloom"
	"github.com/stretchr/testify/assert"
)

func TestSet_Insert(t *testing.T) {
	t.Parallel()

	t.Run("reports new keys once", func(t *testing.T) {
		t.Parallel()

		s := bloom.New(100, 0.01)

		assert.True(t, s.Insert("https://example.com/faq"))
		assert.False(t, s.Insert("https://example.com/faq"))
		assert.True(t, s.Insert("https://example.com/howto"))
		assert.Equal(t, uint(2), s.Len())
	})

	t.Run("zero capacity still holds keys", func(t *testing.T) {
		t.Parallel()

		s := bloom.New(0, 0.01)
		s.Insert("https://example.com/")

		assert.True(t, s.Contains("https://example.com/"))
	})

	t.Run("out of range rate falls back to the default", func(t *testing.T) {
		t.Parallel()

		s := bloom.New(100, 0)
		s.Insert("https://example.com/")

		assert.True(t, s.Contains("https://example.com/"))
		assert.Less(t, s.FalsePositiveRate(), bloom.DefaultFalsePositiveRate)
	})

	t.Run("concurrent inserts count each key once", func(t *testing.T) {
		t.Parallel()

		s := bloom.New(1000, 0.001)
		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range 100 {
					s.Insert(fmt.Sprintf("https://example.com/%d", i))
				}
			}()
		}
		wg.Wait()

		assert.LessOrEqual(t, s.Len(), uint(100))
		assert.GreaterOrEqual(t, s.Len(), uint(99))
	})
}

func TestSet_Contains(t *testing.T) {
	t.Parallel()

	s := bloom.New(1000, 0.01)

	assert.False(t, s.Contains("https://example.com/page1"))
	s.Insert("https://example.com/page1")
	assert.True(t, s.Contains("https://example.com/page1"))
	assert.False(t, s.Contains("https://example.com/page2"))
}

func TestSet_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const n = 10000

	s := bloom.New(n, 0.01)
	assert.Zero(t, s.FalsePositiveRate())

	for i := range n {
		s.Insert(fmt.Sprintf("https://example.com/added/%d", i))
	}

	falsePositives := 0
	for i := range n {
		if s.Contains(fmt.Sprintf("https://example.com/notadded/%d", i)) {
			falsePositives++
		}
	}

	measured := float64(falsePositives) / n
	assert.Less(t, measured, 0.02)
	assert.InDelta(t, 0.01, s.FalsePositiveRate(), 0.005)
}
