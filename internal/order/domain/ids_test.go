package domain

import (
	"regexp"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderIDFormat(t *testing.T) {
	g := NewIDGenerator()
	id := g.NewOrderID()
	assert.Regexp(t, regexp.MustCompile(`^ORD-\d{13,}$`), id)
}

func TestNewOrderIDUniqueAndMonotonic(t *testing.T) {
	g := NewIDGenerator()

	const n = 1000
	ids := make([]string, n)
	for i := range ids {
		ids[i] = g.NewOrderID()
	}

	seen := make(map[string]bool, n)
	for _, id := range ids {
		require.False(t, seen[id], "duplicate order id %s", id)
		seen[id] = true
	}
	// Millisecond timestamps share a digit count for the next ~270 years,
	// so lexical order matches numeric order.
	assert.True(t, sort.StringsAreSorted(ids))
}

func TestNewOrderIDConcurrentUnique(t *testing.T) {
	g := NewIDGenerator()

	const workers, perWorker = 8, 200
	var mu sync.Mutex
	seen := make(map[string]bool, workers*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]string, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				local = append(local, g.NewOrderID())
			}
			mu.Lock()
			defer mu.Unlock()
			for _, id := range local {
				assert.False(t, seen[id], "duplicate order id %s", id)
				seen[id] = true
			}
		}()
	}
	wg.Wait()
}

func TestNewTrackingIDFormat(t *testing.T) {
	g := NewIDGenerator()
	pattern := regexp.MustCompile(`^TRK-[0-9A-Z]{8}$`)
	for i := 0; i < 100; i++ {
		assert.Regexp(t, pattern, g.NewTrackingID())
	}
}
