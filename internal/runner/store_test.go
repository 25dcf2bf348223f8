package runner

import (
	"fmt"
	"io"
	"log"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PutAndGet(t *testing.T) {
	store := NewStore(log.New(io.Discard, "", 0))

	store.Put("finance/summary", 42)
	value, ok := store.Get("finance/summary")
	require.True(t, ok)
	assert.Equal(t, 42, value)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestStore_ConcurrentWriters(t *testing.T) {
	store := NewStore(log.New(io.Discard, "", 0))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			store.Put(fmt.Sprintf("key-%d", n), n)
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Snapshot(), 50)
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	store := NewStore(log.New(io.Discard, "", 0))
	store.Put("a", 1)

	snapshot := store.Snapshot()
	snapshot["b"] = 2

	_, ok := store.Get("b")
	assert.False(t, ok, "mutating a snapshot must not leak into the store")
}
