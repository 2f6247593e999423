package snowflake

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenID(t *testing.T) {
	assert.Greater(t, GenID(), uint64(0))
}

func TestGenID_Concurrent(t *testing.T) {
	const (
		goroutines = 20
		perRoutine = 2000
	)

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[uint64]struct{}, goroutines*perRoutine)
	)

	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			local := make([]uint64, 0, perRoutine)
			for i := 0; i < perRoutine; i++ {
				local = append(local, GenID())
			}
			mu.Lock()
			for _, id := range local {
				ids[id] = struct{}{}
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, ids, goroutines*perRoutine)
}

func TestGenID_Order(t *testing.T) {
	prev := GenID()
	for i := 0; i < 1000; i++ {
		curr := GenID()
		require.Greater(t, curr, prev)
		prev = curr
	}
}

func TestSetNodeRejectsOutOfRange(t *testing.T) {
	assert.Error(t, SetNode(-1))
	assert.NoError(t, SetNode(1))
}
