package replicapool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIncrementErrorsConcurrent(t *testing.T) {
	e := newReplicaEntry("a", 0)

	var wg sync.WaitGroup
	for g := 0; g < 50; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 40; i++ {
				e.incrementErrors()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(2000), e.errorCount.Load())
}

func TestRandomizeDrawsFreshValues(t *testing.T) {
	e := newReplicaEntry("a", 0)

	e.randomize()
	first := e.random

	changed := false
	for i := 0; i < 10; i++ {
		e.randomize()
		if e.random != first {
			changed = true
			break
		}
	}
	assert.True(t, changed)
}

func TestDistinctEntriesUncorrelatedStreams(t *testing.T) {
	a := newReplicaEntry("a", 0)
	b := newReplicaEntry("b", 0)

	var aDraws, bDraws []uint32
	for i := 0; i < 8; i++ {
		a.randomize()
		b.randomize()
		aDraws = append(aDraws, a.random)
		bDraws = append(bDraws, b.random)
	}

	assert.NotEqual(t, aDraws, bDraws)
}
