// Package memory provides a BatchIterator over Batches already resident in
// memory, suitable for tests and embedding
package memory

import (
	"sync"

	"github.com/go-reckon/reckon"
	"github.com/go-reckon/reckon/errors"
)

// BatchIterator iterates over a fixed, in-memory sequence of Batches
type BatchIterator struct {
	lock         sync.Mutex
	batches      []*reckon.Batch
	next         int
	ended        bool
	endListeners []func()
}

// CreateBatchIterator is a factory for in-memory BatchIterators
func CreateBatchIterator(batches ...*reckon.Batch) *BatchIterator {
	return &BatchIterator{batches: batches, endListeners: []func(){}}
}

// HasNextBatch returns true iff batches remain
func (bi *BatchIterator) HasNextBatch() bool {
	bi.lock.Lock()
	defer bi.lock.Unlock()
	return bi.next < len(bi.batches)
}

// NextBatch returns the next Batch, or errors.NoMoreBatchesError when exhausted
func (bi *BatchIterator) NextBatch() (*reckon.Batch, error) {
	bi.lock.Lock()
	defer bi.lock.Unlock()
	if bi.next >= len(bi.batches) {
		bi.end()
		return nil, errors.NoMoreBatchesError{}
	}
	batch := bi.batches[bi.next]
	bi.next++
	if bi.next >= len(bi.batches) {
		bi.end()
	}
	return batch, nil
}

// OnEnd registers a listener which fires when this iterator runs out of batches
func (bi *BatchIterator) OnEnd(onEnd func()) {
	bi.lock.Lock()
	defer bi.lock.Unlock()
	bi.endListeners = append(bi.endListeners, onEnd)
}

func (bi *BatchIterator) end() {
	if bi.ended {
		return
	}
	bi.ended = true
	for _, l := range bi.endListeners {
		l()
	}
}
