package reckon

// BatchIterator is a generalized interface for iterating over Batches, regardless of where they come from
type BatchIterator interface {
	HasNextBatch() bool
	// NextBatch returns errors.NoMoreBatchesError when the stream is exhausted
	NextBatch() (*Batch, error)
	OnEnd(onEnd func())
}
