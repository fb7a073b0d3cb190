package reckon

// An Accumulator is an opaque partial result of a distributed reduction over
// Batches. Accumulators are produced on many workers, serialized, and merged
// in an engine-chosen tree, so Merge must be associative and commutative
// under the equivalence "produces the same extracted output", and must be a
// pure function of its inputs - the engine may retry and duplicate partial
// work during fault recovery. An Accumulator which has been merged into
// another is dead: ownership transfers to the merge result and the input must
// not be used again.
type Accumulator interface {
	Add(batch *Batch) error                    // Add folds a Batch into this Accumulator
	Merge(o Accumulator) error                 // Merge merges another Accumulator into this one, consuming it
	ToBytes() ([]byte, error)                  // ToBytes serializes this Accumulator
	FromBytes(buf []byte) (Accumulator, error) // FromBytes produces a new Accumulator from serialized data
}

// A Combiner supplies the accumulator protocol for a single generic
// reduction: creating empty Accumulators and extracting a final output value
// from a fully-merged one. Combiners which need per-worker local state
// additionally implement LocalStateInitializer.
type Combiner interface {
	// CreateAccumulator produces a fresh, empty Accumulator
	CreateAccumulator() Accumulator
	// ExtractOutput produces the reduction's final output from a fully-merged Accumulator
	ExtractOutput(acc Accumulator) (interface{}, error)
	// RequiresNonEmptyInput returns true iff this Combiner cannot produce a
	// meaningful output from an empty Accumulator. When true, an engine
	// observing zero Batches fails with errors.EmptyInputError rather than
	// extracting a zero-value result.
	RequiresNonEmptyInput() bool
}

// LocalStateConfig describes the worker an Accumulator will run on
type LocalStateConfig struct {
	WorkerID   string
	NumWorkers int
}

// LocalStateInitializer is implemented by Combiners which precompute local
// state before accumulating. Engines call InitLocalState once per worker
// process rather than once per Batch; implementations must be safe to call
// concurrently and repeatedly, since workers may be replaced.
type LocalStateInitializer interface {
	InitLocalState(conf *LocalStateConfig) error
}
