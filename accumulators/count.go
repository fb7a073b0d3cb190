package accumulators

import (
	"encoding/binary"
	"fmt"

	"github.com/go-reckon/reckon"
)

// Counter returns a Combiner which counts the scalar Elements in a dataset.
// A count is meaningful for an empty dataset, so Counter does not require
// non-empty input.
func Counter() reckon.Combiner {
	return &countCombiner{}
}

type countCombiner struct{}

// CreateAccumulator produces a fresh, empty Accumulator
func (c *countCombiner) CreateAccumulator() reckon.Accumulator {
	return new(Count)
}

// ExtractOutput produces the element count from a fully-merged Accumulator
func (c *countCombiner) ExtractOutput(acc reckon.Accumulator) (interface{}, error) {
	ca, ok := acc.(*Count)
	if !ok {
		return nil, fmt.Errorf("Accumulator is not a Count Accumulator")
	}
	return ca.GetCount(), nil
}

// RequiresNonEmptyInput returns false: counting an empty dataset yields 0
func (c *countCombiner) RequiresNonEmptyInput() bool {
	return false
}

// Count counts elements
type Count struct {
	count uint64
}

// GetCount returns the element count from this Accumulator
func (a *Count) GetCount() uint64 {
	return a.count
}

// Add folds a Batch into this Accumulator
func (a *Count) Add(batch *reckon.Batch) error {
	a.count += uint64(batch.NumRows() * batch.Width())
	return nil
}

// Merge merges another Accumulator into this one
func (a *Count) Merge(o reckon.Accumulator) error {
	ca, ok := o.(*Count)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a Count Accumulator")
	}
	a.count += ca.count
	return nil
}

// ToBytes serializes this Accumulator
func (a *Count) ToBytes() ([]byte, error) {
	buff := make([]byte, 8)
	binary.LittleEndian.PutUint64(buff, a.count)
	return buff, nil
}

// FromBytes produces a new Accumulator from serialized data
func (a *Count) FromBytes(buff []byte) (reckon.Accumulator, error) {
	return &Count{count: binary.LittleEndian.Uint64(buff)}, nil
}
