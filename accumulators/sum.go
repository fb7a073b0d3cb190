package accumulators

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-reckon/reckon"
)

// Adder returns a Combiner which sums every numeric Element in a dataset.
// The sum of an empty dataset is indistinguishable from the sum of a dataset
// of zeroes, so Adder requires non-empty input.
func Adder() reckon.Combiner {
	return &sumCombiner{}
}

type sumCombiner struct{}

// CreateAccumulator produces a fresh, empty Accumulator
func (c *sumCombiner) CreateAccumulator() reckon.Accumulator {
	return new(Sum)
}

// ExtractOutput produces the sum from a fully-merged Accumulator
func (c *sumCombiner) ExtractOutput(acc reckon.Accumulator) (interface{}, error) {
	sa, ok := acc.(*Sum)
	if !ok {
		return nil, fmt.Errorf("Accumulator is not a Sum Accumulator")
	}
	return sa.GetSum(), nil
}

// RequiresNonEmptyInput returns true: a zero-value sum over no input is meaningless
func (c *sumCombiner) RequiresNonEmptyInput() bool {
	return true
}

// Sum sums elements
type Sum struct {
	sum float64
}

// GetSum returns the running sum from this Accumulator
func (a *Sum) GetSum() float64 {
	return a.sum
}

// Add folds a Batch into this Accumulator
func (a *Sum) Add(batch *reckon.Batch) error {
	for _, e := range batch.Flatten() {
		if e.Kind() == reckon.KindString {
			return fmt.Errorf("Cannot sum string element %q", e.String())
		}
		a.sum += e.Float()
	}
	return nil
}

// Merge merges another Accumulator into this one
func (a *Sum) Merge(o reckon.Accumulator) error {
	sa, ok := o.(*Sum)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a Sum Accumulator")
	}
	a.sum += sa.sum
	return nil
}

// ToBytes serializes this Accumulator
func (a *Sum) ToBytes() ([]byte, error) {
	buff := make([]byte, 8)
	binary.LittleEndian.PutUint64(buff, math.Float64bits(a.sum))
	return buff, nil
}

// FromBytes produces a new Accumulator from serialized data
func (a *Sum) FromBytes(buff []byte) (reckon.Accumulator, error) {
	return &Sum{sum: math.Float64frombits(binary.LittleEndian.Uint64(buff))}, nil
}
