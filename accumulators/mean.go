package accumulators

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-reckon/reckon"
)

// Meaner returns a Combiner which computes the mean of every numeric Element
// in a dataset. The mean of an empty dataset is undefined, so Meaner requires
// non-empty input.
func Meaner() reckon.Combiner {
	return &meanCombiner{}
}

type meanCombiner struct{}

// CreateAccumulator produces a fresh, empty Accumulator
func (c *meanCombiner) CreateAccumulator() reckon.Accumulator {
	return new(Mean)
}

// ExtractOutput produces the mean from a fully-merged Accumulator
func (c *meanCombiner) ExtractOutput(acc reckon.Accumulator) (interface{}, error) {
	ma, ok := acc.(*Mean)
	if !ok {
		return nil, fmt.Errorf("Accumulator is not a Mean Accumulator")
	}
	if ma.count == 0 {
		return nil, fmt.Errorf("Mean is undefined over zero elements")
	}
	return ma.sum / float64(ma.count), nil
}

// RequiresNonEmptyInput returns true: the mean of no input is undefined
func (c *meanCombiner) RequiresNonEmptyInput() bool {
	return true
}

// Mean tracks a running sum and element count
type Mean struct {
	sum   float64
	count uint64
}

// Add folds a Batch into this Accumulator
func (a *Mean) Add(batch *reckon.Batch) error {
	for _, e := range batch.Flatten() {
		if e.Kind() == reckon.KindString {
			return fmt.Errorf("Cannot average string element %q", e.String())
		}
		a.sum += e.Float()
		a.count++
	}
	return nil
}

// Merge merges another Accumulator into this one
func (a *Mean) Merge(o reckon.Accumulator) error {
	ma, ok := o.(*Mean)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a Mean Accumulator")
	}
	a.sum += ma.sum
	a.count += ma.count
	return nil
}

// ToBytes serializes this Accumulator
func (a *Mean) ToBytes() ([]byte, error) {
	buff := make([]byte, 16)
	binary.LittleEndian.PutUint64(buff, math.Float64bits(a.sum))
	binary.LittleEndian.PutUint64(buff[8:], a.count)
	return buff, nil
}

// FromBytes produces a new Accumulator from serialized data
func (a *Mean) FromBytes(buff []byte) (reckon.Accumulator, error) {
	return &Mean{
		sum:   math.Float64frombits(binary.LittleEndian.Uint64(buff)),
		count: binary.LittleEndian.Uint64(buff[8:]),
	}, nil
}
