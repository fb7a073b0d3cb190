package accumulators

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/go-reckon/reckon"
)

// Compose returns a Combiner which runs several Combiners over a single pass
// of the input. Its extracted output is a slice containing each contained
// Combiner's output, in order. The composition requires non-empty input iff
// any contained Combiner does.
func Compose(combs ...reckon.Combiner) reckon.Combiner {
	return &composedCombiner{combs: combs}
}

type composedCombiner struct {
	combs []reckon.Combiner
}

// CreateAccumulator produces a fresh, empty Accumulator
func (c *composedCombiner) CreateAccumulator() reckon.Accumulator {
	accs := make([]reckon.Accumulator, len(c.combs))
	for i, comb := range c.combs {
		accs[i] = comb.CreateAccumulator()
	}
	return &Composed{accs: accs}
}

// ExtractOutput produces a slice of each contained Combiner's output
func (c *composedCombiner) ExtractOutput(acc reckon.Accumulator) (interface{}, error) {
	compa, ok := acc.(*Composed)
	if !ok {
		return nil, fmt.Errorf("Accumulator is not a Composed Accumulator")
	}
	results := make([]interface{}, len(c.combs))
	for i, comb := range c.combs {
		res, err := comb.ExtractOutput(compa.accs[i])
		if err != nil {
			return nil, err
		}
		results[i] = res
	}
	return results, nil
}

// RequiresNonEmptyInput returns true iff any contained Combiner requires non-empty input
func (c *composedCombiner) RequiresNonEmptyInput() bool {
	for _, comb := range c.combs {
		if comb.RequiresNonEmptyInput() {
			return true
		}
	}
	return false
}

// InitLocalState initializes local state on every contained Combiner which needs it
func (c *composedCombiner) InitLocalState(conf *reckon.LocalStateConfig) error {
	for _, comb := range c.combs {
		if init, ok := comb.(reckon.LocalStateInitializer); ok {
			if err := init.InitLocalState(conf); err != nil {
				return err
			}
		}
	}
	return nil
}

// Composed composes other Accumulators
type Composed struct {
	accs []reckon.Accumulator
}

// GetResults returns the contained Accumulators, so that their results may be accessed
func (c *Composed) GetResults() []reckon.Accumulator {
	return c.accs
}

// Add folds a Batch into all contained Accumulators
func (c *Composed) Add(batch *reckon.Batch) error {
	for _, a := range c.accs {
		err := a.Add(batch)
		if err != nil {
			return err
		}
	}
	return nil
}

// Merge merges another Composed Accumulator into this one, merging all contained Accumulators
func (c *Composed) Merge(o reckon.Accumulator) error {
	compa, ok := o.(*Composed)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a Composed Accumulator")
	}
	for i, a := range c.accs {
		err := a.Merge(compa.accs[i])
		if err != nil {
			return err
		}
	}
	return nil
}

// ToBytes serializes this Accumulator
func (c *Composed) ToBytes() ([]byte, error) {
	result := make([][]byte, len(c.accs))
	for i, a := range c.accs {
		buff, err := a.ToBytes()
		if err != nil {
			return nil, err
		}
		result[i] = buff
	}
	buff := new(bytes.Buffer)
	e := gob.NewEncoder(buff)
	err := e.Encode(result)
	if err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// FromBytes produces a new Accumulator from serialized data
func (c *Composed) FromBytes(buff []byte) (reckon.Accumulator, error) {
	var deser [][]byte
	d := gob.NewDecoder(bytes.NewBuffer(buff))
	err := d.Decode(&deser)
	if err != nil {
		return nil, err
	}
	newAccs := make([]reckon.Accumulator, len(c.accs))
	for i, b := range deser {
		a, err := c.accs[i].FromBytes(b)
		if err != nil {
			return nil, err
		}
		newAccs[i] = a
	}
	return &Composed{accs: newAccs}, nil
}
