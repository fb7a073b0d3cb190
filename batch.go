package reckon

import (
	"github.com/go-reckon/reckon/errors"
)

// A Column is one tracked input signal's values within a Batch, stored as a
// flat array of scalars
type Column interface {
	Len() int              // Len returns the number of values in this Column
	Element(i int) Element // Element returns the value at position i as an Element
}

// IntColumn is a Column of int64 values
type IntColumn []int64

// Len returns the number of values in this Column
func (c IntColumn) Len() int { return len(c) }

// Element returns the value at position i as an Element
func (c IntColumn) Element(i int) Element { return IntElement(c[i]) }

// FloatColumn is a Column of float64 values
type FloatColumn []float64

// Len returns the number of values in this Column
func (c FloatColumn) Len() int { return len(c) }

// Element returns the value at position i as an Element
func (c FloatColumn) Element(i int) Element { return FloatElement(c[i]) }

// StringColumn is a Column of string values
type StringColumn []string

// Len returns the number of values in this Column
func (c StringColumn) Len() int { return len(c) }

// Element returns the value at position i as an Element
func (c StringColumn) Element(i int) Element { return StringElement(c[i]) }

// A Batch is one partition's worth of input data: a fixed-order sequence of
// same-length Columns, one per tracked input signal. Batches are immutable
// once produced, and no ordering is assumed among the Batches of a stream.
type Batch struct {
	cols []Column
}

// CreateBatch is a factory for Batches, verifying that all Columns are the
// same length
func CreateBatch(cols ...Column) (*Batch, error) {
	if len(cols) == 0 {
		return &Batch{}, nil
	}
	for _, col := range cols[1:] {
		if col.Len() != cols[0].Len() {
			return nil, errors.IncompatibleBatchError{}
		}
	}
	return &Batch{cols: cols}, nil
}

// Width returns the number of Columns in this Batch
func (b *Batch) Width() int {
	return len(b.cols)
}

// NumRows returns the number of values in each Column of this Batch
func (b *Batch) NumRows() int {
	if len(b.cols) == 0 {
		return 0
	}
	return b.cols[0].Len()
}

// Flatten extracts every scalar in this Batch as a flat sequence of Elements,
// in row-major order
func (b *Batch) Flatten() []Element {
	elems := make([]Element, 0, b.NumRows()*b.Width())
	for i := 0; i < b.NumRows(); i++ {
		for _, col := range b.cols {
			elems = append(elems, col.Element(i))
		}
	}
	return elems
}
