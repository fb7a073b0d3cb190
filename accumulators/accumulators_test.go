package accumulators

import (
	"testing"

	"github.com/go-reckon/reckon"
	"github.com/stretchr/testify/require"
)

func makeBatch(t *testing.T, vals ...float64) *reckon.Batch {
	batch, err := reckon.CreateBatch(reckon.FloatColumn(vals))
	require.Nil(t, err)
	return batch
}

func TestCountAccumulator(t *testing.T) {
	comb := Counter()
	acc := comb.CreateAccumulator()
	require.Nil(t, acc.Add(makeBatch(t, 1, 2, 3)))
	require.Nil(t, acc.Add(makeBatch(t, 4)))
	res, err := comb.ExtractOutput(acc)
	require.Nil(t, err)
	require.Equal(t, uint64(4), res)
	require.False(t, comb.RequiresNonEmptyInput())
}

func TestSumAccumulator(t *testing.T) {
	comb := Adder()
	acc := comb.CreateAccumulator()
	require.Nil(t, acc.Add(makeBatch(t, 1, 2)))
	require.Nil(t, acc.Add(makeBatch(t, 3.5)))
	res, err := comb.ExtractOutput(acc)
	require.Nil(t, err)
	require.Equal(t, 6.5, res)
	require.True(t, comb.RequiresNonEmptyInput())
}

func TestSumRejectsStrings(t *testing.T) {
	acc := Adder().CreateAccumulator()
	batch, err := reckon.CreateBatch(reckon.StringColumn{"a"})
	require.Nil(t, err)
	require.NotNil(t, acc.Add(batch))
}

func TestMeanAccumulator(t *testing.T) {
	comb := Meaner()
	acc := comb.CreateAccumulator()
	require.Nil(t, acc.Add(makeBatch(t, 2, 4)))
	require.Nil(t, acc.Add(makeBatch(t, 6)))
	res, err := comb.ExtractOutput(acc)
	require.Nil(t, err)
	require.Equal(t, 4.0, res)
}

// merge must be associative and commutative under extract-equivalence, since
// the engine merges partial results in arbitrary tree shapes
func TestSumMergeAssociativeCommutative(t *testing.T) {
	comb := Adder()
	build := func(vals ...float64) reckon.Accumulator {
		acc := comb.CreateAccumulator()
		require.Nil(t, acc.Add(makeBatch(t, vals...)))
		return acc
	}
	extract := func(acc reckon.Accumulator) float64 {
		res, err := comb.ExtractOutput(acc)
		require.Nil(t, err)
		return res.(float64)
	}

	// merge(merge(a, b), c)
	left := build(1, 2)
	require.Nil(t, left.Merge(build(3)))
	require.Nil(t, left.Merge(build(4, 5)))

	// merge(a, merge(b, c))
	bc := build(3)
	require.Nil(t, bc.Merge(build(4, 5)))
	right := build(1, 2)
	require.Nil(t, right.Merge(bc))

	// merge(c, b, a)
	rev := build(4, 5)
	require.Nil(t, rev.Merge(build(3)))
	require.Nil(t, rev.Merge(build(1, 2)))

	require.Equal(t, 15.0, extract(left))
	require.Equal(t, extract(left), extract(right))
	require.Equal(t, extract(left), extract(rev))
}

func TestAccumulatorSerialization(t *testing.T) {
	comb := Meaner()
	acc := comb.CreateAccumulator()
	require.Nil(t, acc.Add(makeBatch(t, 2, 4, 9)))
	buff, err := acc.ToBytes()
	require.Nil(t, err)
	deser, err := comb.CreateAccumulator().FromBytes(buff)
	require.Nil(t, err)
	res, err := comb.ExtractOutput(deser)
	require.Nil(t, err)
	require.Equal(t, 5.0, res)
}

func TestComposedAccumulator(t *testing.T) {
	comb := Compose(Counter(), Adder())
	require.True(t, comb.RequiresNonEmptyInput())

	acc := comb.CreateAccumulator()
	require.Nil(t, acc.Add(makeBatch(t, 1, 2, 3)))
	other := comb.CreateAccumulator()
	require.Nil(t, other.Add(makeBatch(t, 4)))
	require.Nil(t, acc.Merge(other))

	// round-trip through serialization before extracting
	buff, err := acc.ToBytes()
	require.Nil(t, err)
	deser, err := comb.CreateAccumulator().FromBytes(buff)
	require.Nil(t, err)

	res, err := comb.ExtractOutput(deser)
	require.Nil(t, err)
	results, ok := res.([]interface{})
	require.True(t, ok)
	require.Equal(t, uint64(4), results[0])
	require.Equal(t, 10.0, results[1])
}

func TestMergeRejectsForeignAccumulators(t *testing.T) {
	acc := Counter().CreateAccumulator()
	require.NotNil(t, acc.Merge(Adder().CreateAccumulator()))
}
