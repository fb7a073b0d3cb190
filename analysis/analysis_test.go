package analysis

import (
	"context"
	"testing"

	"github.com/go-reckon/reckon"
	"github.com/go-reckon/reckon/accumulators"
	"github.com/go-reckon/reckon/datasource/memory"
	"github.com/go-reckon/reckon/errors"
	"github.com/stretchr/testify/require"
)

func floatBatches(t *testing.T, groups ...[]float64) reckon.BatchIterator {
	batches := make([]*reckon.Batch, len(groups))
	for i, group := range groups {
		batch, err := reckon.CreateBatch(reckon.FloatColumn(group))
		require.Nil(t, err)
		batches[i] = batch
	}
	return memory.CreateBatchIterator(batches...)
}

func TestRunDispatchesCombineSpec(t *testing.T) {
	spec := &reckon.CombineSpec{Combiner: accumulators.Adder()}
	res, err := Run(context.Background(), spec, floatBatches(t, []float64{1, 2}, []float64{3}, []float64{4, 5, 6}), nil)
	require.Nil(t, err)
	require.Equal(t, 21.0, res)
}

func TestRunCombineEmptyInput(t *testing.T) {
	spec := &reckon.CombineSpec{Combiner: accumulators.Adder()}
	_, err := Run(context.Background(), spec, floatBatches(t), nil)
	require.Equal(t, errors.EmptyInputError{}, err)
}

func TestRunCombineEmptyInputWithDefault(t *testing.T) {
	spec := &reckon.CombineSpec{Combiner: accumulators.Counter()}
	res, err := Run(context.Background(), spec, floatBatches(t), nil)
	require.Nil(t, err)
	require.Equal(t, uint64(0), res)
}

// bogusSpec satisfies AnalyzerSpec via embedding without being a known variant
type bogusSpec struct {
	*reckon.UniquesSpec
}

func TestRunUnknownSpecKind(t *testing.T) {
	spec := &bogusSpec{UniquesSpec: reckon.CreateUniquesSpec("vocab")}
	_, err := Run(context.Background(), spec, floatBatches(t), nil)
	require.NotNil(t, err)
	require.IsType(t, errors.UnsupportedAnalyzerKindError{}, err)
}

func TestRunUniquesNeedsWriterOrOutputDir(t *testing.T) {
	spec := reckon.CreateUniquesSpec("vocab")
	_, err := Run(context.Background(), spec, floatBatches(t), &Options{})
	require.NotNil(t, err)
}
