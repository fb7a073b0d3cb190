package engine

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/go-reckon/reckon"
	"github.com/go-reckon/reckon/accumulators"
	"github.com/go-reckon/reckon/datasource/memory"
	"github.com/go-reckon/reckon/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func makeBatch(t *testing.T, vals ...float64) *reckon.Batch {
	batch, err := reckon.CreateBatch(reckon.FloatColumn(vals))
	require.Nil(t, err)
	return batch
}

func TestCombineSumAcrossTreeShapes(t *testing.T) {
	defer goleak.VerifyNone(t)
	// the result must not depend on worker count or merge fan-in
	for _, numWorkers := range []int{1, 2, 4, 8} {
		for _, fanIn := range []int{2, 3, 8} {
			e := Create(&Conf{NumWorkers: numWorkers, FanIn: fanIn})
			batches := memory.CreateBatchIterator(
				makeBatch(t, 1, 2, 3),
				makeBatch(t, 4, 5),
				makeBatch(t, 6),
			)
			res, err := e.Combine(context.Background(), accumulators.Adder(), batches)
			require.Nil(t, err)
			require.Equal(t, 21.0, res)
		}
	}
}

func TestCombineManyBatches(t *testing.T) {
	defer goleak.VerifyNone(t)
	numBatches := 100
	batches := make([]*reckon.Batch, numBatches)
	for i := range batches {
		batches[i] = makeBatch(t, 1, 1)
	}
	e := Create(&Conf{NumWorkers: 4, FanIn: 2})
	res, err := e.Combine(context.Background(), accumulators.Counter(), memory.CreateBatchIterator(batches...))
	require.Nil(t, err)
	require.Equal(t, uint64(2*numBatches), res)
}

func TestCombineEmptyInputFailsWhenRequired(t *testing.T) {
	defer goleak.VerifyNone(t)
	e := Create(&Conf{NumWorkers: 2})
	_, err := e.Combine(context.Background(), accumulators.Adder(), memory.CreateBatchIterator())
	require.Equal(t, errors.EmptyInputError{}, err)
}

func TestCombineEmptyInputDefault(t *testing.T) {
	defer goleak.VerifyNone(t)
	e := Create(&Conf{NumWorkers: 2})
	res, err := e.Combine(context.Background(), accumulators.Counter(), memory.CreateBatchIterator())
	require.Nil(t, err)
	require.Equal(t, uint64(0), res)
}

func TestCombineAddErrorPropagates(t *testing.T) {
	defer goleak.VerifyNone(t)
	e := Create(&Conf{NumWorkers: 2})
	bad, err := reckon.CreateBatch(reckon.StringColumn{"not a number"})
	require.Nil(t, err)
	_, err = e.Combine(context.Background(), accumulators.Adder(), memory.CreateBatchIterator(bad))
	require.NotNil(t, err)
}

func TestCombineCancelledContext(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := Create(&Conf{NumWorkers: 2})
	batches := memory.CreateBatchIterator(makeBatch(t, 1), makeBatch(t, 2))
	_, err := e.Combine(ctx, accumulators.Adder(), batches)
	require.NotNil(t, err)
}

// initCombiner counts how often its local state is initialized
type initCombiner struct {
	reckon.Combiner
	inits int64
}

func (c *initCombiner) InitLocalState(conf *reckon.LocalStateConfig) error {
	atomic.AddInt64(&c.inits, 1)
	return nil
}

func TestLocalStateInitializedOncePerEngineRun(t *testing.T) {
	defer goleak.VerifyNone(t)
	comb := &initCombiner{Combiner: accumulators.Adder()}
	e := Create(&Conf{NumWorkers: 8})
	batches := make([]*reckon.Batch, 32)
	for i := range batches {
		batches[i] = makeBatch(t, 1)
	}
	res, err := e.Combine(context.Background(), comb, memory.CreateBatchIterator(batches...))
	require.Nil(t, err)
	require.Equal(t, 32.0, res)
	// all 8 workers share one initialization
	require.Equal(t, int64(1), atomic.LoadInt64(&comb.inits))

	// a replacement run initializes again, and must be safe to do so
	res, err = e.Combine(context.Background(), comb, memory.CreateBatchIterator(makeBatch(t, 5)))
	require.Nil(t, err)
	require.Equal(t, 5.0, res)
	require.Equal(t, int64(2), atomic.LoadInt64(&comb.inits))
}

func TestEngineIDsAreUnique(t *testing.T) {
	require.NotEqual(t, Create(nil).ID(), Create(nil).ID())
}
