package engine

import (
	"testing"

	"github.com/go-reckon/reckon"
	"github.com/go-reckon/reckon/accumulators"
	"github.com/stretchr/testify/require"
)

func TestFrameCodecRoundTrip(t *testing.T) {
	comb := accumulators.Adder()
	acc := comb.CreateAccumulator()
	batch, err := reckon.CreateBatch(reckon.FloatColumn{1.5, 2.5})
	require.Nil(t, err)
	require.Nil(t, acc.Add(batch))

	codec := newFrameCodec()
	frame, err := codec.encode(acc)
	require.Nil(t, err)
	deser, err := codec.decode(comb.CreateAccumulator(), frame)
	require.Nil(t, err)

	res, err := comb.ExtractOutput(deser)
	require.Nil(t, err)
	require.Equal(t, 4.0, res)
}

func TestFrameCodecIsReusable(t *testing.T) {
	comb := accumulators.Counter()
	codec := newFrameCodec()
	for i := 1; i <= 3; i++ {
		acc := comb.CreateAccumulator()
		batch, err := reckon.CreateBatch(reckon.IntColumn(make([]int64, i)))
		require.Nil(t, err)
		require.Nil(t, acc.Add(batch))
		frame, err := codec.encode(acc)
		require.Nil(t, err)
		deser, err := codec.decode(comb.CreateAccumulator(), frame)
		require.Nil(t, err)
		res, err := comb.ExtractOutput(deser)
		require.Nil(t, err)
		require.Equal(t, uint64(i), res)
	}
}
