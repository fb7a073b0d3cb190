package memory

import (
	"testing"

	"github.com/go-reckon/reckon"
	"github.com/go-reckon/reckon/errors"
	"github.com/stretchr/testify/require"
)

func TestBatchIterator(t *testing.T) {
	b1, err := reckon.CreateBatch(reckon.IntColumn{1})
	require.Nil(t, err)
	b2, err := reckon.CreateBatch(reckon.IntColumn{2})
	require.Nil(t, err)

	it := CreateBatchIterator(b1, b2)
	ended := false
	it.OnEnd(func() { ended = true })

	require.True(t, it.HasNextBatch())
	got, err := it.NextBatch()
	require.Nil(t, err)
	require.Equal(t, b1, got)
	require.False(t, ended)

	got, err = it.NextBatch()
	require.Nil(t, err)
	require.Equal(t, b2, got)
	require.True(t, ended)

	require.False(t, it.HasNextBatch())
	_, err = it.NextBatch()
	require.Equal(t, errors.NoMoreBatchesError{}, err)
}

func TestEmptyBatchIterator(t *testing.T) {
	it := CreateBatchIterator()
	require.False(t, it.HasNextBatch())
	_, err := it.NextBatch()
	require.Equal(t, errors.NoMoreBatchesError{}, err)
}
