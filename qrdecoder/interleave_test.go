package qrdecoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrscan/qrtables"
)

// interleaveForTest is deinterleave's inverse, built from the same
// column-major traversal order, used to produce a synthetic zigzag stream
// from known per-block contents.
func interleaveForTest(blocks []dataBlock, capacity qrtables.Capacity) []byte {
	out := make([]byte, 0, capacity.TotalBytes)
	for i := 0; i < capacity.BlockLen; i++ {
		for j := 0; j < capacity.NumBlocks; j++ {
			out = append(out, blocks[j].codewords[i])
		}
	}
	for j := capacity.ShortBlocks; j < capacity.NumBlocks; j++ {
		out = append(out, blocks[j].codewords[capacity.BlockLen])
	}
	for i := capacity.BlockLen; i < capacity.BlockLen+capacity.ECCWords; i++ {
		for j := 0; j < capacity.NumBlocks; j++ {
			idx := i
			if j >= capacity.ShortBlocks {
				idx++
			}
			out = append(out, blocks[j].codewords[idx])
		}
	}
	return out
}

func TestDeinterleaveRoundTripsMixedBlockSizes(t *testing.T) {
	capacity := qrtables.CapacityFor(5, qrtables.High)
	require.Equal(t, 4, capacity.NumBlocks)
	require.Equal(t, 2, capacity.ShortBlocks)

	want := make([]dataBlock, capacity.NumBlocks)
	for j := range want {
		numData := capacity.BlockLen
		if j >= capacity.ShortBlocks {
			numData++
		}
		codewords := make([]byte, numData+capacity.ECCWords)
		for i := range codewords {
			codewords[i] = byte(j*50 + i)
		}
		want[j] = dataBlock{numData: numData, codewords: codewords}
	}

	stream := interleaveForTest(want, capacity)
	require.Len(t, stream, capacity.TotalBytes)

	got := deinterleave(stream, capacity)
	require.Len(t, got, capacity.NumBlocks)
	for j := range want {
		assert.Equal(t, want[j].numData, got[j].numData, "block %d", j)
		assert.Equal(t, want[j].codewords, got[j].codewords, "block %d", j)
	}
}

func TestDeinterleaveSingleBlockIsIdentity(t *testing.T) {
	capacity := qrtables.CapacityFor(1, qrtables.Low)
	require.Equal(t, 1, capacity.NumBlocks)

	stream := make([]byte, capacity.TotalBytes)
	for i := range stream {
		stream[i] = byte(i)
	}

	got := deinterleave(stream, capacity)
	require.Len(t, got, 1)
	assert.Equal(t, stream, got[0].codewords)
}
