package qrdecoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrscan/bitmap"
	"qrscan/qrtables"
	"qrscan/reedsolomon"
)

// formatBitPositions1 is the coordinate order readFormatBits walks to build
// its first copy of the format field; setFormatBits writes the same
// positions so a synthetic symbol carries a recoverable format field.
var formatBitPositions1 = [15][2]int{
	{0, 8}, {1, 8}, {2, 8}, {3, 8}, {4, 8}, {5, 8},
	{7, 8}, {8, 8}, {8, 7},
	{8, 5}, {8, 4}, {8, 3}, {8, 2}, {8, 1}, {8, 0},
}

func setFormatBits(bm *bitmap.Bitmap, value int) {
	for i, p := range formatBitPositions1 {
		bit := (value >> (14 - i)) & 1
		cell := bitmap.Off
		if bit == 1 {
			cell = bitmap.On
		}
		bm.Set(p[0], p[1], cell)
	}
}

// buildAlphanumericSymbol renders msg as a single-block version 1 symbol:
// mode+count+segment+terminator+pad, Reed-Solomon encoded, masked and laid
// out in zigzag order over a freshly built template.
func buildAlphanumericSymbol(t *testing.T, msg string, maskIdx int) *bitmap.Bitmap {
	t.Helper()
	capacity := qrtables.CapacityFor(1, qrtables.Low)
	require.Equal(t, 1, capacity.NumBlocks)

	w := &bitWriter{}
	w.writeBits(int(modeAlphanumeric), 4)
	w.writeBits(len(msg), characterCountBits[modeAlphanumeric][qrtables.SizeType(1)])
	i := 0
	for i+1 < len(msg) {
		a, ok := qrtables.AlphanumericIndex(msg[i])
		require.True(t, ok)
		b, ok := qrtables.AlphanumericIndex(msg[i+1])
		require.True(t, ok)
		w.writeBits(a*45+b, 11)
		i += 2
	}
	if i < len(msg) {
		a, ok := qrtables.AlphanumericIndex(msg[i])
		require.True(t, ok)
		w.writeBits(a, 6)
	}
	w.writeBits(0, 4)
	w.padTo(capacity.BlockLen)
	require.Len(t, w.bytes, capacity.BlockLen)

	codewordsInts := make([]int, capacity.TotalBytes)
	for idx, b := range w.bytes {
		codewordsInts[idx] = int(b)
	}
	reedsolomon.NewEncoder(reedsolomon.QRCodeField256).Encode(codewordsInts, capacity.ECCWords)

	template := qrtables.BuildTemplate(1)
	bm := template.Clone()
	setFormatBits(bm, qrtables.EncodeFormatBits(qrtables.Low, maskIdx))

	bitIdx := 0
	qrtables.Walk(template, func(x, y int) {
		byteIdx := bitIdx / 8
		bitInByte := 7 - bitIdx%8
		dataBit := (codewordsInts[byteIdx]>>uint(bitInByte))&1 == 1
		cellBit := dataBit
		if qrtables.Masks[maskIdx](x, y) {
			cellBit = !cellBit
		}
		cell := bitmap.Off
		if cellBit {
			cell = bitmap.On
		}
		bm.Set(x, y, cell)
		bitIdx++
	})
	require.Equal(t, capacity.TotalBytes*8, bitIdx)

	return bm
}

func TestDecodeRoundTripsAlphanumericMessage(t *testing.T) {
	bm := buildAlphanumericSymbol(t, "AC-42", 0)

	result, err := Decode(bm)
	require.NoError(t, err)
	assert.Equal(t, "AC-42", result.Text)
	assert.Equal(t, 1, result.Version)
	assert.Equal(t, qrtables.Low, result.Level)
	assert.Equal(t, 0, result.Mask)
	assert.False(t, result.Mirrored)
}

func TestDecodeRetriesMirroredSymbol(t *testing.T) {
	bm := buildAlphanumericSymbol(t, "AC-42", 3)

	result, err := Decode(transpose(bm))
	require.NoError(t, err)
	assert.Equal(t, "AC-42", result.Text)
	assert.True(t, result.Mirrored)
}

func TestDecodeFailsOnBlankSymbol(t *testing.T) {
	blank := bitmap.New(21, 21)
	blank.Rect(0, 0, 21, 21, bitmap.Off)
	_, err := Decode(blank)
	assert.Error(t, err)
}
