package qrdecoder

import (
	"errors"
	"fmt"

	"qrscan/bitmap"
	"qrscan/qrtables"
	"qrscan/reedsolomon"
)

var (
	// ErrInvalidFormat means neither redundant copy of the 15-bit format
	// field could be recovered within the BCH's error tolerance.
	ErrInvalidFormat = errors.New("qrdecoder: could not recover format information")
	// ErrInvalidVersion means the recovered version does not match the
	// bitmap's own dimension, or the symbol is too small to have one.
	ErrInvalidVersion = errors.New("qrdecoder: recovered version does not match symbol dimension")
	// ErrDecode covers everything downstream of format/version recovery:
	// a codeword count mismatch, an uncorrectable block, or an unparseable
	// bit stream.
	ErrDecode = errors.New("qrdecoder: decode failed")
)

// Decode runs the full pipeline against a rectified, dimension x dimension
// bitmap of On/Off cells: format/version recovery, zigzag codeword read,
// de-interleave, per-block Reed-Solomon correction and segment parse.
//
// If that fails, it retries once against the transposed bitmap, as if the
// module grid had been sampled through the back of the symbol — a real
// failure mode for photographed or printed-and-viewed-through codes, carried
// forward from the teacher's unconditional mirror retry in decoder.go.
func Decode(rectified *bitmap.Bitmap) (*Result, error) {
	result, err := decodeOnce(rectified)
	if err == nil {
		return result, nil
	}
	mirrored, mErr := decodeOnce(transpose(rectified))
	if mErr == nil {
		mirrored.Mirrored = true
		return mirrored, nil
	}
	return nil, err
}

// transpose swaps rows and columns, the effect of a QR symbol having been
// read mirror-flipped across its main diagonal.
func transpose(b *bitmap.Bitmap) *bitmap.Bitmap {
	size := b.Width()
	out := bitmap.NewSquare(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			out.Set(x, y, b.Get(y, x))
		}
	}
	return out
}

func decodeOnce(bm *bitmap.Bitmap) (*Result, error) {
	dimension := bm.Width()
	version, ok := qrtables.ProvisionalVersion(dimension)
	if !ok {
		return nil, ErrInvalidVersion
	}

	if version >= 7 {
		v1, v2 := readVersionBits(bm)
		recovered, ok := decodeVersion(v1, v2)
		if !ok || qrtables.SizeForVersion(recovered) != dimension {
			return nil, ErrInvalidVersion
		}
		version = recovered
	}

	f1, f2 := readFormatBits(bm)
	level, mask, ok := decodeFormat(f1, f2)
	if !ok {
		return nil, ErrInvalidFormat
	}

	template := qrtables.BuildTemplate(version)
	capacity := qrtables.CapacityFor(version, level)

	codewords, err := readCodewords(bm, template, qrtables.Masks[mask], capacity)
	if err != nil {
		return nil, err
	}

	blocks := deinterleave(codewords, capacity)

	rs := reedsolomon.NewDecoder(reedsolomon.QRCodeField256)
	dataBytes := make([]byte, 0, capacity.DataBits/8)
	errorsCorrected := 0
	for _, blk := range blocks {
		ints := make([]int, len(blk.codewords))
		for i, c := range blk.codewords {
			ints[i] = int(c)
		}
		corrected, err := rs.Decode(ints, capacity.ECCWords)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		errorsCorrected += corrected
		for i := 0; i < blk.numData; i++ {
			dataBytes = append(dataBytes, byte(ints[i]))
		}
	}

	text, err := decodeSegments(dataBytes, version)
	if err != nil {
		return nil, err
	}

	return &Result{
		Text:            text,
		Version:         version,
		Level:           level,
		Mask:            mask,
		ErrorsCorrected: errorsCorrected,
	}, nil
}
