package qrdecoder

import (
	"fmt"

	"qrscan/bitmap"
	"qrscan/qrtables"
)

// readCodewords walks template's data-bearing cells in zigzag order, XORs
// each bit against mask, and packs 8 bits at a time into codewords.
// Grounded on bitmatrixparser.go's ReadCodewords, which unmasks and walks
// in the same pass this module splits into qrtables.Walk plus mask lookup.
func readCodewords(bm *bitmap.Bitmap, template *bitmap.Bitmap, mask qrtables.MaskFunc, capacity qrtables.Capacity) ([]byte, error) {
	codewords := make([]byte, 0, capacity.TotalBytes)
	var current byte
	bitsRead := 0
	qrtables.Walk(template, func(x, y int) {
		bit := bm.IsOn(x, y)
		if mask(x, y) {
			bit = !bit
		}
		current <<= 1
		if bit {
			current |= 1
		}
		bitsRead++
		if bitsRead == 8 {
			codewords = append(codewords, current)
			current = 0
			bitsRead = 0
		}
	})
	if len(codewords) != capacity.TotalBytes {
		return nil, fmt.Errorf("%w: read %d codewords, want %d", ErrDecode, len(codewords), capacity.TotalBytes)
	}
	return codewords, nil
}
