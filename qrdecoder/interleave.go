package qrdecoder

import "qrscan/qrtables"

// dataBlock is one de-interleaved block: codewords holds its data bytes
// followed by its ECC bytes; numData of the leading bytes are data, the
// rest are ECC.
type dataBlock struct {
	numData   int
	codewords []byte
}

// deinterleave reassembles per-block codewords from the zigzag-read stream,
// grounded on datablock.go's GetDataBlocks: short blocks' data bytes come
// first, one column at a time, one byte per block per column, then the
// extra data byte of each long block, then the ECC bytes the same way.
// capacity.ShortBlocks already tells us where the short/long split falls,
// so unlike GetDataBlocks this needs no backward scan to find it.
func deinterleave(codewords []byte, capacity qrtables.Capacity) []dataBlock {
	numBlocks := capacity.NumBlocks
	blocks := make([]dataBlock, numBlocks)
	for i := range blocks {
		numData := capacity.BlockLen
		if i >= capacity.ShortBlocks {
			numData++
		}
		blocks[i] = dataBlock{numData: numData, codewords: make([]byte, numData+capacity.ECCWords)}
	}

	offset := 0
	for i := 0; i < capacity.BlockLen; i++ {
		for j := 0; j < numBlocks; j++ {
			blocks[j].codewords[i] = codewords[offset]
			offset++
		}
	}
	for j := capacity.ShortBlocks; j < numBlocks; j++ {
		blocks[j].codewords[capacity.BlockLen] = codewords[offset]
		offset++
	}
	for i := capacity.BlockLen; i < capacity.BlockLen+capacity.ECCWords; i++ {
		for j := 0; j < numBlocks; j++ {
			idx := i
			if j >= capacity.ShortBlocks {
				idx++
			}
			blocks[j].codewords[idx] = codewords[offset]
			offset++
		}
	}
	return blocks
}
