package qrtables

import "qrscan/bitmap"

// BuildTemplate regenerates the function-pattern template for a symbol of
// the given version: every function module (finder patterns with their
// light separator, alignment patterns, timing rows/columns, the format and
// version info regions and the dark module) is set On/Off, as are the
// remainder cells the zigzag walk reaches after the last full codeword;
// every other cell is left Unknown, marking it as data-bearing. This is regenerated
// during decoding (never stored) because the decoder does not yet know
// which cells are function modules until it knows the version.
func BuildTemplate(version int) *bitmap.Bitmap {
	size := SizeForVersion(version)
	b := bitmap.New(size, size)

	// Top-left finder + separator + format info corner: 9x9 block at origin.
	b.Rect(0, 0, 9, 9, bitmap.Off)
	drawFinder(b, 0, 0)
	// Top-right finder + separator: 8 wide x 9 tall ending at the edge.
	b.Rect(size-8, 0, 8, 9, bitmap.Off)
	drawFinder(b, size-7, 0)
	// Bottom-left finder + separator: 9 wide x 8 tall.
	b.Rect(0, size-8, 9, 8, bitmap.Off)
	drawFinder(b, 0, size-7)

	// Alignment patterns: skip the three corners that coincide with finders.
	positions := AlignmentPositions(version)
	n := len(positions)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if (i == 0 && (j == 0 || j == n-1)) || (i == n-1 && j == 0) {
				continue
			}
			drawAlignment(b, positions[j], positions[i])
		}
	}

	// Timing patterns: alternating on/off starting On at (8, 6) / (6, 8).
	for x := 8; x < size-8; x++ {
		cell := bitmap.Off
		if x%2 == 0 {
			cell = bitmap.On
		}
		b.Set(x, 6, cell)
	}
	for y := 8; y < size-8; y++ {
		cell := bitmap.Off
		if y%2 == 0 {
			cell = bitmap.On
		}
		b.Set(6, y, cell)
	}

	if version >= 7 {
		b.Rect(size-11, 0, 3, 6, bitmap.Off)
		b.Rect(0, size-11, 6, 3, bitmap.Off)
	}

	// The dark module, always On, just southwest of the bottom-left finder's
	// format info corner.
	b.Set(8, size-8, bitmap.On)

	// Remainder cells: the zigzag walk reaches them after the last full
	// codeword, so they carry no data and are marked Off.
	dataCells := bytesPerVersion[version-1] * 8
	visited := 0
	Walk(b, func(x, y int) {
		visited++
		if visited > dataCells {
			b.Set(x, y, bitmap.Off)
		}
	})

	return b
}

// drawFinder draws a 7x7 finder pattern (three concentric squares, dark at
// the rim and center, light in between) with its top-left corner at (x, y).
func drawFinder(b *bitmap.Bitmap, x, y int) {
	b.Rect(x, y, 7, 7, bitmap.On)
	b.Rect(x+1, y+1, 5, 5, bitmap.Off)
	b.Rect(x+2, y+2, 3, 3, bitmap.On)
}

// drawAlignment draws a 5x5 alignment pattern centered at (cx, cy).
func drawAlignment(b *bitmap.Bitmap, cx, cy int) {
	x, y := cx-2, cy-2
	b.Rect(x, y, 5, 5, bitmap.On)
	b.Rect(x+1, y+1, 3, 3, bitmap.Off)
	b.Set(cx, cy, bitmap.On)
}
