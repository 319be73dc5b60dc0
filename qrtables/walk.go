package qrtables

import "qrscan/bitmap"

// Walk visits every Unknown (data-bearing) cell of template in the standard
// QR zigzag order: starting at the bottom-right corner, pairs of columns
// move right to left (skipping column 6, the vertical timing column); within
// each two-column strip, cells are visited top-to-bottom or bottom-to-top
// depending on the current direction, reading the right column of the pair
// before the left column; direction reverses at every strip boundary.
//
// visit is called once per data-bearing cell with its (x, y); the caller
// decides what that implies (read a symbol bit and advance a bit buffer, or
// write one during encoding-side template generation, which this module
// does not do).
func Walk(template *bitmap.Bitmap, visit func(x, y int)) {
	size := template.Width()
	readingUp := true
	for right := size - 1; right > 0; right -= 2 {
		if right == 6 {
			right--
		}
		for count := 0; count < size; count++ {
			y := count
			if readingUp {
				y = size - 1 - count
			}
			for col := 0; col < 2; col++ {
				x := right - col
				if template.Get(x, y) != bitmap.Unknown {
					continue
				}
				visit(x, y)
			}
		}
		readingUp = !readingUp
	}
}

// Count returns the number of Unknown cells Walk would visit, used to
// validate a template against a capacity's total codeword count (spec §8
// property 7: the walker visits exactly capacity.total*8 cells).
func Count(template *bitmap.Bitmap) int {
	n := 0
	Walk(template, func(int, int) { n++ })
	return n
}
