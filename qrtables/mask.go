package qrtables

// MaskFunc is one of the eight data-mask predicates, taking 0-indexed
// column x and row y and reporting whether that module should be flipped.
type MaskFunc func(x, y int) bool

// Masks holds the eight QR data masks, implemented as the teacher's
// datamask.go models them: an indexed array of stateless closures rather
// than a switch, so a decoded mask index selects a function value directly.
var Masks = [8]MaskFunc{
	func(x, y int) bool { return (x+y)%2 == 0 },
	func(x, y int) bool { return y%2 == 0 },
	func(x, y int) bool { return x%3 == 0 },
	func(x, y int) bool { return (x+y)%3 == 0 },
	func(x, y int) bool { return (y/2+x/3)%2 == 0 },
	func(x, y int) bool { return (x*y)%2+(x*y)%3 == 0 },
	func(x, y int) bool { return ((x*y)%2+(x*y)%3)%2 == 0 },
	func(x, y int) bool { return ((x+y)%2+(x*y)%3)%2 == 0 },
}
