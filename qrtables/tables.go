// Package qrtables implements C5 of the decode pipeline: everything that is
// a pure function of (version, ECC level, mask) rather than of the observed
// image — capacities, the eight data masks, alignment pattern positions,
// format/version BCH codes, the alphanumeric character set and the
// function-pattern template with its zigzag walk order.
//
// Every table here is a process-wide immutable constant, computed once at
// package init, matching the teacher's module-level var blocks
// (qrcode/decoder/version.go, formatinfo.go, datamask.go) generalized from
// fixed per-version lookups to the ISO/IEC 18004 arithmetic the spec calls
// for (alignment positions, BCH) where the teacher hardcoded a table.
package qrtables

// ErrorCorrectionLevel is one of the four recovery levels a symbol can be
// encoded with.
type ErrorCorrectionLevel int

const (
	Low      ErrorCorrectionLevel = iota // L
	Medium                               // M
	Quartile                             // Q
	High                                 // H
)

// Bits returns the 2-bit wire code for this level, per the format
// information field.
func (l ErrorCorrectionLevel) Bits() int {
	return eclBits[l]
}

var eclBits = [4]int{Low: 0x01, Medium: 0x00, Quartile: 0x03, High: 0x02}

// eclForBits is eclBits inverted: wire code -> level.
var eclForBits = map[int]ErrorCorrectionLevel{0x01: Low, 0x00: Medium, 0x03: Quartile, 0x02: High}

func (l ErrorCorrectionLevel) String() string {
	switch l {
	case Low:
		return "L"
	case Medium:
		return "M"
	case Quartile:
		return "Q"
	case High:
		return "H"
	default:
		return "?"
	}
}

// ECLevelForBits decodes the 2-bit wire code into a level.
func ECLevelForBits(bits int) (ErrorCorrectionLevel, bool) {
	l, ok := eclForBits[bits&0x3]
	return l, ok
}

// bytesPerVersion is BYTES[v-1]: total codewords (data+ecc) in a symbol of
// version v, for v in [1,40].
var bytesPerVersion = [40]int{
	26, 44, 70, 100, 134, 172, 196, 242, 292, 346,
	404, 466, 532, 581, 655, 733, 815, 901, 991, 1085,
	1156, 1258, 1364, 1474, 1588, 1706, 1828, 1921, 2051, 2185,
	2323, 2465, 2611, 2761, 2876, 3034, 3196, 3362, 3532, 3706,
}

// wordsPerBlock[level][v-1] is the number of EC codewords per block.
var wordsPerBlock = [4][40]int{
	Low: {
		7, 10, 15, 20, 26, 18, 20, 24, 30, 18,
		20, 24, 26, 30, 22, 24, 28, 30, 28, 28,
		28, 28, 30, 30, 26, 28, 30, 30, 30, 30,
		30, 30, 30, 30, 30, 30, 30, 30, 30, 30,
	},
	Medium: {
		10, 16, 26, 18, 24, 16, 18, 22, 22, 26,
		30, 22, 22, 24, 24, 28, 28, 26, 26, 26,
		26, 28, 28, 28, 28, 28, 28, 28, 28, 28,
		28, 28, 28, 28, 28, 28, 28, 28, 28, 28,
	},
	Quartile: {
		13, 22, 18, 26, 18, 24, 18, 22, 20, 24,
		28, 26, 24, 20, 30, 24, 28, 28, 26, 30,
		28, 30, 30, 30, 30, 28, 30, 30, 30, 30,
		30, 30, 30, 30, 30, 30, 30, 30, 30, 30,
	},
	High: {
		17, 28, 22, 16, 22, 28, 26, 26, 24, 28,
		24, 28, 22, 24, 24, 30, 28, 28, 26, 28,
		30, 24, 30, 30, 30, 30, 30, 30, 30, 30,
		30, 30, 30, 30, 30, 30, 30, 30, 30, 30,
	},
}

// eccBlocks[level][v-1] is the total number of blocks (short+long) a
// symbol's data+ecc is split into.
var eccBlocks = [4][40]int{
	Low: {
		1, 1, 1, 1, 1, 2, 2, 2, 2, 4,
		4, 4, 4, 4, 6, 6, 6, 6, 7, 8,
		8, 9, 9, 10, 12, 12, 12, 13, 14, 15,
		16, 17, 18, 19, 19, 20, 21, 22, 24, 25,
	},
	Medium: {
		1, 1, 1, 2, 2, 4, 4, 4, 5, 5,
		5, 8, 9, 9, 10, 10, 11, 13, 14, 16,
		17, 17, 18, 20, 21, 23, 25, 26, 28, 29,
		31, 33, 35, 37, 38, 40, 43, 45, 47, 49,
	},
	Quartile: {
		1, 1, 2, 2, 4, 4, 6, 6, 8, 8,
		8, 10, 12, 16, 12, 17, 16, 18, 21, 20,
		23, 23, 25, 27, 29, 34, 34, 35, 38, 40,
		43, 45, 48, 51, 53, 56, 59, 62, 65, 68,
	},
	High: {
		1, 1, 2, 4, 4, 4, 5, 6, 8, 8,
		11, 11, 16, 16, 18, 16, 19, 21, 25, 25,
		25, 34, 30, 32, 35, 37, 40, 42, 45, 48,
		51, 54, 57, 60, 63, 66, 70, 74, 77, 81,
	},
}

// Capacity describes the block/byte layout of one (version, ECC level)
// combination, derived algorithmically from the fixed tables above per the
// capacity formula: blockLen = floor(bytes/numBlocks) - eccWords,
// shortBlocks = numBlocks - (bytes mod numBlocks),
// dataBits = (bytes - eccWords*numBlocks)*8,
// total = (eccWords+blockLen)*numBlocks + numBlocks - shortBlocks.
type Capacity struct {
	Version      int
	Level        ErrorCorrectionLevel
	ECCWords     int // ecc codewords per block
	NumBlocks    int // total blocks, short+long
	ShortBlocks  int // blocks with BlockLen data bytes (rest have BlockLen+1)
	BlockLen     int // data bytes in a short block
	DataBits     int // total usable data bits across all blocks
	TotalBytes   int // total codewords (== bytesPerVersion[version-1])
}

// CapacityFor derives the Capacity for a version (1..40) and ECC level.
func CapacityFor(version int, level ErrorCorrectionLevel) Capacity {
	bytes := bytesPerVersion[version-1]
	eccWords := wordsPerBlock[level][version-1]
	numBlocks := eccBlocks[level][version-1]
	blockLen := bytes/numBlocks - eccWords
	shortBlocks := numBlocks - bytes%numBlocks
	dataBits := (bytes - eccWords*numBlocks) * 8
	total := (eccWords+blockLen)*numBlocks + numBlocks - shortBlocks
	return Capacity{
		Version:     version,
		Level:       level,
		ECCWords:    eccWords,
		NumBlocks:   numBlocks,
		ShortBlocks: shortBlocks,
		BlockLen:    blockLen,
		DataBits:    dataBits,
		TotalBytes:  total,
	}
}

// SizeForVersion returns the module dimension of a symbol of the given
// version: size = 21 + 4(v-1).
func SizeForVersion(version int) int {
	return 21 + 4*(version-1)
}

// VersionForSize is the inverse of SizeForVersion: v = (size-17)/4. It does
// not validate that size is a legal QR dimension; callers validate via
// ProvisionalVersion.
func VersionForSize(size int) int {
	return (size - 17) / 4
}

// ProvisionalVersion returns the version implied by a module dimension, or
// false if the dimension cannot correspond to any QR version (not of the
// form 21+4k, or out of [1,40]).
func ProvisionalVersion(size int) (int, bool) {
	if size < 21 || (size-21)%4 != 0 {
		return 0, false
	}
	v := VersionForSize(size)
	if v < 1 || v > 40 {
		return 0, false
	}
	return v, true
}

// SizeType buckets a version into the three capacity tiers that govern
// character-count field widths: 0 for v<=9, 1 for v<=26, 2 otherwise.
func SizeType(version int) int {
	return (version + 7) / 17
}
