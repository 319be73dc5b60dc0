package qrdecoder

// mode is the 4-bit segment mode indicator, grounded on mode.go's Mode
// type. Only the indicators this module's non-goals leave in scope are
// named individually; anything else fails the segment parse as unknown.
type mode int

const (
	modeTerminator   mode = 0x0
	modeNumeric      mode = 0x1
	modeAlphanumeric mode = 0x2
	modeByte         mode = 0x4
	modeECI          mode = 0x7
	modeKanji        mode = 0x8
)

func modeForBits(b int) (mode, bool) {
	switch mode(b) {
	case modeTerminator, modeNumeric, modeAlphanumeric, modeByte, modeECI, modeKanji:
		return mode(b), true
	default:
		return 0, false
	}
}

// characterCountBits[mode][sizeType] is the width, in bits, of the
// character count field that follows a mode indicator, grounded on
// mode.go's characterCountBits table (CharacterCountBitsForVersions).
// sizeType is qrtables.SizeType(version): 0 for v<=9, 1 for v<=26, 2 above.
var characterCountBits = map[mode][3]int{
	modeNumeric:      {10, 12, 14},
	modeAlphanumeric: {9, 11, 13},
	modeByte:         {8, 16, 16},
	modeKanji:        {8, 10, 12},
}
