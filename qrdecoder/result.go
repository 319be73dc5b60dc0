// Package qrdecoder implements C10 (bit decoder) and C6 (interleaving): it
// turns a rectified, dimension x dimension On/Off Bitmap into decoded text.
//
// Grounded on the teacher's qrcode/decoder package: decoder.go's orchestration
// (recover format/version, read codewords, de-interleave, correct, parse),
// bitmatrixparser.go's format/version bit positions and zigzag codeword
// read, datablock.go's de-interleave walk, and bitstreamparser.go's
// mode-tagged segment grammar, all adapted to the capacity/template/mask
// tables already generalized in qrtables and the ternary bitmap.Bitmap.
package qrdecoder

import "qrscan/qrtables"

// Result is the decoded content of one symbol plus the bookkeeping a caller
// needs to report on the decode.
type Result struct {
	Text            string
	Version         int
	Level           qrtables.ErrorCorrectionLevel
	Mask            int
	ErrorsCorrected int
	Mirrored        bool
}
