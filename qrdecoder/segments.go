package qrdecoder

import (
	"fmt"
	"strings"

	"qrscan/bitutil"
	"qrscan/qrtables"
)

// ErrUnsupportedSegment is returned for a well-formed ECI or Kanji segment:
// recognized but not decoded, per this module's scope.
var ErrUnsupportedSegment = fmt.Errorf("%w: ECI/Kanji segments are not decoded", ErrDecode)

// decodeSegments reads mode-tagged segments from data left to right until a
// terminator or an exhausted buffer, concatenating their decoded text.
// Grounded on bitstreamparser.go's DecodeBitStream main loop, narrowed to
// the numeric/alphanumeric/byte segment bodies this module decodes.
func decodeSegments(data []byte, version int) (string, error) {
	bs := bitutil.NewBitSource(data)
	sizeType := qrtables.SizeType(version)
	var out strings.Builder

	for bs.Available() >= 4 {
		modeBits, err := bs.ReadBits(4)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrDecode, err)
		}
		m, ok := modeForBits(modeBits)
		if !ok {
			return "", fmt.Errorf("%w: unknown mode indicator %#x", ErrDecode, modeBits)
		}
		if m == modeTerminator {
			break
		}
		if m == modeECI || m == modeKanji {
			return "", ErrUnsupportedSegment
		}

		countBits := characterCountBits[m][sizeType]
		count, err := bs.ReadBits(countBits)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrDecode, err)
		}

		var segErr error
		switch m {
		case modeNumeric:
			segErr = decodeNumeric(bs, &out, count)
		case modeAlphanumeric:
			segErr = decodeAlphanumeric(bs, &out, count)
		case modeByte:
			segErr = decodeByte(bs, &out, count)
		}
		if segErr != nil {
			return "", segErr
		}
	}
	return out.String(), nil
}

func decodeNumeric(bs *bitutil.BitSource, out *strings.Builder, count int) error {
	for count >= 3 {
		if bs.Available() < 10 {
			return fmt.Errorf("%w: truncated numeric segment", ErrDecode)
		}
		v, _ := bs.ReadBits(10)
		if v >= 1000 {
			return fmt.Errorf("%w: numeric triple %d out of range", ErrDecode, v)
		}
		fmt.Fprintf(out, "%03d", v)
		count -= 3
	}
	switch count {
	case 2:
		if bs.Available() < 7 {
			return fmt.Errorf("%w: truncated numeric segment", ErrDecode)
		}
		v, _ := bs.ReadBits(7)
		if v >= 100 {
			return fmt.Errorf("%w: numeric pair %d out of range", ErrDecode, v)
		}
		fmt.Fprintf(out, "%02d", v)
	case 1:
		if bs.Available() < 4 {
			return fmt.Errorf("%w: truncated numeric segment", ErrDecode)
		}
		v, _ := bs.ReadBits(4)
		if v >= 10 {
			return fmt.Errorf("%w: numeric digit %d out of range", ErrDecode, v)
		}
		fmt.Fprintf(out, "%d", v)
	}
	return nil
}

func decodeAlphanumeric(bs *bitutil.BitSource, out *strings.Builder, count int) error {
	for count > 1 {
		if bs.Available() < 11 {
			return fmt.Errorf("%w: truncated alphanumeric segment", ErrDecode)
		}
		v, _ := bs.ReadBits(11)
		if v >= 45*45 {
			return fmt.Errorf("%w: alphanumeric pair %d out of range", ErrDecode, v)
		}
		out.WriteByte(qrtables.AlphanumericChars[v/45])
		out.WriteByte(qrtables.AlphanumericChars[v%45])
		count -= 2
	}
	if count == 1 {
		if bs.Available() < 6 {
			return fmt.Errorf("%w: truncated alphanumeric segment", ErrDecode)
		}
		v, _ := bs.ReadBits(6)
		if v >= len(qrtables.AlphanumericChars) {
			return fmt.Errorf("%w: alphanumeric value %d out of range", ErrDecode, v)
		}
		out.WriteByte(qrtables.AlphanumericChars[v])
	}
	return nil
}

func decodeByte(bs *bitutil.BitSource, out *strings.Builder, count int) error {
	if bs.Available() < 8*count {
		return fmt.Errorf("%w: truncated byte segment", ErrDecode)
	}
	buf := make([]byte, count)
	for i := range buf {
		v, _ := bs.ReadBits(8)
		buf[i] = byte(v)
	}
	out.Write(buf)
	return nil
}
