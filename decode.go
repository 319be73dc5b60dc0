// Package qrscan decodes QR codes from raw pixel buffers: grayscale, RGB or
// RGBA, row-major, top-left origin. Decode is a pure function of its input —
// no I/O, no shared state, safe to call concurrently with itself.
package qrscan

import (
	"errors"

	"qrscan/binarizer"
	"qrscan/detector"
	"qrscan/qrdecoder"
	"qrscan/qrimage"
	"qrscan/transform"
)

// Option configures a Decode call.
//
// Grounded on the teacher's DecodeOptions struct, narrowed to the one
// knob this module's pure, single-format pipeline actually has.
type Option func(*options)

type options struct {
	brightnessOffsets []int
}

// WithBrightnessOffsets sets the brightness offsets Decode retries
// binarization with, in the order given, stopping at the first offset that
// lets the rest of the pipeline succeed. The default is a single attempt
// at offset 0.
//
// The teacher retries brightness unconditionally, as a workaround for one
// particular JPEG decoder's output; this module exposes it as an explicit
// opt-in instead, since it is a caller-side compatibility heuristic, not a
// decoder invariant.
func WithBrightnessOffsets(offsets []int) Option {
	return func(o *options) {
		o.brightnessOffsets = offsets
	}
}

// Decode reads a QR code out of a raw pixel buffer and returns its text.
// bytes must have length width*height*n for n in {1,3,4}: grayscale bytes
// are treated as pre-computed luma; RGB(A) bytes are ordered R,G,B[,A],
// row-major, top-left origin.
func Decode(width, height int, bytes []byte, opts ...Option) (string, error) {
	o := &options{brightnessOffsets: []int{0}}
	for _, opt := range opts {
		opt(o)
	}

	img, err := qrimage.New(width, height, bytes)
	if err != nil {
		return "", wrapErr(KindInvalidArgument, err)
	}

	var lastErr error
	for _, offset := range o.brightnessOffsets {
		text, err := decodeOnce(offsetImage(img, offset))
		if err == nil {
			return text, nil
		}
		lastErr = err
		var qerr *Error
		if errors.As(err, &qerr) && (qerr.kind == KindImageTooSmall || qerr.kind == KindInvalidArgument) {
			break
		}
	}
	return "", lastErr
}

func decodeOnce(img *qrimage.Image) (string, error) {
	bm, err := binarizer.BlackMatrix(img)
	if err != nil {
		return "", wrapErr(KindImageTooSmall, err)
	}

	det, err := detector.Detect(bm)
	if err != nil {
		return "", classifyDetectError(err)
	}

	alignmentFound := det.Alignment != nil
	bottomRight := det.TopRight.Point().Add(det.BottomLeft.Point()).Sub(det.TopLeft.Point())
	if alignmentFound {
		bottomRight = det.Alignment.Point()
	}

	rectified, err := transform.Rectify(
		bm, det.TopLeft.Point(), det.TopRight.Point(), bottomRight, det.BottomLeft.Point(),
		det.Dimension, alignmentFound,
	)
	if err != nil {
		return "", wrapErr(KindFinderNotFound, err)
	}

	result, err := qrdecoder.Decode(rectified)
	if err != nil {
		return "", classifyDecodeError(err)
	}
	return result.Text, nil
}

// classifyDetectError maps detector.Detect's failure modes per spec §4.5's
// override of the coarser §7 table: a finder-candidate shortfall is
// FINDER_NOT_FOUND, but a module size or dimension that fails validation
// once three finders were already found is DECODE, since by that point the
// failure is in the size/validity computation, not in candidate counting.
func classifyDetectError(err error) *Error {
	switch {
	case errors.Is(err, detector.ErrModuleSizeTooSmall), errors.Is(err, detector.ErrInvalidDimension):
		return wrapErr(KindDecode, err)
	default:
		return wrapErr(KindFinderNotFound, err)
	}
}

func classifyDecodeError(err error) *Error {
	switch {
	case errors.Is(err, qrdecoder.ErrInvalidFormat):
		return wrapErr(KindInvalidFormat, err)
	case errors.Is(err, qrdecoder.ErrInvalidVersion):
		return wrapErr(KindInvalidVersion, err)
	default:
		return wrapErr(KindDecode, err)
	}
}

// offsetImage returns a copy of img with offset added to every byte,
// clamped to [0, 255]. offset 0 returns img unchanged.
func offsetImage(img *qrimage.Image, offset int) *qrimage.Image {
	if offset == 0 {
		return img
	}
	shifted := make([]byte, len(img.Bytes))
	for i, b := range img.Bytes {
		v := int(b) + offset
		switch {
		case v < 0:
			v = 0
		case v > 255:
			v = 255
		}
		shifted[i] = byte(v)
	}
	return &qrimage.Image{Width: img.Width, Height: img.Height, Bytes: shifted, BytesPerPixel: img.BytesPerPixel}
}
