package qrscan

// Kind discriminates the six closed error categories Decode can fail with.
type Kind string

const (
	// KindInvalidArgument marks a caller mistake: bad dimensions or a
	// buffer whose length doesn't match width*height*bytesPerPixel.
	KindInvalidArgument Kind = "INVALID_ARGUMENT"
	// KindImageTooSmall marks an image smaller than the binarizer's
	// minimum 40x40.
	KindImageTooSmall Kind = "IMAGE_TOO_SMALL"
	// KindFinderNotFound marks too few viable finder candidates to form a
	// triple, or a rectifier sample point that fell outside the source
	// image.
	KindFinderNotFound Kind = "FINDER_NOT_FOUND"
	// KindInvalidFormat marks a format field neither redundant copy could
	// recover within the BCH's tolerance.
	KindInvalidFormat Kind = "INVALID_FORMAT"
	// KindInvalidVersion marks a version field that didn't recover, or
	// recovered to a version whose size disagrees with the bitmap.
	KindInvalidVersion Kind = "INVALID_VERSION"
	// KindDecode covers everything else downstream of a found finder
	// triple: a module size or dimension that failed validation,
	// uncorrectable ECC, a codeword count mismatch, or an unparseable
	// segment stream.
	KindDecode Kind = "DECODE"
)

// Error is the typed error Decode returns. Every failure is exactly one of
// the six Kinds above, wrapping whatever the failing internal stage
// actually returned.
//
// Generalizes the teacher's small sentinel errors (ErrNotFound, ErrChecksum,
// ErrFormat) into one type carrying a discriminable Kind, so a caller
// switches on Kind() instead of comparing against a set of package-level
// sentinels.
type Error struct {
	kind Kind
	err  error
}

// Kind reports which of the six categories this error belongs to.
func (e *Error) Kind() string { return string(e.kind) }

func (e *Error) Error() string {
	if e.err == nil {
		return string(e.kind)
	}
	return string(e.kind) + ": " + e.err.Error()
}

// Unwrap exposes the underlying stage error for errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.err }

func wrapErr(kind Kind, err error) *Error {
	return &Error{kind: kind, err: err}
}
