package wkb

import "errors"

// Decode failures. Every error returned by the decoder wraps one of these
// sentinels, so callers can classify with errors.Is.
var (
	// ErrEmptyInput is returned for zero-length input.
	ErrEmptyInput = errors.New("wkb: empty input")

	// ErrByteOrder is returned when the order byte is not NDR (1).
	// Big-endian (XDR) input is not supported.
	ErrByteOrder = errors.New("wkb: unsupported byte order")

	// ErrUnknownKind is returned for a kind code outside the known table,
	// and by the encoder for values outside the geometry model.
	ErrUnknownKind = errors.New("wkb: unknown geometry kind")

	// ErrUnsupportedKind is returned for reserved curve/surface kind codes
	// (8-17) that carry no payload support.
	ErrUnsupportedKind = errors.New("wkb: unsupported geometry kind")

	// ErrTruncated is returned when a read runs past the end of the buffer
	// or a declared count cannot fit in the remaining bytes.
	ErrTruncated = errors.New("wkb: truncated input")

	// ErrInvalidHex is returned for odd-length or non-hex-digit input to
	// DecodeHex.
	ErrInvalidHex = errors.New("wkb: invalid hex input")
)
