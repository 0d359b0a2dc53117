package lz

import "errors"

var (
	// ErrFormatMismatch reports a missing or wrong magic signature. Decoders
	// surface it immediately without attempting a partial decode.
	ErrFormatMismatch = errors.New("magic signature mismatch")

	// ErrCorruptStream reports control data referencing bytes that do not
	// exist, or a truncated compressed stream.
	ErrCorruptStream = errors.New("corrupt stream")

	// ErrInputTooLarge reports input exceeding a format's length-field
	// capacity. Raised at encode time, before any output is written.
	ErrInputTooLarge = errors.New("input exceeds format length field")

	// ErrInvalidConfig reports an unusable window or binding configuration.
	// Raised at codec-binding construction time, never per call.
	ErrInvalidConfig = errors.New("invalid codec configuration")
)
