package sixpack

import "errors"

// ErrUnexpectedEOS indicates that the input has been exhausted before the
// terminate code could be read.
var ErrUnexpectedEOS = errors.New("sixpack: unexpected end of stream")

// ErrInvalidCode indicates a bit sequence that doesn't lead to a usable
// symbol of the current model. It is usually caused by corrupted data or by
// a configuration that differs from the encoder's.
var ErrInvalidCode = errors.New("sixpack: invalid huffman code")

// ErrInvalidDistance indicates a copy reference that points before the start
// of the output or outside of the history window.
var ErrInvalidDistance = errors.New("sixpack: invalid copy distance")
