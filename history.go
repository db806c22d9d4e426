package sixpack

import "fmt"

// history keeps the decoded output. The ring holds the trailing window used
// as source of copy references, out holds everything written. Both are
// updated by the same write operations.
type history struct {
	ring []byte
	// write index into ring
	w   int
	out []byte
}

// init prepares the history for a new stream with the given ring size. The
// parameter sizeHint is used for the initial capacity of the output.
func (h *history) init(size int, sizeHint int) {
	h.ring = make([]byte, size)
	h.w = 0
	h.out = make([]byte, 0, sizeHint)
}

// writeByte appends a single byte.
func (h *history) writeByte(c byte) {
	h.out = append(h.out, c)
	h.ring[h.w] = c
	h.w++
	if h.w >= len(h.ring) {
		h.w = 0
	}
}

// writeMatch appends length bytes copied from distance bytes back. The copy
// proceeds byte by byte, so a distance smaller than the length repeats the
// bytes written by the copy itself.
func (h *history) writeMatch(length, distance int) error {
	if distance <= 0 || int64(distance) > h.len() ||
		distance > len(h.ring) {
		return fmt.Errorf("%w: distance %d with %d bytes written",
			ErrInvalidDistance, distance, h.len())
	}
	r := h.w - distance
	if r < 0 {
		r += len(h.ring)
	}
	for i := 0; i < length; i++ {
		c := h.ring[r]
		h.out = append(h.out, c)
		h.ring[h.w] = c
		h.w++
		if h.w >= len(h.ring) {
			h.w = 0
		}
		r++
		if r >= len(h.ring) {
			r = 0
		}
	}
	return nil
}

// len returns the number of bytes written so far.
func (h *history) len() int64 { return int64(len(h.out)) }

// bytes returns the complete output.
func (h *history) bytes() []byte { return h.out }
