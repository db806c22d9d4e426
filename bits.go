package sixpack

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// bitCursor reads single bits and short codes from the compressed input.
// Bits are consumed starting with the most significant bit of each byte.
type bitCursor struct {
	r *bitio.Reader
	// number of bits consumed
	n int64
}

// init resets the cursor to the start of p. The slice p is never modified.
func (c *bitCursor) init(p []byte) {
	c.r = bitio.NewReader(bytes.NewReader(p))
	c.n = 0
}

// nextBit returns the next bit of the input.
func (c *bitCursor) nextBit() (bit bool, err error) {
	bit, err = c.r.ReadBool()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, fmt.Errorf("%w after %d bits",
				ErrUnexpectedEOS, c.n)
		}
		return false, err
	}
	c.n++
	return bit, nil
}

// nextCode reads an n-bit code. The weight of each bit is derived from the
// code assembled so far and not from its position: after every bit the mask
// becomes the current code shifted left by one. Consequently a code
// starting with a zero bit is always zero and only values of the form
// 2^k-1 can be expressed.
func (c *bitCursor) nextCode(n int) (code int, err error) {
	mask := 1
	for i := 0; i < n; i++ {
		bit, err := c.nextBit()
		if err != nil {
			return 0, err
		}
		if bit {
			code |= mask
		}
		mask = code << 1
	}
	return code, nil
}

// bitsRead returns the number of bits consumed so far.
func (c *bitCursor) bitsRead() int64 { return c.n }
