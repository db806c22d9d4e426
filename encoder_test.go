package sixpack

import (
	"bytes"
	"fmt"
	"math/bits"
	"math/rand"

	"github.com/icza/bitio"
	"github.com/ulikunitz/lz"
)

// testEncoder produces SixPack streams for tests. It drives its own model
// exactly the way the decoder does.
type testEncoder struct {
	cfg Config
	m   *model
	buf bytes.Buffer
	w   *bitio.Writer
}

func newTestEncoder(cfg Config) *testEncoder {
	cfg.ApplyDefaults()
	e := &testEncoder{cfg: cfg, m: newModel(cfg.MaxChar, cfg.MaxFrequency)}
	e.w = bitio.NewWriter(&e.buf)
	return e
}

func (e *testEncoder) writeBit(b bool) {
	if err := e.w.WriteBool(b); err != nil {
		panic(err)
	}
}

// symbol writes the current code of s and updates the model.
func (e *testEncoder) symbol(s int) {
	for _, b := range e.m.code(s) {
		e.writeBit(b)
	}
	e.m.update(s)
}

func (e *testEncoder) literal(c byte) { e.symbol(int(c)) }

// match writes a copy instruction. Only distances whose extra value has the
// form 2^k-1 can be written.
func (e *testEncoder) match(length, distance int) error {
	cfg := &e.cfg
	if length < cfg.MinCopy || length > cfg.MaxCopy {
		return fmt.Errorf("length %d out of range", length)
	}
	for i, n := range cfg.CopyBits {
		extra := distance - length - cfg.CopyMin[i]
		if extra < 0 || extra >= 1<<n || extra&(extra+1) != 0 {
			continue
		}
		e.symbol(cfg.FirstCode + i*cfg.codesPerRange() +
			length - cfg.MinCopy)
		k := bits.Len(uint(extra))
		for j := 0; j < n; j++ {
			e.writeBit(j < k)
		}
		return nil
	}
	return fmt.Errorf("distance %d for length %d not representable",
		distance, length)
}

// close writes the terminate code and returns the stream.
func (e *testEncoder) close() []byte {
	e.symbol(e.cfg.TerminateCode)
	if err := e.w.Close(); err != nil {
		panic(err)
	}
	return e.buf.Bytes()
}

// encodeSeqs encodes the instructions using the configuration.
func encodeSeqs(cfg Config, seqs []lz.Seq) ([]byte, error) {
	e := newTestEncoder(cfg)
	for _, s := range seqs {
		if s.MatchLen == 0 {
			e.literal(byte(s.Aux))
			continue
		}
		if err := e.match(int(s.MatchLen), int(s.Offset)); err != nil {
			return nil, err
		}
	}
	return e.close(), nil
}

// applySeqs computes the output of the instructions without a ring.
func applySeqs(seqs []lz.Seq) []byte {
	var out []byte
	for _, s := range seqs {
		if s.MatchLen == 0 {
			out = append(out, byte(s.Aux))
			continue
		}
		r := len(out) - int(s.Offset)
		for i := 0; i < int(s.MatchLen); i++ {
			out = append(out, out[r+i])
		}
	}
	return out
}

// randomSeqs creates n random instructions that can be encoded with the
// default configuration. The parameter text restricts literals to
// lowercase letters.
func randomSeqs(rng *rand.Rand, n int, text bool) []lz.Seq {
	cfg := DefaultConfig()
	var seqs []lz.Seq
	written := 0
	var cands []int
	for len(seqs) < n {
		if written > 0 && rng.Intn(10) < 3 {
			length := cfg.MinCopy + rng.Intn(cfg.codesPerRange())
			cands = cands[:0]
			for i, nb := range cfg.CopyBits {
				for k := 0; k <= nb; k++ {
					d := 1<<k - 1 + length + cfg.CopyMin[i]
					if d <= written {
						cands = append(cands, d)
					}
				}
			}
			if len(cands) > 0 {
				d := cands[rng.Intn(len(cands))]
				seqs = append(seqs, lz.Seq{
					MatchLen: uint32(length),
					Offset:   uint32(d)})
				written += length
				continue
			}
		}
		var c byte
		if text {
			c = 'a' + byte(rng.Intn(26))
		} else {
			c = byte(rng.Intn(256))
		}
		seqs = append(seqs, lz.Seq{LitLen: 1, Aux: uint32(c)})
		written++
	}
	return seqs
}
