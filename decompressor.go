package sixpack

import (
	"errors"
	"fmt"
	"io"

	"github.com/ulikunitz/lz"
)

// Decompressor decodes SixPack streams for a specific configuration. It
// keeps no state between calls; every call starts with a fresh model,
// cursor and history. Therefore a single Decompressor can be used
// concurrently for different inputs.
type Decompressor struct {
	cfg Config
}

// NewDecompressor returns a decompressor for the reference format.
func NewDecompressor() *Decompressor {
	d, err := DefaultConfig().NewDecompressor()
	if err != nil {
		panic(err)
	}
	return d
}

// NewDecompressor creates a decompressor using the configuration. Zero
// values of the configuration are replaced by the defaults.
func (cfg Config) NewDecompressor() (*Decompressor, error) {
	cfg = cfg.clone()
	cfg.ApplyDefaults()
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	return &Decompressor{cfg: cfg}, nil
}

// Config returns the configuration used by the decompressor.
func (d *Decompressor) Config() Config { return d.cfg.clone() }

var defaultDecompressor = NewDecompressor()

// Decompress decodes the stream p using the reference format.
func Decompress(p []byte) ([]byte, error) {
	return defaultDecompressor.Decompress(p)
}

// Decompress decodes the complete stream p and returns the decoded bytes.
// The slice p is not modified. No partial output is returned on error.
func (d *Decompressor) Decompress(p []byte) ([]byte, error) {
	return d.run(p, nil)
}

// DecompressFrom reads r until EOF and decodes the data read.
func (d *Decompressor) DecompressFrom(r io.Reader) ([]byte, error) {
	p, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return d.Decompress(p)
}

// Trace decodes p and returns the decoded instructions. A literal is
// represented by a sequence with LitLen 1 and the byte in Aux, a copy by a
// sequence with MatchLen and Offset set to length and distance. The
// terminate code is not included.
func (d *Decompressor) Trace(p []byte) ([]lz.Seq, error) {
	var seqs []lz.Seq
	_, err := d.run(p, func(seq lz.Seq) { seqs = append(seqs, seq) })
	if err != nil {
		return nil, err
	}
	return seqs, nil
}

// run decodes p calling visit for every applied instruction.
func (d *Decompressor) run(p []byte, visit func(lz.Seq)) ([]byte, error) {
	var z decoder
	z.init(&d.cfg, p)
	for {
		seq, err := z.readSeq()
		if err != nil {
			if err == errTerminate {
				break
			}
			return nil, err
		}
		if err = z.apply(seq); err != nil {
			return nil, err
		}
		if visit != nil {
			visit(seq)
		}
	}
	debugf("sixpack: decoded %d bytes from %d bits, %d rescales",
		z.hist.len(), z.bits.bitsRead(), z.model.rescales)
	return z.hist.bytes(), nil
}

// errTerminate is returned by readSeq if the terminate code has been read.
var errTerminate = errors.New("terminate code")

// decoder holds the state of a single decoding call.
type decoder struct {
	cfg   *Config
	bits  bitCursor
	model *model
	hist  history
}

// init prepares the decoder for the stream p.
func (z *decoder) init(cfg *Config, p []byte) {
	z.cfg = cfg
	z.bits.init(p)
	z.model = newModel(cfg.MaxChar, cfg.MaxFrequency)
	z.hist.init(cfg.historySize(), 2*len(p))
}

// readSeq decodes the next instruction. We use the lz.Seq type a little bit
// differently than normal: each sequence is either a one-byte literal
// (LitLen 1, Aux holds the byte) or a copy (MatchLen and Offset non-zero).
func (z *decoder) readSeq() (seq lz.Seq, err error) {
	symbol, err := z.model.decode(&z.bits)
	if err != nil {
		return lz.Seq{}, err
	}
	cfg := z.cfg
	switch {
	case symbol == cfg.TerminateCode:
		return lz.Seq{}, errTerminate
	case symbol < cfg.TerminateCode:
		return lz.Seq{LitLen: 1, Aux: uint32(symbol)}, nil
	case symbol < cfg.FirstCode || symbol > cfg.lastCopyCode():
		return lz.Seq{}, fmt.Errorf("%w: unused symbol %d",
			ErrInvalidCode, symbol)
	}
	index, length := cfg.copyCode(symbol)
	extra, err := z.bits.nextCode(cfg.CopyBits[index])
	if err != nil {
		return lz.Seq{}, err
	}
	distance := extra + length + cfg.CopyMin[index]
	return lz.Seq{MatchLen: uint32(length), Offset: uint32(distance)}, nil
}

// apply writes the instruction into the history.
func (z *decoder) apply(seq lz.Seq) error {
	if seq.MatchLen == 0 {
		z.hist.writeByte(byte(seq.Aux))
		return nil
	}
	return z.hist.writeMatch(int(seq.MatchLen), int(seq.Offset))
}
