package sixpack

import (
	"errors"
	"fmt"
)

// Default values of the reference format.
const (
	DefaultMaxChar       = 628
	DefaultMaxFrequency  = 2000
	DefaultTerminateCode = 256
	DefaultFirstCode     = 257
	DefaultMinCopy       = 3
	DefaultMaxCopy       = 64
)

var (
	defaultCopyMin  = []int{0, 16, 80, 336, 1360, 5456}
	defaultCopyMax  = []int{15, 79, 335, 1359, 5455, 21839}
	defaultCopyBits = []int{4, 6, 8, 10, 12, 14}
)

// maxCopyBits limits the number of extra distance bits of a copy range.
const maxCopyBits = 30

// Config describes the constants shared by a SixPack encoder and decoder. A
// stream can only be decoded with the configuration it has been encoded
// with. Zero values are replaced by the defaults of the reference format.
type Config struct {
	// MaxChar is the highest symbol of the Huffman alphabet.
	MaxChar int
	// MaxFrequency is the root weight that triggers the halving of all
	// model weights.
	MaxFrequency int
	// TerminateCode is the symbol marking the end of the stream. All
	// smaller symbols are literal bytes.
	TerminateCode int
	// FirstCode is the first symbol of the copy ranges.
	FirstCode int
	// MinCopy and MaxCopy give the range of copy lengths.
	MinCopy int
	MaxCopy int
	// CopyMin, CopyMax and CopyBits describe the distance ranges: the
	// base distance, the inclusive maximum distance and the number of
	// extra bits following the copy code.
	CopyMin  []int
	CopyMax  []int
	CopyBits []int
}

// DefaultConfig returns the configuration of the reference format.
func DefaultConfig() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults replaces zero values by the reference format defaults.
func (cfg *Config) ApplyDefaults() {
	if cfg.MaxChar == 0 {
		cfg.MaxChar = DefaultMaxChar
	}
	if cfg.MaxFrequency == 0 {
		cfg.MaxFrequency = DefaultMaxFrequency
	}
	if cfg.TerminateCode == 0 {
		cfg.TerminateCode = DefaultTerminateCode
	}
	if cfg.FirstCode == 0 {
		cfg.FirstCode = DefaultFirstCode
	}
	if cfg.MinCopy == 0 {
		cfg.MinCopy = DefaultMinCopy
	}
	if cfg.MaxCopy == 0 {
		cfg.MaxCopy = DefaultMaxCopy
	}
	if cfg.CopyMin == nil {
		cfg.CopyMin = append([]int(nil), defaultCopyMin...)
	}
	if cfg.CopyMax == nil {
		cfg.CopyMax = append([]int(nil), defaultCopyMax...)
	}
	if cfg.CopyBits == nil {
		cfg.CopyBits = append([]int(nil), defaultCopyBits...)
	}
}

// Verify checks the configuration for consistency.
func (cfg *Config) Verify() error {
	if cfg.TerminateCode < 1 || cfg.TerminateCode > 256 {
		return errors.New(
			"sixpack: TerminateCode must be in range 1..256")
	}
	if cfg.FirstCode <= cfg.TerminateCode {
		return errors.New(
			"sixpack: FirstCode must be larger than TerminateCode")
	}
	if cfg.MaxFrequency < 2 {
		return errors.New("sixpack: MaxFrequency must be at least 2")
	}
	if cfg.MinCopy < 1 {
		return errors.New("sixpack: MinCopy must be positive")
	}
	if cfg.MaxCopy < cfg.MinCopy {
		return errors.New(
			"sixpack: MaxCopy must not be smaller than MinCopy")
	}
	n := len(cfg.CopyBits)
	if n == 0 {
		return errors.New("sixpack: no copy ranges")
	}
	if len(cfg.CopyMin) != n || len(cfg.CopyMax) != n {
		return errors.New(
			"sixpack: CopyMin, CopyMax and CopyBits differ in length")
	}
	for i, bits := range cfg.CopyBits {
		if bits < 0 || bits > maxCopyBits {
			return fmt.Errorf(
				"sixpack: CopyBits[%d] out of range 0..%d",
				i, maxCopyBits)
		}
		if cfg.CopyMin[i] < 0 {
			return fmt.Errorf("sixpack: CopyMin[%d] is negative", i)
		}
		if cfg.CopyMax[i] < cfg.CopyMin[i] {
			return fmt.Errorf(
				"sixpack: CopyMax[%d] is smaller than CopyMin[%d]",
				i, i)
		}
	}
	if last := cfg.lastCopyCode(); cfg.MaxChar < last {
		return fmt.Errorf(
			"sixpack: MaxChar %d too small for last copy code %d",
			cfg.MaxChar, last)
	}
	return nil
}

// codesPerRange returns the number of copy codes in a single range.
func (cfg Config) codesPerRange() int {
	return cfg.MaxCopy - cfg.MinCopy + 1
}

// lastCopyCode returns the highest symbol used for copy codes.
func (cfg Config) lastCopyCode() int {
	return cfg.FirstCode + len(cfg.CopyBits)*cfg.codesPerRange() - 1
}

// historySize returns the size of the history ring. It covers the largest
// distance plus the longest copy.
func (cfg Config) historySize() int {
	return cfg.CopyMax[len(cfg.CopyMax)-1] + cfg.MaxCopy
}

// copyCode maps a copy symbol to its range index and copy length.
func (cfg Config) copyCode(symbol int) (index, length int) {
	k := cfg.codesPerRange()
	index = (symbol - cfg.FirstCode) / k
	length = symbol - cfg.FirstCode + cfg.MinCopy - index*k
	return index, length
}

// clone returns a copy of the configuration that doesn't share the range
// tables.
func (cfg Config) clone() Config {
	cfg.CopyMin = append([]int(nil), cfg.CopyMin...)
	cfg.CopyMax = append([]int(nil), cfg.CopyMax...)
	cfg.CopyBits = append([]int(nil), cfg.CopyBits...)
	return cfg
}
