// Package sixpack decodes data compressed with the SixPack algorithm.
//
// SixPack combines an adaptive Huffman code with LZ77-style copies. The
// Huffman alphabet covers the 256 literal bytes, a terminate code and one
// symbol for every combination of copy length and distance range. Copy
// symbols are followed by a short code giving the distance inside the
// range. Encoder and decoder update the Huffman tree identically after
// every symbol, so no code table is transmitted.
//
// Streams have no header. They start with the first Huffman code and end
// with the terminate code; remaining bits of the last byte are ignored.
//
// The package supports the constants of the reference format by default.
// Other constants can be set with a Config, but a stream can only be
// decoded with the constants it has been encoded with.
package sixpack
