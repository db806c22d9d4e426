package sixpack

import (
	"bytes"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/dgryski/go-tinylfu"
)

// Cache remembers the output of recently decoded inputs. Entries are looked
// up by the xxhash digest of the input and returned only if the stored
// input matches exactly. Failed decodes are not cached.
//
// A Cache is safe for concurrent use by multiple goroutines.
type Cache struct {
	d *Decompressor

	mu  sync.Mutex
	lfu *tinylfu.T[uint64, cacheEntry]
}

type cacheEntry struct {
	in  []byte
	out []byte
}

// NewCache creates a cache holding up to size decoded outputs of d.
func NewCache(d *Decompressor, size int) *Cache {
	if size < 1 {
		size = 1
	}
	return &Cache{
		d:   d,
		lfu: tinylfu.New[uint64, cacheEntry](size, size*10, identity),
	}
}

// identity is used as hash function for keys that are digests already.
func identity(k uint64) uint64 { return k }

// Decompress returns the decoded stream p. The returned slice belongs to
// the caller.
func (c *Cache) Decompress(p []byte) ([]byte, error) {
	key := xxhash.Sum64(p)
	c.mu.Lock()
	e, ok := c.lfu.Get(key)
	c.mu.Unlock()
	if ok && bytes.Equal(e.in, p) {
		debugf("sixpack: cache hit %016x", key)
		return append([]byte(nil), e.out...), nil
	}

	out, err := c.d.Decompress(p)
	if err != nil {
		return nil, err
	}
	e = cacheEntry{
		in:  append([]byte(nil), p...),
		out: append([]byte(nil), out...),
	}
	c.mu.Lock()
	c.lfu.Add(key, e)
	c.mu.Unlock()
	return out, nil
}
