package sixpack

import "fmt"

// root is the arena index of the root node. Index 0 marks a missing link.
const root = 1

// model is the adaptive Huffman tree. The nodes are stored in an arena of
// parallel slices. Internal nodes use the indexes 1..maxChar, leaves the
// indexes succMax..2*maxChar+1. The leaf for symbol s has index s+succMax.
//
// The initial tree is a complete heap: node i has the children 2i and 2i+1.
// Every symbol starts with weight one.
type model struct {
	maxChar int
	succMax int
	maxFreq int

	// children of the internal nodes
	left  []int
	right []int
	// parent of every node
	up []int
	// weight of every node
	freq []int

	// number of rescale operations, for debugging
	rescales int
}

// newModel creates a fresh model for the alphabet 0..maxChar.
func newModel(maxChar, maxFreq int) *model {
	twiceMax := 2*maxChar + 1
	m := &model{
		maxChar: maxChar,
		succMax: maxChar + 1,
		maxFreq: maxFreq,
		left:    make([]int, maxChar+1),
		right:   make([]int, maxChar+1),
		up:      make([]int, twiceMax+1),
		freq:    make([]int, twiceMax+1),
	}
	for i := 2; i <= twiceMax; i++ {
		m.up[i] = i / 2
		m.freq[i] = 1
	}
	for i := 1; i <= maxChar; i++ {
		m.left[i] = 2 * i
		m.right[i] = 2*i + 1
	}
	return m
}

// isLeaf reports whether the node is a leaf.
func (m *model) isLeaf(node int) bool { return node >= m.succMax }

// child returns the child of an internal node selected by bit. The flag ok
// is false if the link is missing.
func (m *model) child(node int, bit bool) (c int, ok bool) {
	if bit {
		c = m.right[node]
	} else {
		c = m.left[node]
	}
	return c, c != 0
}

// sibling returns the other child of a's parent.
func (m *model) sibling(a int) int {
	u := m.up[a]
	if m.left[u] == a {
		return m.right[u]
	}
	return m.left[u]
}

// decode reads the next symbol from the cursor and updates the model.
func (m *model) decode(c *bitCursor) (symbol int, err error) {
	node := root
	for !m.isLeaf(node) {
		bit, err := c.nextBit()
		if err != nil {
			return 0, err
		}
		var ok bool
		if node, ok = m.child(node, bit); !ok {
			return 0, fmt.Errorf("%w: missing link after %d bits",
				ErrInvalidCode, c.bitsRead())
		}
	}
	symbol = node - m.succMax
	m.update(symbol)
	return symbol, nil
}

// updateFreq recomputes the weights on the path from the pair a, b up to
// the root. The weights are halved if the root weight reaches maxFreq.
func (m *model) updateFreq(a, b int) {
	for {
		u := m.up[a]
		m.freq[u] = m.freq[a] + m.freq[b]
		a = u
		if a == root {
			break
		}
		b = m.sibling(a)
	}

	if m.freq[root] == m.maxFreq {
		// No floor: weights may drop to zero. A floor of one
		// desynchronizes the tree from the encoder's.
		for i := root; i < len(m.freq); i++ {
			m.freq[i] >>= 1
		}
		m.rescales++
		debugf("sixpack: model rescaled (%d)", m.rescales)
	}
}

// update increments the weight of the symbol and restores the ordering of
// the tree. A node whose weight is larger than the weight of its uncle
// exchanges places with the uncle.
func (m *model) update(symbol int) {
	a := symbol + m.succMax
	m.freq[a]++
	if m.up[a] == root {
		return
	}
	ua := m.up[a]
	m.updateFreq(a, m.sibling(a))
	for {
		uua := m.up[ua]
		b := m.sibling(ua)

		if m.freq[a] > m.freq[b] {
			// a takes the place of its uncle b
			if m.left[uua] == ua {
				m.right[uua] = a
			} else {
				m.left[uua] = a
			}
			var c int
			if m.left[ua] == a {
				m.left[ua] = b
				c = m.right[ua]
			} else {
				m.right[ua] = b
				c = m.left[ua]
			}
			m.up[b] = ua
			m.up[a] = uua
			m.updateFreq(b, c)
			a = b
		}

		a = m.up[a]
		ua = m.up[a]
		if ua == root {
			break
		}
	}
}

// code returns the current bit path from the root to the leaf of the
// symbol.
func (m *model) code(symbol int) []bool {
	var path []bool
	for a := symbol + m.succMax; a != root; a = m.up[a] {
		path = append(path, m.right[m.up[a]] == a)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
