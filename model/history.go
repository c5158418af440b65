package model

// History remembers the hashes of recent generations to detect cycles.
type History struct {
	size   int
	hashes []string
}

// NewHistory keeps the last size generations. size < 1 is treated as 1.
func NewHistory(size int) *History {
	return &History{size: max(size, 1)}
}

// Record adds g to the history and returns the period of the cycle it closes:
// 1 when g equals the previous generation, 2 for a two step oscillator and so
// on. It returns 0 when g matches nothing remembered.
func (h *History) Record(g *Grid) (period int) {
	hash := g.Hash()

	for i := len(h.hashes) - 1; i >= 0; i-- {
		if h.hashes[i] == hash {
			period = len(h.hashes) - i
			break
		}
	}

	h.hashes = append(h.hashes, hash)
	if len(h.hashes) > h.size {
		h.hashes = h.hashes[1:]
	}
	return period
}

// Len returns the number of remembered generations.
func (h *History) Len() int {
	return len(h.hashes)
}

// Reset forgets every generation.
func (h *History) Reset() {
	h.hashes = nil
}
