package layout

import "surgefmt/internal/doc"

// cache memoizes per-node flat widths so repeated fit-checks are O(1)
// after the first computation.
type cache struct {
	byNode []int
}

func newCache(n int) *cache {
	widths := make([]int, n)
	for i := range widths {
		widths[i] = -1
	}
	return &cache{byNode: widths}
}

func (c *cache) get(id doc.NodeID) (int, bool) {
	w := c.byNode[id]
	return w, w >= 0
}

func (c *cache) put(id doc.NodeID, w int) {
	c.byNode[id] = w
}
