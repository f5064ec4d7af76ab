package router

// openEntry is one entry in the A* open set: (f, g, counter, nodeIdx) with
// strict lexicographic ordering (f, then g, then counter) so ties resolve
// deterministically and the search never starves a node.
type openEntry struct {
	f       float32
	g       float32
	counter uint64
	node    int32
}

func less(a, b openEntry) bool {
	if a.f != b.f {
		return a.f < b.f
	}
	if a.g != b.g {
		return a.g < b.g
	}
	return a.counter < b.counter
}

// openHeap is a binary min-heap over openEntry, array-backed with no
// external dependency — the search's only allocation besides the g,
// trueDist and parent scratch arrays.
type openHeap struct {
	items []openEntry
}

func (h *openHeap) Len() int { return len(h.items) }

func (h *openHeap) Push(e openEntry) {
	h.items = append(h.items, e)
	h.up(len(h.items) - 1)
}

func (h *openHeap) Pop() (openEntry, bool) {
	if len(h.items) == 0 {
		return openEntry{}, false
	}
	top := h.items[0]
	last := len(h.items) - 1
	h.items[0] = h.items[last]
	h.items = h.items[:last]
	if len(h.items) > 0 {
		h.down(0)
	}
	return top, true
}

func (h *openHeap) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !less(h.items[i], h.items[parent]) {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *openHeap) down(i int) {
	n := len(h.items)
	for {
		left := 2*i + 1
		right := 2*i + 2
		smallest := i
		if left < n && less(h.items[left], h.items[smallest]) {
			smallest = left
		}
		if right < n && less(h.items[right], h.items[smallest]) {
			smallest = right
		}
		if smallest == i {
			return
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}
