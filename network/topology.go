// SPDX-License-Identifier: MIT
// Package network: connectivity.
//
// Islands walks the bus graph breadth-first. Branches on outage do not
// connect their terminals.

package network

// islandWalker holds the BFS state over bus indices.
type islandWalker struct {
	n       *Network
	queue   []int
	visited []bool
}

// Islands returns the connected bus sets of the network. Each island lists
// its buses in BFS order from its lowest index; islands are ordered by that
// lowest index.
func (n *Network) Islands() [][]int {
	n.mu.Lock()
	defer n.mu.Unlock()

	w := &islandWalker{
		n:       n,
		queue:   make([]int, 0, len(n.buses)),
		visited: make([]bool, len(n.buses)),
	}
	var out [][]int
	for root := range n.buses {
		if w.visited[root] {
			continue
		}
		out = append(out, w.walk(root))
	}

	return out
}

// NumIslands returns len(Islands()).
func (n *Network) NumIslands() int {
	return len(n.Islands())
}

// walk collects every bus reachable from root.
func (w *islandWalker) walk(root int) []int {
	var island []int
	w.queue = append(w.queue[:0], root)
	w.visited[root] = true
	for len(w.queue) > 0 {
		bus := w.queue[0]
		w.queue = w.queue[1:]
		island = append(island, bus)
		w.enqueueNeighbors(bus)
	}

	return island
}

func (w *islandWalker) enqueueNeighbors(bus int) {
	b := w.n.buses[bus]
	for _, list := range [2][]int{b.branchesK, b.branchesM} {
		for _, i := range list {
			br := w.n.branches[i]
			if br.outage {
				continue
			}
			other := br.busM
			if other == bus {
				other = br.busK
			}
			if !w.visited[other] {
				w.visited[other] = true
				w.queue = append(w.queue, other)
			}
		}
	}
}
