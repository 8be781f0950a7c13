// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctree

import "sort"

// Balance re-roots the tree at the branch that minimizes the maximum
// root-to-leaf path length (the 1-center of the branch tree under
// path-length distance), then renumbers branches breadth-first from
// the new root so that parent(b) < b holds again. Ties among
// equal-height candidate roots break toward the smaller original
// branch id, so the result is deterministic, and balancing a tree
// that is already height-optimal around its current root reproduces
// the same numbering. Which compartments belong to which branch never
// changes; only the parent / child edges and the numbering do.
func (tr *Tree) Balance() {
	nb := len(tr.Branches)
	if nb <= 2 {
		return
	}

	// undirected adjacency, neighbors in ascending id order
	adj := make([][]int, nb)
	for bi := 1; bi < nb; bi++ {
		p := tr.Branches[bi].Parent
		adj[p] = append(adj[p], bi)
		adj[bi] = append(adj[bi], p)
	}
	for bi := range adj {
		sort.Ints(adj[bi])
	}

	// 1-center via the two diameter endpoints: for a tree, the
	// eccentricity of any node is its distance to the farther of the
	// two endpoints of a diameter.
	da := tr.bfsDist(adj, tr.farthest(tr.bfsDist(adj, 0)))
	db := tr.bfsDist(adj, tr.farthest(da))
	root := 0
	minEcc := -1
	for bi := 0; bi < nb; bi++ {
		ecc := da[bi]
		if db[bi] > ecc {
			ecc = db[bi]
		}
		if minEcc < 0 || ecc < minEcc {
			minEcc = ecc
			root = bi
		}
	}

	// renumber breadth-first from the new root
	order := make([]int, 0, nb)   // old ids in new-id order
	pred := make([]int, nb)       // old id of bfs predecessor
	newID := make([]int, nb)
	for bi := range newID {
		newID[bi] = -1
	}
	order = append(order, root)
	pred[root] = -1
	newID[root] = 0
	for qi := 0; qi < len(order); qi++ {
		old := order[qi]
		for _, nbr := range adj[old] {
			if newID[nbr] >= 0 {
				continue
			}
			newID[nbr] = len(order)
			pred[nbr] = old
			order = append(order, nbr)
		}
	}

	branches := make([]Branch, nb)
	for ni, old := range order {
		br := Branch{Comps: tr.Branches[old].Comps}
		if ni == 0 {
			br.Parent = -1
		} else {
			br.Parent = newID[pred[old]]
		}
		branches[ni] = br
		if ni > 0 {
			branches[br.Parent].Children = append(branches[br.Parent].Children, ni)
		}
	}
	tr.Branches = branches
}

// bfsDist returns path-length distances from start over adjacency.
func (tr *Tree) bfsDist(adj [][]int, start int) []int {
	dist := make([]int, len(tr.Branches))
	for i := range dist {
		dist[i] = -1
	}
	dist[start] = 0
	queue := []int{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nbr := range adj[cur] {
			if dist[nbr] < 0 {
				dist[nbr] = dist[cur] + 1
				queue = append(queue, nbr)
			}
		}
	}
	return dist
}

// farthest returns the lowest id among nodes at maximum distance.
func (tr *Tree) farthest(dist []int) int {
	fi, fd := 0, -1
	for i, d := range dist {
		if d > fd {
			fi, fd = i, d
		}
	}
	return fi
}
