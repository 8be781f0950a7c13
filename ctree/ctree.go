// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package ctree builds the branch tree of one cell's morphology from a
flat parent-index array, and rebalances it to minimize the critical
path of the per-branch numerical solve.

A compartment is the atomic unit of the parent-index representation:
parent[0] refers to itself (the root), and every parent[i] for i > 0
must reference an earlier index, which guarantees the structure is a
tree. A branch is a maximal run of compartments with no internal
forks; branches are the unit the topology exposes externally, and the
unit a banded elimination solver processes per dependency step, so the
solver's critical path is proportional to the height of the branch
tree.

The tree is an arena of branch records indexed by dense integer id,
with parent / child links stored as indices into the same arena.
Construction assigns ids in breadth-first order, so the invariant
parent(b) < b holds for every non-root branch.
*/
package ctree

import "fmt"

// Branch is one unbranched run of compartments in the branch tree.
type Branch struct {

	// parent branch id; -1 for the root branch
	Parent int

	// child branch ids, in id order
	Children []int

	// member compartment indices, proximal to distal relative to the
	// tree the branch was constructed from
	Comps []int
}

// Tree is the branch tree of one cell. Build it with FromParentIndex,
// optionally rebalance with Balance, then hand it off to the solver;
// it is never mutated after handoff.
type Tree struct {

	// branch arena, indexed by branch id
	Branches []Branch
}

// FromParentIndex builds the branch tree from a parent-index array.
// An empty array is valid and denotes a single trivial compartment.
// Otherwise parents[0] must be 0 (the self-referential root sentinel)
// and every later entry must reference a strictly earlier index; a
// violation means the input is not a tree and is rejected before any
// branch is built.
func FromParentIndex(parents []int) (*Tree, error) {
	n := len(parents)
	if n == 0 {
		return &Tree{Branches: []Branch{{Parent: -1, Comps: []int{0}}}}, nil
	}
	if parents[0] != 0 {
		return nil, fmt.Errorf("ctree: parent[0] = %d, must be the self-referential root sentinel 0", parents[0])
	}
	for i := 1; i < n; i++ {
		if parents[i] < 0 || parents[i] >= i {
			return nil, fmt.Errorf("ctree: parent[%d] = %d is not a reference to an earlier compartment", i, parents[i])
		}
	}

	// children per compartment, one linear pass
	kids := make([][]int, n)
	for i := 1; i < n; i++ {
		kids[parents[i]] = append(kids[parents[i]], i)
	}

	tr := &Tree{}
	// the root compartment always forms branch 0 by itself
	tr.Branches = append(tr.Branches, Branch{Parent: -1, Comps: []int{0}})

	type head struct {
		comp   int // first compartment of the branch
		parent int // parent branch id
	}
	var queue []head
	for _, c := range kids[0] {
		queue = append(queue, head{comp: c, parent: 0})
	}
	for len(queue) > 0 {
		hd := queue[0]
		queue = queue[1:]
		bid := len(tr.Branches)
		comps := []int{hd.comp}
		cur := hd.comp
		for len(kids[cur]) == 1 {
			cur = kids[cur][0]
			comps = append(comps, cur)
		}
		tr.Branches = append(tr.Branches, Branch{Parent: hd.parent, Comps: comps})
		tr.Branches[hd.parent].Children = append(tr.Branches[hd.parent].Children, bid)
		for _, c := range kids[cur] {
			queue = append(queue, head{comp: c, parent: bid})
		}
	}
	return tr, nil
}

// NumBranches returns the number of branches; always >= 1.
func (tr *Tree) NumBranches() int {
	return len(tr.Branches)
}

// NumChildren returns the number of child branches of branch b.
func (tr *Tree) NumChildren(b int) int {
	return len(tr.Branches[b].Children)
}

// NumCompartments returns the total number of member compartments
// across all branches.
func (tr *Tree) NumCompartments() int {
	n := 0
	for bi := range tr.Branches {
		n += len(tr.Branches[bi].Comps)
	}
	return n
}

// Depths returns the depth (path length in branch edges from the
// root) of every branch.
func (tr *Tree) Depths() []int {
	dp := make([]int, len(tr.Branches))
	// ids are in breadth-first order so a single forward pass works
	for bi := 1; bi < len(tr.Branches); bi++ {
		dp[bi] = dp[tr.Branches[bi].Parent] + 1
	}
	return dp
}

// Height returns the maximum root-to-leaf path length, in branch
// edges. A single-branch tree has height 0.
func (tr *Tree) Height() int {
	mx := 0
	for _, d := range tr.Depths() {
		if d > mx {
			mx = d
		}
	}
	return mx
}

// CheckInvariants verifies the structural invariants of the tree:
// branch 0 is the unique root, every non-root branch has parent < id,
// parent / child links agree, and every branch is reachable from the
// root.
func (tr *Tree) CheckInvariants() error {
	nb := len(tr.Branches)
	if nb == 0 {
		return fmt.Errorf("ctree: tree has no branches")
	}
	if tr.Branches[0].Parent != -1 {
		return fmt.Errorf("ctree: branch 0 has parent %d, must be the root", tr.Branches[0].Parent)
	}
	seen := 1
	for bi := 1; bi < nb; bi++ {
		p := tr.Branches[bi].Parent
		if p < 0 || p >= bi {
			return fmt.Errorf("ctree: branch %d has parent %d, violates parent < id", bi, p)
		}
		found := false
		for _, c := range tr.Branches[p].Children {
			if c == bi {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("ctree: branch %d not in child list of parent %d", bi, p)
		}
		seen++
	}
	nkids := 0
	for bi := range tr.Branches {
		nkids += len(tr.Branches[bi].Children)
	}
	if nkids != nb-1 {
		return fmt.Errorf("ctree: %d child links for %d branches, tree is not connected", nkids, nb)
	}
	return nil
}

// Dot renders the branch tree in Graphviz dot format, one node per
// branch labeled with its id and compartment count.
func (tr *Tree) Dot(name string) string {
	s := fmt.Sprintf("digraph %s {\n", name)
	for bi := range tr.Branches {
		s += fmt.Sprintf("\t%d [label=\"%d (%d)\"];\n", bi, bi, len(tr.Branches[bi].Comps))
	}
	for bi := 1; bi < len(tr.Branches); bi++ {
		s += fmt.Sprintf("\t%d -> %d;\n", tr.Branches[bi].Parent, bi)
	}
	s += "}\n"
	return s
}
