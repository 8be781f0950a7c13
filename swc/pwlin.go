// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package swc

import (
	"fmt"

	"cogentcore.org/core/math32"

	"github.com/emer/cable/ctree"
)

// Loc is a location on a morphology: a branch id and a normalized
// position along it, 0 = proximal end, 1 = distal end.
type Loc struct {
	Branch int
	Pos    float32
}

// branchPW is the piecewise-linear description of one branch: record
// points at normalized arc-length breakpoints.
type branchPW struct {
	pos  []float32     // normalized arc length per point, 0..1
	pts  []math32.Vector3 // position per point
	rads []float32     // radius per point
}

// Place interpolates positions and radii along the branches of a
// morphology, piecewise-linearly in normalized arc length. A branch of
// zero total length yields its proximal point everywhere.
type Place struct {
	branches []branchPW
}

// NewPlace builds the placement data for a branch tree and the
// canonical records it was built from. Each non-root branch is
// prepended with its parent branch's distal point, so interpolation is
// continuous across branch boundaries.
func NewPlace(tr *ctree.Tree, recs []*Record) (*Place, error) {
	nb := tr.NumBranches()
	pl := &Place{branches: make([]branchPW, nb)}
	for bi := 0; bi < nb; bi++ {
		br := &tr.Branches[bi]
		var pts []math32.Vector3
		var rads []float32
		if br.Parent >= 0 {
			pc := tr.Branches[br.Parent].Comps
			prox := pc[len(pc)-1]
			if prox >= len(recs) {
				return nil, fmt.Errorf("swc: branch %d proximal compartment %d has no record", bi, prox)
			}
			pts = append(pts, recs[prox].Pos)
			rads = append(rads, recs[prox].Radius)
		}
		for _, c := range br.Comps {
			if c >= len(recs) {
				return nil, fmt.Errorf("swc: branch %d compartment %d has no record", bi, c)
			}
			pts = append(pts, recs[c].Pos)
			rads = append(rads, recs[c].Radius)
		}
		pos := make([]float32, len(pts))
		for i := 1; i < len(pts); i++ {
			pos[i] = pos[i-1] + pts[i].DistanceTo(pts[i-1])
		}
		length := pos[len(pos)-1]
		if length > 0 {
			for i := range pos {
				pos[i] /= length
			}
		}
		pl.branches[bi] = branchPW{pos: pos, pts: pts, rads: rads}
	}
	return pl, nil
}

// At returns the interpolated position and radius at the given
// location. Positions outside [0, 1] are clamped.
func (pl *Place) At(loc Loc) (math32.Vector3, float32) {
	bw := &pl.branches[loc.Branch]
	n := len(bw.pos)
	p := math32.Clamp(loc.Pos, 0, 1)
	if n == 1 || bw.pos[n-1] == 0 {
		// single point or zero-length branch
		return bw.pts[0], bw.rads[0]
	}
	i := 1
	for i < n-1 && bw.pos[i] < p {
		i++
	}
	p0, p1 := bw.pos[i-1], bw.pos[i]
	if p0 == p1 {
		return bw.pts[i], bw.rads[i]
	}
	t := (p - p0) / (p1 - p0)
	pt := bw.pts[i-1].Add(bw.pts[i].Sub(bw.pts[i-1]).MulScalar(t))
	r := bw.rads[i-1] + (bw.rads[i]-bw.rads[i-1])*t
	return pt, r
}
