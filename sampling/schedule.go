// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sampling

import "cogentcore.org/core/math32"

// Schedule generates sample times. Events is expanded over successive,
// non-overlapping-forward intervals within one simulation run; a time
// already reported is never reported again until Reset restores the
// schedule to its initial state.
type Schedule interface {

	// Events returns the scheduled times t with t0 <= t < t1, in
	// increasing order, excluding times already reported.
	Events(t0, t1 float32) []float32

	// Reset restores the internal cursor to its initial state.
	Reset()
}

// RegularSchedule generates times Start + k*DT for k = 0, 1, ...
type RegularSchedule struct {

	// time of the first sample
	Start float32

	// sampling interval; must be > 0
	DT float32

	// next k to report
	next int
}

// NewRegularSchedule returns a regular schedule starting at time 0
// with the given sampling interval.
func NewRegularSchedule(dt float32) *RegularSchedule {
	return &RegularSchedule{DT: dt}
}

func (rs *RegularSchedule) Events(t0, t1 float32) []float32 {
	if rs.DT <= 0 || t1 <= t0 {
		return nil
	}
	k := rs.next
	if t := rs.Start + float32(k)*rs.DT; t < t0 {
		k = int(math32.Ceil((t0 - rs.Start) / rs.DT))
	}
	var ts []float32
	for {
		t := rs.Start + float32(k)*rs.DT
		if t >= t1 {
			break
		}
		if t >= t0 {
			ts = append(ts, t)
		}
		k++
	}
	rs.next = k
	return ts
}

func (rs *RegularSchedule) Reset() {
	rs.next = 0
}

// ExplicitSchedule generates an explicit, increasing list of times.
type ExplicitSchedule struct {

	// sample times, in increasing order
	Times []float32

	// index of the next unreported time
	pos int
}

func NewExplicitSchedule(times []float32) *ExplicitSchedule {
	return &ExplicitSchedule{Times: times}
}

func (es *ExplicitSchedule) Events(t0, t1 float32) []float32 {
	var ts []float32
	for es.pos < len(es.Times) && es.Times[es.pos] < t1 {
		if es.Times[es.pos] >= t0 {
			ts = append(ts, es.Times[es.pos])
		}
		es.pos++
	}
	return ts
}

func (es *ExplicitSchedule) Reset() {
	es.pos = 0
}
