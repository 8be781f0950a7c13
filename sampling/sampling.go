// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package sampling provides probe sampling schedules and the sampler
registry used by the cellgroup advance loop: a sampler associates a
schedule (when to sample), a materialized set of probe ids (what to
sample), and a callback (where the records go).
*/
package sampling

import "github.com/emer/cable/events"

// Handle identifies one sampler association; values are supplied by
// the caller and must be unique within a registry.
type Handle int

// Policy selects how sample records are delivered to the callback.
type Policy int32

const (
	// Lax delivery invokes the callback synchronously from inside the
	// stepping loop, with no guarantee beyond per-probe time order.
	Lax Policy = iota
)

// Record is one sampled measurement.
type Record struct {

	// the owning cell's reached time when the sample was taken
	Time float32

	// the probed value
	Value float64
}

// Func is a sampler callback, invoked synchronously with the probe id,
// the probe's tag, and n records. A slow callback stalls only its own
// group.
type Func func(probe events.CellMember, tag int, n int, recs []Record)

// Association binds a schedule, a materialized probe-id set, and a
// callback. Each association owns its schedule: two associations must
// not share one Schedule value.
type Association struct {
	Sched  Schedule
	Func   Func
	Probes []events.CellMember
	Policy Policy
}

type keyedAssoc struct {
	handle Handle
	assoc  Association
}

// Map is the sampler registry: handle-keyed associations, iterated in
// insertion order.
type Map struct {
	assocs []keyedAssoc
	index  map[Handle]int
}

// Add registers an association under the given handle, replacing any
// existing association with that handle.
func (sm *Map) Add(h Handle, as Association) {
	if sm.index == nil {
		sm.index = make(map[Handle]int)
	}
	if i, ok := sm.index[h]; ok {
		sm.assocs[i].assoc = as
		return
	}
	sm.index[h] = len(sm.assocs)
	sm.assocs = append(sm.assocs, keyedAssoc{handle: h, assoc: as})
}

// Remove deletes the association with the given handle, if present.
func (sm *Map) Remove(h Handle) {
	i, ok := sm.index[h]
	if !ok {
		return
	}
	sm.assocs = append(sm.assocs[:i], sm.assocs[i+1:]...)
	delete(sm.index, h)
	for j := i; j < len(sm.assocs); j++ {
		sm.index[sm.assocs[j].handle] = j
	}
}

// Clear removes all associations.
func (sm *Map) Clear() {
	sm.assocs = nil
	sm.index = nil
}

// Len returns the number of live associations.
func (sm *Map) Len() int {
	return len(sm.assocs)
}

// Do calls fn for each live association, in insertion order.
func (sm *Map) Do(fn func(h Handle, as *Association)) {
	for i := range sm.assocs {
		fn(sm.assocs[i].handle, &sm.assocs[i].assoc)
	}
}

// Reset resets every association's schedule cursor to its initial
// state, restarting sampling from time zero.
func (sm *Map) Reset() {
	for i := range sm.assocs {
		sm.assocs[i].assoc.Sched.Reset()
	}
}
