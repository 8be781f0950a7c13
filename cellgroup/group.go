// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package cellgroup advances a batch of cells sharing one lowered
(numerical solver) state through discrete-event-coupled integration:
per interval it merges incoming synaptic events and scheduled probe
samples into a single time-ordered stream, drives the solver forward
in bounded steps, and harvests spikes with globally meaningful source
identities.

A Group owns a disjoint, statically assigned set of cells and performs
no locking: Advance, EnqueueEvents, Spikes and ClearSpikes must be
driven by a single goroutine at a time. Separate groups share no
mutable state and may run fully in parallel.
*/
package cellgroup

import (
	"fmt"
	"log"
	"sort"

	"github.com/emer/emergent/v2/timer"

	"github.com/emer/cable/events"
	"github.com/emer/cable/sampling"
)

// Debug enables contract and physical-plausibility diagnostics in the
// advance loop.
var Debug = false

// Group is the advance-loop engine for one batch of cells.
type Group struct {

	// group-local cell ids, in construction order
	GIDs []int

	// record per-phase times in FunTimes (Events, Sampling, Stepping)
	RecFunTimes bool

	// timers for each phase of the advance loop
	FunTimes map[string]*timer.Time

	// gid -> group-local index
	gidIndex map[int]int

	// the lowered (solver) state shared by the cells
	lowered Lowered

	// flat target handle list from the lowered state
	targets []TargetHandle

	// prefix sums of per-cell target counts: targets of cell i occupy
	// [targetDivs[i], targetDivs[i+1])
	targetDivs []int

	// probe id -> lowered probe handle and tag
	probes map[events.CellMember]ProbeInfo

	// global identities of the spike sources, in local index order
	sources []events.CellMember

	// spikes accumulated since the last ClearSpikes
	spikes []events.Spike

	// event time binning
	binner events.Binner

	// pending synaptic events
	evq events.Queue[events.PostsynapticEvent]

	// pending sample events for the in-progress interval
	sampq events.Queue[events.SampleEvent]

	// registered samplers
	samplers sampling.Map
}

// samplerEntry is one (probe, callback) pair active during an advance
// interval; sample events reference entries by index.
type samplerEntry struct {
	handle ProbeHandle
	tag    int
	probe  events.CellMember
	fn     sampling.Func
}

// New builds a group for the given cells, constructing the lowered
// state via its Initialize method and precomputing the target-handle
// partition and spike source tables.
func New(gids []int, rec Recipe, lowered Lowered) (*Group, error) {
	gp := &Group{
		GIDs:     gids,
		gidIndex: make(map[int]int, len(gids)),
		lowered:  lowered,
		FunTimes: make(map[string]*timer.Time),
	}
	for i, gid := range gids {
		gp.gidIndex[gid] = i
	}

	gp.targetDivs = make([]int, len(gids)+1)
	for i, gid := range gids {
		gp.targetDivs[i+1] = gp.targetDivs[i] + rec.NumTargets(gid)
	}

	targets, probes, err := lowered.Initialize(gids, rec)
	if err != nil {
		return nil, err
	}
	if len(targets) != gp.targetDivs[len(gids)] {
		return nil, fmt.Errorf("cellgroup: lowered state produced %d target handles, recipe counts give %d", len(targets), gp.targetDivs[len(gids)])
	}
	gp.targets = targets
	gp.probes = probes

	for _, gid := range gids {
		ns := rec.NumSources(gid)
		for li := 0; li < ns; li++ {
			gp.sources = append(gp.sources, events.CellMember{GID: gid, Index: li})
		}
	}
	return gp, nil
}

// SpikeSources returns the global identities of the group's spike
// sources, in local source index order.
func (gp *Group) SpikeSources() []events.CellMember {
	return gp.sources
}

// SetBinning sets the event time binning policy for subsequent
// Advance calls.
func (gp *Group) SetBinning(kind events.BinningKind, interval float32) {
	gp.binner = events.NewBinner(kind, interval)
}

// EnqueueEvents appends pending synaptic events without draining the
// queue; call any time before the next Advance.
func (gp *Group) EnqueueEvents(evs []events.PostsynapticEvent) {
	for _, ev := range evs {
		gp.evq.Push(ev)
	}
}

// Spikes returns the spikes accumulated since the last ClearSpikes.
func (gp *Group) Spikes() []events.Spike {
	return gp.spikes
}

// ClearSpikes empties the accumulated spike buffer.
func (gp *Group) ClearSpikes() {
	gp.spikes = gp.spikes[:0]
}

// AddSampler associates a sampler under the given handle: the
// predicate is resolved against the group's probe ids now, at
// registration time, and the materialized probe set is stored. If the
// resolved set is empty the registration is a no-op.
func (gp *Group) AddSampler(h sampling.Handle, probes events.MemberPredicate, sched sampling.Schedule, fn sampling.Func, policy sampling.Policy) {
	var probeset []events.CellMember
	for pm := range gp.probes {
		if probes(pm) {
			probeset = append(probeset, pm)
		}
	}
	if len(probeset) == 0 {
		return
	}
	// map iteration order is random: sort for determinism
	sort.Slice(probeset, func(i, j int) bool {
		if probeset[i].GID != probeset[j].GID {
			return probeset[i].GID < probeset[j].GID
		}
		return probeset[i].Index < probeset[j].Index
	})
	gp.samplers.Add(h, sampling.Association{Sched: sched, Func: fn, Probes: probeset, Policy: policy})
}

// RemoveSampler removes the sampler association with the given handle.
func (gp *Group) RemoveSampler(h sampling.Handle) {
	gp.samplers.Remove(h)
}

// RemoveAllSamplers clears the sampler registry.
func (gp *Group) RemoveAllSamplers() {
	gp.samplers.Clear()
}

// Reset returns the group to its initial (t = 0) condition: pending
// events, pending samples, sampler schedules, binning state, spike
// buffer, and the lowered state itself.
func (gp *Group) Reset() {
	gp.spikes = gp.spikes[:0]
	gp.evq.Clear()
	gp.sampq.Clear()
	gp.samplers.Reset()
	gp.binner.Reset()
	gp.lowered.Reset()
}

// targetHandle resolves a synaptic target id to its lowered handle
// via the precomputed partition.
func (gp *Group) targetHandle(id events.CellMember) TargetHandle {
	return gp.targets[gp.targetDivs[gp.gidIndex[id.GID]]+id.Index]
}

// Advance integrates the group over [tstart, tfinal) with bounded
// step dt, delivering due synaptic events, taking scheduled probe
// samples, and harvesting spikes. The lowered state must be
// synchronized (all cells at the same time) on entry; a violation is
// a contract breach and panics.
func (gp *Group) Advance(tfinal, dt float32) {
	if !gp.lowered.StateSynchronized() {
		panic("cellgroup: Advance called with unsynchronized lowered cell state")
	}
	tstart := gp.lowered.MinTime()

	// bin pending events and enqueue on the lowered state; binning is
	// floored at the already-reached time so nothing lands in the past
	gp.funTimerStart("Events")
	evMinTime := gp.lowered.MaxTime() // == tstart: we are synchronized here
	for {
		ev, ok := gp.evq.PopIfBefore(tfinal)
		if !ok {
			break
		}
		handle := gp.targetHandle(ev.Target)
		binned := gp.binner.Bin(ev.Target.GID, ev.Time, evMinTime)
		gp.lowered.AddEvent(binned, handle, ev.Weight)
	}
	gp.funTimerStop("Events")

	gp.lowered.SetupIntegration(tfinal, dt)

	// expand sampler schedules over the interval into entries plus one
	// sample event per scheduled time
	var entries []samplerEntry
	gp.samplers.Do(func(h sampling.Handle, as *sampling.Association) {
		ts := as.Sched.Events(tstart, tfinal)
		if len(ts) == 0 {
			return
		}
		for _, pm := range as.Probes {
			pinfo, ok := gp.probes[pm]
			if !ok {
				if Debug {
					panic(fmt.Sprintf("cellgroup: sampler %d references unknown probe %v", h, pm))
				}
				continue
			}
			idx := len(entries)
			entries = append(entries, samplerEntry{handle: pinfo.Handle, tag: pinfo.Tag, probe: pm, fn: as.Func})
			for _, t := range ts {
				gp.sampq.Push(events.SampleEvent{Sampler: idx, Time: t})
			}
		}
	})

	_, haveSample := gp.sampq.TimeIfBefore(tfinal)
	var requeue []events.SampleEvent
	for !gp.lowered.IntegrationComplete() {
		if haveSample {
			gp.funTimerStart("Sampling")
			// pop everything due against the farthest-ahead cell; a
			// sample whose own cell has not caught up yet goes to the
			// held-out requeue buffer, not back into the in-progress
			// drain, so an event cannot chase itself within one drain
			cellMaxTime := gp.lowered.MaxTime()
			requeue = requeue[:0]
			for {
				m, ok := gp.sampq.PopIfBefore(cellMaxTime)
				if !ok {
					break
				}
				se := &entries[m.Sampler]
				cellTime := gp.lowered.CellTime(gp.gidIndex[se.probe.GID])
				if cellTime < m.Time {
					// this cell hasn't reached this sample time yet
					requeue = append(requeue, m)
				} else {
					value := gp.lowered.Probe(se.handle)
					se.fn(se.probe, se.tag, 1, []sampling.Record{{Time: cellTime, Value: value}})
				}
			}
			for _, m := range requeue {
				gp.sampq.Push(m)
			}
			_, haveSample = gp.sampq.TimeIfBefore(tfinal)
			gp.funTimerStop("Sampling")
		}

		// one bounded step: this is where previously delivered events
		// actually take effect on the state
		gp.funTimerStart("Stepping")
		gp.lowered.StepIntegration()
		gp.funTimerStop("Stepping")

		if Debug && !gp.lowered.PhysicalSolution() {
			log.Printf("cellgroup: warning: solution out of bounds at (max) t %g ms\n", gp.lowered.MaxTime())
		}
	}

	// translate local threshold crossings to global spike identities
	gp.funTimerStart("Events")
	for _, c := range gp.lowered.Spikes() {
		gp.spikes = append(gp.spikes, events.Spike{Source: gp.sources[c.Index], Time: c.Time})
	}
	gp.lowered.ClearSpikes()
	gp.funTimerStop("Events")
}

// TimerReport reports the time spent in each phase of the advance
// loop; only meaningful with RecFunTimes set.
func (gp *Group) TimerReport() {
	fmt.Printf("TimerReport: cell group, %v cells\n", len(gp.GIDs))
	fmt.Printf("\tFunction Name\tTotal Secs\tPct\n")
	nfn := len(gp.FunTimes)
	fnms := make([]string, 0, nfn)
	for k := range gp.FunTimes {
		fnms = append(fnms, k)
	}
	sort.Strings(fnms)
	pcts := make([]float64, nfn)
	tot := 0.0
	for i, fn := range fnms {
		pcts[i] = gp.FunTimes[fn].TotalSecs()
		tot += pcts[i]
	}
	for i, fn := range fnms {
		fmt.Printf("\t%v \t%6.4g\t%6.4g\n", fn, pcts[i], 100*(pcts[i]/tot))
	}
	fmt.Printf("\tTotal   \t%6.4g\n", tot)
}

// funTimerStart starts a function timer for the given phase,
// creating it if needed; a no-op unless RecFunTimes is set.
func (gp *Group) funTimerStart(fun string) {
	if !gp.RecFunTimes {
		return
	}
	ft, ok := gp.FunTimes[fun]
	if !ok {
		ft = &timer.Time{}
		gp.FunTimes[fun] = ft
	}
	ft.Start()
}

// funTimerStop stops the function timer for the given phase.
func (gp *Group) funTimerStop(fun string) {
	if !gp.RecFunTimes {
		return
	}
	gp.FunTimes[fun].Stop()
}
