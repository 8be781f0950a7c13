// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import "cogentcore.org/core/math32"

// BinningKind selects the event time binning policy.
type BinningKind int32

const (
	// NoBinning delivers events at their raw times.
	NoBinning BinningKind = iota

	// RegularBinning quantizes delivery times onto a regular grid of
	// the configured bin interval.
	RegularBinning
)

// Binner quantizes raw event delivery times into coarser bins, making
// delivery order reproducible across runs regardless of floating-point
// jitter in the raw event times. Bins are anchored independently per
// key (cell gid): each key's bins are monotone in its own event
// stream, so different cells' bins are not forced to coincide.
type Binner struct {

	// binning policy
	Kind BinningKind

	// bin interval for RegularBinning; must be > 0 for that policy
	Interval float32

	// last bin per key, enforcing per-key monotone binning
	last map[int]float32
}

// NewBinner returns a binner with the given policy and interval.
func NewBinner(kind BinningKind, interval float32) Binner {
	return Binner{Kind: kind, Interval: interval}
}

// Reset clears all per-key anchor state, restarting binning from
// time zero.
func (bn *Binner) Reset() {
	bn.last = nil
}

// Bin returns the binned delivery time for an event on the given key.
// The result is never earlier than floor (the solver's already-reached
// time), so binning cannot deliver into the past. For NoBinning the
// raw time is returned unchanged.
func (bn *Binner) Bin(key int, time, floor float32) float32 {
	if bn.Kind == NoBinning || bn.Interval <= 0 {
		return time
	}
	t := bn.Interval * math32.Floor(time/bn.Interval)
	if t < floor {
		// smallest interval multiple >= floor
		t = bn.Interval * math32.Ceil(floor/bn.Interval)
	}
	if lt, ok := bn.last[key]; ok && t < lt {
		t = lt
	}
	if bn.last == nil {
		bn.last = make(map[int]float32)
	}
	bn.last[key] = t
	return t
}
