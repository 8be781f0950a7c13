// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import "testing"

func TestQueuePopOrder(t *testing.T) {
	q := Queue[PostsynapticEvent]{}
	times := []float32{3, 1, 4, 1.5, 9, 2.6, 0.5}
	for i, tm := range times {
		q.Push(PostsynapticEvent{Target: CellMember{GID: i}, Time: tm})
	}
	if q.Len() != len(times) {
		t.Errorf("Len: %v != %v", q.Len(), len(times))
	}
	prev := float32(-1)
	n := 0
	for {
		ev, ok := q.PopIfBefore(100)
		if !ok {
			break
		}
		if ev.Time < prev {
			t.Errorf("pop order violated: %v after %v", ev.Time, prev)
		}
		prev = ev.Time
		n++
	}
	if n != len(times) {
		t.Errorf("popped %v events, expected %v", n, len(times))
	}
}

func TestQueuePopIfBefore(t *testing.T) {
	q := Queue[PostsynapticEvent]{}
	for _, tm := range []float32{1, 2, 3, 4} {
		q.Push(PostsynapticEvent{Time: tm})
	}
	// nothing strictly before the minimum
	if _, ok := q.PopIfBefore(1); ok {
		t.Errorf("popped event with time >= threshold")
	}
	if q.Len() != 4 {
		t.Errorf("failed pop must leave queue untouched")
	}
	ev, ok := q.PopIfBefore(2.5)
	if !ok || ev.Time != 1 {
		t.Errorf("expected event at t=1, got %v ok=%v", ev.Time, ok)
	}
	ev, ok = q.PopIfBefore(2.5)
	if !ok || ev.Time != 2 {
		t.Errorf("expected event at t=2, got %v ok=%v", ev.Time, ok)
	}
	if _, ok = q.PopIfBefore(2.5); ok {
		t.Errorf("no event before 2.5 should remain")
	}
	if q.Len() != 2 {
		t.Errorf("queue should retain later events, len=%v", q.Len())
	}
}

func TestQueueTimeIfBefore(t *testing.T) {
	q := Queue[SampleEvent]{}
	if _, ok := q.TimeIfBefore(10); ok {
		t.Errorf("empty queue reported a time")
	}
	q.Push(SampleEvent{Sampler: 0, Time: 5})
	if _, ok := q.TimeIfBefore(5); ok {
		t.Errorf("threshold is exclusive")
	}
	tm, ok := q.TimeIfBefore(5.1)
	if !ok || tm != 5 {
		t.Errorf("expected 5, got %v ok=%v", tm, ok)
	}
	if q.Len() != 1 {
		t.Errorf("peek must not remove")
	}
}

func TestQueueStableTies(t *testing.T) {
	q := Queue[PostsynapticEvent]{}
	for i := 0; i < 5; i++ {
		q.Push(PostsynapticEvent{Target: CellMember{Index: i}, Time: 2})
	}
	for i := 0; i < 5; i++ {
		ev, ok := q.PopIfBefore(3)
		if !ok || ev.Target.Index != i {
			t.Errorf("tie-break not insertion-ordered: got %v at pop %v", ev.Target.Index, i)
		}
	}
}

func TestQueueClear(t *testing.T) {
	q := Queue[SampleEvent]{}
	q.Push(SampleEvent{Time: 1})
	q.Push(SampleEvent{Time: 2})
	q.Clear()
	if q.Len() != 0 {
		t.Errorf("Clear left %v items", q.Len())
	}
	if _, ok := q.PopIfBefore(10); ok {
		t.Errorf("cleared queue popped an item")
	}
}
