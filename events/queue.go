// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

// Timed is implemented by anything with an event time, so one queue
// structure serves synaptic events, sample events, and spikes alike.
type Timed interface {
	EvTime() float32
}

// Queue is a minimum-time priority queue over items with a time field.
// Items with equal times pop in insertion order. The zero value is an
// empty queue ready for use.
type Queue[T Timed] struct {
	items []queueItem[T]
	seq   int64
}

type queueItem[T Timed] struct {
	item T
	seq  int64
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	return len(q.items)
}

// Clear empties the queue.
func (q *Queue[T]) Clear() {
	q.items = q.items[:0]
	q.seq = 0
}

// Push inserts an item, in O(log n).
func (q *Queue[T]) Push(it T) {
	q.items = append(q.items, queueItem[T]{item: it, seq: q.seq})
	q.seq++
	q.up(len(q.items) - 1)
}

// TimeIfBefore returns the minimum queued time if it is strictly less
// than the threshold, without removing anything. The second return is
// false if the queue is empty or the minimum is not before threshold.
func (q *Queue[T]) TimeIfBefore(threshold float32) (float32, bool) {
	if len(q.items) == 0 {
		return 0, false
	}
	t := q.items[0].item.EvTime()
	if t >= threshold {
		return 0, false
	}
	return t, true
}

// PopIfBefore removes and returns the minimum-time item only if its
// time is strictly less than the threshold; otherwise the queue is
// left untouched and ok is false.
func (q *Queue[T]) PopIfBefore(threshold float32) (it T, ok bool) {
	if len(q.items) == 0 || q.items[0].item.EvTime() >= threshold {
		return
	}
	it = q.items[0].item
	n := len(q.items) - 1
	q.items[0] = q.items[n]
	q.items = q.items[:n]
	if n > 0 {
		q.down(0)
	}
	return it, true
}

// less orders by time, then by insertion sequence for stable ties.
func (q *Queue[T]) less(i, j int) bool {
	ti, tj := q.items[i].item.EvTime(), q.items[j].item.EvTime()
	if ti != tj {
		return ti < tj
	}
	return q.items[i].seq < q.items[j].seq
}

func (q *Queue[T]) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !q.less(i, parent) {
			break
		}
		q.items[i], q.items[parent] = q.items[parent], q.items[i]
		i = parent
	}
}

func (q *Queue[T]) down(i int) {
	n := len(q.items)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		min := left
		if right := left + 1; right < n && q.less(right, left) {
			min = right
		}
		if !q.less(min, i) {
			break
		}
		q.items[i], q.items[min] = q.items[min], q.items[i]
		i = min
	}
}
