// Copyright (c) 2026 The fastfifo Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastfifo

// Entry is a scoped, exclusive handle over one reserved slot. It must be
// released by exactly one call to Transform; the zero value is not usable.
//
// Go has no destructors, so unlike the source language's handle (which
// publishes on scope exit even when f panics), a caller that reserves an
// Entry and never calls Transform leaves the slot's give cursor un-advanced
// forever — the same contract violation spec.md documents for dropping a
// pipeline with an outstanding reservation (see Stage.Close), just
// discovered later. Transform publishes the give cursor from a deferred
// call, so it still runs when f panics and the stage behind it is not
// wedged; the panic then continues to propagate to the caller.
type Entry struct {
	blk   *block
	pair  *cursorPair
	stage int
	index int
	done  bool
}

// Transform invokes f exactly once with the payload previously written to
// this slot (for the producer stage, whatever the terminal stage left there:
// nil for a fresh slot or after Consume) and
// writes f's result back in place as this stage's output. It then publishes
// completion by incrementing this stage's give cursor, with release
// semantics, regardless of whether f panics.
func (e *Entry) Transform(f func(in any) any) {
	if e.done {
		panic("fastfifo: Entry.Transform called more than once")
	}
	e.done = true
	defer e.pair.incrGive()

	in := e.blk.slots[e.index]
	e.blk.slots[e.index] = f(in)
}
