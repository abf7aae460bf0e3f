// Copyright (c) 2026 The fastfifo Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastfifo

import "code.hybscloud.com/atomix"

// cursorPair is the per-(block, stage) pair of cursors that gates
// reservation (take) and publication (give). shift and capacity describe
// the block-size bit split shared by every field this pair produces.
type cursorPair struct {
	_        pad
	take     atomix.Uint64
	_        pad
	give     atomix.Uint64
	shift    uint
	capacity int
}

func (p *cursorPair) init(capacity int, shift uint, start field) {
	p.capacity = capacity
	p.shift = shift
	p.take.StoreRelaxed(uint64(start))
	p.give.StoreRelaxed(uint64(start))
}

// loadTake is a relaxed read of the reservation cursor.
func (p *cursorPair) loadTake() field {
	return field(p.take.LoadRelaxed())
}

// loadGive is an acquire read: a caller observing give advance past slot k is
// guaranteed to see the payload a predecessor wrote to slot k before its
// release incrGive.
func (p *cursorPair) loadGive() field {
	return field(p.give.LoadAcquire())
}

// fetchMaxTake relaxed-max-updates take, returning the prior value.
func (p *cursorPair) fetchMaxTake(v field) field {
	for {
		old := p.take.LoadRelaxed()
		if field(old) >= v {
			return field(old)
		}
		if p.take.CompareAndSwapRelaxed(old, uint64(v)) {
			return field(old)
		}
	}
}

// fetchMaxGive relaxed-max-updates give. Used only to reset the pair across a
// lap, never to publish a completed payload (that is incrGive's job).
func (p *cursorPair) fetchMaxGive(v field) field {
	for {
		old := p.give.LoadRelaxed()
		if field(old) >= v {
			return field(old)
		}
		if p.give.CompareAndSwapRelaxed(old, uint64(v)) {
			return field(old)
		}
	}
}

// fetchMaxBoth independently max-updates both cursors, returning their prior
// values as (oldGive, oldTake).
func (p *cursorPair) fetchMaxBoth(v field) (oldGive, oldTake field) {
	oldGive = p.fetchMaxGive(v)
	oldTake = p.fetchMaxTake(v)
	return
}

// incrGive publishes a completed payload with release semantics.
func (p *cursorPair) incrGive() {
	p.give.AddAcqRel(1)
}
