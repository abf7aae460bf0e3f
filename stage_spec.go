// Copyright (c) 2026 The fastfifo Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastfifo

// StageSpec configures one stage of a Pipeline. Stage 0 is always the
// producer, the last stage is always the terminal consumer, and anything in
// between is a transformer; none of that is configured here, it falls out of
// a stage's position in the []StageSpec slice passed to New.
type StageSpec struct {
	// Atomic declares the stage multi-worker: its façade may be Cloned for
	// additional workers, and its head uses atomic fetch-max updates.
	// False declares the stage single-worker: Clone is rejected, and the
	// stage's own head uses plain (non-atomic) load/store, since at most
	// one goroutine ever touches it. The cursor pairs the stage writes
	// into remain atomic either way — the next stage reads them.
	Atomic bool

	// Drop, if set, is invoked once per leftover payload pending at this
	// stage when the owning Pipeline is closed with values still in
	// flight. It receives the payload most recently written by the stage
	// this stage chases (i.e. this stage's input type). A nil Drop is a
	// no-op, matching the out-of-band default tag in the drop protocol.
	Drop func(v any)
}

// chases returns the stage index that stage s must observe give-advance
// before it may reserve a fresh slot: the producer chases the terminal
// consumer (closing the ring), every other stage chases the stage before it.
func chases(s, numStages int) int {
	return (s + numStages - 1) % numStages
}

// producerOffset is 1 for the producer stage and 0 otherwise: the producer
// is the only stage allowed to write a fresh block's version-0 slots without
// first observing a predecessor give.
func producerOffset(s int) int {
	if s == 0 {
		return 1
	}
	return 0
}
