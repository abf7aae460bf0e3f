// Copyright (c) 2026 The fastfifo Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastfifo

import "code.hybscloud.com/atomix"

// stageHead is the packed cursor naming the block a stage currently
// operates on. Atomic stages (multi-worker) use a relaxed atomic load and a
// CAS-based fetch-max; single-worker stages use plain memory, since the API
// guarantees at most one goroutine ever calls Reserve for that stage.
//
// This is the conservative reading of the source's open question on
// non-atomic head access (see DESIGN.md): plain access is correct only
// because the single-worker invariant is enforced at Stage.Clone.
type stageHead struct {
	_      pad
	atomic bool
	a      atomix.Uint64
	v      uint64
	_      pad
}

func (h *stageHead) init(atomicHead bool, start field) {
	h.atomic = atomicHead
	if atomicHead {
		h.a.StoreRelaxed(uint64(start))
	} else {
		h.v = uint64(start)
	}
}

func (h *stageHead) load() field {
	if h.atomic {
		return field(h.a.LoadRelaxed())
	}
	return field(h.v)
}

// max relaxed-max-updates the head, tolerating concurrent advance attempts
// by sibling workers of an atomic stage. Non-atomic heads use a plain
// compare-and-store with no atomics, since advance is only ever called by
// the stage's sole worker in that case.
func (h *stageHead) max(v field) {
	if h.atomic {
		for {
			old := h.a.LoadRelaxed()
			if field(old) >= v {
				return
			}
			if h.a.CompareAndSwapRelaxed(old, uint64(v)) {
				return
			}
		}
	}
	if v > field(h.v) {
		h.v = uint64(v)
	}
}
