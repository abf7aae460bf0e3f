// Copyright (c) 2026 The fastfifo Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastfifo

// reserveOutcome classifies the result of block.reserve. outcomeBlockDone
// never escapes the pipeline: advanceHead handles it internally.
type reserveOutcome int

const (
	outcomeSuccess reserveOutcome = iota
	outcomeNotAvailable
	outcomeBusy
	outcomeBlockDone
)

// block is one element of the pipeline's ring: blockSize slot storage cells
// plus one cursor pair per stage. A single slot successively holds a
// stage-0 value, then a stage-1 value, and so on, until it is logically
// empty again; the union carries no runtime tag of its own, the tag is
// reconstructed from cursor positions at drop time (see drop.go).
type block struct {
	pairs     []cursorPair
	slots     []any
	blockSize int
	shift     uint
}

func newBlock(numStages, blockSize int, shift uint, preExhausted bool) *block {
	b := &block{
		pairs:     make([]cursorPair, numStages),
		slots:     make([]any, blockSize),
		blockSize: blockSize,
		shift:     shift,
	}
	start := newField(0, 0, shift)
	if preExhausted {
		// Every ring block but the first starts as if every stage had
		// already exhausted it, so advanceHead's first visit to each
		// of them sees a block it may legitimately claim for lap 0
		// (mirrors Block::new_full in the original Rust source).
		start = newField(0, blockSize, shift)
	}
	for i := range b.pairs {
		b.pairs[i].init(blockSize, shift, start)
	}
	return b
}

// reserve attempts to reserve the next slot for stage, retrying internally
// on a lost compare-and-set. chasesStage is the stage this stage must
// observe give-advance from; offset is producerOffset(stage).
func (b *block) reserve(stage, chasesStage, offset int) (index int, outcome reserveOutcome) {
	current := &b.pairs[stage]
	chasing := &b.pairs[chasesStage]

	for {
		t := current.loadTake()
		if t.index(b.shift) >= b.blockSize {
			return 0, outcomeBlockDone
		}
		g := chasing.loadGive()
		if t.version(b.shift) >= g.version(b.shift)+offset {
			if t.index(b.shift) == g.index(b.shift) || t.version(b.shift) > g.version(b.shift)+offset {
				return 0, outcomeNotAvailable
			}
			ct := chasing.loadTake()
			if ct.index(b.shift) > g.index(b.shift) {
				return 0, outcomeBusy
			}
		}

		next := t.overflowingAdd(1)
		old := current.fetchMaxTake(next)
		if old == t {
			return t.index(b.shift), outcomeSuccess
		}
		// Lost the race against a sibling worker of the same atomic
		// stage; re-read and retry.
	}
}

// slotState classifies one slot of a block for diagnostics, mirroring the
// original source's Debug rendering of Uninit/Reserved/Allocated.
type slotState int

const (
	slotUninit slotState = iota
	slotReserved
	slotAllocated
)

func (s slotState) String() string {
	switch s {
	case slotReserved:
		return "reserved"
	case slotAllocated:
		return "allocated"
	default:
		return "uninit"
	}
}

// blockSnapshot is a point-in-time, non-atomic view of a block's cursor
// state, for tests only. It takes no locks and offers no consistency
// guarantee across concurrent writers; callers must not use it to drive
// production logic.
type blockSnapshot struct {
	takes, gives []int
	states       []slotState
}

// snapshot renders the current state of every slot this block owns, deriving
// each slot's classification from the same take/give ranges drop.go uses to
// reconstruct ownership, rather than from any stored tag.
func (b *block) snapshot(numStages int) blockSnapshot {
	s := blockSnapshot{
		takes:  make([]int, numStages),
		gives:  make([]int, numStages),
		states: make([]slotState, b.blockSize),
	}
	for i := range b.pairs {
		s.takes[i] = b.pairs[i].loadTake().index(b.shift)
		s.gives[i] = b.pairs[i].loadGive().index(b.shift)
	}
	for i := 0; i < numStages; i++ {
		j := chases(i, numStages)
		for k := s.gives[i]; k < s.gives[j]; k++ {
			if k >= 0 && k < b.blockSize {
				s.states[k] = slotAllocated
			}
		}
		for k := s.gives[i]; k < s.takes[i]; k++ {
			if k >= 0 && k < b.blockSize {
				s.states[k] = slotReserved
			}
		}
	}
	return s
}
