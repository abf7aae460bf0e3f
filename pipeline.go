// Copyright (c) 2026 The fastfifo Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastfifo

import (
	"fmt"

	"code.hybscloud.com/atomix"
)

// advanceOutcome classifies the result of advanceHead.
type advanceOutcome int

const (
	advanceSuccess advanceOutcome = iota
	advanceBusy
)

// core is the pipeline's shared state: the block ring and the per-stage
// heads. It is reference counted across every Stage façade handed out by
// Split and every further Clone of an atomic stage's façade; the last
// Close runs the drop protocol.
type core struct {
	numBlocks      int
	blockSize      int
	blockShift     uint
	numBlocksShift uint
	stages         []StageSpec
	blocks         []*block
	heads          []stageHead
	refs           atomix.Int32
}

// Pipeline is a multi-stage lock-free transform pipeline: a ring of
// fixed-size blocks, each block holding blockSize slots and one cursor pair
// per stage. Stage 0 is the producer, the last stage is the terminal
// consumer, everything between is a transformer. Use New to construct one
// and Split to hand each stage its own façade.
type Pipeline struct {
	c *core
}

// New constructs a pipeline with numBlocks blocks of blockSize slots each,
// one stage per entry of stages. Requires numBlocks >= 2 (a single-block
// ring cannot make progress: the producer would immediately chase itself),
// blockSize >= 1, and len(stages) >= 2 (a pipeline needs at least a
// producer and a terminal consumer). Invalid configurations return an
// error wrapping ErrMisuse rather than panicking, since construction
// failure is an ordinary, recoverable outcome for a caller building a
// pipeline from user-supplied configuration.
func New(numBlocks, blockSize int, stages []StageSpec) (*Pipeline, error) {
	if numBlocks < 2 {
		return nil, fmt.Errorf("fastfifo: numBlocks must be >= 2, got %d: %w", numBlocks, ErrMisuse)
	}
	if blockSize < 1 {
		return nil, fmt.Errorf("fastfifo: blockSize must be >= 1, got %d: %w", blockSize, ErrMisuse)
	}
	if len(stages) < 2 {
		return nil, fmt.Errorf("fastfifo: need at least 2 stages, got %d: %w", len(stages), ErrMisuse)
	}

	blockShift := fieldShift(blockSize)
	numBlocksShift := fieldShift(numBlocks)

	c := &core{
		numBlocks:      numBlocks,
		blockSize:      blockSize,
		blockShift:     blockShift,
		numBlocksShift: numBlocksShift,
		stages:         append([]StageSpec(nil), stages...),
		blocks:         make([]*block, numBlocks),
		heads:          make([]stageHead, len(stages)),
	}
	for i := range c.blocks {
		c.blocks[i] = newBlock(len(stages), blockSize, blockShift, i != 0)
	}
	for s := range c.heads {
		c.heads[s].init(stages[s].Atomic, newField(0, 0, numBlocksShift))
	}
	return &Pipeline{c: c}, nil
}

// NumBlocks returns the ring's block count.
func (p *Pipeline) NumBlocks() int { return p.c.numBlocks }

// BlockSize returns the number of slots per block.
func (p *Pipeline) BlockSize() int { return p.c.blockSize }

// Capacity returns the pipeline's total slot count (NumBlocks * BlockSize),
// mirroring FastFifoInner::capacity in the original source.
func (p *Pipeline) Capacity() int { return p.c.numBlocks * p.c.blockSize }

// NumStages returns the number of stages the pipeline was constructed with.
func (p *Pipeline) NumStages() int { return len(p.c.stages) }

// Split hands each stage its own façade. Further cloning of a façade is
// permitted only for stages declared StageSpec.Atomic.
func (p *Pipeline) Split() []*Stage {
	stages := make([]*Stage, len(p.c.stages))
	for s := range stages {
		p.c.refs.Add(1)
		stages[s] = &Stage{c: p.c, stage: s}
	}
	return stages
}

// reserve is the public entry point for stage s: it either returns a live
// Entry, or a status the caller must treat as a retry/backoff decision. It
// never blocks internally beyond the bounded compare-and-set retries inside
// block.reserve and advanceHead.
func (c *core) reserve(s int) (*Entry, error) {
	chasesStage := chases(s, len(c.stages))
	offset := producerOffset(s)

	for {
		h := c.heads[s].load()
		blk := c.blocks[h.index(c.numBlocksShift)]

		index, outcome := blk.reserve(s, chasesStage, offset)
		switch outcome {
		case outcomeSuccess:
			return &Entry{blk: blk, pair: &blk.pairs[s], stage: s, index: index}, nil
		case outcomeNotAvailable:
			return nil, stageNotAvailableErr(s, len(c.stages))
		case outcomeBusy:
			return nil, ErrBusy
		case outcomeBlockDone:
			switch c.advanceHead(s, h) {
			case advanceBusy:
				return nil, ErrBusy
			case advanceSuccess:
				continue
			}
		}
	}
}

// stageNotAvailableErr names the NotAvailable condition the way the role
// of the stage would, so a producer sees ErrFull and a terminal consumer
// sees ErrEmpty, matching the simpler producer/consumer-only error names
// from spec.md §7 while every stage still returns the same underlying
// control-flow signal to generic callers (errors.Is(err, ErrNotAvailable)
// still matches, since ErrFull and ErrEmpty both wrap ErrNotAvailable).
func stageNotAvailableErr(stage, numStages int) error {
	switch stage {
	case 0:
		return ErrFull
	case numStages - 1:
		return ErrEmpty
	default:
		return ErrNotAvailable
	}
}

// advanceHead is invoked after a reserve returned BlockDone: it attempts to
// move stage s onto the next block in the ring, resetting that stage's
// cursor pair for the coming lap.
func (c *core) advanceHead(s int, h field) advanceOutcome {
	nextIndex := (h.index(c.numBlocksShift) + 1) % c.numBlocks
	next := c.blocks[nextIndex]
	chasesStage := chases(s, len(c.stages))
	nextChasing := &next.pairs[chasesStage]

	cg := nextChasing.loadGive()
	if cg.index(c.blockShift) != c.blockSize {
		ct := nextChasing.loadTake()
		if ct.index(c.blockShift) > cg.index(c.blockShift) {
			// The chasing stage is mid-operation on next: it has
			// reserved slots it has not yet published.
			return advanceBusy
		}
	}
	// Either the chasing stage has already exhausted next for this lap,
	// or it is caught up (take == give < blockSize): either way we may
	// advance onto it.

	nextCurrent := &next.pairs[s]
	prevGive := nextCurrent.loadGive()
	versionBump := 0
	if prevGive.index(c.blockShift) != 0 {
		versionBump = 1
	}
	nextCurrent.fetchMaxBoth(newField(h.version(c.numBlocksShift)+versionBump, 0, c.blockShift))

	c.heads[s].max(h.versionIncAdd(1, c.numBlocks, c.numBlocksShift))
	return advanceSuccess
}
