// Copyright (c) 2026 The fastfifo Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastfifo

import "fmt"

// Stage is a per-stage façade over a Pipeline's shared core, handed out by
// Pipeline.Split (one per stage) and by Stage.Clone (additional workers for
// an atomic stage). Workers call Reserve (or the Transform convenience) on
// their own Stage; they must not share one Stage across goroutines without
// first Cloning it.
type Stage struct {
	c     *core
	stage int
}

// Clone hands out another façade for this stage's additional workers. It
// succeeds only if the stage was declared StageSpec.Atomic: cloning a
// single-worker stage's façade is rejected at the API boundary, since it
// would let two goroutines drive a head that only tolerates one.
func (s *Stage) Clone() (*Stage, error) {
	if !s.c.stages[s.stage].Atomic {
		return nil, fmt.Errorf("fastfifo: stage %d is not atomic, cannot clone its façade: %w", s.stage, ErrMisuse)
	}
	s.c.refs.Add(1)
	return &Stage{c: s.c, stage: s.stage}, nil
}

// Index returns this façade's stage index.
func (s *Stage) Index() int { return s.stage }

// Atomic reports whether this stage was declared multi-worker.
func (s *Stage) Atomic() bool { return s.c.stages[s.stage].Atomic }

// Reserve attempts to reserve the next slot for this stage. It never
// blocks: it returns a live Entry, or one of ErrBusy / ErrNotAvailable /
// ErrEmpty / ErrFull that the caller must treat as a retry decision.
func (s *Stage) Reserve() (*Entry, error) {
	return s.c.reserve(s.stage)
}

// Transform is sugar for Reserve().Transform(f): reserve a slot and run the
// in-place transformation in one call.
func (s *Stage) Transform(f func(in any) any) error {
	e, err := s.Reserve()
	if err != nil {
		return err
	}
	e.Transform(f)
	return nil
}

// Produce is Transform for the producer stage: f takes no input (stage 0
// has no predecessor payload) and returns the value written to the slot.
func (s *Stage) Produce(f func() any) error {
	return s.Transform(func(any) any { return f() })
}

// Consume is Transform for the terminal consumer stage: f takes the final
// payload and returns nothing meaningful (its return value is discarded,
// and the slot is left empty for the next lap).
func (s *Stage) Consume(f func(in any)) error {
	return s.Transform(func(in any) any {
		f(in)
		return nil
	})
}

// Close releases this façade. When the last façade across every stage (and
// every clone) has been closed, the pipeline reclaims any slots still
// holding a payload, panicking if a worker still holds a live Entry.
func (s *Stage) Close() {
	s.c.close()
}
