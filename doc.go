// Copyright (c) 2026 The fastfifo Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fastfifo provides a lock-free, multi-stage FIFO pipeline with
// in-place per-stage transformations.
//
// Payloads are never copied between stages. A fixed ring of blocks holds
// one slot array each; every stage keeps its own cursor pair per block and
// writes its output directly over the previous stage's input in that same
// slot. The pipeline has a producer stage, a terminal consumer stage, and
// any number of transformer stages between them.
//
// # Quick Start
//
//	p, err := fastfifo.New(4, 256, []fastfifo.StageSpec{
//	    {},                 // stage 0: producer
//	    {Atomic: true},     // stage 1: transformer, multiple workers
//	    {},                 // stage 2: terminal consumer
//	})
//	if err != nil {
//	    return err
//	}
//	stages := p.Split()
//
// # Basic Usage
//
// Every stage drives its own façade with Reserve/Transform. Reserve never
// blocks: it returns a live Entry or one of the sentinel errors below that
// the caller treats as a retry decision.
//
//	producer, transformer, consumer := stages[0], stages[1], stages[2]
//
//	go func() {
//	    sw := spin.Wait{}
//	    for {
//	        err := producer.Produce(func() any { return nextItem() })
//	        if err == nil {
//	            continue
//	        }
//	        if !fastfifo.IsWouldBlock(err) {
//	            panic(err)
//	        }
//	        sw.Once()
//	    }
//	}()
//
//	go func() {
//	    sw := spin.Wait{}
//	    for {
//	        err := transformer.Transform(func(in any) any { return enrich(in) })
//	        if err == nil {
//	            continue
//	        }
//	        if !fastfifo.IsWouldBlock(err) {
//	            panic(err)
//	        }
//	        sw.Once()
//	    }
//	}()
//
//	go func() {
//	    sw := spin.Wait{}
//	    for {
//	        err := consumer.Consume(func(in any) { publish(in) })
//	        if err == nil {
//	            continue
//	        }
//	        if !fastfifo.IsWouldBlock(err) {
//	            panic(err)
//	        }
//	        sw.Once()
//	    }
//	}()
//
// # Worker Fan-out
//
// A stage declared StageSpec.Atomic may hand out additional façades via
// Clone, one per worker goroutine. Non-atomic stages reject Clone: only
// one goroutine may drive them, since their head is updated without a
// compare-and-swap.
//
//	for range numWorkers - 1 {
//	    w, err := transformer.Clone()
//	    if err != nil {
//	        return err
//	    }
//	    go runWorker(w)
//	}
//
// # Heterogeneous Payloads
//
// Each stage's output can be a different Go type from its input — the
// slot holds an any, and the pipeline itself never inspects it. A
// producer writing *Request can hand off to a transformer that replaces
// it with *Response in the same slot, with no allocation beyond what the
// transform itself performs.
//
// # Graceful Shutdown
//
// Close every façade, including every clone, exactly once. The pipeline
// is reference counted; the last Close reclaims any payload still sitting
// in a slot, calling the owning stage's StageSpec.Drop if one was
// supplied. The last Close panics if any Entry is still outstanding — that
// is a caller bug, not a runtime condition to recover from.
//
// # Error Handling
//
// Reserve/Transform/Produce/Consume return a sentinel wrapping
// [code.hybscloud.com/iox]'s ErrWouldBlock for ecosystem-consistent
// classification:
//
//	fastfifo.ErrFull        // producer stage, ring has no free slot
//	fastfifo.ErrEmpty       // terminal consumer, nothing produced yet
//	fastfifo.ErrNotAvailable // any other stage, predecessor hasn't caught up
//	fastfifo.ErrBusy        // another worker is mid-reservation; retry
//
// Use [IsWouldBlock] or errors.Is against the specific sentinel to decide
// whether to back off and retry.
//
// # What This Is Not
//
// This is not a general-purpose work queue: there is no dynamic stage
// insertion, no priority, and no blocking API. Ordering is FIFO within a
// block and across blocks in ring order; there is no cross-stage
// reordering. See SPEC_FULL.md in this module's source tree for the full
// set of invariants and non-goals.
package fastfifo
