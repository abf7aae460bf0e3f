// Copyright (c) 2026 The fastfifo Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastfifo

import (
	"errors"
	"sync"
	"testing"

	"code.hybscloud.com/spin"
)

func TestNewRejectsInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name      string
		numBlocks int
		blockSize int
		stages    []StageSpec
	}{
		{"tooFewBlocks", 1, 4, []StageSpec{{}, {}}},
		{"zeroBlockSize", 2, 0, []StageSpec{{}, {}}},
		{"tooFewStages", 2, 4, []StageSpec{{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.numBlocks, tt.blockSize, tt.stages)
			if !errors.Is(err, ErrMisuse) {
				t.Fatalf("New(%d,%d,%d stages): err = %v, want ErrMisuse", tt.numBlocks, tt.blockSize, len(tt.stages), err)
			}
		})
	}
}

// TestTwoStageSequentialFIFO drives a producer/consumer pair one item at a
// time, crossing several block boundaries, and checks strict FIFO order.
func TestTwoStageSequentialFIFO(t *testing.T) {
	p, err := New(3, 4, []StageSpec{{}, {}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	stages := p.Split()
	producer, consumer := stages[0], stages[1]
	defer producer.Close()
	defer consumer.Close()

	for i := range 50 {
		if err := producer.Produce(func() any { return i }); err != nil {
			t.Fatalf("Produce(%d): %v", i, err)
		}
		var got any
		if err := consumer.Consume(func(in any) { got = in }); err != nil {
			t.Fatalf("Consume(%d): %v", i, err)
		}
		if got != i {
			t.Fatalf("Consume(%d): got %v, want %d", i, got, i)
		}
	}
}

// TestThreeStageDoublingPipeline runs values through a producer, a
// transformer that doubles them, and a terminal consumer that collects the
// results, checking both the transform and the FIFO order across stages.
func TestThreeStageDoublingPipeline(t *testing.T) {
	p, err := New(2, 4, []StageSpec{{}, {}, {}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	stages := p.Split()
	producer, transformer, consumer := stages[0], stages[1], stages[2]
	defer producer.Close()
	defer transformer.Close()
	defer consumer.Close()

	var results []int
	for i := range 20 {
		if err := producer.Produce(func() any { return i }); err != nil {
			t.Fatalf("Produce(%d): %v", i, err)
		}
		if err := transformer.Transform(func(in any) any { return in.(int) * 2 }); err != nil {
			t.Fatalf("Transform(%d): %v", i, err)
		}
		if err := consumer.Consume(func(in any) { results = append(results, in.(int)) }); err != nil {
			t.Fatalf("Consume(%d): %v", i, err)
		}
	}
	for i, v := range results {
		if v != i*2 {
			t.Fatalf("results[%d] = %d, want %d", i, v, i*2)
		}
	}
}

// TestAtomicStageCloneFanIn has several producer workers sharing the
// producer stage's cloned façade and a single consumer drains every value.
func TestAtomicStageCloneFanIn(t *testing.T) {
	const workers = 4
	const perWorker = 200

	p, err := New(4, 16, []StageSpec{{Atomic: true}, {}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	stages := p.Split()
	producer, consumer := stages[0], stages[1]
	defer consumer.Close()

	var wg sync.WaitGroup
	for w := range workers {
		facade := producer
		if w > 0 {
			facade, err = producer.Clone()
			if err != nil {
				t.Fatalf("Clone: %v", err)
			}
		}
		wg.Add(1)
		go func(f *Stage, id int) {
			defer wg.Done()
			defer f.Close()
			sw := spin.Wait{}
			for i := range perWorker {
				for f.Produce(func() any { return id*perWorker + i }) != nil {
					sw.Once()
				}
			}
		}(facade, w)
	}

	seen := make(map[int]bool)
	sw := spin.Wait{}
	for len(seen) < workers*perWorker {
		err := consumer.Consume(func(in any) { seen[in.(int)] = true })
		if err != nil {
			if !IsWouldBlock(err) {
				t.Fatalf("Consume: %v", err)
			}
			sw.Once()
			continue
		}
	}
	wg.Wait()

	if len(seen) != workers*perWorker {
		t.Fatalf("saw %d distinct values, want %d", len(seen), workers*perWorker)
	}
}

func TestCloneRejectedForNonAtomicStage(t *testing.T) {
	p, err := New(2, 4, []StageSpec{{}, {}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	stages := p.Split()
	defer stages[0].Close()
	defer stages[1].Close()

	if _, err := stages[0].Clone(); !errors.Is(err, ErrMisuse) {
		t.Fatalf("Clone on non-atomic stage: err = %v, want ErrMisuse", err)
	}
}

func TestCloseDropsLeftoverPayloads(t *testing.T) {
	var dropped []any
	p, err := New(2, 4, []StageSpec{
		{},
		{Drop: func(v any) { dropped = append(dropped, v) }},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	stages := p.Split()

	if err := stages[0].Produce(func() any { return "a" }); err != nil {
		t.Fatalf("Produce a: %v", err)
	}
	if err := stages[0].Produce(func() any { return "b" }); err != nil {
		t.Fatalf("Produce b: %v", err)
	}

	stages[0].Close()
	stages[1].Close()

	if len(dropped) != 2 || dropped[0] != "a" || dropped[1] != "b" {
		t.Fatalf("dropped = %v, want [a b]", dropped)
	}
}

func TestCloseWithOutstandingReservationPanics(t *testing.T) {
	p, err := New(2, 4, []StageSpec{{}, {}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	stages := p.Split()

	if _, err := stages[0].Reserve(); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	stages[1].Close()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic closing a pipeline with an outstanding reservation")
		}
	}()
	stages[0].Close()
}
