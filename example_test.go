// Copyright (c) 2026 The fastfifo Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastfifo_test

import (
	"fmt"

	"go.fastfifo.dev/fastfifo"
)

// ExampleNew demonstrates a basic two-stage producer/consumer pipeline.
func ExampleNew() {
	p, err := fastfifo.New(2, 4, []fastfifo.StageSpec{
		{}, // stage 0: producer
		{}, // stage 1: terminal consumer
	})
	if err != nil {
		panic(err)
	}
	stages := p.Split()
	producer, consumer := stages[0], stages[1]
	defer producer.Close()
	defer consumer.Close()

	for i := 1; i <= 5; i++ {
		v := i * 10
		if err := producer.Produce(func() any { return v }); err != nil {
			panic(err)
		}
	}

	for range 5 {
		if err := consumer.Consume(func(in any) { fmt.Println(in) }); err != nil {
			panic(err)
		}
	}

	// Output:
	// 10
	// 20
	// 30
	// 40
	// 50
}

// ExampleStage_Transform demonstrates an in-place transformer stage that
// replaces each payload with a different type in the same slot.
func ExampleStage_Transform() {
	p, err := fastfifo.New(2, 4, []fastfifo.StageSpec{
		{}, // stage 0: producer, emits int
		{}, // stage 1: transformer, replaces int with string
		{}, // stage 2: terminal consumer, prints string
	})
	if err != nil {
		panic(err)
	}
	stages := p.Split()
	producer, transformer, consumer := stages[0], stages[1], stages[2]
	defer producer.Close()
	defer transformer.Close()
	defer consumer.Close()

	for i := 1; i <= 3; i++ {
		n := i
		if err := producer.Produce(func() any { return n }); err != nil {
			panic(err)
		}
		if err := transformer.Transform(func(in any) any {
			return fmt.Sprintf("item-%d", in.(int))
		}); err != nil {
			panic(err)
		}
	}

	for range 3 {
		if err := consumer.Consume(func(in any) { fmt.Println(in) }); err != nil {
			panic(err)
		}
	}

	// Output:
	// item-1
	// item-2
	// item-3
}

// ExampleIsWouldBlock demonstrates the control-flow error vocabulary for a
// non-blocking Reserve.
func ExampleIsWouldBlock() {
	p, err := fastfifo.New(2, 1, []fastfifo.StageSpec{{}, {}})
	if err != nil {
		panic(err)
	}
	stages := p.Split()
	producer, consumer := stages[0], stages[1]
	defer producer.Close()
	defer consumer.Close()

	// Fill the entire ring (2 blocks * 1 slot = 2 slots).
	for i := range 2 {
		v := i
		if err := producer.Produce(func() any { return v }); err != nil {
			panic(err)
		}
	}

	err = producer.Produce(func() any { return 99 })
	if fastfifo.IsWouldBlock(err) {
		fmt.Println("pipeline full - applying backpressure")
	}

	// Drain everything.
	for range 2 {
		if err := consumer.Consume(func(any) {}); err != nil {
			panic(err)
		}
	}

	_, err = consumer.Reserve()
	if fastfifo.IsWouldBlock(err) {
		fmt.Println("pipeline empty - nothing to consume")
	}

	// Output:
	// pipeline full - applying backpressure
	// pipeline empty - nothing to consume
}
