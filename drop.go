// Copyright (c) 2026 The fastfifo Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastfifo

import "fmt"

// close decrements the pipeline's façade refcount and, on the last release,
// reclaims every in-flight heterogeneous slot across the block ring. It
// panics if any pair's give still lags its take — a worker still holds an
// Entry, which is the misuse spec.md §4.6 calls out explicitly.
func (c *core) close() {
	if c.refs.Add(-1) > 0 {
		return
	}
	numStages := len(c.stages)
	for _, blk := range c.blocks {
		blk.drop(c.stages, numStages)
	}
}

// drop reclaims the slots of one block, dropping each at the stage type
// that actually owns it. The owning stage for slot k is reconstructed from
// the S per-stage give cursors, not stored anywhere: for each stage i with
// j = chases(i), the range [give[i], give[j]) holds values of stage i's
// input type (the type produced by stage j). The two residual half-ranges
// — already fully drained, or never produced this lap — fall out of every
// "between" range by construction and are left untouched.
func (b *block) drop(stages []StageSpec, numStages int) {
	give := make([]int, numStages)
	for i := range give {
		pair := &b.pairs[i]
		g := pair.loadGive().index(b.shift)
		t := pair.loadTake().index(b.shift)
		if g < t {
			panic(fmt.Sprintf("fastfifo: pipeline closed with an outstanding reservation at stage %d (give=%d take=%d): %v", i, g, t, ErrMisuse))
		}
		give[i] = g
	}

	for i := 0; i < numStages; i++ {
		j := chases(i, numStages)
		if give[i] >= give[j] {
			continue
		}
		drop := stages[i].Drop
		for k := give[i]; k < give[j]; k++ {
			if drop != nil {
				drop(b.slots[k])
			}
			b.slots[k] = nil
		}
	}
}
