// Copyright (c) 2026 The fastfifo Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastfifo

import "math/bits"

// field is a packed (version, index) pair over a single machine word.
//
// The low bits hold index in [0, capacity]; the remaining high bits hold
// version. capacity is carried alongside the packed word rather than as a
// compile-time constant (the pipeline's block count and block size are both
// runtime configuration), so the bit split is computed once per cursor site
// from capacity and reused for every pack/unpack of that site's fields.
//
// Comparing two fields as plain uint64s orders first by version then by
// index, which is exactly the total order fetchMax-style protocols need.
type field uint64

// fieldShift returns the number of low bits needed to represent index values
// in [0, capacity], i.e. ceil(log2(capacity+1)).
func fieldShift(capacity int) uint {
	if capacity < 1 {
		panic("fastfifo: capacity must be >= 1")
	}
	return uint(bits.Len(uint(capacity)))
}

func fieldMask(shift uint) uint64 {
	return (uint64(1) << shift) - 1
}

func newField(version, index int, shift uint) field {
	return field(uint64(version)<<shift | (uint64(index) & fieldMask(shift)))
}

func (f field) index(shift uint) int {
	return int(uint64(f) & fieldMask(shift))
}

func (f field) version(shift uint) int {
	return int(uint64(f) >> shift)
}

// overflowingAdd adds k to the packed word directly. Callers use this only
// once they have already checked index+k <= capacity, so the add can never
// carry into the version bits from a legal index value.
func (f field) overflowingAdd(k int) field {
	return f + field(k)
}

// versionIncAdd computes (version + (index+k)/capacity, (index+k)%capacity).
func (f field) versionIncAdd(k int, capacity int, shift uint) field {
	idx := f.index(shift) + k
	return newField(f.version(shift)+idx/capacity, idx%capacity, shift)
}
