// Copyright (c) 2026 The fastfifo Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package fastfifo

// RaceEnabled is true when the race detector is active.
const RaceEnabled = true
