// Copyright (c) 2026 The fastfifo Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastfifo

import (
	"errors"

	"code.hybscloud.com/iox"
)

// blockErr is a control-flow signal returned by Reserve: the caller made no
// progress and should retry, typically after a backoff. Every variant wraps
// iox.ErrWouldBlock so callers that only care whether an operation would
// block can keep using iox.IsWouldBlock / errors.Is(err, iox.ErrWouldBlock)
// without caring which specific reason fired.
type blockErr struct {
	msg    string
	parent error
}

func (e *blockErr) Error() string { return e.msg }

func (e *blockErr) Unwrap() error {
	if e.parent != nil {
		return e.parent
	}
	return iox.ErrWouldBlock
}

// ErrBusy indicates a neighbouring stage holds an in-flight slot whose
// completion is required before this stage can judge availability. Spin and
// retry; the neighbour is expected to release shortly.
var ErrBusy error = &blockErr{msg: "fastfifo: busy: neighbouring stage mid-write"}

// ErrNotAvailable indicates this stage is caught up to its predecessor at
// the current block: no entry is pending. Spin and retry, or back off.
var ErrNotAvailable error = &blockErr{msg: "fastfifo: not available: no entry pending"}

// ErrEmpty is ErrNotAvailable under the name a plain consumer expects.
var ErrEmpty error = &blockErr{msg: "fastfifo: empty: no entry pending", parent: ErrNotAvailable}

// ErrFull is ErrNotAvailable under the name a plain producer expects.
var ErrFull error = &blockErr{msg: "fastfifo: full: pipeline cannot accept more", parent: ErrNotAvailable}

// IsWouldBlock reports whether err is one of the pipeline's control-flow
// signals (Busy, NotAvailable, Empty, Full). Delegates to iox for ecosystem
// consistency with the rest of the retry-loop vocabulary.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// ErrMisuse marks API contract violations. New (fewer than two blocks, a
// zero block size, or fewer than two stages) and Stage.Clone (a non-atomic
// stage's façade) return an error wrapping it; closing a pipeline with an
// outstanding reservation panics with a message that includes it.
var ErrMisuse = errors.New("fastfifo: misuse")
