// Copyright (c) 2026 The fastfifo Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastfifo

import "golang.org/x/sys/cpu"

// pad separates hot atomic fields onto distinct cache lines to prevent false
// sharing, the same convention the teacher ecosystem uses around its
// tail/head/threshold fields (see options.go's pad/padShort in the teacher).
// golang.org/x/sys/cpu.CacheLinePad already sizes itself per architecture
// (64 bytes on most, 128 on a few), so it is reused directly rather than
// re-guessing the constant.
type pad = cpu.CacheLinePad
