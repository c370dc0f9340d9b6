// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package refcore

// Status mirrors the native C-ABI status codes from spec §6 so that every
// refcore entry point and every cgo-backed native.Linker call return the
// same vocabulary, letting the strategy layer translate either one with a
// single switch.
type Status int32

const (
	StatusSuccess            Status = 0
	StatusGenericFailure     Status = -1
	StatusInvalidPointer     Status = -2
	StatusInvalidLength      Status = -3
	StatusCipherFailure      Status = -4
	StatusAuthenticationFail Status = -5
)
