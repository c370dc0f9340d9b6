// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package refcore is the pure-Go reference implementation of the native
// C-ABI core described by the vault's specification (§6): wipe, block
// cipher, stream cipher, AEAD, KEM, signature, and X25519 entry points.
// It backs every Strategy Implementation when the real Native Linker
// (package native) reports no bound library — which is the common case
// on a test host with no platform .so installed — so the container,
// registry, and strategy layers are fully exercised without one.
package refcore

import (
	"runtime"

	"github.com/qvault/crypto/internal/backend"
	"github.com/qvault/crypto/native"
)

// Wipe overwrites every byte of b with zero. It first offers the work to
// a bound native core via the vault_wipe symbol through the backend seam
// (which X25519SharedSecret also uses); when no native core is bound, it
// falls back to a store
// sequence the compiler cannot prove dead and therefore cannot elide,
// even though b is about to go out of scope.
func Wipe(b []byte) {
	if len(b) == 0 {
		return
	}
	// Wipe has no failure mode to report to its own callers (close never
	// fails), so even a recovered native panic (err != nil) falls through
	// to the manual overwrite below rather than propagating: the pure-Go
	// path still guarantees the zeroing this function promises.
	if _, ok, err := backend.Call("vault_wipe", native.I32, []native.Layout{native.Address, native.I64},
		native.AddrArg(b), native.I64Arg(int64(len(b)))); ok && err == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}
