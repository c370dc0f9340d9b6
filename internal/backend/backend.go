// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package backend is the one seam where a Strategy Implementation decides
// between the real Native Linker and the pure-Go reference core. A caller
// passes Call the symbol it would resolve from a bound native library;
// when no library is bound (the common case without NATIVE_BIN_DIR and
// CGO_ENABLED=1), ok is false and the caller falls back to its pure-Go
// path. The callers are refcore.Wipe (vault_wipe) and
// refcore.X25519SharedSecret (vault_x25519_dh); the other refcore entry
// points run their pure-Go path directly without consulting Call.
package backend

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	vaulterrors "github.com/qvault/crypto/errors"
	"github.com/qvault/crypto/native"
)

var (
	bindOnce sync.Once
	isBound  bool
	resolved sync.Map // symbol (string) -> *native.Handle
)

func ensureBound() bool {
	bindOnce.Do(func() {
		dir := os.Getenv("NATIVE_BIN_DIR")
		if dir == "" {
			return
		}
		isBound = native.Shared().Bind(filepath.Join(dir, libraryFileName())) == nil
	})
	return isBound
}

// libraryFileName resolves NATIVE_BIN_DIR's expected shared-library file
// name for the current platform.
func libraryFileName() string {
	switch runtime.GOOS {
	case "darwin":
		return "libqvcore.dylib"
	case "windows":
		return "qvcore.dll"
	default:
		return "libqvcore.so"
	}
}

// Call resolves symbol (once) with the given handle shape and invokes it.
// ok is false and err is nil when the native core is unavailable or the
// symbol does not resolve, signaling the caller to fall back to its
// reference-core path. A non-nil err is a native panic recovered by
// native.Linker.Invoke (vaulterrors.ErrNativePanic): that call is fatal,
// not a cue to silently fall back, so callers must check err before
// treating a false ok as "use the reference core instead."
func Call(symbol string, ret native.Layout, params []native.Layout, args ...native.Arg) (status int32, ok bool, err error) {
	if !ensureBound() {
		return 0, false, nil
	}
	h, regErr := getOrRegister(symbol, ret, params)
	if regErr != nil {
		return 0, false, nil
	}
	rc, invErr := native.Shared().Invoke(h, args...)
	if invErr != nil {
		if errors.Is(invErr, vaulterrors.ErrNativePanic) {
			return 0, false, invErr
		}
		return 0, false, nil
	}
	return rc, true, nil
}

func getOrRegister(symbol string, ret native.Layout, params []native.Layout) (*native.Handle, error) {
	if v, ok := resolved.Load(symbol); ok {
		return v.(*native.Handle), nil
	}
	if err := native.Shared().AddReturnableHandle(symbol, ret, params...); err != nil {
		return nil, err
	}
	h, err := native.Shared().Get(symbol)
	if err != nil {
		return nil, err
	}
	resolved.Store(symbol, h)
	return h, nil
}
