//go:build !cgo

// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package native

import vaulterrors "github.com/qvault/crypto/errors"

// stubBackend always reports LibraryNotFound: every strategy falls back
// to internal/refcore on a build with cgo disabled, matching the bundle
// repo's own !gpu stub pattern.
type stubBackend struct{}

func newBackend() backend { return &stubBackend{} }

func (b *stubBackend) open(libraryName string) error {
	return vaulterrors.ErrLibraryNotFound
}

func (b *stubBackend) resolve(symbol string) error {
	return vaulterrors.ErrLibraryNotFound
}

func (b *stubBackend) invoke(symbol string, h *Handle, args []Arg) (int32, error) {
	return 0, vaulterrors.ErrLibraryNotFound
}
