// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package errors defines the typed error kinds raised across the vault:
// the sensitive-data container, the native linker, the strategy registry,
// and the per-algorithm strategies all fail through this vocabulary so
// callers can branch on errors.Is against a small, closed set of sentinels
// instead of parsing messages.
package errors

import (
	"fmt"

	cockroachdb "github.com/cockroachdb/errors"
)

// Kind is a closed tag identifying why an operation failed. It never
// carries secret material; only algorithm-id, category, and the kind
// itself are safe to log.
type Kind string

const (
	KindLibraryNotFound        Kind = "library_not_found"
	KindSymbolNotFound         Kind = "symbol_not_found"
	KindUnknownSymbol          Kind = "unknown_symbol"
	KindAlreadyClosed          Kind = "already_closed"
	KindSizeMismatch           Kind = "size_mismatch"
	KindInvalidIV              Kind = "invalid_iv"
	KindAllocationFailed       Kind = "allocation_failed"
	KindCryptoOperationFailed  Kind = "crypto_operation_failed"
	KindAuthenticationFailed   Kind = "authentication_failed"
	KindUnsupportedCapability  Kind = "unsupported_capability"
	KindNativePanic            Kind = "native_panic"
)

// Sentinels usable with errors.Is. Each wraps to a Kind via Is below.
var (
	ErrLibraryNotFound       = &VaultError{Kind: KindLibraryNotFound, Msg: "native library not found"}
	ErrSymbolNotFound        = &VaultError{Kind: KindSymbolNotFound, Msg: "native symbol not found"}
	ErrUnknownSymbol         = &VaultError{Kind: KindUnknownSymbol, Msg: "unregistered symbol handle"}
	ErrAlreadyClosed         = &VaultError{Kind: KindAlreadyClosed, Msg: "container already closed"}
	ErrSizeMismatch          = &VaultError{Kind: KindSizeMismatch, Msg: "size mismatch"}
	ErrInvalidIV             = &VaultError{Kind: KindInvalidIV, Msg: "invalid IV"}
	ErrAllocationFailed      = &VaultError{Kind: KindAllocationFailed, Msg: "allocation failed"}
	ErrCryptoOperationFailed = &VaultError{Kind: KindCryptoOperationFailed, Msg: "crypto operation failed"}
	ErrAuthenticationFailed  = &VaultError{Kind: KindAuthenticationFailed, Msg: "authentication failed"}
	ErrUnsupportedCapability = &VaultError{Kind: KindUnsupportedCapability, Msg: "unsupported capability"}
	ErrNativePanic           = &VaultError{Kind: KindNativePanic, Msg: "native call panicked"}
)

// VaultError carries a Kind plus diagnostic context that is always safe
// to log: the algorithm-id and category involved, never secret bytes.
type VaultError struct {
	Kind      Kind
	Msg       string
	Algorithm string
	Category  string
	cause     error
}

func (e *VaultError) Error() string {
	if e.Algorithm == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s (algorithm=%s category=%s)", e.Msg, e.Algorithm, e.Category)
}

func (e *VaultError) Unwrap() error { return e.cause }

// Is allows errors.Is(err, errors.ErrSizeMismatch) to match any VaultError
// of the same Kind, regardless of algorithm/category annotation.
func (e *VaultError) Is(target error) bool {
	t, ok := target.(*VaultError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// WithAlgorithm returns a copy of a sentinel annotated with diagnostic
// context, wrapped with a stack trace via cockroachdb/errors so deep
// strategy-layer failures are debuggable without ever touching secret
// bytes.
func WithAlgorithm(sentinel *VaultError, algorithm, category string, cause error) *VaultError {
	annotated := &VaultError{
		Kind:      sentinel.Kind,
		Msg:       sentinel.Msg,
		Algorithm: algorithm,
		Category:  category,
	}
	if cause != nil {
		annotated.cause = cockroachdb.Wrapf(cause, "%s: %s/%s", sentinel.Msg, algorithm, category)
	}
	return annotated
}
