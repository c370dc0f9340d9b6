// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package native resolves named symbols from a platform shared library
// (NATIVE_BIN_DIR) and exposes typed, thread-safe call handles over the
// small closed C-ABI grammar described by the vault's native core: wipe,
// block cipher, stream cipher, AEAD, KEM keygen/encapsulate/decapsulate,
// signature sign/verify, and X25519 keygen/DH.
//
// Handles are registered lazily: internal/backend registers a symbol on its
// first Call, which can happen on any goroutine, not at bundle
// initialization time. Handle invocation is free-threaded and backed by a
// concurrent map keyed by symbol name, the same pattern used by this
// address-indexed module registry.
package native

import (
	"fmt"
	"strings"
	"sync"

	vaulterrors "github.com/qvault/crypto/errors"
)

// Arg is one marshalled call argument: either an off-heap byte region
// (Address) or a width-preserving scalar (I32/I64/U8).
type Arg struct {
	Layout Layout
	Addr   []byte
	Int    int64
}

// AddrArg wraps a byte slice as an address-layout argument. The caller
// retains ownership; the Linker never frees or reslices it.
func AddrArg(b []byte) Arg { return Arg{Layout: Address, Addr: b} }

// I32Arg wraps a 32-bit scalar argument.
func I32Arg(v int32) Arg { return Arg{Layout: I32, Int: int64(v)} }

// I64Arg wraps a 64-bit scalar argument.
func I64Arg(v int64) Arg { return Arg{Layout: I64, Int: v} }

// Handle is a previously registered, typed call target.
type Handle struct {
	symbol     string
	returnable bool
	returnType Layout
	params     []Layout
}

func (h *Handle) shape() string {
	toks := make([]string, len(h.params))
	for i, p := range h.params {
		toks[i] = p.String()
	}
	return strings.Join(toks, ",")
}

// backend is implemented once per build mode: linker_cgo.go provides a
// real dlopen/dlsym-backed implementation, linker_nocgo.go a stub that
// always reports LibraryNotFound so callers fall back to the reference
// core.
type backend interface {
	open(libraryName string) error
	resolve(symbol string) error
	invoke(symbol string, h *Handle, args []Arg) (int32, error)
}

// Linker is the process-wide symbol table. Bind loads the backing library
// once; subsequent Bind calls with the same name are idempotent.
type Linker struct {
	mu      sync.Mutex
	bound   bool
	libName string
	handles sync.Map // symbol (string) -> *Handle
	backend backend
}

var (
	sharedOnce sync.Once
	sharedLink *Linker
)

// Shared returns the process-wide Linker, constructing it (and its
// platform backend) on first use.
func Shared() *Linker {
	sharedOnce.Do(func() {
		sharedLink = &Linker{backend: newBackend()}
	})
	return sharedLink
}

// Bind loads libraryName once per process. A library already bound under
// the same name returns nil without reloading.
func (l *Linker) Bind(libraryName string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.bound && l.libName == libraryName {
		return nil
	}
	if err := l.backend.open(libraryName); err != nil {
		return err
	}
	l.bound = true
	l.libName = libraryName
	return nil
}

// AddVoidHandle registers symbol as a function returning no result.
func (l *Linker) AddVoidHandle(symbol string, params ...Layout) error {
	return l.register(symbol, false, 0, params)
}

// AddReturnableHandle registers symbol as a function returning a scalar.
func (l *Linker) AddReturnableHandle(symbol string, ret Layout, params ...Layout) error {
	return l.register(symbol, true, ret, params)
}

func (l *Linker) register(symbol string, returnable bool, ret Layout, params []Layout) error {
	l.mu.Lock()
	bound := l.bound
	l.mu.Unlock()
	if !bound {
		return vaulterrors.ErrLibraryNotFound
	}
	if err := l.backend.resolve(symbol); err != nil {
		return err
	}
	l.handles.Store(symbol, &Handle{
		symbol:     symbol,
		returnable: returnable,
		returnType: ret,
		params:     append([]Layout(nil), params...),
	})
	return nil
}

// Get returns a previously registered handle, or ErrUnknownSymbol.
func (l *Linker) Get(symbol string) (*Handle, error) {
	v, ok := l.handles.Load(symbol)
	if !ok {
		return nil, vaulterrors.ErrUnknownSymbol
	}
	return v.(*Handle), nil
}

// Invoke calls a resolved handle with the given arguments, returning the
// native status code (0 = success, negative = failure per the status
// table) or a local marshalling error.
//
// A backend.invoke implementation that panics (e.g. a handle/argument
// shape mismatch indexing past the end of args) must never unwind into
// the caller's goroutine and crash the process; Invoke recovers any such
// panic at this single seam and reports it as ErrNativePanic instead, so
// every caller sees a typed, catchable failure for "fatal for that call"
// handling regardless of which backend is installed.
func (l *Linker) Invoke(h *Handle, args ...Arg) (status int32, err error) {
	defer func() {
		if r := recover(); r != nil {
			status = 0
			err = vaulterrors.WithAlgorithm(vaulterrors.ErrNativePanic, "", h.symbol, fmt.Errorf("%v", r))
		}
	}()
	return l.backend.invoke(h.symbol, h, args)
}
