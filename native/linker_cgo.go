//go:build cgo

// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Native symbol resolution for builds with CGO_ENABLED=1 and a platform
// shared library present under NATIVE_BIN_DIR. The C-ABI grammar is a
// small closed set of call shapes (see spec §6 in design notes); each one
// gets a static C typedef and a thin call wrapper here, the same direct
// forward-declaration style used for a
// GPU backend rather than a generic libffi-style dispatcher.
package native

/*
#cgo LDFLAGS: -ldl
#include <dlfcn.h>
#include <stdint.h>
#include <stdlib.h>

typedef void    (*wipe_fn)(void*, int64_t);
typedef int32_t (*blockcipher_fn)(void*, void*, int64_t, void*, void*, int32_t);
typedef int32_t (*streamcipher_fn)(void*, void*, int64_t, void*, void*);
typedef int32_t (*aead_fn)(void*, void*, int64_t, void*, void*, void*, int64_t);
typedef int32_t (*pairgen_fn)(void*, void*);
typedef int32_t (*encap_fn)(void*, void*, void*);
typedef int32_t (*decap_fn)(void*, void*, void*);
typedef int32_t (*sign_fn)(void*, void*, int64_t, void*);
typedef int32_t (*verify_fn)(void*, int64_t, void*, void*);

static void call_wipe(void *fn, void *ptr, long long len) {
    ((wipe_fn)fn)(ptr, (int64_t)len);
}
static int32_t call_blockcipher(void *fn, void *out, void *in, long long in_len, void *key, void *iv, int32_t mode) {
    return ((blockcipher_fn)fn)(out, in, (int64_t)in_len, key, iv, mode);
}
static int32_t call_streamcipher(void *fn, void *out, void *in, long long in_len, void *key, void *nonce) {
    return ((streamcipher_fn)fn)(out, in, (int64_t)in_len, key, nonce);
}
static int32_t call_aead(void *fn, void *out, void *in, long long in_len, void *key, void *nonce, void *aad, long long aad_len) {
    return ((aead_fn)fn)(out, in, (int64_t)in_len, key, nonce, aad, (int64_t)aad_len);
}
static int32_t call_pairgen(void *fn, void *a, void *b) {
    return ((pairgen_fn)fn)(a, b);
}
static int32_t call_encap(void *fn, void *a, void *b, void *c) {
    return ((encap_fn)fn)(a, b, c);
}
static int32_t call_decap(void *fn, void *a, void *b, void *c) {
    return ((decap_fn)fn)(a, b, c);
}
static int32_t call_sign(void *fn, void *sig_out, void *msg, long long msg_len, void *sk) {
    return ((sign_fn)fn)(sig_out, msg, (int64_t)msg_len, sk);
}
static int32_t call_verify(void *fn, void *msg, long long msg_len, void *sig, void *pk) {
    return ((verify_fn)fn)(msg, (int64_t)msg_len, sig, pk);
}
*/
import "C"

import (
	"unsafe"

	vaulterrors "github.com/qvault/crypto/errors"
)

// cgoBackend wraps a dlopen handle plus a symbol-name -> function-pointer
// table. Invocation dispatches on the handle's registered parameter
// layout shape, since every symbol in the C-ABI grammar is one of a
// handful of fixed shapes.
type cgoBackend struct {
	lib     unsafe.Pointer
	symbols map[string]unsafe.Pointer
}

func newBackend() backend {
	return &cgoBackend{symbols: make(map[string]unsafe.Pointer)}
}

func (b *cgoBackend) open(libraryName string) error {
	cpath := C.CString(libraryName)
	defer C.free(unsafe.Pointer(cpath))
	h := C.dlopen(cpath, C.RTLD_NOW)
	if h == nil {
		return vaulterrors.ErrLibraryNotFound
	}
	b.lib = unsafe.Pointer(h)
	return nil
}

func (b *cgoBackend) resolve(symbol string) error {
	if b.lib == nil {
		return vaulterrors.ErrLibraryNotFound
	}
	csym := C.CString(symbol)
	defer C.free(unsafe.Pointer(csym))
	sym := C.dlsym(b.lib, csym)
	if sym == nil {
		return vaulterrors.ErrSymbolNotFound
	}
	b.symbols[symbol] = unsafe.Pointer(sym)
	return nil
}

func addrPtr(a Arg) unsafe.Pointer {
	if len(a.Addr) == 0 {
		return nil
	}
	return unsafe.Pointer(&a.Addr[0])
}

func (b *cgoBackend) invoke(symbol string, h *Handle, args []Arg) (int32, error) {
	fn, ok := b.symbols[symbol]
	if !ok {
		return 0, vaulterrors.ErrSymbolNotFound
	}

	switch h.shape() {
	case "address,i64": // wipe(ptr, len)
		C.call_wipe(fn, addrPtr(args[0]), C.longlong(args[1].Int))
		return 0, nil

	case "address,address,i64,address,address,i32": // block cipher
		rc := C.call_blockcipher(fn, addrPtr(args[0]), addrPtr(args[1]), C.longlong(args[2].Int), addrPtr(args[3]), addrPtr(args[4]), C.int32_t(args[5].Int))
		return int32(rc), nil

	case "address,address,i64,address,address": // stream cipher
		rc := C.call_streamcipher(fn, addrPtr(args[0]), addrPtr(args[1]), C.longlong(args[2].Int), addrPtr(args[3]), addrPtr(args[4]))
		return int32(rc), nil

	case "address,address,i64,address,address,address,i64": // AEAD
		rc := C.call_aead(fn, addrPtr(args[0]), addrPtr(args[1]), C.longlong(args[2].Int), addrPtr(args[3]), addrPtr(args[4]), addrPtr(args[5]), C.longlong(args[6].Int))
		return int32(rc), nil

	case "address,address": // keygen (KEM or X25519)
		rc := C.call_pairgen(fn, addrPtr(args[0]), addrPtr(args[1]))
		return int32(rc), nil

	case "address,address,address":
		// Shared shape for KEM encapsulate(ct,ss,pk), KEM
		// decapsulate(ss,ct,sk), and X25519 DH(ss,sk,pk); the bundle
		// registering the handle knows which semantic role each slot
		// plays, this layer only needs the arity.
		rc := C.call_encap(fn, addrPtr(args[0]), addrPtr(args[1]), addrPtr(args[2]))
		return int32(rc), nil

	case "address,address,i64,address": // signature sign
		rc := C.call_sign(fn, addrPtr(args[0]), addrPtr(args[1]), C.longlong(args[2].Int), addrPtr(args[3]))
		return int32(rc), nil

	case "address,i64,address,address": // signature verify
		rc := C.call_verify(fn, addrPtr(args[0]), C.longlong(args[1].Int), addrPtr(args[2]), addrPtr(args[3]))
		return int32(rc), nil

	default:
		return 0, vaulterrors.WithAlgorithm(vaulterrors.ErrSymbolNotFound, "", "native", nil)
	}
}
