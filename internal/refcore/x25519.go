// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package refcore

import (
	"crypto/ecdh"

	"github.com/qvault/crypto/internal/backend"
	"github.com/qvault/crypto/native"
)

// X25519GenerateKeyPair returns (public, private) key bytes using the
// standard library's curve implementation, the modern canonical Go API
// for this curve and the same one the hybrid combiner's age-style
// counterpart builds on.
func X25519GenerateKeyPair() (pub, priv []byte, err error) {
	key, err := ecdh.X25519().GenerateKey(rngReader)
	if err != nil {
		return nil, nil, err
	}
	return key.PublicKey().Bytes(), key.Bytes(), nil
}

// X25519SharedSecret computes the ECDH shared secret between a local
// private key and a peer's public key. It tries the native core's
// vault_x25519_dh symbol first, writing the 32-byte result into out, and
// falls back to crypto/ecdh when no native core is bound or the symbol
// is unresolved. A recovered native panic is fatal for this call and is
// returned as-is rather than masked by a silent fallback.
func X25519SharedSecret(priv, peerPub []byte) ([]byte, error) {
	out := make([]byte, 32)
	status, ok, callErr := backend.Call("vault_x25519_dh", native.I32,
		[]native.Layout{native.Address, native.Address, native.Address},
		native.AddrArg(out), native.AddrArg(priv), native.AddrArg(peerPub))
	if callErr != nil {
		return nil, callErr
	}
	if ok && status == int32(StatusSuccess) {
		return out, nil
	}

	sk, err := ecdh.X25519().NewPrivateKey(priv)
	if err != nil {
		return nil, err
	}
	pk, err := ecdh.X25519().NewPublicKey(peerPub)
	if err != nil {
		return nil, err
	}
	return sk.ECDH(pk)
}

// X25519PublicFromPrivate recomputes the public key bytes for priv.
func X25519PublicFromPrivate(priv []byte) ([]byte, error) {
	sk, err := ecdh.X25519().NewPrivateKey(priv)
	if err != nil {
		return nil, err
	}
	return sk.PublicKey().Bytes(), nil
}
