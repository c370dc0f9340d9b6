// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package refcore

import (
	"github.com/cloudflare/circl/kem"
	"github.com/cloudflare/circl/kem/schemes"
)

// mlkemScheme resolves a kem.Scheme by its standard name, the same lookup
// style the mlkem contract in the block-cipher precompile corpus uses for
// its own algorithm table: one registry, indexed by name, rather than a
// hand-written switch per variant.
func mlkemScheme(name string) (kem.Scheme, error) {
	sch := schemes.ByName(name)
	if sch == nil {
		return nil, errUnknownScheme(name)
	}
	return sch, nil
}

// MLKEMGenerateKeyPair returns (public, private) key bytes for the named
// ML-KEM parameter set ("ML-KEM-512", "ML-KEM-768", "ML-KEM-1024").
func MLKEMGenerateKeyPair(name string) (pub, priv []byte, err error) {
	sch, err := mlkemScheme(name)
	if err != nil {
		return nil, nil, err
	}
	pk, sk, err := sch.GenerateKeyPair()
	if err != nil {
		return nil, nil, err
	}
	pub, err = pk.MarshalBinary()
	if err != nil {
		return nil, nil, err
	}
	priv, err = sk.MarshalBinary()
	if err != nil {
		return nil, nil, err
	}
	return pub, priv, nil
}

// MLKEMEncapsulate derives a shared secret and its ciphertext against pub.
func MLKEMEncapsulate(name string, pub []byte) (ciphertext, sharedSecret []byte, err error) {
	sch, err := mlkemScheme(name)
	if err != nil {
		return nil, nil, err
	}
	pk, err := sch.UnmarshalBinaryPublicKey(pub)
	if err != nil {
		return nil, nil, err
	}
	ct, ss, err := sch.Encapsulate(pk)
	if err != nil {
		return nil, nil, err
	}
	return ct, ss, nil
}

// MLKEMDecapsulate recovers the shared secret from ciphertext using priv.
func MLKEMDecapsulate(name string, priv, ciphertext []byte) (sharedSecret []byte, err error) {
	sch, err := mlkemScheme(name)
	if err != nil {
		return nil, err
	}
	sk, err := sch.UnmarshalBinaryPrivateKey(priv)
	if err != nil {
		return nil, err
	}
	return sch.Decapsulate(sk, ciphertext)
}
