// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package refcore

import (
	"github.com/cloudflare/circl/sign"
	"github.com/cloudflare/circl/sign/schemes"
)

// mldsaScheme resolves a sign.Scheme by its standard name ("ML-DSA-44",
// "ML-DSA-65", "ML-DSA-87"), following the same name-indexed lookup the
// mlkem wrapper uses.
func mldsaScheme(name string) (sign.Scheme, error) {
	sch := schemes.ByName(name)
	if sch == nil {
		return nil, errUnknownScheme(name)
	}
	return sch, nil
}

// MLDSAGenerateKeyPair returns (public, private) key bytes for a named
// ML-DSA parameter set.
func MLDSAGenerateKeyPair(name string) (pub, priv []byte, err error) {
	sch, err := mldsaScheme(name)
	if err != nil {
		return nil, nil, err
	}
	pk, sk, err := sch.GenerateKey()
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

// MLDSASign produces a detached signature over msg using priv.
func MLDSASign(name string, priv, msg []byte) ([]byte, error) {
	sch, err := mldsaScheme(name)
	if err != nil {
		return nil, err
	}
	sk, err := sch.UnmarshalBinaryPrivateKey(priv)
	if err != nil {
		return nil, err
	}
	return sch.Sign(sk, msg, nil), nil
}

// MLDSAVerify reports whether sig is a valid signature over msg under pub.
func MLDSAVerify(name string, pub, msg, sig []byte) (bool, error) {
	sch, err := mldsaScheme(name)
	if err != nil {
		return false, err
	}
	pk, err := sch.UnmarshalBinaryPublicKey(pub)
	if err != nil {
		return false, err
	}
	return sch.Verify(pk, msg, sig, nil), nil
}
