// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package common

import (
	"crypto/rand"

	vaulterrors "github.com/qvault/crypto/errors"
	"github.com/qvault/crypto/sdc"
)

// SymmetricKeyGenerator implements strategy.KeyGenerator for any
// fixed-length symmetric key (block or stream cipher): it draws
// KeySize random bytes from the native CSPRNG and returns them as the
// private half, with no public half.
type SymmetricKeyGenerator struct {
	AlgorithmID string
	KeySize     int
}

func (g SymmetricKeyGenerator) GenerateKeyPair() (public, private *sdc.Container, err error) {
	key := make([]byte, g.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, nil, vaulterrors.WithAlgorithm(vaulterrors.ErrAllocationFailed, g.AlgorithmID, "keygen", err)
	}
	priv, err := sdc.NewFrom(key, true, ArenaAuto())
	if err != nil {
		return nil, nil, err
	}
	return nil, priv, nil
}
