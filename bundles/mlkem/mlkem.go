// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package mlkem installs the ML-KEM-512/768/1024 key-encapsulation
// strategies into the Strategy Registry, delegating the lattice arithmetic
// to circl's KEM schemes via internal/refcore.
package mlkem

import (
	"sync"

	"github.com/qvault/crypto/algorithm"
	"github.com/qvault/crypto/bundles/common"
	vaulterrors "github.com/qvault/crypto/errors"
	"github.com/qvault/crypto/internal/refcore"
	"github.com/qvault/crypto/params"
	"github.com/qvault/crypto/registry"
	"github.com/qvault/crypto/sdc"
	"github.com/qvault/crypto/strategy"
)

var registerOnce sync.Once

// Register installs the three ML-KEM parameter-set strategies.
func Register() {
	registerOnce.Do(func() {
		for _, id := range []algorithm.ID{algorithm.MLKEM512, algorithm.MLKEM768, algorithm.MLKEM1024} {
			s := &kemStrategy{algorithmID: id.Name}
			_ = registry.Register(id.Name, s, []strategy.Capability{strategy.CapabilityKEM}, s)
		}
	})
}

type kemStrategy struct {
	algorithmID string
}

// GenerateKeyPair implements strategy.KeyGenerator.
func (s *kemStrategy) GenerateKeyPair() (public, private *sdc.Container, err error) {
	pub, priv, err := refcore.MLKEMGenerateKeyPair(s.algorithmID)
	if err != nil {
		return nil, nil, vaulterrors.WithAlgorithm(vaulterrors.ErrCryptoOperationFailed, s.algorithmID, "kem_keygen", err)
	}
	defer refcore.Wipe(priv)

	public, err = sdc.NewFrom(pub, true, common.ArenaAuto())
	if err != nil {
		return nil, nil, err
	}
	private, err = sdc.NewFrom(priv, true, common.ArenaAuto())
	if err != nil {
		public.Close()
		return nil, nil, err
	}
	return public, private, nil
}

// Encapsulate implements strategy.KEM. The returned composite's root is
// the shared secret; child[0] is the ciphertext.
func (s *kemStrategy) Encapsulate(publicKey *sdc.Container) (*sdc.Container, error) {
	sizes, ok := params.Lookup(s.algorithmID)
	if !ok {
		return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrSizeMismatch, s.algorithmID, "kem", nil)
	}
	if publicKey.ByteLength() != sizes.PublicKey {
		return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrSizeMismatch, s.algorithmID, "kem", nil)
	}

	var result *sdc.Container
	err := publicKey.WithSegment(func(pubBytes []byte) error {
		ct, ss, encErr := refcore.MLKEMEncapsulate(s.algorithmID, pubBytes)
		if encErr != nil {
			return vaulterrors.WithAlgorithm(vaulterrors.ErrCryptoOperationFailed, s.algorithmID, "kem", encErr)
		}
		defer refcore.Wipe(ss)

		root, newErr := sdc.NewFrom(ss, true, common.ArenaAuto())
		if newErr != nil {
			return vaulterrors.WithAlgorithm(vaulterrors.ErrAllocationFailed, s.algorithmID, "kem", newErr)
		}
		if _, childErr := root.AddChildFrom(ct, true, common.ArenaAuto()); childErr != nil {
			root.Close()
			return childErr
		}
		result = root
		return nil
	})
	if err != nil {
		if result != nil {
			result.Close()
		}
		return nil, err
	}
	return result, nil
}

// Decapsulate implements strategy.KEM, returning a single SDC holding the
// recovered shared secret.
func (s *kemStrategy) Decapsulate(privateKey, ciphertext *sdc.Container) (*sdc.Container, error) {
	sizes, ok := params.Lookup(s.algorithmID)
	if !ok {
		return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrSizeMismatch, s.algorithmID, "kem", nil)
	}
	if privateKey.ByteLength() != sizes.PrivateKey {
		return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrSizeMismatch, s.algorithmID, "kem", nil)
	}
	if ciphertext.ByteLength() != sizes.Ciphertext {
		return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrSizeMismatch, s.algorithmID, "kem", nil)
	}

	var result *sdc.Container
	err := privateKey.WithSegment(func(privBytes []byte) error {
		return ciphertext.WithSegment(func(ctBytes []byte) error {
			ss, decErr := refcore.MLKEMDecapsulate(s.algorithmID, privBytes, ctBytes)
			if decErr != nil {
				return vaulterrors.WithAlgorithm(vaulterrors.ErrCryptoOperationFailed, s.algorithmID, "kem", decErr)
			}
			defer refcore.Wipe(ss)
			out, newErr := sdc.NewFrom(ss, true, common.ArenaAuto())
			if newErr != nil {
				return vaulterrors.WithAlgorithm(vaulterrors.ErrAllocationFailed, s.algorithmID, "kem", newErr)
			}
			result = out
			return nil
		})
	})
	if err != nil {
		if result != nil {
			result.Close()
		}
		return nil, err
	}
	return result, nil
}
