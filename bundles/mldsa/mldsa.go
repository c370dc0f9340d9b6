// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package mldsa installs the ML-DSA-44/65/87 signature strategies,
// delegating to circl's lattice signature schemes via internal/refcore.
package mldsa

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

// Register installs the three ML-DSA parameter-set strategies.
func Register() {
	registerOnce.Do(func() {
		for _, id := range []algorithm.ID{algorithm.MLDSA44, algorithm.MLDSA65, algorithm.MLDSA87} {
			s := &signatureStrategy{algorithmID: id.Name}
			_ = registry.Register(id.Name, s, []strategy.Capability{strategy.CapabilitySignature}, s)
		}
	})
}

type signatureStrategy struct {
	algorithmID string
}

// GenerateKeyPair implements strategy.KeyGenerator.
func (s *signatureStrategy) GenerateKeyPair() (public, private *sdc.Container, err error) {
	pub, priv, err := refcore.MLDSAGenerateKeyPair(s.algorithmID)
	if err != nil {
		return nil, nil, vaulterrors.WithAlgorithm(vaulterrors.ErrCryptoOperationFailed, s.algorithmID, "signature_keygen", err)
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

// Sign implements strategy.Signature. The returned composite's root is the
// signature; child[0] is the signed plaintext, retained for a verify
// round-trip; child[1] is left empty here (no public key supplied) and is
// populated by SignWithPublicKey for callers that want it bundled.
func (s *signatureStrategy) Sign(privateKey *sdc.Container, plaintext []byte) (*sdc.Container, error) {
	sizes, ok := params.Lookup(s.algorithmID)
	if !ok {
		return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrSizeMismatch, s.algorithmID, "signature", nil)
	}
	if privateKey.ByteLength() != sizes.PrivateKey {
		return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrSizeMismatch, s.algorithmID, "signature", nil)
	}

	var result *sdc.Container
	err := privateKey.WithSegment(func(privBytes []byte) error {
		sig, signErr := refcore.MLDSASign(s.algorithmID, privBytes, plaintext)
		if signErr != nil {
			return vaulterrors.WithAlgorithm(vaulterrors.ErrCryptoOperationFailed, s.algorithmID, "signature", signErr)
		}
		root, newErr := sdc.NewFrom(sig, true, common.ArenaAuto())
		if newErr != nil {
			return vaulterrors.WithAlgorithm(vaulterrors.ErrAllocationFailed, s.algorithmID, "signature", newErr)
		}
		if _, childErr := root.AddChildFrom(plaintext, false, common.ArenaAuto()); childErr != nil {
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

// Verify implements strategy.Signature: composite[root]=signature,
// composite[0]=plaintext, composite[1]=public key (required here, since
// Sign above does not carry one — callers append it with AddChildFrom or
// build the composite with SignWithPublicKey).
// A malformed composite yields AuthenticationFailed; a well-formed but
// invalid signature returns (false, nil), never an error.
func (s *signatureStrategy) Verify(composite *sdc.Container) (bool, error) {
	sizes, ok := params.Lookup(s.algorithmID)
	if !ok {
		return false, vaulterrors.WithAlgorithm(vaulterrors.ErrSizeMismatch, s.algorithmID, "signature", nil)
	}
	if composite.ByteLength() != sizes.Signature {
		return false, vaulterrors.WithAlgorithm(vaulterrors.ErrSizeMismatch, s.algorithmID, "signature", nil)
	}
	msgContainer, err := composite.Child(0)
	if err != nil {
		return false, err
	}
	pkContainer, err := composite.Child(1)
	if err != nil {
		return false, err
	}
	if msgContainer == nil || pkContainer == nil {
		return false, vaulterrors.WithAlgorithm(vaulterrors.ErrAuthenticationFailed, s.algorithmID, "signature", nil)
	}
	if pkContainer.ByteLength() != sizes.PublicKey {
		return false, vaulterrors.WithAlgorithm(vaulterrors.ErrSizeMismatch, s.algorithmID, "signature", nil)
	}

	var valid bool
	err = composite.WithSegment(func(sig []byte) error {
		return msgContainer.WithSegment(func(msg []byte) error {
			return pkContainer.WithSegment(func(pub []byte) error {
				ok, verErr := refcore.MLDSAVerify(s.algorithmID, pub, msg, sig)
				if verErr != nil {
					return vaulterrors.WithAlgorithm(vaulterrors.ErrAuthenticationFailed, s.algorithmID, "signature", verErr)
				}
				valid = ok
				return nil
			})
		})
	})
	if err != nil {
		return false, err
	}
	return valid, nil
}

// SignWithPublicKey is the three-part composite variant: root=signature,
// child[0]=plaintext, child[1]=public key, exactly matching the composite
// layout Verify needs so it can be called without an
// out-of-band key.
func (s *signatureStrategy) SignWithPublicKey(privateKey, publicKey *sdc.Container, plaintext []byte) (*sdc.Container, error) {
	root, err := s.Sign(privateKey, plaintext)
	if err != nil {
		return nil, err
	}
	pub, err := publicKey.ExportToHeap()
	if err != nil {
		root.Close()
		return nil, err
	}
	if _, err := root.AddChildFrom(pub, true, common.ArenaAuto()); err != nil {
		root.Close()
		return nil, err
	}
	return root, nil
}
