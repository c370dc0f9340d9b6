// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package slhdsa installs the SLH-DSA-SHA2-{128,192,256}s hash-based
// signature strategies, delegating to circl's slhdsa package via
// internal/refcore. Composite layout and verify semantics mirror the
// mldsa bundle exactly, since both satisfy strategy.Signature the same
// way.
package slhdsa

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

// Register installs the three SLH-DSA parameter-set strategies.
func Register() {
	registerOnce.Do(func() {
		for _, id := range []algorithm.ID{algorithm.SLHDSASHA2128s, algorithm.SLHDSASHA2192s, algorithm.SLHDSASHA2256s} {
			s := &signatureStrategy{algorithmID: id.Name}
			_ = registry.Register(id.Name, s, []strategy.Capability{strategy.CapabilitySignature}, s)
		}
	})
}

type signatureStrategy struct {
	algorithmID string
}

func (s *signatureStrategy) GenerateKeyPair() (public, private *sdc.Container, err error) {
	pub, priv, err := refcore.SLHDSAGenerateKeyPair(s.algorithmID)
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
		sig, signErr := refcore.SLHDSASign(s.algorithmID, privBytes, plaintext)
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
				ok, verErr := refcore.SLHDSAVerify(s.algorithmID, pub, msg, sig)
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

// SignWithPublicKey mirrors bundles/mldsa's helper of the same name,
// producing the full three-part composite (signature, plaintext, public
// key) the component design specifies for Signature.Sign.
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
