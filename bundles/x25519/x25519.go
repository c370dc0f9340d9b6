// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package x25519 installs the X25519 elliptic-curve key-agreement
// strategy, delegating to the standard library's crypto/ecdh via
// internal/refcore.
package x25519

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

// Register installs the X25519 ECDH strategy.
func Register() {
	registerOnce.Do(func() {
		s := &ecdhStrategy{}
		_ = registry.Register(algorithm.X25519.Name, s, []strategy.Capability{strategy.CapabilityECDH}, s)
	})
}

type ecdhStrategy struct{}

func (s *ecdhStrategy) GenerateKeyPair() (public, private *sdc.Container, err error) {
	pub, priv, err := refcore.X25519GenerateKeyPair()
	if err != nil {
		return nil, nil, vaulterrors.WithAlgorithm(vaulterrors.ErrCryptoOperationFailed, algorithm.X25519.Name, "ecdh_keygen", err)
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

// ComputeShared implements strategy.ECDH.
func (s *ecdhStrategy) ComputeShared(myPrivate, peerPublic *sdc.Container) (*sdc.Container, error) {
	sizes, _ := params.Lookup(algorithm.X25519.Name)
	if myPrivate.ByteLength() != sizes.PrivateKey {
		return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrSizeMismatch, algorithm.X25519.Name, "ecdh", nil)
	}
	if peerPublic.ByteLength() != sizes.PublicKey {
		return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrSizeMismatch, algorithm.X25519.Name, "ecdh", nil)
	}

	var result *sdc.Container
	err := myPrivate.WithSegment(func(privBytes []byte) error {
		return peerPublic.WithSegment(func(pubBytes []byte) error {
			shared, dhErr := refcore.X25519SharedSecret(privBytes, pubBytes)
			if dhErr != nil {
				return vaulterrors.WithAlgorithm(vaulterrors.ErrCryptoOperationFailed, algorithm.X25519.Name, "ecdh", dhErr)
			}
			defer refcore.Wipe(shared)
			out, newErr := sdc.NewFrom(shared, true, common.ArenaAuto())
			if newErr != nil {
				return vaulterrors.WithAlgorithm(vaulterrors.ErrAllocationFailed, algorithm.X25519.Name, "ecdh", newErr)
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
