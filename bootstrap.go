// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vault is the top-level entry point: it bootstraps the Strategy
// Registry from every Strategy Bundle exactly once, and offers a thin
// convenience API over registry lookups for callers (including
// cmd/vaultctl) that would otherwise repeat the same
// registry.GetOperation/GetKeyGenerator dance for every call site.
package vault

import (
	"github.com/qvault/crypto/bundles/aes"
	"github.com/qvault/crypto/bundles/aria"
	"github.com/qvault/crypto/bundles/chacha20"
	"github.com/qvault/crypto/bundles/chacha20poly1305"
	"github.com/qvault/crypto/bundles/hybrid"
	"github.com/qvault/crypto/bundles/mldsa"
	"github.com/qvault/crypto/bundles/mlkem"
	"github.com/qvault/crypto/bundles/slhdsa"
	"github.com/qvault/crypto/bundles/x25519"
	vaulterrors "github.com/qvault/crypto/errors"
	"github.com/qvault/crypto/registry"
	"github.com/qvault/crypto/sdc"
	"github.com/qvault/crypto/strategy"
)

// Bootstrap populates the Strategy Registry from every bundle this vault
// ships. Safe to call any number of times or concurrently; only the first
// call does any work (registry.Bootstrap is itself a sync.Once).
func Bootstrap() {
	registry.Bootstrap(func() {
		aes.Register()
		aria.Register()
		chacha20.Register()
		chacha20poly1305.Register()
		mlkem.Register()
		mldsa.Register()
		slhdsa.Register()
		x25519.Register()
		hybrid.Register()
	})
}

// Cipher resolves the Cipher capability for algorithmID, calling Bootstrap
// first if the registry has not been populated yet.
func Cipher(algorithmID string) (strategy.Cipher, error) {
	Bootstrap()
	op, err := registry.GetOperation(algorithmID, strategy.CapabilityCipher)
	if err != nil {
		return nil, err
	}
	c, ok := op.(strategy.Cipher)
	if !ok {
		return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrUnsupportedCapability, algorithmID, "cipher", nil)
	}
	return c, nil
}

// BlockCipher resolves the BlockCipher capability for algorithmID.
func BlockCipher(algorithmID string) (strategy.BlockCipher, error) {
	Bootstrap()
	op, err := registry.GetOperation(algorithmID, strategy.CapabilityBlockCipher)
	if err != nil {
		return nil, err
	}
	c, ok := op.(strategy.BlockCipher)
	if !ok {
		return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrUnsupportedCapability, algorithmID, "block_cipher", nil)
	}
	return c, nil
}

// AEADCipher resolves the AEADCipher capability for algorithmID.
func AEADCipher(algorithmID string) (strategy.AEADCipher, error) {
	Bootstrap()
	op, err := registry.GetOperation(algorithmID, strategy.CapabilityAEADCipher)
	if err != nil {
		return nil, err
	}
	c, ok := op.(strategy.AEADCipher)
	if !ok {
		return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrUnsupportedCapability, algorithmID, "aead_cipher", nil)
	}
	return c, nil
}

// Signature resolves the Signature capability for algorithmID.
func Signature(algorithmID string) (strategy.Signature, error) {
	Bootstrap()
	op, err := registry.GetOperation(algorithmID, strategy.CapabilitySignature)
	if err != nil {
		return nil, err
	}
	s, ok := op.(strategy.Signature)
	if !ok {
		return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrUnsupportedCapability, algorithmID, "signature", nil)
	}
	return s, nil
}

// KEM resolves the KEM capability for algorithmID.
func KEM(algorithmID string) (strategy.KEM, error) {
	Bootstrap()
	op, err := registry.GetOperation(algorithmID, strategy.CapabilityKEM)
	if err != nil {
		return nil, err
	}
	k, ok := op.(strategy.KEM)
	if !ok {
		return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrUnsupportedCapability, algorithmID, "kem", nil)
	}
	return k, nil
}

// ECDH resolves the ECDH capability for algorithmID.
func ECDH(algorithmID string) (strategy.ECDH, error) {
	Bootstrap()
	op, err := registry.GetOperation(algorithmID, strategy.CapabilityECDH)
	if err != nil {
		return nil, err
	}
	e, ok := op.(strategy.ECDH)
	if !ok {
		return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrUnsupportedCapability, algorithmID, "ecdh", nil)
	}
	return e, nil
}

// GenerateKeyPair resolves the key generator for algorithmID and runs it.
func GenerateKeyPair(algorithmID string) (public, private *sdc.Container, err error) {
	Bootstrap()
	gen, err := registry.GetKeyGenerator(algorithmID)
	if err != nil {
		return nil, nil, err
	}
	return gen.GenerateKeyPair()
}
