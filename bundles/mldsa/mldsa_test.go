// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package mldsa_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qvault/crypto/algorithm"
	"github.com/qvault/crypto/arena"
	"github.com/qvault/crypto/bundles/mldsa"
	"github.com/qvault/crypto/registry"
	"github.com/qvault/crypto/strategy"
)

func TestMain(m *testing.M) {
	mldsa.Register()
	m.Run()
}

// TestMLDSA65SignVerify is seed scenario 4: a fresh keypair signs "Quant",
// verify returns true against the matching key, and flipping any bit of
// the signature root makes verify return false, never an error.
func TestMLDSA65SignVerify(t *testing.T) {
	gen, err := registry.GetKeyGenerator(algorithm.MLDSA65.Name)
	require.NoError(t, err)
	pub, priv, err := gen.GenerateKeyPair()
	require.NoError(t, err)
	defer pub.Close()
	defer priv.Close()

	op, err := registry.GetOperation(algorithm.MLDSA65.Name, strategy.CapabilitySignature)
	require.NoError(t, err)
	sig := op.(strategy.Signature)

	msg := []byte("Quant")
	composite, err := sig.Sign(priv, msg)
	require.NoError(t, err)
	defer composite.Close()
	require.Equal(t, 3309, composite.ByteLength())

	pubBytes, err := pub.ExportToHeap()
	require.NoError(t, err)
	_, err = composite.AddChildFrom(pubBytes, true, arena.Confined)
	require.NoError(t, err)

	valid, err := sig.Verify(composite)
	require.NoError(t, err)
	require.True(t, valid)

	require.NoError(t, composite.WithSegment(func(seg []byte) error {
		seg[0] ^= 0x01
		return nil
	}))
	valid, err = sig.Verify(composite)
	require.NoError(t, err)
	require.False(t, valid)
}

func TestMLDSA44KeySizes(t *testing.T) {
	gen, err := registry.GetKeyGenerator(algorithm.MLDSA44.Name)
	require.NoError(t, err)
	pub, priv, err := gen.GenerateKeyPair()
	require.NoError(t, err)
	defer pub.Close()
	defer priv.Close()
	require.Equal(t, 1312, pub.ByteLength())
	require.Equal(t, 2560, priv.ByteLength())
}
