// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package mlkem_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qvault/crypto/algorithm"
	"github.com/qvault/crypto/bundles/mlkem"
	"github.com/qvault/crypto/registry"
	"github.com/qvault/crypto/strategy"
)

func TestMain(m *testing.M) {
	mlkem.Register()
	m.Run()
}

// TestMLKEM768RoundTrip is seed scenario 3: a fresh keypair, encapsulate
// against the public key, decapsulate against the private key, and check
// both parties land on the same 32-byte shared secret.
func TestMLKEM768RoundTrip(t *testing.T) {
	gen, err := registry.GetKeyGenerator(algorithm.MLKEM768.Name)
	require.NoError(t, err)
	pub, priv, err := gen.GenerateKeyPair()
	require.NoError(t, err)
	defer pub.Close()
	defer priv.Close()

	op, err := registry.GetOperation(algorithm.MLKEM768.Name, strategy.CapabilityKEM)
	require.NoError(t, err)
	kem := op.(strategy.KEM)

	composite, err := kem.Encapsulate(pub)
	require.NoError(t, err)
	defer composite.Close()
	require.Equal(t, 32, composite.ByteLength())
	require.Equal(t, 1, composite.ChildCount())

	ct, err := composite.Child(0)
	require.NoError(t, err)
	require.Equal(t, 1088, ct.ByteLength())

	senderSecret, err := composite.ExportToHeap()
	require.NoError(t, err)

	recovered, err := kem.Decapsulate(priv, ct)
	require.NoError(t, err)
	defer recovered.Close()
	recoveredSecret, err := recovered.ExportToHeap()
	require.NoError(t, err)
	require.Equal(t, senderSecret, recoveredSecret)
}

func TestMLKEM512KeySizes(t *testing.T) {
	gen, err := registry.GetKeyGenerator(algorithm.MLKEM512.Name)
	require.NoError(t, err)
	pub, priv, err := gen.GenerateKeyPair()
	require.NoError(t, err)
	defer pub.Close()
	defer priv.Close()

	require.Equal(t, 800, pub.ByteLength())
	require.Equal(t, 1632, priv.ByteLength())
}
