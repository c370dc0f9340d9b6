// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package hybrid_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qvault/crypto/algorithm"
	"github.com/qvault/crypto/arena"
	"github.com/qvault/crypto/bundles/hybrid"
	"github.com/qvault/crypto/registry"
	"github.com/qvault/crypto/sdc"
	"github.com/qvault/crypto/strategy"
)

func TestMain(m *testing.M) {
	hybrid.Register()
	m.Run()
}

// TestHybridRoundTrip exercises the composite X25519+ML-KEM-768
// encapsulate/decapsulate path. Decapsulate's ciphertext input is the flat
// concatenation of the encapsulate composite's two children, since the
// generic KEM contract takes a single container rather than a composite.
func TestHybridRoundTrip(t *testing.T) {
	gen, err := registry.GetKeyGenerator(algorithm.HybridX25519MLKEM768.Name)
	require.NoError(t, err)
	pub, priv, err := gen.GenerateKeyPair()
	require.NoError(t, err)
	defer pub.Close()
	defer priv.Close()
	require.Equal(t, 32+1184, pub.ByteLength())
	require.Equal(t, 32+2400, priv.ByteLength())

	op, err := registry.GetOperation(algorithm.HybridX25519MLKEM768.Name, strategy.CapabilityKEM)
	require.NoError(t, err)
	kem := op.(strategy.KEM)

	composite, err := kem.Encapsulate(pub)
	require.NoError(t, err)
	defer composite.Close()
	require.Equal(t, 32, composite.ByteLength())
	require.Equal(t, 2, composite.ChildCount())

	senderSecret, err := composite.ExportToHeap()
	require.NoError(t, err)

	ephPub, err := composite.Child(0)
	require.NoError(t, err)
	ephPubBytes, err := ephPub.ExportToHeap()
	require.NoError(t, err)

	kemCt, err := composite.Child(1)
	require.NoError(t, err)
	kemCtBytes, err := kemCt.ExportToHeap()
	require.NoError(t, err)

	flatCT, err := sdc.NewFrom(append(append([]byte(nil), ephPubBytes...), kemCtBytes...), false, arena.Confined)
	require.NoError(t, err)
	defer flatCT.Close()
	require.Equal(t, 32+1088, flatCT.ByteLength())

	recovered, err := kem.Decapsulate(priv, flatCT)
	require.NoError(t, err)
	defer recovered.Close()
	recoveredSecret, err := recovered.ExportToHeap()
	require.NoError(t, err)
	require.Equal(t, senderSecret, recoveredSecret)
}
