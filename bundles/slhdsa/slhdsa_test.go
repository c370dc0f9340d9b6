// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package slhdsa_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qvault/crypto/algorithm"
	"github.com/qvault/crypto/arena"
	"github.com/qvault/crypto/bundles/slhdsa"
	"github.com/qvault/crypto/registry"
	"github.com/qvault/crypto/strategy"
)

func TestMain(m *testing.M) {
	slhdsa.Register()
	m.Run()
}

func TestSLHDSASHA2128sSignVerify(t *testing.T) {
	gen, err := registry.GetKeyGenerator(algorithm.SLHDSASHA2128s.Name)
	require.NoError(t, err)
	pub, priv, err := gen.GenerateKeyPair()
	require.NoError(t, err)
	defer pub.Close()
	defer priv.Close()
	require.Equal(t, 32, pub.ByteLength())
	require.Equal(t, 64, priv.ByteLength())

	op, err := registry.GetOperation(algorithm.SLHDSASHA2128s.Name, strategy.CapabilitySignature)
	require.NoError(t, err)
	sig := op.(strategy.Signature)

	msg := []byte("post-quantum hash-based signatures")
	composite, err := sig.Sign(priv, msg)
	require.NoError(t, err)
	defer composite.Close()
	require.Equal(t, 7856, composite.ByteLength())

	pubBytes, err := pub.ExportToHeap()
	require.NoError(t, err)
	_, err = composite.AddChildFrom(pubBytes, true, arena.Confined)
	require.NoError(t, err)

	valid, err := sig.Verify(composite)
	require.NoError(t, err)
	require.True(t, valid)
}

func TestSLHDSAWrongKeyFailsVerification(t *testing.T) {
	gen, err := registry.GetKeyGenerator(algorithm.SLHDSASHA2128s.Name)
	require.NoError(t, err)
	_, priv, err := gen.GenerateKeyPair()
	require.NoError(t, err)
	defer priv.Close()
	otherPub, otherPriv, err := gen.GenerateKeyPair()
	require.NoError(t, err)
	defer otherPub.Close()
	defer otherPriv.Close()

	op, err := registry.GetOperation(algorithm.SLHDSASHA2128s.Name, strategy.CapabilitySignature)
	require.NoError(t, err)
	sig := op.(strategy.Signature)

	composite, err := sig.Sign(priv, []byte("message"))
	require.NoError(t, err)
	defer composite.Close()

	otherPubBytes, err := otherPub.ExportToHeap()
	require.NoError(t, err)
	_, err = composite.AddChildFrom(otherPubBytes, true, arena.Confined)
	require.NoError(t, err)

	valid, err := sig.Verify(composite)
	require.NoError(t, err)
	require.False(t, valid)
}
