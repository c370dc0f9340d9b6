// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package x25519_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qvault/crypto/algorithm"
	"github.com/qvault/crypto/bundles/x25519"
	"github.com/qvault/crypto/registry"
	"github.com/qvault/crypto/strategy"
)

func TestMain(m *testing.M) {
	x25519.Register()
	m.Run()
}

func TestX25519BothPartiesAgree(t *testing.T) {
	gen, err := registry.GetKeyGenerator(algorithm.X25519.Name)
	require.NoError(t, err)

	alicePub, alicePriv, err := gen.GenerateKeyPair()
	require.NoError(t, err)
	defer alicePub.Close()
	defer alicePriv.Close()

	bobPub, bobPriv, err := gen.GenerateKeyPair()
	require.NoError(t, err)
	defer bobPub.Close()
	defer bobPriv.Close()

	op, err := registry.GetOperation(algorithm.X25519.Name, strategy.CapabilityECDH)
	require.NoError(t, err)
	ecdh := op.(strategy.ECDH)

	aliceShared, err := ecdh.ComputeShared(alicePriv, bobPub)
	require.NoError(t, err)
	defer aliceShared.Close()

	bobShared, err := ecdh.ComputeShared(bobPriv, alicePub)
	require.NoError(t, err)
	defer bobShared.Close()

	aliceBytes, err := aliceShared.ExportToHeap()
	require.NoError(t, err)
	bobBytes, err := bobShared.ExportToHeap()
	require.NoError(t, err)
	require.Equal(t, aliceBytes, bobBytes)
	require.Len(t, aliceBytes, 32)
}
