// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package chacha20_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qvault/crypto/algorithm"
	"github.com/qvault/crypto/arena"
	"github.com/qvault/crypto/bundles/chacha20"
	"github.com/qvault/crypto/registry"
	"github.com/qvault/crypto/sdc"
	"github.com/qvault/crypto/strategy"
)

func TestMain(m *testing.M) {
	chacha20.Register()
	m.Run()
}

func TestChaCha20RoundTrip(t *testing.T) {
	op, err := registry.GetOperation(algorithm.ChaCha20.Name, strategy.CapabilityStreamCipher)
	require.NoError(t, err)
	stream := op.(strategy.StreamCipher)

	key, err := sdc.NewFrom(make([]byte, 32), false, arena.Confined)
	require.NoError(t, err)
	defer key.Close()
	plain, err := sdc.NewFrom([]byte("keystream has no authentication"), false, arena.Confined)
	require.NoError(t, err)
	defer plain.Close()

	ct, err := stream.Encrypt(key, plain, true)
	require.NoError(t, err)
	defer ct.Close()

	out, err := stream.Decrypt(key, ct, true)
	require.NoError(t, err)
	defer out.Close()
	outBytes, err := out.ExportToHeap()
	require.NoError(t, err)
	require.Equal(t, "keystream has no authentication", string(outBytes))
}

func TestChaCha20StreamEncryptDecrypt(t *testing.T) {
	op, err := registry.GetOperation(algorithm.ChaCha20.Name, strategy.CapabilityStreamCipher)
	require.NoError(t, err)
	stream := op.(strategy.StreamCipher)

	key, err := sdc.NewFrom(make([]byte, 32), false, arena.Confined)
	require.NoError(t, err)
	defer key.Close()

	plain := []byte("fixed-buffer streaming path")
	ciphertext := make([]byte, len(plain))
	n, err := stream.StreamEncrypt(key, plain, ciphertext)
	require.NoError(t, err)
	require.Equal(t, len(plain), n)

	recovered := make([]byte, len(plain))
	_, err = stream.StreamDecrypt(key, ciphertext, recovered)
	require.NoError(t, err)
	require.Equal(t, plain, recovered)
}
