// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package aes_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qvault/crypto/algorithm"
	"github.com/qvault/crypto/arena"
	"github.com/qvault/crypto/bundles/aes"
	vaulterrors "github.com/qvault/crypto/errors"
	"github.com/qvault/crypto/registry"
	"github.com/qvault/crypto/sdc"
	"github.com/qvault/crypto/strategy"
)

func TestMain(m *testing.M) {
	aes.Register()
	m.Run()
}

func blockCipher(t *testing.T, algorithmID string) strategy.BlockCipher {
	t.Helper()
	op, err := registry.GetOperation(algorithmID, strategy.CapabilityBlockCipher)
	require.NoError(t, err)
	return op.(strategy.BlockCipher)
}

// TestAES256GCMRoundTrip is seed scenario 1 from the testable-properties
// section: a fixed key/IV/AAD/plaintext, a 27-byte body (11 + 16-byte
// tag), and tamper detection on any flipped ciphertext bit.
func TestAES256GCMRoundTrip(t *testing.T) {
	c := blockCipher(t, algorithm.AES256.Name).SetMode(string(algorithm.ModeAEADGCM))
	ac := c.(strategy.AEADCipher).UpdateAAD([]byte("hdr"))

	key, err := sdc.NewFrom(make([]byte, 32), false, arena.Confined)
	require.NoError(t, err)
	defer key.Close()

	plain, err := sdc.NewFrom([]byte("Hello, AES!"), false, arena.Confined)
	require.NoError(t, err)
	defer plain.Close()

	ct, err := ac.Encrypt(key, plain, true)
	require.NoError(t, err)
	defer ct.Close()

	wire, err := ct.ExportToHeap()
	require.NoError(t, err)
	require.Len(t, wire, 12+11+16) // IV || ciphertext || tag

	decrypted, err := ac.Decrypt(key, ct, true)
	require.NoError(t, err)
	defer decrypted.Close()
	plainOut, err := decrypted.ExportToHeap()
	require.NoError(t, err)
	require.Equal(t, "Hello, AES!", string(plainOut))

	// Tamper: flip a bit in the body (past the 12-byte IV).
	tampered, err := sdc.NewFrom(wire, false, arena.Confined)
	require.NoError(t, err)
	defer tampered.Close()
	require.NoError(t, tampered.WithSegment(func(seg []byte) error {
		seg[12+5] ^= 0x01
		return nil
	}))
	_, err = ac.Decrypt(key, tampered, true)
	require.ErrorIs(t, err, vaulterrors.ErrAuthenticationFailed)
}

func TestAESCBCRoundTrip(t *testing.T) {
	c := blockCipher(t, algorithm.AES128.Name).SetMode(string(algorithm.ModeCBC)).SetPadding(string(algorithm.PaddingPKCS7))

	key, err := sdc.NewFrom(make([]byte, 16), false, arena.Confined)
	require.NoError(t, err)
	defer key.Close()
	plain, err := sdc.NewFrom([]byte("a short message"), false, arena.Confined)
	require.NoError(t, err)
	defer plain.Close()

	ct, err := c.Encrypt(key, plain, true)
	require.NoError(t, err)
	defer ct.Close()

	out, err := c.Decrypt(key, ct, true)
	require.NoError(t, err)
	defer out.Close()
	outBytes, err := out.ExportToHeap()
	require.NoError(t, err)
	require.Equal(t, "a short message", string(outBytes))
}

func TestAESSizeMismatch(t *testing.T) {
	c := blockCipher(t, algorithm.AES256.Name)
	key, err := sdc.NewFrom(make([]byte, 10), false, arena.Confined) // wrong size
	require.NoError(t, err)
	defer key.Close()
	plain, err := sdc.NewFrom([]byte("x"), false, arena.Confined)
	require.NoError(t, err)
	defer plain.Close()

	_, err = c.Encrypt(key, plain, true)
	require.ErrorIs(t, err, vaulterrors.ErrSizeMismatch)
}

func TestAESKeyGenerator(t *testing.T) {
	gen, err := registry.GetKeyGenerator(algorithm.AES192.Name)
	require.NoError(t, err)
	_, priv, err := gen.GenerateKeyPair()
	require.NoError(t, err)
	defer priv.Close()
	require.Equal(t, 24, priv.ByteLength())
}
