// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package chacha20poly1305_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qvault/crypto/arena"
	"github.com/qvault/crypto/bundles/chacha20poly1305"
	vaulterrors "github.com/qvault/crypto/errors"
	"github.com/qvault/crypto/registry"
	"github.com/qvault/crypto/sdc"
	"github.com/qvault/crypto/strategy"
)

func TestMain(m *testing.M) {
	chacha20poly1305.Register()
	m.Run()
}

// TestRoundTrip is seed scenario 2: a 32-byte key of 0x01 bytes, chained
// IV, and 1KiB of plaintext, expecting a 12+1024+16=1052-byte wire body.
func TestRoundTrip(t *testing.T) {
	op, err := registry.GetOperation("ChaCha20-Poly1305", strategy.CapabilityAEADCipher)
	require.NoError(t, err)
	ac := op.(strategy.AEADCipher)

	key, err := sdc.NewFrom(bytes.Repeat([]byte{0x01}, 32), false, arena.Confined)
	require.NoError(t, err)
	defer key.Close()

	plainBytes := bytes.Repeat([]byte{'x'}, 1024)
	plain, err := sdc.NewFrom(plainBytes, false, arena.Confined)
	require.NoError(t, err)
	defer plain.Close()

	ct, err := ac.Encrypt(key, plain, true)
	require.NoError(t, err)
	defer ct.Close()
	require.Equal(t, 12+1024+16, ct.ByteLength())

	out, err := ac.Decrypt(key, ct, true)
	require.NoError(t, err)
	defer out.Close()
	outBytes, err := out.ExportToHeap()
	require.NoError(t, err)
	require.Equal(t, plainBytes, outBytes)
}

func TestTamperedCiphertextFailsAuthentication(t *testing.T) {
	op, err := registry.GetOperation("ChaCha20-Poly1305", strategy.CapabilityAEADCipher)
	require.NoError(t, err)
	ac := op.(strategy.AEADCipher).UpdateAAD([]byte("header"))

	key, err := sdc.NewFrom(bytes.Repeat([]byte{0x02}, 32), false, arena.Confined)
	require.NoError(t, err)
	defer key.Close()
	plain, err := sdc.NewFrom([]byte("top secret"), false, arena.Confined)
	require.NoError(t, err)
	defer plain.Close()

	ct, err := ac.Encrypt(key, plain, true)
	require.NoError(t, err)
	defer ct.Close()

	require.NoError(t, ct.WithSegment(func(seg []byte) error {
		seg[len(seg)-1] ^= 0xFF
		return nil
	}))

	_, err = ac.Decrypt(key, ct, true)
	require.ErrorIs(t, err, vaulterrors.ErrAuthenticationFailed)
}
