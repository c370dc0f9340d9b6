// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package aria_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qvault/crypto/algorithm"
	"github.com/qvault/crypto/arena"
	"github.com/qvault/crypto/bundles/aria"
	vaulterrors "github.com/qvault/crypto/errors"
	"github.com/qvault/crypto/registry"
	"github.com/qvault/crypto/sdc"
	"github.com/qvault/crypto/strategy"
)

func TestMain(m *testing.M) {
	aria.Register()
	m.Run()
}

func TestARIA256CTRRoundTrip(t *testing.T) {
	op, err := registry.GetOperation(algorithm.ARIA256.Name, strategy.CapabilityBlockCipher)
	require.NoError(t, err)
	bc := op.(strategy.BlockCipher).SetMode(string(algorithm.ModeCTR))

	key, err := sdc.NewFrom(make([]byte, 32), false, arena.Confined)
	require.NoError(t, err)
	defer key.Close()
	plain, err := sdc.NewFrom([]byte("stream ciphers need no padding"), false, arena.Confined)
	require.NoError(t, err)
	defer plain.Close()

	ct, err := bc.Encrypt(key, plain, true)
	require.NoError(t, err)
	defer ct.Close()

	out, err := bc.Decrypt(key, ct, true)
	require.NoError(t, err)
	defer out.Close()
	outBytes, err := out.ExportToHeap()
	require.NoError(t, err)
	require.Equal(t, "stream ciphers need no padding", string(outBytes))
}

func TestARIA128AEADCCMRoundTrip(t *testing.T) {
	op, err := registry.GetOperation(algorithm.ARIA128.Name, strategy.CapabilityBlockCipher)
	require.NoError(t, err)
	bc := op.(strategy.BlockCipher).SetMode(string(algorithm.ModeAEADCCM))
	ac := bc.(strategy.AEADCipher).UpdateAAD([]byte("aad"))

	key, err := sdc.NewFrom(make([]byte, 16), false, arena.Confined)
	require.NoError(t, err)
	defer key.Close()
	plain, err := sdc.NewFrom([]byte("ccm mode test"), false, arena.Confined)
	require.NoError(t, err)
	defer plain.Close()

	ct, err := ac.Encrypt(key, plain, true)
	require.NoError(t, err)
	defer ct.Close()

	out, err := ac.Decrypt(key, ct, true)
	require.NoError(t, err)
	defer out.Close()
	outBytes, err := out.ExportToHeap()
	require.NoError(t, err)
	require.Equal(t, "ccm mode test", string(outBytes))
}

func TestARIASizeMismatch(t *testing.T) {
	op, err := registry.GetOperation(algorithm.ARIA192.Name, strategy.CapabilityBlockCipher)
	require.NoError(t, err)
	bc := op.(strategy.BlockCipher)

	key, err := sdc.NewFrom(make([]byte, 8), false, arena.Confined) // wrong size for ARIA-192
	require.NoError(t, err)
	defer key.Close()
	plain, err := sdc.NewFrom([]byte("x"), false, arena.Confined)
	require.NoError(t, err)
	defer plain.Close()

	_, err = bc.Encrypt(key, plain, true)
	require.ErrorIs(t, err, vaulterrors.ErrSizeMismatch)
}
