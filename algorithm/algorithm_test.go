// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package algorithm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qvault/crypto/algorithm"
)

func TestModeIsAEAD(t *testing.T) {
	assert.True(t, algorithm.ModeAEADGCM.IsAEAD())
	assert.True(t, algorithm.ModeAEADCCM.IsAEAD())
	assert.False(t, algorithm.ModeCBC.IsAEAD())
	assert.False(t, algorithm.ModeCTR.IsAEAD())
}

func TestPaddingIsAsymmetricReserved(t *testing.T) {
	assert.True(t, algorithm.PaddingPKCS1.IsAsymmetricReserved())
	assert.True(t, algorithm.PaddingOAEPMGF1.IsAsymmetricReserved())
	assert.False(t, algorithm.PaddingPKCS7.IsAsymmetricReserved())
}

func TestPostQuantumFlagging(t *testing.T) {
	assert.True(t, algorithm.MLKEM768.IsPostQuantum())
	assert.True(t, algorithm.HybridX25519MLKEM768.IsPostQuantum())
	assert.False(t, algorithm.AES256.IsPostQuantum())
	assert.False(t, algorithm.X25519.IsPostQuantum())
}

func TestParameterSizesResolveFromCatalog(t *testing.T) {
	sizes, ok := algorithm.MLKEM768.ParameterSizes()
	assert.True(t, ok)
	assert.Equal(t, 1184, sizes.PublicKey)
	assert.Equal(t, 2400, sizes.PrivateKey)
	assert.Equal(t, 1088, sizes.Ciphertext)
	assert.Equal(t, 32, sizes.SharedSecret)
}
