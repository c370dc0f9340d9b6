// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeConfigWeaklyTyped(t *testing.T) {
	cfg, err := decodeConfig(map[string]any{
		"algorithm": "ChaCha20-Poly1305",
		"arena":     "confined",
	})
	require.NoError(t, err)
	require.Equal(t, "ChaCha20-Poly1305", cfg.Algorithm)
	require.Equal(t, "confined", cfg.Arena)
}

func TestDecodeConfigRejectsUnknownKeys(t *testing.T) {
	_, err := decodeConfig(map[string]any{
		"algorithm": "AES-256",
		"bogus":     "field",
	})
	require.Error(t, err)
}
