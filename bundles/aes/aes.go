// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package aes installs the AES-128/192/256 block-cipher strategies into
// the Strategy Registry, covering the full closed mode set (ECB, CBC,
// CFB, OFB, CTR, AEAD-GCM, AEAD-CCM) by composing crypto/aes with
// crypto/cipher's mode constructors, the same way this library's earlier
// ECIES-derived encryption path composed them directly.
package aes

import (
	"sync"

	"github.com/qvault/crypto/algorithm"
	"github.com/qvault/crypto/bundles/common"
	"github.com/qvault/crypto/internal/refcore"
	"github.com/qvault/crypto/registry"
	"github.com/qvault/crypto/strategy"
)

var registerOnce sync.Once

// Register installs the three AES key-size strategies. Idempotent; safe
// to call from multiple bundle Register functions during Bootstrap.
func Register() {
	registerOnce.Do(func() {
		for _, id := range []algorithm.ID{algorithm.AES128, algorithm.AES192, algorithm.AES256} {
			sizes, _ := id.ParameterSizes()
			s := common.NewBlockCipherStrategy(id.Name, refcore.NewAESBlock)
			_ = registry.Register(id.Name, s, []strategy.Capability{
				strategy.CapabilityCipher,
				strategy.CapabilityBlockCipher,
				strategy.CapabilityAEADCipher,
			}, common.SymmetricKeyGenerator{AlgorithmID: id.Name, KeySize: sizes.PrivateKey})
		}
	})
}
