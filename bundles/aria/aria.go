// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package aria installs the ARIA-128/192/256 block-cipher strategies,
// sharing the same closed mode set and mode-composition helper as the aes
// bundle but over the reference core's from-scratch ARIA permutation.
package aria

import (
	"sync"

	"github.com/qvault/crypto/algorithm"
	"github.com/qvault/crypto/bundles/common"
	"github.com/qvault/crypto/internal/refcore"
	"github.com/qvault/crypto/registry"
	"github.com/qvault/crypto/strategy"
)

var registerOnce sync.Once

// Register installs the three ARIA key-size strategies.
func Register() {
	registerOnce.Do(func() {
		for _, id := range []algorithm.ID{algorithm.ARIA128, algorithm.ARIA192, algorithm.ARIA256} {
			sizes, _ := id.ParameterSizes()
			s := common.NewBlockCipherStrategy(id.Name, refcore.NewARIABlockCipher)
			_ = registry.Register(id.Name, s, []strategy.Capability{
				strategy.CapabilityCipher,
				strategy.CapabilityBlockCipher,
				strategy.CapabilityAEADCipher,
			}, common.SymmetricKeyGenerator{AlgorithmID: id.Name, KeySize: sizes.PrivateKey})
		}
	})
}
