// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package refcore

import (
	"crypto/aes"
	"crypto/cipher"
)

// NewAESBlock constructs a standard-library AES block cipher for a
// 16/24/32-byte key. The block/stream/AEAD modes themselves (CBC, CFB,
// OFB, CTR, GCM, CCM) are composed by the aes bundle using crypto/cipher's
// mode constructors against this Block, the same way this library's
// ECIES precompile composes crypto/aes with crypto/cipher directly.
func NewAESBlock(key []byte) (cipher.Block, error) {
	return aes.NewCipher(key)
}
