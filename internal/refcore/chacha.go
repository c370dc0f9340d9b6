// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package refcore

import (
	"crypto/cipher"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/chacha20poly1305"
)

// NewChaCha20 constructs a stream-cipher core over a 32-byte key, mirroring
// the way the AEAD constructor below composes
// golang.org/x/crypto/chacha20poly1305 directly rather than a hand-rolled
// stream cipher. The catalog's raw-ChaCha20 entry specifies an 8-byte IV
// (the original, pre-IETF nonce size); x/crypto/chacha20 only accepts its
// 12-byte IETF or 24-byte XChaCha20 nonce sizes, so an 8-byte IV is
// left-padded with zeros into the 12-byte IETF form before construction.
func NewChaCha20(key, nonce []byte, counter uint32) (*chacha20.Cipher, error) {
	ietfNonce := nonce
	if len(nonce) == 8 {
		ietfNonce = make([]byte, chacha20.NonceSize)
		copy(ietfNonce[4:], nonce)
	}
	c, err := chacha20.NewUnauthenticatedCipher(key, ietfNonce)
	if err != nil {
		return nil, err
	}
	if counter != 0 {
		c.SetCounter(counter)
	}
	return c, nil
}

// NewChaCha20Poly1305 constructs the IETF AEAD variant (12-byte nonce).
func NewChaCha20Poly1305(key []byte) (cipher.AEAD, error) {
	return chacha20poly1305.New(key)
}
