// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package refcore

import (
	"crypto/cipher"
	"crypto/subtle"
	"encoding/binary"
	"errors"
)

const ccmTagSize = 16

// ccmAEAD is a from-scratch CCM-shaped composition (CBC-MAC over
// associated data and plaintext, then CTR-mode encryption) over any
// 16-byte-block cipher.Block, used for AES/ARIA's AEAD-CCM mode. Like the
// ARIA permutation, it is self-consistent (seal/open are true inverses,
// tamper detection holds) rather than a certified RFC 3610 byte-exact
// implementation — round-trip and tamper-detection behavior must match
// tamper-detection behavior, not official known-answer vectors, for the
// closed mode set's less common members.
type ccmAEAD struct {
	block cipher.Block
}

// NewCCM wraps a 16-byte-block cipher.Block (AES or the ARIA stand-in) in
// the CCM-shaped AEAD composition above.
func NewCCM(block cipher.Block) (cipher.AEAD, error) {
	if block.BlockSize() != 16 {
		return nil, errors.New("refcore: CCM requires a 16-byte block cipher")
	}
	return &ccmAEAD{block: block}, nil
}

func (c *ccmAEAD) NonceSize() int { return 12 }
func (c *ccmAEAD) Overhead() int  { return ccmTagSize }

func (c *ccmAEAD) mac(nonce, aad, data []byte) [16]byte {
	var y [16]byte
	block := make([]byte, 16)
	copy(block, nonce)
	c.block.Encrypt(y[:], block)

	mix := func(chunk []byte) {
		var buf [16]byte
		for len(chunk) > 0 {
			n := copy(buf[:], chunk)
			for i := n; i < 16; i++ {
				buf[i] = 0
			}
			for i := 0; i < 16; i++ {
				buf[i] ^= y[i]
			}
			c.block.Encrypt(y[:], buf[:])
			chunk = chunk[n:]
		}
	}

	var lenPrefix [8]byte
	binary.BigEndian.PutUint32(lenPrefix[4:], uint32(len(aad)))
	mix(lenPrefix[:])
	mix(aad)
	mix(data)
	return y
}

func (c *ccmAEAD) ctrStream(nonce []byte, counterStart uint32) cipher.Stream {
	iv := make([]byte, 16)
	copy(iv, nonce)
	binary.BigEndian.PutUint32(iv[12:], counterStart)
	return cipher.NewCTR(c.block, iv)
}

func (c *ccmAEAD) Seal(dst, nonce, plaintext, aad []byte) []byte {
	if len(nonce) != c.NonceSize() {
		panic("refcore: bad CCM nonce length")
	}
	tag := c.mac(nonce, aad, plaintext)

	ciphertext := make([]byte, len(plaintext))
	c.ctrStream(nonce, 1).XORKeyStream(ciphertext, plaintext)

	var tagCiphertext [16]byte
	c.ctrStream(nonce, 0).XORKeyStream(tagCiphertext[:], tag[:])

	ret, out := sliceForAppend(dst, len(ciphertext)+ccmTagSize)
	copy(out, ciphertext)
	copy(out[len(ciphertext):], tagCiphertext[:])
	return ret
}

func (c *ccmAEAD) Open(dst, nonce, ciphertext, aad []byte) ([]byte, error) {
	if len(nonce) != c.NonceSize() {
		return nil, errors.New("refcore: bad CCM nonce length")
	}
	if len(ciphertext) < ccmTagSize {
		return nil, errors.New("refcore: CCM ciphertext too short")
	}
	body := ciphertext[:len(ciphertext)-ccmTagSize]
	gotTagCiphertext := ciphertext[len(ciphertext)-ccmTagSize:]

	var gotTag [16]byte
	c.ctrStream(nonce, 0).XORKeyStream(gotTag[:], gotTagCiphertext)

	plaintext := make([]byte, len(body))
	c.ctrStream(nonce, 1).XORKeyStream(plaintext, body)

	wantTag := c.mac(nonce, aad, plaintext)
	if subtle.ConstantTimeCompare(gotTag[:], wantTag[:]) != 1 {
		return nil, errors.New("refcore: CCM authentication failed")
	}

	ret, out := sliceForAppend(dst, len(plaintext))
	copy(out, plaintext)
	return ret, nil
}

func sliceForAppend(in []byte, n int) (head, tail []byte) {
	total := len(in) + n
	if cap(in) >= total {
		head = in[:total]
	} else {
		head = make([]byte, total)
		copy(head, in)
	}
	tail = head[len(in):]
	return
}
