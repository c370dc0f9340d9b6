// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package strategy defines the capability contracts every Strategy
// Implementation satisfies: Cipher and its three extensions, Signature,
// KEM, and ECDH. Strategy Bundles install concrete implementations of
// these interfaces into the Strategy Registry keyed by algorithm-id.
package strategy

import "github.com/qvault/crypto/sdc"

// IVSource is the polymorphic input to Cipher.IV: raw bytes (ownership
// taken, source wiped), a fresh-IV length, or an existing container.
type IVSource struct {
	Bytes     []byte
	Length    int
	Container *sdc.Container
}

// Capability tags used by the registry's downcast lookup.
type Capability string

const (
	CapabilityCipher       Capability = "cipher"
	CapabilityBlockCipher  Capability = "block_cipher"
	CapabilityAEADCipher   Capability = "aead_cipher"
	CapabilityStreamCipher Capability = "stream_cipher"
	CapabilitySignature    Capability = "signature"
	CapabilityKEM          Capability = "kem"
	CapabilityECDH         Capability = "ecdh"
)

// Cipher is satisfied by every symmetric encryption strategy.
type Cipher interface {
	IV(source IVSource) (*sdc.Container, error)
	Encrypt(key *sdc.Container, plain *sdc.Container, chainIV bool) (*sdc.Container, error)
	Decrypt(key *sdc.Container, ciphertext *sdc.Container, inferIV bool) (*sdc.Container, error)
}

// BlockCipher extends Cipher with the builder-style mode/padding/digest
// setters; each returns the receiver so calls chain builder-style.
type BlockCipher interface {
	Cipher
	SetMode(m string) BlockCipher
	SetPadding(p string) BlockCipher
	SetDigest(d string) BlockCipher
}

// AEADCipher extends Cipher with associated-data accumulation.
type AEADCipher interface {
	Cipher
	UpdateAAD(aad []byte) AEADCipher
}

// StreamCipher extends Cipher with buffer-to-buffer streaming entry
// points used for large plaintexts that should not be materialized whole.
type StreamCipher interface {
	Cipher
	StreamEncrypt(key *sdc.Container, in, out []byte) (int, error)
	StreamDecrypt(key *sdc.Container, in, out []byte) (int, error)
}

// Signature is satisfied by every digital-signature strategy. Verify
// returning false is distinct from Verify returning an error: a
// well-formed but invalid signature is false, not an error.
type Signature interface {
	Sign(privateKey *sdc.Container, plaintext []byte) (*sdc.Container, error)
	Verify(composite *sdc.Container) (bool, error)
}

// KEM is satisfied by every key-encapsulation strategy.
type KEM interface {
	Encapsulate(publicKey *sdc.Container) (*sdc.Container, error)
	Decapsulate(privateKey, ciphertext *sdc.Container) (*sdc.Container, error)
}

// ECDH is satisfied by every elliptic-curve key-agreement strategy.
type ECDH interface {
	ComputeShared(myPrivate, peerPublic *sdc.Container) (*sdc.Container, error)
}

// KeyGenerator produces a fresh (public, private) container pair for an
// algorithm-id; the registry's second map is keyed the same way as the
// operation-strategy map but stores these instead.
type KeyGenerator interface {
	GenerateKeyPair() (public, private *sdc.Container, err error)
}
