// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package algorithm is the identity layer: algorithm-ids, their families,
// categories, the post-quantum flag, and the closed sets of block-cipher
// modes and paddings every Strategy Contract validates against.
package algorithm

import "github.com/qvault/crypto/params"

// Family groups algorithm-ids that share a native primitive shape.
type Family string

const (
	FamilyAES      Family = "aes"
	FamilyARIA     Family = "aria"
	FamilyChaCha20 Family = "chacha20"
	FamilyMLKEM    Family = "ml-kem"
	FamilyMLDSA    Family = "ml-dsa"
	FamilySLHDSA   Family = "slh-dsa"
	FamilyX25519   Family = "x25519"
	FamilyHybrid   Family = "hybrid"
)

// Category is the capability class an algorithm-id belongs to. The set is
// closed: BlockCipher, StreamCipher, Signature, KEM, KeyAgreement, and
// KeyDerivation. AEAD is a Mode, not a Category — ChaCha20-Poly1305 and
// AEAD-GCM/AEAD-CCM block-cipher modes stay tagged by their underlying
// cipher shape and carry AEAD-ness through Mode.IsAEAD instead.
type Category string

const (
	CategoryBlockCipher   Category = "block_cipher"
	CategoryStreamCipher  Category = "stream_cipher"
	CategoryKEM           Category = "kem"
	CategorySignature     Category = "signature"
	CategoryKeyAgreement  Category = "key_agreement"
	CategoryKeyDerivation Category = "key_derivation"
)

// Mode is the closed set of block-cipher modes of operation.
type Mode string

const (
	ModeECB     Mode = "ECB"
	ModeCBC     Mode = "CBC"
	ModeCFB     Mode = "CFB"
	ModeOFB     Mode = "OFB"
	ModeCTR     Mode = "CTR"
	ModeAEADGCM Mode = "AEAD-GCM"
	ModeAEADCCM Mode = "AEAD-CCM"
)

// IsAEAD reports whether m requires AEAD handling (nonce + tag + AAD).
func (m Mode) IsAEAD() bool {
	return m == ModeAEADGCM || m == ModeAEADCCM
}

// Padding is the closed set of symmetric paddings, plus two
// asymmetric-reserved values block ciphers must reject.
type Padding string

const (
	PaddingPKCS7    Padding = "PKCS7"
	PaddingISO7816  Padding = "ISO7816"
	PaddingISO10126 Padding = "ISO10126"
	PaddingZero     Padding = "ZERO"
	PaddingNone     Padding = "NONE"
	PaddingPKCS1    Padding = "PKCS1"     // asymmetric-reserved
	PaddingOAEPMGF1 Padding = "OAEP-MGF1" // asymmetric-reserved
)

// IsAsymmetricReserved reports whether p is reserved for asymmetric
// schemes and must be rejected by a block cipher strategy.
func (p Padding) IsAsymmetricReserved() bool {
	return p == PaddingPKCS1 || p == PaddingOAEPMGF1
}

// ID is an algorithm-id's capability vector: name, family, category,
// parameter sizes, and the post-quantum flag.
type ID struct {
	Name        string
	Family      Family
	Category    Category
	PostQuantum bool
}

// ParameterSizes returns the Parameter Catalog row for this ID.
func (a ID) ParameterSizes() (params.Sizes, bool) {
	return params.Lookup(a.Name)
}

// IsPostQuantum reports whether this algorithm-id is lattice- or
// hash-based rather than classical.
func (a ID) IsPostQuantum() bool { return a.PostQuantum }

// Registry of every algorithm-id this vault's strategy bundles install.
// Declared here (rather than computed) because identity is a closed,
// load-bearing fact the registry and bundles both depend on.
var (
	AES128  = ID{Name: "AES-128", Family: FamilyAES, Category: CategoryBlockCipher}
	AES192  = ID{Name: "AES-192", Family: FamilyAES, Category: CategoryBlockCipher}
	AES256  = ID{Name: "AES-256", Family: FamilyAES, Category: CategoryBlockCipher}
	ARIA128 = ID{Name: "ARIA-128", Family: FamilyARIA, Category: CategoryBlockCipher}
	ARIA192 = ID{Name: "ARIA-192", Family: FamilyARIA, Category: CategoryBlockCipher}
	ARIA256 = ID{Name: "ARIA-256", Family: FamilyARIA, Category: CategoryBlockCipher}

	ChaCha20         = ID{Name: "ChaCha20", Family: FamilyChaCha20, Category: CategoryStreamCipher}
	ChaCha20Poly1305 = ID{Name: "ChaCha20-Poly1305", Family: FamilyChaCha20, Category: CategoryStreamCipher}

	MLKEM512  = ID{Name: "ML-KEM-512", Family: FamilyMLKEM, Category: CategoryKEM, PostQuantum: true}
	MLKEM768  = ID{Name: "ML-KEM-768", Family: FamilyMLKEM, Category: CategoryKEM, PostQuantum: true}
	MLKEM1024 = ID{Name: "ML-KEM-1024", Family: FamilyMLKEM, Category: CategoryKEM, PostQuantum: true}

	MLDSA44 = ID{Name: "ML-DSA-44", Family: FamilyMLDSA, Category: CategorySignature, PostQuantum: true}
	MLDSA65 = ID{Name: "ML-DSA-65", Family: FamilyMLDSA, Category: CategorySignature, PostQuantum: true}
	MLDSA87 = ID{Name: "ML-DSA-87", Family: FamilyMLDSA, Category: CategorySignature, PostQuantum: true}

	SLHDSASHA2128s = ID{Name: "SLH-DSA-SHA2-128s", Family: FamilySLHDSA, Category: CategorySignature, PostQuantum: true}
	SLHDSASHA2192s = ID{Name: "SLH-DSA-SHA2-192s", Family: FamilySLHDSA, Category: CategorySignature, PostQuantum: true}
	SLHDSASHA2256s = ID{Name: "SLH-DSA-SHA2-256s", Family: FamilySLHDSA, Category: CategorySignature, PostQuantum: true}

	X25519 = ID{Name: "X25519", Family: FamilyX25519, Category: CategoryKeyAgreement}

	HybridX25519MLKEM768 = ID{Name: "X25519-ML-KEM-768", Family: FamilyHybrid, Category: CategoryKEM, PostQuantum: true}
)
