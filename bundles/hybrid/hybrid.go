// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package hybrid installs the X25519⊕ML-KEM-768 composite key-encapsulation
// strategy. It reuses the x25519 and mlkem/ML-KEM-768 reference-core entry
// points directly; the composition (concatenate-then-KDF) lives in this
// package rather than in either component bundle: composition of the
// two component strategies stays in-library.
package hybrid

import (
	"crypto/sha256"
	"io"
	"sync"

	"golang.org/x/crypto/hkdf"

	"github.com/qvault/crypto/algorithm"
	"github.com/qvault/crypto/bundles/common"
	vaulterrors "github.com/qvault/crypto/errors"
	"github.com/qvault/crypto/internal/refcore"
	"github.com/qvault/crypto/params"
	"github.com/qvault/crypto/registry"
	"github.com/qvault/crypto/sdc"
	"github.com/qvault/crypto/strategy"
)

// domainTag is the fixed domain-separation label for the combiner KDF.
// It is an input constant for the external protocol, not a value this
// library chooses freely.
const domainTag = "qvault.io/v1/hybrid-x25519-mlkem768"

const (
	x25519PubLen  = 32
	x25519PrivLen = 32
	mlkem768Name  = "ML-KEM-768"
)

var registerOnce sync.Once

// Register installs the hybrid strategy under algorithm.HybridX25519MLKEM768.
func Register() {
	registerOnce.Do(func() {
		s := &hybridStrategy{}
		_ = registry.Register(algorithm.HybridX25519MLKEM768.Name, s, []strategy.Capability{strategy.CapabilityKEM}, s)
	})
}

type hybridStrategy struct{}

// GenerateKeyPair returns composite public/private containers: the first
// 32 bytes are the X25519 half, the remainder the ML-KEM-768 half.
func (s *hybridStrategy) GenerateKeyPair() (public, private *sdc.Container, err error) {
	xPub, xPriv, err := refcore.X25519GenerateKeyPair()
	if err != nil {
		return nil, nil, vaulterrors.WithAlgorithm(vaulterrors.ErrCryptoOperationFailed, algorithm.HybridX25519MLKEM768.Name, "kem_keygen", err)
	}
	defer refcore.Wipe(xPriv)

	kPub, kPriv, err := refcore.MLKEMGenerateKeyPair(mlkem768Name)
	if err != nil {
		return nil, nil, vaulterrors.WithAlgorithm(vaulterrors.ErrCryptoOperationFailed, algorithm.HybridX25519MLKEM768.Name, "kem_keygen", err)
	}
	defer refcore.Wipe(kPriv)

	public, err = sdc.NewFrom(append(append([]byte(nil), xPub...), kPub...), true, common.ArenaAuto())
	if err != nil {
		return nil, nil, err
	}
	private, err = sdc.NewFrom(append(append([]byte(nil), xPriv...), kPriv...), true, common.ArenaAuto())
	if err != nil {
		public.Close()
		return nil, nil, err
	}
	return public, private, nil
}

// Encapsulate implements strategy.KEM. Output composite: root = combined
// shared secret, child[0] = fresh X25519 ephemeral public key, child[1] =
// ML-KEM-768 ciphertext.
func (s *hybridStrategy) Encapsulate(publicKey *sdc.Container) (*sdc.Container, error) {
	sizes, ok := params.Lookup(algorithm.HybridX25519MLKEM768.Name)
	if !ok || publicKey.ByteLength() != sizes.PublicKey {
		return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrSizeMismatch, algorithm.HybridX25519MLKEM768.Name, "kem", nil)
	}

	var result *sdc.Container
	err := publicKey.WithSegment(func(pub []byte) error {
		peerXPub, peerKPub := pub[:x25519PubLen], pub[x25519PubLen:]

		ephPub, ephPriv, genErr := refcore.X25519GenerateKeyPair()
		if genErr != nil {
			return vaulterrors.WithAlgorithm(vaulterrors.ErrCryptoOperationFailed, algorithm.HybridX25519MLKEM768.Name, "kem", genErr)
		}
		defer refcore.Wipe(ephPriv)

		xSecret, dhErr := refcore.X25519SharedSecret(ephPriv, peerXPub)
		if dhErr != nil {
			return vaulterrors.WithAlgorithm(vaulterrors.ErrCryptoOperationFailed, algorithm.HybridX25519MLKEM768.Name, "kem", dhErr)
		}
		defer refcore.Wipe(xSecret)

		ct, kSecret, encErr := refcore.MLKEMEncapsulate(mlkem768Name, peerKPub)
		if encErr != nil {
			return vaulterrors.WithAlgorithm(vaulterrors.ErrCryptoOperationFailed, algorithm.HybridX25519MLKEM768.Name, "kem", encErr)
		}
		defer refcore.Wipe(kSecret)

		combined, kdfErr := combine(xSecret, kSecret)
		if kdfErr != nil {
			return vaulterrors.WithAlgorithm(vaulterrors.ErrCryptoOperationFailed, algorithm.HybridX25519MLKEM768.Name, "kem", kdfErr)
		}
		defer refcore.Wipe(combined)

		root, newErr := sdc.NewFrom(combined, true, common.ArenaAuto())
		if newErr != nil {
			return vaulterrors.WithAlgorithm(vaulterrors.ErrAllocationFailed, algorithm.HybridX25519MLKEM768.Name, "kem", newErr)
		}
		if _, childErr := root.AddChildFrom(ephPub, true, common.ArenaAuto()); childErr != nil {
			root.Close()
			return childErr
		}
		if _, childErr := root.AddChildFrom(ct, true, common.ArenaAuto()); childErr != nil {
			root.Close()
			return childErr
		}
		result = root
		return nil
	})
	if err != nil {
		if result != nil {
			result.Close()
		}
		return nil, err
	}
	return result, nil
}

// Decapsulate implements strategy.KEM. ciphertext is the flat
// concatenation eph_pub(32) || ml_kem_768_ciphertext(1088), matching the
// catalog's combined Ciphertext size for this algorithm-id.
func (s *hybridStrategy) Decapsulate(privateKey, ciphertext *sdc.Container) (*sdc.Container, error) {
	sizes, ok := params.Lookup(algorithm.HybridX25519MLKEM768.Name)
	if !ok || privateKey.ByteLength() != sizes.PrivateKey || ciphertext.ByteLength() != sizes.Ciphertext {
		return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrSizeMismatch, algorithm.HybridX25519MLKEM768.Name, "kem", nil)
	}

	var result *sdc.Container
	err := privateKey.WithSegment(func(priv []byte) error {
		return ciphertext.WithSegment(func(ct []byte) error {
			myXPriv, myKPriv := priv[:x25519PrivLen], priv[x25519PrivLen:]
			ephPub, kCiphertext := ct[:x25519PubLen], ct[x25519PubLen:]

			xSecret, dhErr := refcore.X25519SharedSecret(myXPriv, ephPub)
			if dhErr != nil {
				return vaulterrors.WithAlgorithm(vaulterrors.ErrCryptoOperationFailed, algorithm.HybridX25519MLKEM768.Name, "kem", dhErr)
			}
			defer refcore.Wipe(xSecret)

			kSecret, decErr := refcore.MLKEMDecapsulate(mlkem768Name, myKPriv, kCiphertext)
			if decErr != nil {
				return vaulterrors.WithAlgorithm(vaulterrors.ErrCryptoOperationFailed, algorithm.HybridX25519MLKEM768.Name, "kem", decErr)
			}
			defer refcore.Wipe(kSecret)

			combined, kdfErr := combine(xSecret, kSecret)
			if kdfErr != nil {
				return vaulterrors.WithAlgorithm(vaulterrors.ErrCryptoOperationFailed, algorithm.HybridX25519MLKEM768.Name, "kem", kdfErr)
			}
			defer refcore.Wipe(combined)

			out, newErr := sdc.NewFrom(combined, true, common.ArenaAuto())
			if newErr != nil {
				return vaulterrors.WithAlgorithm(vaulterrors.ErrAllocationFailed, algorithm.HybridX25519MLKEM768.Name, "kem", newErr)
			}
			result = out
			return nil
		})
	})
	if err != nil {
		if result != nil {
			result.Close()
		}
		return nil, err
	}
	return result, nil
}

// combine derives the final 32-byte shared secret by hashing the
// concatenation of both component secrets under a fixed domain-separation
// label before hashing.
func combine(xSecret, kSecret []byte) ([]byte, error) {
	r := hkdf.New(sha256.New, append(append([]byte(nil), xSecret...), kSecret...), nil, []byte(domainTag))
	out := make([]byte, 32)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, err
	}
	return out, nil
}
