// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package chacha20poly1305 installs the ChaCha20-Poly1305 AEAD strategy.
package chacha20poly1305

import (
	"crypto/rand"
	"sync"

	"github.com/qvault/crypto/algorithm"
	"github.com/qvault/crypto/bundles/common"
	vaulterrors "github.com/qvault/crypto/errors"
	"github.com/qvault/crypto/internal/refcore"
	"github.com/qvault/crypto/params"
	"github.com/qvault/crypto/registry"
	"github.com/qvault/crypto/sdc"
	"github.com/qvault/crypto/strategy"
)

var registerOnce sync.Once

const algorithmName = "ChaCha20-Poly1305"

// Register installs the ChaCha20-Poly1305 AEAD strategy.
func Register() {
	registerOnce.Do(func() {
		sizes, _ := algorithm.ChaCha20Poly1305.ParameterSizes()
		_ = registry.Register(algorithmName, &aeadStrategy{}, []strategy.Capability{
			strategy.CapabilityCipher,
			strategy.CapabilityAEADCipher,
		}, common.SymmetricKeyGenerator{AlgorithmID: algorithmName, KeySize: sizes.PrivateKey})
	})
}

type aeadStrategy struct {
	mu  sync.Mutex
	aad []byte
}

func (s *aeadStrategy) UpdateAAD(aad []byte) strategy.AEADCipher {
	s.mu.Lock()
	s.aad = aad
	s.mu.Unlock()
	return s
}

func (s *aeadStrategy) snapshotAAD() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aad
}

func (s *aeadStrategy) IV(source strategy.IVSource) (*sdc.Container, error) {
	sizes, _ := params.Lookup(algorithmName)
	switch {
	case source.Container != nil:
		if source.Container.ByteLength() != sizes.IVAEAD {
			return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrInvalidIV, algorithmName, "aead", nil)
		}
		return source.Container, nil
	case source.Bytes != nil:
		if len(source.Bytes) != sizes.IVAEAD {
			return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrInvalidIV, algorithmName, "aead", nil)
		}
		return sdc.NewFrom(source.Bytes, true, common.ArenaAuto())
	case source.Length > 0:
		if source.Length != sizes.IVAEAD {
			return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrInvalidIV, algorithmName, "aead", nil)
		}
		buf := make([]byte, sizes.IVAEAD)
		if _, err := rand.Read(buf); err != nil {
			return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrAllocationFailed, algorithmName, "aead", err)
		}
		return sdc.NewFrom(buf, true, common.ArenaAuto())
	default:
		return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrInvalidIV, algorithmName, "aead", nil)
	}
}

func (s *aeadStrategy) Encrypt(key, plain *sdc.Container, chainIV bool) (*sdc.Container, error) {
	sizes, _ := params.Lookup(algorithmName)
	if key.ByteLength() != sizes.PrivateKey {
		return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrSizeMismatch, algorithmName, "aead", nil)
	}
	nonce, err := s.IV(strategy.IVSource{Length: sizes.IVAEAD})
	if err != nil {
		return nil, err
	}
	aad := s.snapshotAAD()

	var out *sdc.Container
	err = key.WithSegment(func(keyBytes []byte) error {
		return plain.WithSegment(func(plainBytes []byte) error {
			return nonce.WithSegment(func(nonceBytes []byte) error {
				aead, aErr := refcore.NewChaCha20Poly1305(keyBytes)
				if aErr != nil {
					return vaulterrors.WithAlgorithm(vaulterrors.ErrCryptoOperationFailed, algorithmName, "aead", aErr)
				}
				sealed := aead.Seal(nil, nonceBytes, plainBytes, aad)
				wire := sealed
				if chainIV {
					wire = append(append([]byte(nil), nonceBytes...), sealed...)
				}
				container, newErr := sdc.New(len(wire), common.ArenaAuto())
				if newErr != nil {
					return vaulterrors.WithAlgorithm(vaulterrors.ErrAllocationFailed, algorithmName, "aead", newErr)
				}
				if setErr := container.WithSegment(func(seg []byte) error { copy(seg, wire); return nil }); setErr != nil {
					container.Close()
					return setErr
				}
				out = container
				return nil
			})
		})
	})
	if err != nil {
		if out != nil {
			out.Close()
		}
		return nil, err
	}
	return out, nil
}

func (s *aeadStrategy) Decrypt(key, ciphertext *sdc.Container, inferIV bool) (*sdc.Container, error) {
	sizes, _ := params.Lookup(algorithmName)
	if key.ByteLength() != sizes.PrivateKey {
		return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrSizeMismatch, algorithmName, "aead", nil)
	}
	if !inferIV {
		return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrInvalidIV, algorithmName, "aead", nil)
	}
	aad := s.snapshotAAD()

	var out *sdc.Container
	err := key.WithSegment(func(keyBytes []byte) error {
		return ciphertext.WithSegment(func(wire []byte) error {
			if len(wire) < sizes.IVAEAD {
				return vaulterrors.WithAlgorithm(vaulterrors.ErrInvalidIV, algorithmName, "aead", nil)
			}
			nonceBytes, body := wire[:sizes.IVAEAD], wire[sizes.IVAEAD:]
			aead, aErr := refcore.NewChaCha20Poly1305(keyBytes)
			if aErr != nil {
				return vaulterrors.WithAlgorithm(vaulterrors.ErrCryptoOperationFailed, algorithmName, "aead", aErr)
			}
			plain, openErr := aead.Open(nil, nonceBytes, body, aad)
			if openErr != nil {
				return vaulterrors.WithAlgorithm(vaulterrors.ErrAuthenticationFailed, algorithmName, "aead", openErr)
			}
			container, newErr := sdc.New(len(plain), common.ArenaAuto())
			if newErr != nil {
				return vaulterrors.WithAlgorithm(vaulterrors.ErrAllocationFailed, algorithmName, "aead", newErr)
			}
			if setErr := container.WithSegment(func(seg []byte) error { copy(seg, plain); return nil }); setErr != nil {
				container.Close()
				return setErr
			}
			out = container
			return nil
		})
	})
	if err != nil {
		if out != nil {
			out.Close()
		}
		return nil, err
	}
	return out, nil
}
