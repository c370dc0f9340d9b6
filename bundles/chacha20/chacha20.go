// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package chacha20 installs the raw ChaCha20 stream-cipher strategy.
package chacha20

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

// Register installs the ChaCha20 stream-cipher strategy.
func Register() {
	registerOnce.Do(func() {
		sizes, _ := algorithm.ChaCha20.ParameterSizes()
		_ = registry.Register(algorithm.ChaCha20.Name, &streamStrategy{}, []strategy.Capability{
			strategy.CapabilityCipher,
			strategy.CapabilityStreamCipher,
		}, common.SymmetricKeyGenerator{AlgorithmID: algorithm.ChaCha20.Name, KeySize: sizes.PrivateKey})
	})
}

type streamStrategy struct{}

func (s *streamStrategy) IV(source strategy.IVSource) (*sdc.Container, error) {
	sizes, _ := params.Lookup(algorithm.ChaCha20.Name)
	switch {
	case source.Container != nil:
		if source.Container.ByteLength() != sizes.IVConfined {
			return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrInvalidIV, algorithm.ChaCha20.Name, "stream", nil)
		}
		return source.Container, nil
	case source.Bytes != nil:
		if len(source.Bytes) != sizes.IVConfined {
			return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrInvalidIV, algorithm.ChaCha20.Name, "stream", nil)
		}
		return sdc.NewFrom(source.Bytes, true, common.ArenaAuto())
	case source.Length > 0:
		if source.Length != sizes.IVConfined {
			return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrInvalidIV, algorithm.ChaCha20.Name, "stream", nil)
		}
		buf := make([]byte, sizes.IVConfined)
		if _, err := rand.Read(buf); err != nil {
			return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrAllocationFailed, algorithm.ChaCha20.Name, "stream", err)
		}
		return sdc.NewFrom(buf, true, common.ArenaAuto())
	default:
		return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrInvalidIV, algorithm.ChaCha20.Name, "stream", nil)
	}
}

func (s *streamStrategy) Encrypt(key, plain *sdc.Container, chainIV bool) (*sdc.Container, error) {
	sizes, _ := params.Lookup(algorithm.ChaCha20.Name)
	if key.ByteLength() != sizes.PrivateKey {
		return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrSizeMismatch, algorithm.ChaCha20.Name, "stream", nil)
	}
	iv, err := s.IV(strategy.IVSource{Length: sizes.IVConfined})
	if err != nil {
		return nil, err
	}

	var out *sdc.Container
	err = key.WithSegment(func(keyBytes []byte) error {
		return plain.WithSegment(func(plainBytes []byte) error {
			return iv.WithSegment(func(ivBytes []byte) error {
				c, cErr := refcore.NewChaCha20(keyBytes, ivBytes, 0)
				if cErr != nil {
					return vaulterrors.WithAlgorithm(vaulterrors.ErrCryptoOperationFailed, algorithm.ChaCha20.Name, "stream", cErr)
				}
				body := make([]byte, len(plainBytes))
				c.XORKeyStream(body, plainBytes)

				wire := body
				if chainIV {
					wire = append(append([]byte(nil), ivBytes...), body...)
				}
				container, newErr := sdc.New(len(wire), common.ArenaAuto())
				if newErr != nil {
					return vaulterrors.WithAlgorithm(vaulterrors.ErrAllocationFailed, algorithm.ChaCha20.Name, "stream", newErr)
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

func (s *streamStrategy) Decrypt(key, ciphertext *sdc.Container, inferIV bool) (*sdc.Container, error) {
	sizes, _ := params.Lookup(algorithm.ChaCha20.Name)
	if key.ByteLength() != sizes.PrivateKey {
		return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrSizeMismatch, algorithm.ChaCha20.Name, "stream", nil)
	}
	if !inferIV {
		return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrInvalidIV, algorithm.ChaCha20.Name, "stream", nil)
	}

	var out *sdc.Container
	err := key.WithSegment(func(keyBytes []byte) error {
		return ciphertext.WithSegment(func(wire []byte) error {
			if len(wire) < sizes.IVConfined {
				return vaulterrors.WithAlgorithm(vaulterrors.ErrInvalidIV, algorithm.ChaCha20.Name, "stream", nil)
			}
			ivBytes, body := wire[:sizes.IVConfined], wire[sizes.IVConfined:]
			c, cErr := refcore.NewChaCha20(keyBytes, ivBytes, 0)
			if cErr != nil {
				return vaulterrors.WithAlgorithm(vaulterrors.ErrCryptoOperationFailed, algorithm.ChaCha20.Name, "stream", cErr)
			}
			plain := make([]byte, len(body))
			c.XORKeyStream(plain, body)

			container, newErr := sdc.New(len(plain), common.ArenaAuto())
			if newErr != nil {
				return vaulterrors.WithAlgorithm(vaulterrors.ErrAllocationFailed, algorithm.ChaCha20.Name, "stream", newErr)
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

// StreamEncrypt implements strategy.StreamCipher for callers that manage
// their own fixed buffers instead of going through container allocation.
func (s *streamStrategy) StreamEncrypt(key *sdc.Container, in, out []byte) (int, error) {
	return s.streamXOR(key, in, out)
}

func (s *streamStrategy) StreamDecrypt(key *sdc.Container, in, out []byte) (int, error) {
	return s.streamXOR(key, in, out)
}

func (s *streamStrategy) streamXOR(key *sdc.Container, in, out []byte) (int, error) {
	sizes, _ := params.Lookup(algorithm.ChaCha20.Name)
	if key.ByteLength() != sizes.PrivateKey {
		return 0, vaulterrors.WithAlgorithm(vaulterrors.ErrSizeMismatch, algorithm.ChaCha20.Name, "stream", nil)
	}
	zeroNonce := make([]byte, sizes.IVConfined)
	var n int
	err := key.WithSegment(func(keyBytes []byte) error {
		c, err := refcore.NewChaCha20(keyBytes, zeroNonce, 0)
		if err != nil {
			return vaulterrors.WithAlgorithm(vaulterrors.ErrCryptoOperationFailed, algorithm.ChaCha20.Name, "stream", err)
		}
		c.XORKeyStream(out, in)
		n = len(in)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
