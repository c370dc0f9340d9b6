// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vaulterrors "github.com/qvault/crypto/errors"
	"github.com/qvault/crypto/registry"
	"github.com/qvault/crypto/strategy"
	"github.com/qvault/crypto/sdc"
)

type fakeCipher struct{}

func (fakeCipher) IV(strategy.IVSource) (*sdc.Container, error)                   { return nil, nil }
func (fakeCipher) Encrypt(*sdc.Container, *sdc.Container, bool) (*sdc.Container, error) { return nil, nil }
func (fakeCipher) Decrypt(*sdc.Container, *sdc.Container, bool) (*sdc.Container, error) { return nil, nil }

type fakeKeyGen struct{}

func (fakeKeyGen) GenerateKeyPair() (public, private *sdc.Container, err error) { return nil, nil, nil }

func TestRegisterAndLookup(t *testing.T) {
	registry.Reset()
	defer registry.Reset()

	err := registry.Register("FAKE-1", fakeCipher{}, []strategy.Capability{strategy.CapabilityCipher}, fakeKeyGen{})
	require.NoError(t, err)

	assert.True(t, registry.IsRegistered("FAKE-1"))
	op, err := registry.GetOperation("FAKE-1", strategy.CapabilityCipher)
	require.NoError(t, err)
	assert.IsType(t, fakeCipher{}, op)

	_, err = registry.GetOperation("FAKE-1", strategy.CapabilitySignature)
	assert.ErrorIs(t, err, vaulterrors.ErrUnsupportedCapability)

	gen, err := registry.GetKeyGenerator("FAKE-1")
	require.NoError(t, err)
	assert.IsType(t, fakeKeyGen{}, gen)
}

func TestUnregisteredLookupFails(t *testing.T) {
	registry.Reset()
	defer registry.Reset()
	_, err := registry.GetOperation("NOPE", strategy.CapabilityCipher)
	assert.ErrorIs(t, err, vaulterrors.ErrUnsupportedCapability)
}

func TestBootstrapIsIdempotentAndFreezesRegistration(t *testing.T) {
	registry.Reset()
	defer registry.Reset()

	calls := 0
	register := func() {
		calls++
		_ = registry.Register("FAKE-2", fakeCipher{}, []strategy.Capability{strategy.CapabilityCipher}, nil)
	}
	registry.Bootstrap(register)
	registry.Bootstrap(register)
	assert.Equal(t, 1, calls)

	err := registry.Register("FAKE-3", fakeCipher{}, []strategy.Capability{strategy.CapabilityCipher}, nil)
	assert.Error(t, err)
}
