// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package native

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vaulterrors "github.com/qvault/crypto/errors"
)

func TestInvokeRecoversBackendPanic(t *testing.T) {
	l := &Linker{backend: panicInvoker{}}
	h := &Handle{symbol: "vault_boom", params: []Layout{Address, Address, I64, Address, Address, I32}}

	status, err := l.Invoke(h, AddrArg([]byte{1}))

	assert.Equal(t, int32(0), status)
	require.Error(t, err)
	assert.True(t, errors.Is(err, vaulterrors.ErrNativePanic))
}

// panicInvoker is a backend whose invoke always panics by indexing past
// the end of a too-short args slice, standing in for a real handle/arg
// shape mismatch against a registered native symbol.
type panicInvoker struct{}

func (panicInvoker) open(string) error    { return nil }
func (panicInvoker) resolve(string) error { return nil }
func (panicInvoker) invoke(_ string, _ *Handle, args []Arg) (int32, error) {
	_ = args[5]
	return 0, nil
}

func TestInvokeSucceedsWithoutPanic(t *testing.T) {
	l := &Linker{backend: okInvoker{}}
	h := &Handle{symbol: "vault_ok", params: []Layout{Address, I64}}

	status, err := l.Invoke(h, AddrArg([]byte{1}), I64Arg(1))

	require.NoError(t, err)
	assert.Equal(t, int32(0), status)
}

type okInvoker struct{}

func (okInvoker) open(string) error    { return nil }
func (okInvoker) resolve(string) error { return nil }
func (okInvoker) invoke(_ string, _ *Handle, _ []Arg) (int32, error) {
	return 0, nil
}
