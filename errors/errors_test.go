// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	vaulterrors "github.com/qvault/crypto/errors"
)

func TestWithAlgorithmMatchesSentinelByKind(t *testing.T) {
	wrapped := vaulterrors.WithAlgorithm(vaulterrors.ErrSizeMismatch, "AES-256", "cipher", nil)
	assert.ErrorIs(t, wrapped, vaulterrors.ErrSizeMismatch)
	assert.NotErrorIs(t, wrapped, vaulterrors.ErrInvalidIV)
}

func TestWithAlgorithmPreservesCauseChain(t *testing.T) {
	cause := errors.New("underlying failure")
	wrapped := vaulterrors.WithAlgorithm(vaulterrors.ErrCryptoOperationFailed, "ML-KEM-768", "kem", cause)
	assert.ErrorIs(t, wrapped, vaulterrors.ErrCryptoOperationFailed)
	assert.ErrorIs(t, wrapped, cause)
	assert.Contains(t, wrapped.Error(), "ML-KEM-768")
}

func TestErrorMessageOmitsAlgorithmWhenUnset(t *testing.T) {
	assert.Equal(t, "container already closed", vaulterrors.ErrAlreadyClosed.Error())
}
