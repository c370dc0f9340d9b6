// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package refcore

import "crypto/rand"

// rngReader is the randomness source for X25519 key generation and for
// SLH-DSA key generation and signing in this package. ML-KEM and ML-DSA
// key generation do not read it; they use circl's own default source.
var rngReader = rand.Reader
