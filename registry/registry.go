// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package registry is the two-map Strategy Registry: algorithm-id to
// operation strategy, and algorithm-id to key generator. It is populated
// exactly once, single-threaded, by Strategy Bundle registration;
// lookups afterward take only the shared read lock (they are not
// lock-free), mirroring the idempotent,
// order-preserving module registration this repository has always used
// for wiring a family of installable units into one central table by a
// short stable key.
package registry

import (
	"sync"

	vaulterrors "github.com/qvault/crypto/errors"
	"github.com/qvault/crypto/strategy"
)

type entry struct {
	operation    any // one of the strategy.* capability interfaces
	capabilities map[strategy.Capability]bool
	keyGenerator strategy.KeyGenerator
}

var (
	mu          sync.RWMutex
	entries     = map[string]*entry{}
	initialized bool
	bootstrap   sync.Once
)

// Register installs operation (implementing one or more capability
// interfaces, tagged explicitly by caps) and an optional key generator
// for algorithmID. Bundles call this from their Register function, before
// Bootstrap marks the registry read-only. Calling it after Bootstrap has
// run is a caller bug and returns an error rather than silently mutating
// a registry lookups may already be reading.
func Register(algorithmID string, operation any, caps []strategy.Capability, keyGen strategy.KeyGenerator) error {
	mu.Lock()
	defer mu.Unlock()
	if initialized {
		return vaulterrors.WithAlgorithm(vaulterrors.ErrUnsupportedCapability, algorithmID, "registry", nil)
	}
	set := make(map[strategy.Capability]bool, len(caps))
	for _, c := range caps {
		set[c] = true
	}
	entries[algorithmID] = &entry{operation: operation, capabilities: set, keyGenerator: keyGen}
	return nil
}

// Bootstrap freezes the registry after all bundles have registered.
// Subsequent Register calls fail; subsequent lookups never take the
// write lock again. Idempotent: only the first call has any effect.
func Bootstrap(register func()) {
	bootstrap.Do(func() {
		register()
		mu.Lock()
		initialized = true
		mu.Unlock()
	})
}

// GetOperation downcasts the registered strategy for id to the requested
// capability, or UnsupportedCapability if the registered strategy lacks
// it (or id is unregistered).
func GetOperation(id string, want strategy.Capability) (any, error) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := entries[id]
	if !ok || !e.capabilities[want] {
		return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrUnsupportedCapability, id, string(want), nil)
	}
	return e.operation, nil
}

// GetKeyGenerator returns the registered key generator for id.
func GetKeyGenerator(id string) (strategy.KeyGenerator, error) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := entries[id]
	if !ok || e.keyGenerator == nil {
		return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrUnsupportedCapability, id, "key_generator", nil)
	}
	return e.keyGenerator, nil
}

// IsRegistered reports whether id has any registered strategy.
func IsRegistered(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := entries[id]
	return ok
}

// Reset clears the registry. Test-only: production Bootstrap is one-shot
// for the life of the process.
func Reset() {
	mu.Lock()
	entries = map[string]*entry{}
	initialized = false
	mu.Unlock()
	bootstrap = sync.Once{}
}
