// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package sdc implements the Sensitive Data Container: an off-heap,
// hierarchical, RAII-style byte region that owns secret material and
// guarantees zeroization on release even under concurrency and partial
// failure.
//
// Each Container owns a region obtained from an arena.Scope (see package
// arena). That region is an ordinary Go-heap slice allocated once and never
// resized; it is not off the garbage-collected heap and is not returned to
// the OS. Closing the container wipes the region with a compiler-opaque
// overwrite before its scope is closed.
package sdc

import (
	"sync"

	"github.com/qvault/crypto/arena"
	vaulterrors "github.com/qvault/crypto/errors"
	"github.com/qvault/crypto/internal/refcore"
)

// Container is the Sensitive Data Container (SDC). The zero value is not
// usable; construct one with New or NewFrom.
type Container struct {
	mu       sync.Mutex
	segment  []byte
	scope    arena.Scope
	children []*Container
	alive    bool

	// shadowSource retains a caller-owned slice only long enough to wipe
	// it; it is never read after construction (invariant 6, spec §3).
	shadowSource []byte
}

// New allocates a fresh, zero-filled container of the given size in the
// given arena mode.
func New(size int, mode arena.Mode) (*Container, error) {
	if size <= 0 {
		return nil, vaulterrors.ErrAllocationFailed
	}
	scope, err := arena.Open(mode)
	if err != nil {
		return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrAllocationFailed, "", "", err)
	}
	seg, err := scope.Alloc(size)
	if err != nil {
		scope.Close()
		return nil, vaulterrors.WithAlgorithm(vaulterrors.ErrAllocationFailed, "", "", err)
	}
	return &Container{segment: seg, scope: scope, alive: true}, nil
}

// NewFrom builds a container by copying bytes. When takeOwnership is true,
// the source slice is wiped in place immediately after the copy and must
// not be used again by the caller.
func NewFrom(bytes []byte, takeOwnership bool, mode arena.Mode) (*Container, error) {
	if bytes == nil {
		return nil, vaulterrors.ErrAllocationFailed
	}
	c, err := New(len(bytes), mode)
	if err != nil {
		return nil, err
	}
	copy(c.segment, bytes)
	if takeOwnership {
		refcore.Wipe(bytes)
	}
	return c, nil
}

// AddChild allocates a new, zero-filled container and appends it as a
// child of c, sharing c's lifetime envelope.
func (c *Container) AddChild(size int, mode arena.Mode) (*Container, error) {
	c.mu.Lock()
	if !c.alive {
		c.mu.Unlock()
		return nil, vaulterrors.ErrAlreadyClosed
	}
	c.mu.Unlock()

	child, err := New(size, mode)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if !c.alive {
		c.mu.Unlock()
		child.Close()
		return nil, vaulterrors.ErrAlreadyClosed
	}
	c.children = append(c.children, child)
	c.mu.Unlock()
	return child, nil
}

// AddChildFrom is AddChild seeded with bytes; see NewFrom.
func (c *Container) AddChildFrom(bytes []byte, takeOwnership bool, mode arena.Mode) (*Container, error) {
	c.mu.Lock()
	if !c.alive {
		c.mu.Unlock()
		return nil, vaulterrors.ErrAlreadyClosed
	}
	c.mu.Unlock()

	child, err := NewFrom(bytes, takeOwnership, mode)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if !c.alive {
		c.mu.Unlock()
		child.Close()
		return nil, vaulterrors.ErrAlreadyClosed
	}
	c.children = append(c.children, child)
	c.mu.Unlock()
	return child, nil
}

// Child returns the i-th child, or nil if absent.
func (c *Container) Child(i int) (*Container, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.alive {
		return nil, vaulterrors.ErrAlreadyClosed
	}
	if i < 0 || i >= len(c.children) {
		return nil, nil
	}
	return c.children[i], nil
}

// ChildCount reports how many children are currently attached.
func (c *Container) ChildCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.children)
}

// ByteLength returns the fixed length of the segment (invariant 1).
func (c *Container) ByteLength() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.segment)
}

// IsAlive reports the monotone alive flag (invariant 3).
func (c *Container) IsAlive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.alive
}

// WithSegment calls fn with a direct read/write view of the segment, valid
// only for the duration of the call; the view must not escape fn. This is
// the sole way strategy implementations reach the underlying bytes for a
// single native call.
func (c *Container) WithSegment(fn func([]byte) error) error {
	c.mu.Lock()
	if !c.alive {
		c.mu.Unlock()
		return vaulterrors.ErrAlreadyClosed
	}
	seg := c.segment
	c.mu.Unlock()
	return fn(seg)
}

// ExportToHeap copies the segment contents into a fresh caller-heap slice.
// This is a one-time, explicit confidentiality downgrade: the returned
// bytes are no longer protected by the container's wipe-on-close guarantee.
func (c *Container) ExportToHeap() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.alive {
		return nil, vaulterrors.ErrAlreadyClosed
	}
	out := make([]byte, len(c.segment))
	copy(out, c.segment)
	return out, nil
}

// SetShadowSource attaches a caller-owned slice that must be wiped
// alongside this container's own segment, in addition to whatever NewFrom
// already wiped at construction (invariant 6: defensive re-wipe at close).
// It is used when a container is constructed by ingesting a slice with
// move semantics from a layer above sdc (e.g. a strategy reusing a
// caller-supplied plaintext buffer).
func (c *Container) SetShadowSource(src []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.alive {
		c.shadowSource = src
	}
}

// Close implements the three-phase close protocol (spec §4.3). It is safe
// to call concurrently and repeatedly: only the first caller to observe
// alive does any work (invariant 2, idempotent close).
func (c *Container) Close() {
	// Phase 1 — snapshot under lock.
	c.mu.Lock()
	if !c.alive {
		c.mu.Unlock()
		return
	}
	snapshot := c.children
	c.children = nil
	c.mu.Unlock()

	// Phase 2 — cascade outside the lock, reverse insertion order so later
	// children (which may reference earlier siblings' layouts) unwind
	// first. No lock is held here, so a child that calls back into this
	// parent during its own close cannot deadlock against us.
	for i := len(snapshot) - 1; i >= 0; i-- {
		snapshot[i].Close()
	}

	// Phase 3 — final wipe under lock. Any child appended between phase 1
	// and here (by a racer that still observed alive==true) is caught and
	// closed too.
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.alive {
		return
	}
	for i := len(c.children) - 1; i >= 0; i-- {
		c.children[i].Close()
	}
	c.children = nil

	refcore.Wipe(c.segment)
	if c.shadowSource != nil {
		refcore.Wipe(c.shadowSource)
		c.shadowSource = nil
	}
	c.scope.Close()
	c.alive = false
}
