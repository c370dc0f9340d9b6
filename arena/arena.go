// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package arena selects and opens the allocator scope regime backing each
// Sensitive Data Container segment: Confined (single-thread), Shared
// (cross-thread, caller-synchronized), or Auto (environment-probed).
//
// Go has no compacting GC and no native off-heap allocator in the standard
// library, so "off-heap" here means a byte slice allocated once and never
// resized, paired with a scope that is the sole owner of that allocation
// and the sole authority permitted to release it. The scope abstraction
// exists so a future cgo-backed allocator (mmap/mlock) can be dropped in
// without changing sdc.Container at all.
package arena

import (
	"os"
	"sync"
)

// Mode selects the allocator scope regime for a new segment.
type Mode int

const (
	// Confined: the segment is accessed only by the creating goroutine's
	// logical owner. Fastest; strongest safety story.
	Confined Mode = iota
	// Shared: the segment may be accessed from any goroutine; the
	// container's own lock is the only synchronization the library
	// provides.
	Shared
	// Auto: resolved once per process from environment hints.
	Auto
)

func (m Mode) String() string {
	switch m {
	case Confined:
		return "confined"
	case Shared:
		return "shared"
	case Auto:
		return "auto"
	default:
		return "unknown"
	}
}

// Scope owns exactly one segment allocation and is the only thing allowed
// to release it back to the process.
type Scope interface {
	Alloc(size int) ([]byte, error)
	Close()
}

// Open resolves mode (detecting for Auto) and returns a fresh Scope.
// Selection never fails: Auto always resolves to Confined or Shared.
func Open(mode Mode) (Scope, error) {
	resolved := mode
	if mode == Auto {
		resolved = detect()
	}
	switch resolved {
	case Shared:
		return &sharedScope{}, nil
	default:
		return &confinedScope{}, nil
	}
}

// confinedScope and sharedScope both allocate plain Go byte slices; the
// distinction is a documented usage contract (confined: single owning
// goroutine only) rather than a distinct memory-protection mechanism,
// since Go offers no userspace MMU control without cgo. Concurrency-safety
// for Shared mode is provided entirely by sdc.Container's own lock.
type confinedScope struct{}

func (s *confinedScope) Alloc(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func (s *confinedScope) Close() {}

type sharedScope struct{}

func (s *sharedScope) Alloc(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func (s *sharedScope) Close() {}

// detectionHints is the closed list of environment signals that flip Auto
// toward Shared: QVAULT_ARENA_HINT set to "shared" (or "confined" to force
// Confined), otherwise a server-class mark recorded via MarkServerClass.
// GOMAXPROCS is not consulted.
var (
	detectOnce    sync.Once
	detectedMode  Mode
	serverClassMu sync.Mutex
	serverClass   bool
)

// MarkServerClass lets an embedding process (e.g. one that starts an
// http.Server) declare itself server-class for the purposes of Auto
// detection. Safe to call before the first Open(Auto).
func MarkServerClass() {
	serverClassMu.Lock()
	serverClass = true
	serverClassMu.Unlock()
}

func detect() Mode {
	detectOnce.Do(func() {
		if hint := os.Getenv("QVAULT_ARENA_HINT"); hint == "shared" {
			detectedMode = Shared
			return
		}
		if hint := os.Getenv("QVAULT_ARENA_HINT"); hint == "confined" {
			detectedMode = Confined
			return
		}
		serverClassMu.Lock()
		sc := serverClass
		serverClassMu.Unlock()
		if sc {
			detectedMode = Shared
			return
		}
		detectedMode = Confined
	})
	return detectedMode
}
