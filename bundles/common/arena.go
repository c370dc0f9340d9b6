// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package common

import "github.com/qvault/crypto/arena"

// ArenaAuto is the allocator mode every bundle uses for its own output
// containers: resolved once from environment hints, not hard-coded to
// Confined or Shared by the strategy layer.
func ArenaAuto() arena.Mode { return arena.Auto }
