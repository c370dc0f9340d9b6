// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package refcore

import "fmt"

func errUnknownScheme(name string) error {
	return fmt.Errorf("refcore: unknown scheme %q", name)
}
