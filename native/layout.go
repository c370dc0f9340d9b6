// Copyright (C) 2026 QVault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package native

// Layout is the closed set of argument/return tokens the C-ABI grammar
// allows: an off-heap pointer, or one of three width-preserving scalar
// primitives. The Linker is the sole authority that knows how to marshal
// a Sensitive Data Container's segment pointer as an Address argument.
type Layout int

const (
	Address Layout = iota
	I32
	I64
	U8
)

func (l Layout) String() string {
	switch l {
	case Address:
		return "address"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case U8:
		return "u8"
	default:
		return "unknown"
	}
}
