// Copyright (c) 2026 marsAI. All rights reserved.

/*
Package pointer provides generic helpers for optional values.

Partial updates decode into pointer fields; these helpers collapse them
back onto the stored value.
*/
package pointer

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// Fallback safely dereferences a pointer.
// If the pointer is nil, it returns the provided fallback value instead.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
