// Copyright (c) 2026 marsAI. All rights reserved.

/*
Package uuid provides time-ordered unique identifiers for the festival.

It wraps google/uuid to generate Version 7 values. They sort by creation
time, which keeps PostgreSQL B-tree indexes compact, and they double as
unguessable draft capabilities.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new UUIDv7 string.
func New() string {
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}

	return id.String()
}

// # Checks

// Valid reports whether s is a canonical UUID string of any version.
func Valid(s string) bool {
	if len(s) != 36 {
		return false
	}
	return uuid.Validate(s) == nil
}
