// Copyright (c) 2026 marsAI. All rights reserved.

// Package ctxkey defines the typed context keys shared by middleware and
// [ctxutil]. The unexported key type keeps them distinct from string keys
// set by other packages.
package ctxkey

type key string

// Per-request values.
const (
	// KeyRequestID holds the X-Request-ID correlation value.
	KeyRequestID key = "request_id"
	// KeyUser holds the verified access token claims ([sec.AuthClaims]).
	KeyUser key = "user"
	// KeyLogger holds the request-scoped [*log/slog.Logger].
	KeyLogger key = "logger"
	// KeyLocale holds the negotiated fr/en [language.Tag].
	KeyLocale key = "locale"
)
