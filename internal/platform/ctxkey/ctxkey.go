// Copyright (c) 2026 Giftwise. All rights reserved.

// Package ctxkey defines typed context keys used by middleware and handlers.
//
// # Safety
//
// Per-request values (identity, request ID, logger) are stored under keys of a
// private type. Even if another package stores a value under the string
// "request_id", it cannot collide with these keys because [context.Context]
// matches on both the value and the type.
package ctxkey

// key is an unexported type used for context keys to ensure type safety.
type key string

const (
	// KeyRequestID is the context key for the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyIdentity is the context key for the authenticated [sec.Identity].
	KeyIdentity key = "identity"

	// KeyLogger is the context key for the per-request [*log/slog.Logger].
	KeyLogger key = "logger"
)
