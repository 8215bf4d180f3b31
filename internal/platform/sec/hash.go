// Copyright (c) 2026 Giftwise. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces.
package sec

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and verifies passwords using bcrypt.
//
// # Concurrency
//
// bcrypt is deliberately CPU-intensive. A bounded semaphore caps the number of
// concurrent hashing operations so that a burst of registrations or logins
// cannot monopolize every core and starve unrelated requests.
type PasswordHasher struct {
	cost int
	sem  chan struct{}
}

// NewPasswordHasher constructs a hasher with the given bcrypt cost and
// concurrency cap. A cost of 0 selects [bcrypt.DefaultCost]; a cap of 0
// defaults to the number of usable CPUs.
func NewPasswordHasher(cost, maxConcurrent int) *PasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	if maxConcurrent <= 0 {
		maxConcurrent = runtime.GOMAXPROCS(0)
	}
	return &PasswordHasher{
		cost: cost,
		sem:  make(chan struct{}, maxConcurrent),
	}
}

// Hash derives a salted bcrypt hash from the plain-text password.
//
// The salt is generated internally, so hashing the same password twice yields
// different outputs that both verify successfully.
func (h *PasswordHasher) Hash(ctx context.Context, plainTextPassword string) (string, error) {
	if err := h.acquire(ctx); err != nil {
		return "", err
	}
	defer h.release()

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), h.cost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// Verify reports whether the plain-text password matches the stored hash.
//
// The comparison inside bcrypt is constant-time. A malformed hash verifies as
// false — it never panics or surfaces an error to the caller.
func (h *PasswordHasher) Verify(ctx context.Context, plainTextPassword, existingHash string) bool {
	if err := h.acquire(ctx); err != nil {
		return false
	}
	defer h.release()

	return bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword)) == nil
}

// acquire blocks until a hashing slot is free or the caller's context ends.
func (h *PasswordHasher) acquire(ctx context.Context) error {
	// Checked upfront: select would otherwise pick randomly between a free
	// slot and an already-canceled context.
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("sec: hashing canceled: %w", err)
	}
	select {
	case h.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("sec: hashing canceled: %w", ctx.Err())
	}
}

func (h *PasswordHasher) release() {
	<-h.sem
}
