// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ident

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces spin session identifiers. Implementations must never
// return the same value twice, since the stats aggregator groups records
// by session id.
type Generator interface {
	NewSessionID() (string, error)
}

// UUIDGenerator issues random (version 4) UUIDs
type UUIDGenerator struct{}

func (UUIDGenerator) NewSessionID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate session ID: %w", err)
	}
	return id.String(), nil
}

// CounterGenerator issues "<prefix><n>" with a monotonically increasing n.
// Unique only within one process; meant for tests and single-node tools.
type CounterGenerator struct {
	Prefix string
	n      atomic.Uint64
}

func (c *CounterGenerator) NewSessionID() (string, error) {
	return c.Prefix + strconv.FormatUint(c.n.Add(1), 10), nil
}

// NewMemberID returns a fresh member identifier
func NewMemberID() string {
	return uuid.NewString()
}

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}
