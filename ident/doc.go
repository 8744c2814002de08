// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ident generates identifiers for members, spin sessions and records.

# Session IDs

Every spin is stamped with a session ID from a Generator:

	var g ident.Generator = ident.UUIDGenerator{}
	sessionID, err := g.NewSessionID()

Session IDs must be unique: statistics group order records by session, so a
collision would silently merge two unrelated spins. UUIDGenerator is used in
production. CounterGenerator yields predictable IDs ("s-1", "s-2", ...) for
tests.

# Member IDs

	id := ident.NewMemberID()

# Record IDs

Random hex IDs for order rows:

	id, err := ident.GenerateID(16)  // 32 hex characters
*/
package ident
