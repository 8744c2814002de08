// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package spin runs a stand-up spin: it resolves the present members, applies
a twist and records the resulting order.

	svc := spin.NewService(store.New(conn), twist.DefaultRand(), ident.UUIDGenerator{})
	result, err := svc.Spin(ctx, memberIDs, "double_turn")

Each spin writes one order record per position (1-based) under a fresh
session ID, all in one transaction and with one shared timestamp. The twist
type is stored only when the twist changed the order; otherwise "none".

Errors:

  - ErrNoMembersSelected: the id list was empty
  - ErrNoValidMembers: none of the ids is an active member
  - anything else comes from the store, wrapped
*/
package spin
