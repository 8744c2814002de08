// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package twist

import (
	"sort"
	"strings"
	"testing"
)

func team(names ...string) []Entry {
	entries := make([]Entry, len(names))
	for i, name := range names {
		entries[i] = Entry{ID: string(rune('1' + i)), Name: name, Emoji: DefaultEmoji}
	}
	return entries
}

func ids(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func sortedIDs(entries []Entry) []string {
	out := ids(entries)
	sort.Strings(out)
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApply_Reverse(t *testing.T) {
	members := team("Alice", "Bob", "Carol")

	res := Apply(NewRand(1), members, Reverse)

	if !res.Applied {
		t.Error("Expected reverse to be applied")
	}
	if res.Description != "Reversed alphabetical order" {
		t.Errorf("Unexpected description: %q", res.Description)
	}

	var names []string
	for _, e := range res.Order {
		names = append(names, e.Name)
	}
	expected := []string{"Carol", "Bob", "Alice"}
	if !equalStrings(names, expected) {
		t.Errorf("Expected %v, got %v", expected, names)
	}
}

func TestApply_ReverseIdempotent(t *testing.T) {
	members := team("delta", "Alpha", "charlie", "Bravo")

	once := Apply(NewRand(1), members, Reverse)
	twice := Apply(NewRand(2), once.Order, Reverse)

	if !equalStrings(ids(once.Order), ids(twice.Order)) {
		t.Errorf("Reverse not idempotent: %v vs %v", ids(once.Order), ids(twice.Order))
	}

	// Byte-wise comparison: lowercase sorts after uppercase
	if once.Order[0].Name != "delta" || once.Order[3].Name != "Alpha" {
		t.Errorf("Expected case-sensitive ordering, got %v", once.Order)
	}
}

func TestApply_ReverseStableOnDuplicateNames(t *testing.T) {
	members := []Entry{
		{ID: "a", Name: "Sam"},
		{ID: "b", Name: "Sam"},
		{ID: "c", Name: "Ann"},
	}

	res := Apply(NewRand(1), members, Reverse)

	expected := []string{"a", "b", "c"}
	if !equalStrings(ids(res.Order), expected) {
		t.Errorf("Expected stable order %v, got %v", expected, ids(res.Order))
	}
}

func TestApply_RandomSkip(t *testing.T) {
	members := team("Alice", "Bob", "Carol", "Dave")

	for seed := uint64(0); seed < 20; seed++ {
		res := Apply(NewRand(seed), members, RandomSkip)

		if !res.Applied {
			t.Fatalf("seed %d: expected applied", seed)
		}
		if len(res.Order) != len(members)-1 {
			t.Fatalf("seed %d: expected %d entries, got %d", seed, len(members)-1, len(res.Order))
		}

		// The skipped member is the one missing from the order
		present := map[string]bool{}
		for _, e := range res.Order {
			if present[e.ID] {
				t.Fatalf("seed %d: duplicate member %s", seed, e.ID)
			}
			present[e.ID] = true
		}
		var skipped string
		for _, m := range members {
			if !present[m.ID] {
				skipped = m.Name
			}
		}
		if res.Description != "Skipped "+skipped {
			t.Errorf("seed %d: description %q does not name %q", seed, res.Description, skipped)
		}
	}
}

func TestApply_RandomSkipSingleMember(t *testing.T) {
	members := team("Alice")

	res := Apply(NewRand(1), members, RandomSkip)

	if res.Applied {
		t.Error("Expected skip to be a no-op for one member")
	}
	if len(res.Order) != 1 || res.Order[0].Name != "Alice" {
		t.Errorf("Expected [Alice], got %v", res.Order)
	}
	if res.Description != "Not enough members to skip" {
		t.Errorf("Unexpected description: %q", res.Description)
	}
}

func TestApply_RandomSkipEmpty(t *testing.T) {
	res := Apply(NewRand(1), nil, RandomSkip)
	if res.Applied || len(res.Order) != 0 {
		t.Errorf("Expected empty no-op, got %+v", res)
	}
}

func TestApply_DoubleTurn(t *testing.T) {
	members := team("Alice", "Bob", "Carol")

	for seed := uint64(0); seed < 20; seed++ {
		res := Apply(NewRand(seed), members, DoubleTurn)

		if !res.Applied {
			t.Fatalf("seed %d: expected applied", seed)
		}
		if len(res.Order) != len(members)+1 {
			t.Fatalf("seed %d: expected %d entries, got %d", seed, len(members)+1, len(res.Order))
		}

		counts := map[string]int{}
		for _, e := range res.Order {
			counts[e.ID]++
		}
		doubled := 0
		for _, m := range members {
			switch counts[m.ID] {
			case 1:
			case 2:
				doubled++
			default:
				t.Fatalf("seed %d: member %s appears %d times", seed, m.ID, counts[m.ID])
			}
		}
		if doubled != 1 {
			t.Fatalf("seed %d: expected exactly one doubled member, got %d", seed, doubled)
		}

		last := res.Order[len(res.Order)-1]
		if counts[last.ID] != 2 {
			t.Errorf("seed %d: expected last entry to be the doubled member", seed)
		}
		if res.Description != last.Name+" goes twice!" {
			t.Errorf("seed %d: unexpected description %q", seed, res.Description)
		}
	}
}

func TestApply_DoubleTurnEmpty(t *testing.T) {
	res := Apply(NewRand(1), []Entry{}, DoubleTurn)
	if res.Applied {
		t.Error("Expected double turn to be a no-op on empty input")
	}
	if res.Description != "No members available" {
		t.Errorf("Unexpected description: %q", res.Description)
	}
}

func TestApply_PairUp(t *testing.T) {
	testCases := []struct {
		size     int
		expected int
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 2},
		{4, 2},
		{7, 4},
	}

	names := []string{"A", "B", "C", "D", "E", "F", "G"}

	for _, tc := range testCases {
		members := team(names[:tc.size]...)
		res := Apply(NewRand(uint64(tc.size)), members, PairUp)

		if !res.Applied {
			t.Errorf("size %d: expected applied", tc.size)
		}
		if len(res.Order) != tc.expected {
			t.Errorf("size %d: expected %d entries, got %d", tc.size, tc.expected, len(res.Order))
		}

		// Every input member lands in exactly one entry
		seen := map[string]int{}
		for _, e := range res.Order {
			if len(e.PairedIDs) == 0 {
				seen[e.ID]++
				continue
			}
			if e.Emoji != PairEmoji {
				t.Errorf("size %d: pair entry has emoji %q", tc.size, e.Emoji)
			}
			if e.ID != PairID(e.PairedIDs[0], e.PairedIDs[1]) {
				t.Errorf("size %d: unexpected pair id %q", tc.size, e.ID)
			}
			if !strings.Contains(e.Name, " & ") {
				t.Errorf("size %d: unexpected pair name %q", tc.size, e.Name)
			}
			for _, id := range e.PairedIDs {
				seen[id]++
			}
		}
		for _, m := range members {
			if seen[m.ID] != 1 {
				t.Errorf("size %d: member %s grouped %d times", tc.size, m.ID, seen[m.ID])
			}
		}
	}
}

func TestApply_DefaultShuffle(t *testing.T) {
	members := team("Alice", "Bob", "Carol", "Dave", "Eve")

	for _, token := range []string{Random, "", "emoji_sort", "REVERSE"} {
		res := Apply(NewRand(7), members, token)

		if res.Applied {
			t.Errorf("%q: expected no twist", token)
		}
		if res.Description != "Random order (no twist)" {
			t.Errorf("%q: unexpected description %q", token, res.Description)
		}
		if !equalStrings(sortedIDs(res.Order), sortedIDs(members)) {
			t.Errorf("%q: order is not a permutation: %v", token, ids(res.Order))
		}
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	members := team("Alice", "Bob", "Carol", "Dave")
	before := ids(members)

	for _, token := range []string{Random, Reverse, RandomSkip, DoubleTurn, PairUp} {
		Apply(NewRand(3), members, token)
		if !equalStrings(ids(members), before) {
			t.Fatalf("%s mutated input: %v", token, ids(members))
		}
	}
}

func TestApply_DeterministicWithSeed(t *testing.T) {
	members := team("Alice", "Bob", "Carol", "Dave", "Eve", "Frank")

	a := Apply(NewRand(42), members, Random)
	b := Apply(NewRand(42), members, Random)

	if !equalStrings(ids(a.Order), ids(b.Order)) {
		t.Errorf("Same seed gave different orders: %v vs %v", ids(a.Order), ids(b.Order))
	}
}

func TestShuffleIsFair(t *testing.T) {
	members := team("A", "B", "C")
	rng := NewRand(99)

	// Each member should lead roughly a third of the time
	firsts := map[string]int{}
	const rounds = 3000
	for i := 0; i < rounds; i++ {
		res := Apply(rng, members, Random)
		firsts[res.Order[0].ID]++
	}

	for _, m := range members {
		if firsts[m.ID] < rounds/3-200 || firsts[m.ID] > rounds/3+200 {
			t.Errorf("Member %s first %d times out of %d", m.ID, firsts[m.ID], rounds)
		}
	}
}

func TestNormalize(t *testing.T) {
	testCases := map[string]string{
		"":            Random,
		"random":      Random,
		"reverse":     Reverse,
		"random_skip": RandomSkip,
		"double_turn": DoubleTurn,
		"pair_up":     PairUp,
		"skip_one":    Random,
		"length_sort": Random,
	}

	for input, expected := range testCases {
		if got := Normalize(input); got != expected {
			t.Errorf("Normalize(%q) = %q, expected %q", input, got, expected)
		}
	}
}

func TestCatalogCoversNormalizedTokens(t *testing.T) {
	catalog := Catalog()
	if catalog[0].ID != Random {
		t.Errorf("Expected default twist first, got %s", catalog[0].ID)
	}
	for _, info := range catalog {
		if Normalize(info.ID) != info.ID {
			t.Errorf("Catalog lists unrecognized twist %q", info.ID)
		}
	}
}

func TestPairID_OrderIndependent(t *testing.T) {
	if PairID("b", "a") != PairID("a", "b") {
		t.Errorf("Expected same id, got %q and %q", PairID("b", "a"), PairID("a", "b"))
	}
	if PairID("a", "b") != "pair:a+b" {
		t.Errorf("Unexpected pair id %q", PairID("a", "b"))
	}
	if !IsPairID(PairID("x", "y")) || IsPairID("x") {
		t.Error("IsPairID does not match PairID")
	}
}

func TestApply_PairUpStableIDAcrossShuffles(t *testing.T) {
	members := team("Alice", "Bob")
	pairIDs := map[string]bool{}
	names := map[string]bool{}

	for seed := uint64(0); seed < 40; seed++ {
		res := Apply(NewRand(seed), members, PairUp)
		pair := res.Order[0]

		pairIDs[pair.ID] = true
		names[pair.Name] = true

		// Name follows speaking order
		first := map[string]string{members[0].ID: "Alice", members[1].ID: "Bob"}[pair.PairedIDs[0]]
		if !strings.HasPrefix(pair.Name, first+" & ") {
			t.Errorf("seed %d: name %q does not follow paired ids %v", seed, pair.Name, pair.PairedIDs)
		}
	}

	if len(pairIDs) != 1 {
		t.Errorf("Expected one pair id across shuffles, got %v", pairIDs)
	}
	if len(names) != 2 {
		t.Errorf("Expected both speaking orders over 40 seeds, got %v", names)
	}
}
