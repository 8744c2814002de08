// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package twist

import (
	"fmt"
	"sort"
	"strings"
)

// Twist tokens
const (
	Random     = "random"
	Reverse    = "reverse"
	RandomSkip = "random_skip"
	DoubleTurn = "double_turn"
	PairUp     = "pair_up"
)

// Display defaults
const (
	DefaultEmoji = "👤"
	PairEmoji    = "👥"
)

// Entry is one slot in a speaking order. Pair entries carry the ids of
// both members in PairedIDs.
type Entry struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Emoji     string   `json:"emoji"`
	PairedIDs []string `json:"paired_ids,omitempty"`
}

// Result is the outcome of applying a twist
type Result struct {
	Order       []Entry
	Applied     bool
	Description string
}

// Apply computes a speaking order for members using twistType.
// The members slice is not modified.
func Apply(rng Rand, members []Entry, twistType string) Result {
	order := make([]Entry, len(members))
	copy(order, members)

	switch twistType {
	case Reverse:
		sort.SliceStable(order, func(i, j int) bool {
			return order[i].Name > order[j].Name
		})
		return Result{Order: order, Applied: true, Description: "Reversed alphabetical order"}

	case RandomSkip:
		if len(order) <= 1 {
			return Result{Order: order, Applied: false, Description: "Not enough members to skip"}
		}
		shuffle(rng, order)
		i := rng.IntN(len(order))
		skipped := order[i]
		order = append(order[:i], order[i+1:]...)
		return Result{Order: order, Applied: true, Description: fmt.Sprintf("Skipped %s", skipped.Name)}

	case DoubleTurn:
		if len(order) == 0 {
			return Result{Order: order, Applied: false, Description: "No members available"}
		}
		shuffle(rng, order)
		lucky := order[rng.IntN(len(order))]
		order = append(order, lucky)
		return Result{Order: order, Applied: true, Description: fmt.Sprintf("%s goes twice!", lucky.Name)}

	case PairUp:
		shuffle(rng, order)
		return Result{Order: pairUp(order), Applied: true, Description: "Members paired up!"}

	default:
		shuffle(rng, order)
		return Result{Order: order, Applied: false, Description: "Random order (no twist)"}
	}
}

// pairUp merges adjacent entries; a trailing odd entry is kept as is
func pairUp(shuffled []Entry) []Entry {
	pairs := make([]Entry, 0, (len(shuffled)+1)/2)
	for i := 0; i < len(shuffled); i += 2 {
		if i+1 >= len(shuffled) {
			pairs = append(pairs, shuffled[i])
			break
		}
		a, b := shuffled[i], shuffled[i+1]
		pairs = append(pairs, Entry{
			ID:        PairID(a.ID, b.ID),
			Name:      a.Name + " & " + b.Name,
			Emoji:     PairEmoji,
			PairedIDs: []string{a.ID, b.ID},
		})
	}
	return pairs
}

const pairPrefix = "pair:"

// PairID builds the synthetic id of a pair entry. The member ids are
// sorted so a recurring pair gets the same id whoever speaks first.
func PairID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return pairPrefix + a + "+" + b
}

// IsPairID reports whether id was built by PairID
func IsPairID(id string) bool {
	return strings.HasPrefix(id, pairPrefix)
}

func shuffle(rng Rand, order []Entry) {
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
}

// Info describes a twist for pickers
type Info struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Catalog lists the recognized twists, the default first
func Catalog() []Info {
	return []Info{
		{ID: Random, Name: "🎲 Random Shuffle", Description: "Completely random order"},
		{ID: Reverse, Name: "🔄 Reverse Alpha", Description: "Reverse alphabetical order"},
		{ID: RandomSkip, Name: "⏭️ Random Skip", Description: "Shuffle and skip one person"},
		{ID: DoubleTurn, Name: "🔁 Double Turn", Description: "Someone goes twice"},
		{ID: PairUp, Name: "👥 Pair Up", Description: "Speak in pairs"},
	}
}

// Normalize returns the token that Apply will actually honor
func Normalize(twistType string) string {
	switch twistType {
	case Reverse, RandomSkip, DoubleTurn, PairUp:
		return twistType
	}
	return Random
}
