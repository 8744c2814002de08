// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package stats aggregates recorded speaking orders into per-member statistics.

# Aggregation

Aggregate is pure and works on any record set:

	results, err := stats.Aggregate(records)
	if errors.Is(err, stats.ErrNoData) {
		// nothing recorded
	}

For every member it counts total appearances, how often they spoke first
(position 1) and last (position equal to the session size), and their mean
position rounded to two decimals. A member alone in a session counts as
first, not last.

Session size is the number of records of that session inside the record
set. Spins stamp all their records with one timestamp, so a time window
never cuts a recorded session in half.

# Windowed queries

Service.Compute reads the records of the last N days (default 30, at most
3650) from the store:

	report, err := stats.NewService(st).Compute(ctx, 30)

An empty window yields ErrNoData rather than an empty list, so callers can
tell "no members" from "no data".
*/
package stats
