// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/danielhkuo/standup-spinner/models"
)

// Window bounds in days
const (
	DefaultDays = 30
	MaxDays     = 3650
)

var (
	ErrNoData        = errors.New("no standup data in window")
	ErrInvalidWindow = fmt.Errorf("days must be between 1 and %d", MaxDays)
)

// Store is the persistence the aggregator reads from
type Store interface {
	OrdersSince(ctx context.Context, cutoff time.Time) ([]models.OrderRecord, error)
}

// Report is the result of a windowed stats query
type Report struct {
	Days  int
	Since time.Time
	Stats []models.MemberStats
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// WithClock replaces the clock used to compute the window cutoff
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Compute aggregates all order records of the last days days.
// Returns ErrNoData (with the report window filled in) when nothing was
// recorded in the window.
func (s *Service) Compute(ctx context.Context, days int) (Report, error) {
	if days < 1 || days > MaxDays {
		return Report{}, ErrInvalidWindow
	}

	since := s.now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
	report := Report{Days: days, Since: since}

	records, err := s.store.OrdersSince(ctx, since)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load orders: %w", err)
	}

	report.Stats, err = Aggregate(records)
	if err != nil {
		return report, err
	}
	return report, nil
}

// memberTally accumulates one member's appearances
type memberTally struct {
	stats     models.MemberStats
	positions []int
}

// Aggregate computes per-member statistics over records. Session size is
// the number of records sharing a session id. Results are sorted by total
// appearances, descending; ties keep the order members were first seen.
func Aggregate(records []models.OrderRecord) ([]models.MemberStats, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}

	sessionSizes := make(map[string]int)
	for _, r := range records {
		sessionSizes[r.SessionID]++
	}

	var order []string
	tallies := make(map[string]*memberTally)

	for _, r := range records {
		tally, ok := tallies[r.MemberID]
		if !ok {
			tally = &memberTally{stats: models.MemberStats{
				MemberID:   r.MemberID,
				MemberName: r.MemberName,
				Emoji:      r.Emoji,
			}}
			tallies[r.MemberID] = tally
			order = append(order, r.MemberID)
		}

		tally.stats.TotalStandups++
		tally.positions = append(tally.positions, r.Position)

		// A lone speaker counts as first only
		if r.Position == 1 {
			tally.stats.FirstCount++
		} else if r.Position == sessionSizes[r.SessionID] {
			tally.stats.LastCount++
		}
	}

	results := make([]models.MemberStats, 0, len(order))
	for _, id := range order {
		tally := tallies[id]
		tally.stats.AvgPosition = round2(mean(tally.positions))
		results = append(results, tally.stats)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalStandups > results[j].TotalStandups
	})

	return results, nil
}

func mean(values []int) float64 {
	if len(values) == 0 {
		return 0.0
	}

	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
