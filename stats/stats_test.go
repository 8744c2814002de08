// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"context"
	"errors"
	"math/rand/v2"
	"strconv"
	"testing"
	"time"

	"github.com/danielhkuo/standup-spinner/ident"
	"github.com/danielhkuo/standup-spinner/models"
	"github.com/danielhkuo/standup-spinner/spin"
	"github.com/danielhkuo/standup-spinner/store"
	"github.com/danielhkuo/standup-spinner/testutil"
	"github.com/danielhkuo/standup-spinner/twist"
)

// session builds the records of one session from member ids in speaking order
func session(id string, members ...string) []models.OrderRecord {
	records := make([]models.OrderRecord, len(members))
	for i, m := range members {
		records[i] = models.OrderRecord{
			SessionID:  id,
			MemberID:   m,
			MemberName: "name-" + m,
			Emoji:      "👤",
			Position:   i + 1,
			TwistType:  models.TwistNone,
		}
	}
	return records
}

func findStats(results []models.MemberStats, memberID string) *models.MemberStats {
	for i := range results {
		if results[i].MemberID == memberID {
			return &results[i]
		}
	}
	return nil
}

func TestAggregate_Empty(t *testing.T) {
	results, err := Aggregate(nil)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("Expected ErrNoData, got %v", err)
	}
	if results != nil {
		t.Errorf("Expected nil results, got %v", results)
	}
}

func TestAggregate_TwoFullSessions(t *testing.T) {
	var records []models.OrderRecord
	records = append(records, session("s1", "a", "b", "c")...)
	records = append(records, session("s2", "a", "b", "c")...)

	results, err := Aggregate(records)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 members, got %d", len(results))
	}

	testCases := []struct {
		member string
		first  int
		last   int
		avg    float64
	}{
		{"a", 2, 0, 1},
		{"b", 0, 0, 2},
		{"c", 0, 2, 3},
	}

	for _, tc := range testCases {
		s := findStats(results, tc.member)
		if s == nil {
			t.Fatalf("Member %s missing", tc.member)
		}
		if s.TotalStandups != 2 {
			t.Errorf("%s: expected total 2, got %d", tc.member, s.TotalStandups)
		}
		if s.FirstCount != tc.first {
			t.Errorf("%s: expected first %d, got %d", tc.member, tc.first, s.FirstCount)
		}
		if s.LastCount != tc.last {
			t.Errorf("%s: expected last %d, got %d", tc.member, tc.last, s.LastCount)
		}
		if s.AvgPosition != tc.avg {
			t.Errorf("%s: expected avg %.2f, got %.2f", tc.member, tc.avg, s.AvgPosition)
		}
		if s.MemberName != "name-"+tc.member {
			t.Errorf("%s: unexpected name %q", tc.member, s.MemberName)
		}
	}
}

func TestAggregate_SortsByTotalStable(t *testing.T) {
	var records []models.OrderRecord
	records = append(records, session("s1", "x", "y")...)
	records = append(records, session("s2", "z", "y")...)
	records = append(records, session("s3", "z", "w")...)

	results, err := Aggregate(records)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	// y and z appear twice (y seen first), x and w once (x seen first)
	expected := []string{"y", "z", "x", "w"}
	for i, id := range expected {
		if results[i].MemberID != id {
			t.Errorf("Position %d: expected %s, got %s", i, id, results[i].MemberID)
		}
	}
}

func TestAggregate_SingleMemberSessionCountsFirstOnly(t *testing.T) {
	results, err := Aggregate(session("solo", "a"))
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if results[0].FirstCount != 1 || results[0].LastCount != 0 {
		t.Errorf("Expected first=1 last=0, got first=%d last=%d", results[0].FirstCount, results[0].LastCount)
	}
}

func TestAggregate_DoubleTurnMember(t *testing.T) {
	// b speaks second and again at the end
	results, err := Aggregate(session("s1", "a", "b", "c", "b"))
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	b := findStats(results, "b")
	if b.TotalStandups != 2 || b.LastCount != 1 {
		t.Errorf("Expected b total=2 last=1, got total=%d last=%d", b.TotalStandups, b.LastCount)
	}
	if b.AvgPosition != 3 {
		t.Errorf("Expected b avg 3, got %.2f", b.AvgPosition)
	}
	if results[0].MemberID != "b" {
		t.Errorf("Expected b to lead by total, got %s", results[0].MemberID)
	}
}

func TestAggregate_RoundsAverage(t *testing.T) {
	var records []models.OrderRecord
	records = append(records, session("s1", "a", "b", "c")...)
	records = append(records, session("s2", "b", "a", "c")...)
	records = append(records, session("s3", "b", "c", "a")...)

	results, err := Aggregate(records)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	// a: (1 + 2 + 3) / 3 = 2; c: (3 + 3 + 2) / 3 = 2.666...
	if got := findStats(results, "a").AvgPosition; got != 2 {
		t.Errorf("Expected a avg 2, got %v", got)
	}
	if got := findStats(results, "c").AvgPosition; got != 2.67 {
		t.Errorf("Expected c avg 2.67, got %v", got)
	}
}

func TestAggregate_TruncatedSessionUsesVisibleSize(t *testing.T) {
	// Only positions 1 and 2 of a 3-member session are in the set
	records := session("s1", "a", "b", "c")[:2]

	results, err := Aggregate(records)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if findStats(results, "b").LastCount != 1 {
		t.Error("Expected size to be counted within the record set")
	}
}

func TestAggregate_OneFirstAndLastPerSession(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 13))
	pool := []string{"a", "b", "c", "d", "e", "f"}

	for trial := 0; trial < 200; trial++ {
		var records []models.OrderRecord
		sessions := 1 + rng.IntN(5)
		for s := 0; s < sessions; s++ {
			n := 1 + rng.IntN(len(pool))
			members := make([]string, len(pool))
			copy(members, pool)
			rng.Shuffle(len(members), func(i, j int) { members[i], members[j] = members[j], members[i] })
			records = append(records, session("s"+strconv.Itoa(s), members[:n]...)...)
		}

		results, err := Aggregate(records)
		if err != nil {
			t.Fatalf("Aggregate failed: %v", err)
		}

		firsts, lasts, totals := 0, 0, 0
		for _, r := range results {
			firsts += r.FirstCount
			lasts += r.LastCount
			totals += r.TotalStandups
		}
		if firsts != sessions {
			t.Fatalf("trial %d: %d sessions but %d firsts", trial, sessions, firsts)
		}
		if lasts > sessions {
			t.Fatalf("trial %d: %d sessions but %d lasts", trial, sessions, lasts)
		}
		if totals != len(records) {
			t.Fatalf("trial %d: totals %d != records %d", trial, totals, len(records))
		}
	}
}

// fakeStore returns canned records and remembers the cutoff
type fakeStore struct {
	records []models.OrderRecord
	err     error
	cutoff  time.Time
}

func (f *fakeStore) OrdersSince(ctx context.Context, cutoff time.Time) ([]models.OrderRecord, error) {
	f.cutoff = cutoff
	return f.records, f.err
}

func TestCompute_Window(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	st := &fakeStore{records: session("s1", "a", "b")}
	svc := NewService(st).WithClock(func() time.Time { return now })

	report, err := svc.Compute(context.Background(), 7)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	expected := now.Add(-7 * 24 * time.Hour)
	if !st.cutoff.Equal(expected) || !report.Since.Equal(expected) {
		t.Errorf("Expected cutoff %v, got %v", expected, st.cutoff)
	}
	if report.Days != 7 || len(report.Stats) != 2 {
		t.Errorf("Unexpected report: %+v", report)
	}
}

func TestCompute_NoData(t *testing.T) {
	svc := NewService(&fakeStore{records: []models.OrderRecord{}})

	report, err := svc.Compute(context.Background(), DefaultDays)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("Expected ErrNoData, got %v", err)
	}
	if report.Days != DefaultDays {
		t.Errorf("Expected window in report, got %+v", report)
	}
}

func TestCompute_InvalidWindow(t *testing.T) {
	svc := NewService(&fakeStore{})

	for _, days := range []int{0, -1, MaxDays + 1} {
		if _, err := svc.Compute(context.Background(), days); !errors.Is(err, ErrInvalidWindow) {
			t.Errorf("days=%d: expected ErrInvalidWindow, got %v", days, err)
		}
	}
}

func TestCompute_StoreError(t *testing.T) {
	dbErr := errors.New("query failed")
	svc := NewService(&fakeStore{err: dbErr})

	_, err := svc.Compute(context.Background(), DefaultDays)
	if !errors.Is(err, dbErr) {
		t.Errorf("Expected store error to propagate, got %v", err)
	}
}

func TestCompute_ReadsRecordedSpins(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	alice := testutil.CreateTestMember(t, conn, "Alice", "🦊")
	bob := testutil.CreateTestMember(t, conn, "Bob", "🐻")
	carol := testutil.CreateTestMember(t, conn, "Carol", "🐢")

	st := store.New(conn)
	spinner := spin.NewService(st, twist.NewRand(1), ident.UUIDGenerator{})
	for i := 0; i < 2; i++ {
		if _, err := spinner.Spin(context.Background(), []string{alice, bob, carol}, twist.Reverse); err != nil {
			t.Fatalf("Spin failed: %v", err)
		}
	}

	// Outside the default window
	testutil.RecordTestSession(t, conn, []string{alice}, []string{"Alice"}, time.Now().Add(-45*24*time.Hour))

	report, err := NewService(st).Compute(context.Background(), DefaultDays)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if len(report.Stats) != 3 {
		t.Fatalf("Expected 3 members, got %d", len(report.Stats))
	}

	carolStats := findStats(report.Stats, carol)
	if carolStats.FirstCount != 2 || carolStats.Emoji != "🐢" {
		t.Errorf("Expected Carol first twice with her emoji, got %+v", carolStats)
	}
	aliceStats := findStats(report.Stats, alice)
	if aliceStats.TotalStandups != 2 || aliceStats.LastCount != 2 {
		t.Errorf("Expected Alice last twice within window, got %+v", aliceStats)
	}
}

func TestCompute_EmptyDatabase(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	_, err := NewService(store.New(conn)).Compute(context.Background(), DefaultDays)
	if !errors.Is(err, ErrNoData) {
		t.Errorf("Expected ErrNoData on empty database, got %v", err)
	}
}

func TestCompute_RecurringPairAggregatesIntoOneRow(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	alice := testutil.CreateTestMember(t, conn, "Alice", "🦊")
	bob := testutil.CreateTestMember(t, conn, "Bob", "🐻")

	st := store.New(conn)
	spinner := spin.NewService(st, twist.NewRand(9), ident.UUIDGenerator{})
	for i := 0; i < 20; i++ {
		if _, err := spinner.Spin(context.Background(), []string{alice, bob}, twist.PairUp); err != nil {
			t.Fatalf("Spin failed: %v", err)
		}
	}

	report, err := NewService(st).Compute(context.Background(), DefaultDays)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if len(report.Stats) != 1 {
		t.Fatalf("Expected one pair row, got %+v", report.Stats)
	}
	pair := report.Stats[0]
	if pair.MemberID != twist.PairID(alice, bob) {
		t.Errorf("Unexpected pair id %s", pair.MemberID)
	}
	if pair.TotalStandups != 20 || pair.FirstCount != 20 {
		t.Errorf("Expected 20 appearances all first, got %+v", pair)
	}
	if pair.Emoji != twist.PairEmoji {
		t.Errorf("Expected pair emoji, got %q", pair.Emoji)
	}
}
