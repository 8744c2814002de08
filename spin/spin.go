// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package spin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/standup-spinner/ident"
	"github.com/danielhkuo/standup-spinner/models"
	"github.com/danielhkuo/standup-spinner/twist"
)

// MaxMembers bounds the distinct member ids accepted by one spin
const MaxMembers = 200

var (
	ErrNoMembersSelected = errors.New("no members selected")
	ErrNoValidMembers    = errors.New("no valid members found")
	ErrTooManyMembers    = fmt.Errorf("at most %d members per spin", MaxMembers)
)

// Store is the persistence the recorder needs
type Store interface {
	ActiveMembersByIDs(ctx context.Context, ids []string) ([]models.Member, error)
	InsertOrder(ctx context.Context, records []models.OrderRecord) error
}

// Service resolves present members, applies a twist and records the order
type Service struct {
	store Store
	rng   twist.Rand
	ids   ident.Generator
	now   func() time.Time
}

func NewService(store Store, rng twist.Rand, ids ident.Generator) *Service {
	return &Service{
		store: store,
		rng:   rng,
		ids:   ids,
		now:   time.Now,
	}
}

// WithClock replaces the clock used to stamp records
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Spin computes and persists a speaking order for the given member ids
func (s *Service) Spin(ctx context.Context, memberIDs []string, twistType string) (*models.SpinResult, error) {
	if len(memberIDs) == 0 {
		return nil, ErrNoMembersSelected
	}

	ids := dedupe(memberIDs)
	if len(ids) > MaxMembers {
		return nil, ErrTooManyMembers
	}

	members, err := s.store.ActiveMembersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}
	if len(members) == 0 {
		return nil, ErrNoValidMembers
	}

	entries := make([]twist.Entry, len(members))
	for i, m := range members {
		entries[i] = m.Entry()
	}

	outcome := twist.Apply(s.rng, entries, twistType)

	result, err := s.Record(ctx, outcome, twistType)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Record persists an already computed order as one session.
// The twist type is stored only when the twist was applied.
func (s *Service) Record(ctx context.Context, outcome twist.Result, twistType string) (*models.SpinResult, error) {
	sessionID, err := s.ids.NewSessionID()
	if err != nil {
		return nil, err
	}

	storedTwist := models.TwistNone
	if outcome.Applied {
		storedTwist = twistType
	}

	// One timestamp for the whole session keeps it inside any stats window
	createdAt := s.now().UTC().Truncate(time.Microsecond)

	records := make([]models.OrderRecord, len(outcome.Order))
	for i, entry := range outcome.Order {
		recordID, err := ident.GenerateID(16)
		if err != nil {
			return nil, err
		}
		records[i] = models.OrderRecord{
			ID:         recordID,
			SessionID:  sessionID,
			MemberID:   entry.ID,
			MemberName: entry.Name,
			Position:   i + 1,
			TwistType:  storedTwist,
			CreatedAt:  createdAt,
		}
	}

	if err := s.store.InsertOrder(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to record spin: %w", err)
	}

	return &models.SpinResult{
		SessionID:        sessionID,
		Order:            outcome.Order,
		TwistType:        storedTwist,
		TwistApplied:     outcome.Applied,
		TwistDescription: outcome.Description,
		CreatedAt:        createdAt,
	}, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
