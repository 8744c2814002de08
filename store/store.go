// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/standup-spinner/ident"
	"github.com/danielhkuo/standup-spinner/models"
	"github.com/danielhkuo/standup-spinner/twist"
)

var (
	ErrNotFound      = errors.New("member not found")
	ErrDuplicateName = errors.New("member name already taken")
)

// Store is the persistence layer for members and order records
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateMember registers a member. An inactive member with the same name
// is reactivated with the new emoji; reactivated reports that case.
func (s *Store) CreateMember(ctx context.Context, name, emoji string) (member models.Member, reactivated bool, err error) {
	if emoji == "" {
		emoji = twist.DefaultEmoji
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Member{}, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		SELECT id, name, emoji, is_active, created_at
		FROM team_member
		WHERE name = $1
	`, name).Scan(&member.ID, &member.Name, &member.Emoji, &member.IsActive, &member.CreatedAt)

	switch {
	case err == nil && member.IsActive:
		return models.Member{}, false, ErrDuplicateName

	case err == nil:
		_, err = tx.ExecContext(ctx, `
			UPDATE team_member SET is_active = TRUE, emoji = $1 WHERE id = $2
		`, emoji, member.ID)
		if err != nil {
			return models.Member{}, false, fmt.Errorf("failed to reactivate member: %w", err)
		}
		member.IsActive = true
		member.Emoji = emoji
		reactivated = true

	case errors.Is(err, sql.ErrNoRows):
		member = models.Member{
			ID:        ident.NewMemberID(),
			Name:      name,
			Emoji:     emoji,
			IsActive:  true,
			CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO team_member (id, name, emoji, is_active, created_at)
			VALUES ($1, $2, $3, TRUE, $4)
		`, member.ID, member.Name, member.Emoji, member.CreatedAt)
		if isUniqueViolation(err) {
			return models.Member{}, false, ErrDuplicateName
		}
		if err != nil {
			return models.Member{}, false, fmt.Errorf("failed to insert member: %w", err)
		}

	default:
		return models.Member{}, false, fmt.Errorf("failed to query member: %w", err)
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return models.Member{}, false, ErrDuplicateName
		}
		return models.Member{}, false, fmt.Errorf("failed to commit member: %w", err)
	}

	return member, reactivated, nil
}

// ListActiveMembers returns active members in registration order
func (s *Store) ListActiveMembers(ctx context.Context) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, emoji, is_active, created_at
		FROM team_member
		WHERE is_active = TRUE
		ORDER BY created_at, name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	return scanMembers(rows)
}

// GetMember returns a member by id, active or not
func (s *Store) GetMember(ctx context.Context, id string) (models.Member, error) {
	var m models.Member
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, emoji, is_active, created_at
		FROM team_member
		WHERE id = $1
	`, id).Scan(&m.ID, &m.Name, &m.Emoji, &m.IsActive, &m.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Member{}, ErrNotFound
	}
	if err != nil {
		return models.Member{}, fmt.Errorf("failed to query member: %w", err)
	}
	return m, nil
}

// DeactivateMember soft-deletes an active member
func (s *Store) DeactivateMember(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE team_member SET is_active = FALSE WHERE id = $1 AND is_active = TRUE
	`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate member: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to deactivate member: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ActiveMembersByIDs resolves ids to active members in registration order.
// Unknown and inactive ids are dropped.
func (s *Store) ActiveMembersByIDs(ctx context.Context, ids []string) ([]models.Member, error) {
	if len(ids) == 0 {
		return []models.Member{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "$" + strconv.Itoa(i+1)
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, emoji, is_active, created_at
		FROM team_member
		WHERE is_active = TRUE AND id IN (`+strings.Join(placeholders, ", ")+`)
		ORDER BY created_at, name
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	return scanMembers(rows)
}

// InsertOrder writes all records of one spin in a single transaction
func (s *Store) InsertOrder(ctx context.Context, records []models.OrderRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, r := range records {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO standup_order (id, session_id, member_id, member_name, position, twist_type, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, r.ID, r.SessionID, r.MemberID, r.MemberName, r.Position, r.TwistType, r.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert order record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}
	return nil
}

// OrdersSince returns all order records created at or after cutoff,
// grouped by session and ordered by position
func (s *Store) OrdersSince(ctx context.Context, cutoff time.Time) ([]models.OrderRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT o.id, o.session_id, o.member_id, o.member_name, COALESCE(m.emoji, $1),
		       o.position, o.twist_type, o.created_at
		FROM standup_order o
		LEFT JOIN team_member m ON m.id = o.member_id
		WHERE o.created_at >= $2
		ORDER BY o.created_at, o.session_id, o.position
	`, twist.DefaultEmoji, cutoff.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	records := []models.OrderRecord{}
	for rows.Next() {
		var r models.OrderRecord
		if err := rows.Scan(
			&r.ID, &r.SessionID, &r.MemberID, &r.MemberName, &r.Emoji,
			&r.Position, &r.TwistType, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		if twist.IsPairID(r.MemberID) {
			r.Emoji = twist.PairEmoji
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

func scanMembers(rows *sql.Rows) ([]models.Member, error) {
	defer rows.Close()

	members := []models.Member{}
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Emoji, &m.IsActive, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}

	return members, rows.Err()
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}

	return false
}
