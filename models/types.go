package models

import (
	"time"

	"github.com/danielhkuo/standup-spinner/twist"
)

// TwistNone is stored on order records when the requested twist had no effect
const TwistNone = "none"

// Request types

type CreateMemberRequest struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

type SpinRequest struct {
	MemberIDs []string `json:"member_ids"`
	TwistType string   `json:"twist_type"`
}

// Response types

type MessageResponse struct {
	Message string `json:"message"`
}

type ListMembersResponse struct {
	Members []Member `json:"members"`
}

type SpinResult struct {
	SessionID        string        `json:"session_id"`
	Order            []twist.Entry `json:"order"`
	TwistType        string        `json:"twist_type"`
	TwistApplied     bool          `json:"twist_applied"`
	TwistDescription string        `json:"twist_description"`
	CreatedAt        time.Time     `json:"created_at"`
}

type StatsResponse struct {
	Days    int           `json:"days"`
	Since   time.Time     `json:"since"`
	NoData  bool          `json:"no_data"`
	Message string        `json:"message,omitempty"`
	Stats   []MemberStats `json:"stats"`
}

type TwistsResponse struct {
	Twists []twist.Info `json:"twists"`
}

// Domain types

type Member struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Emoji     string    `json:"emoji"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Entry converts a member to a twist input
func (m Member) Entry() twist.Entry {
	emoji := m.Emoji
	if emoji == "" {
		emoji = twist.DefaultEmoji
	}
	return twist.Entry{ID: m.ID, Name: m.Name, Emoji: emoji}
}

// OrderRecord is one persisted position of one spin session
type OrderRecord struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	MemberID   string    `json:"member_id"`
	MemberName string    `json:"member_name"`
	Emoji      string    `json:"emoji"` // current member emoji, not stored on the row
	Position   int       `json:"position"`
	TwistType  string    `json:"twist_type"`
	CreatedAt  time.Time `json:"created_at"`
}

type MemberStats struct {
	MemberID      string  `json:"member_id"`
	MemberName    string  `json:"member_name"`
	Emoji         string  `json:"emoji"`
	FirstCount    int     `json:"first_count"`
	LastCount     int     `json:"last_count"`
	TotalStandups int     `json:"total_standups"`
	AvgPosition   float64 `json:"avg_position"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
