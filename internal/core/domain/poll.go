package domain

import (
	"time"

	"github.com/google/uuid"
)

// Poll is a question with an ordered list of selectable text options,
// owned by the user that created it. Options keep the order they were
// submitted in; votes reference them by index.
type Poll struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Options   []string  `json:"options"`
	CreatedBy uuid.UUID `json:"created_by"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PollWithOwner is the admin listing row: a poll joined to its owner's profile.
type PollWithOwner struct {
	Poll
	OwnerEmail string `json:"owner_email"`
	OwnerName  string `json:"owner_name"`
}

// PollResults holds the tally for one poll. Counts[i] is the number of
// in-range votes for option i; Total counts every stored vote row,
// including any whose index no longer fits the option list.
type PollResults struct {
	PollID uuid.UUID `json:"poll_id"`
	Counts []int     `json:"counts"`
	Total  int       `json:"total"`
}
