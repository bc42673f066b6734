package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vote is one selection of an option index on a poll. UserID is invalid
// for anonymous votes; those carry no duplicate constraint.
type Vote struct {
	ID          uuid.UUID     `json:"id"`
	PollID      uuid.UUID     `json:"poll_id"`
	UserID      uuid.NullUUID `json:"user_id"`
	OptionIndex int           `json:"option_index"`
	CreatedAt   time.Time     `json:"created_at"`
}
