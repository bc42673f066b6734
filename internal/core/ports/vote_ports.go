package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/pollboard/api/internal/core/domain"
)

type VoteRepository interface {
	Save(ctx context.Context, vote *domain.Vote) error
	HasVoted(ctx context.Context, pollID, userID uuid.UUID) (bool, error)
	ListByPoll(ctx context.Context, pollID uuid.UUID) ([]*domain.Vote, error)
}

type VoteInput struct {
	PollID      uuid.UUID
	OptionIndex int
	// UserID is invalid for anonymous votes.
	UserID uuid.NullUUID
}

type VoteService interface {
	Submit(ctx context.Context, input VoteInput) error
	Results(ctx context.Context, pollID uuid.UUID) (*domain.PollResults, error)
}
