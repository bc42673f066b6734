package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pollboard/api/internal/core/domain"
	"github.com/pollboard/api/internal/core/ports"
)

type voteService struct {
	pollRepo ports.PollRepository
	voteRepo ports.VoteRepository
}

func NewVoteService(pollRepo ports.PollRepository, voteRepo ports.VoteRepository) ports.VoteService {
	return &voteService{
		pollRepo: pollRepo,
		voteRepo: voteRepo,
	}
}

func (s *voteService) Submit(ctx context.Context, input ports.VoteInput) error {
	// The lookup ignores is_active: votes may still land on a soft-deleted
	// poll and its vote history stays intact.
	poll, err := s.pollRepo.GetAnyByID(ctx, input.PollID)
	if err != nil {
		return err
	}

	if input.OptionIndex < 0 || input.OptionIndex >= len(poll.Options) {
		return fmt.Errorf("%w: option index %d is out of range", domain.ErrInvalidInput, input.OptionIndex)
	}

	// Pre-check for a friendlier error; the partial unique index on
	// (poll_id, user_id) closes the remaining race and the repository
	// maps its violation back to ErrDuplicateVote.
	if input.UserID.Valid {
		voted, err := s.voteRepo.HasVoted(ctx, input.PollID, input.UserID.UUID)
		if err != nil {
			return err
		}
		if voted {
			return domain.ErrDuplicateVote
		}
	}

	vote := &domain.Vote{
		ID:          uuid.New(),
		PollID:      input.PollID,
		UserID:      input.UserID,
		OptionIndex: input.OptionIndex,
		CreatedAt:   time.Now(),
	}

	return s.voteRepo.Save(ctx, vote)
}

func (s *voteService) Results(ctx context.Context, pollID uuid.UUID) (*domain.PollResults, error) {
	poll, err := s.pollRepo.GetAnyByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	votes, err := s.voteRepo.ListByPoll(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to load votes: %w", err)
	}

	// Total counts every row; the per-option counts skip indices that no
	// longer fit the option list after an edit shrank it.
	counts := make([]int, len(poll.Options))
	for _, v := range votes {
		if v.OptionIndex >= 0 && v.OptionIndex < len(counts) {
			counts[v.OptionIndex]++
		}
	}

	return &domain.PollResults{
		PollID: pollID,
		Counts: counts,
		Total:  len(votes),
	}, nil
}
