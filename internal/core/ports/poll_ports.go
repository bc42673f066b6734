package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/pollboard/api/internal/core/domain"
)

type PollRepository interface {
	Save(ctx context.Context, poll *domain.Poll) error
	// GetByID returns the poll only while it is active.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error)
	// GetAnyByID returns the poll regardless of its active flag. The vote
	// path uses it so soft-deleted polls still accept and resolve votes.
	GetAnyByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Poll, error)
	ListAllWithOwners(ctx context.Context) ([]*domain.PollWithOwner, error)
	// UpdateOwned overwrites title and options in a single conditional
	// update gated on created_by and is_active, returning the number of
	// rows hit. Zero rows means the gate failed, not a store error.
	UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, title string, options []string) (int64, error)
	// DeactivateOwned flips is_active to false under the same gate.
	DeactivateOwned(ctx context.Context, id, ownerID uuid.UUID) (int64, error)
}

type CreatePollInput struct {
	Title   string
	Options []string
}

type UpdatePollInput struct {
	PollID  uuid.UUID
	Title   string
	Options []string
}

type PollService interface {
	Create(ctx context.Context, requester uuid.UUID, input CreatePollInput) (*domain.Poll, error)
	Update(ctx context.Context, requester uuid.UUID, input UpdatePollInput) error
	Delete(ctx context.Context, requester, pollID uuid.UUID) error
	GetPoll(ctx context.Context, pollID uuid.UUID) (*domain.Poll, error)
	ListByOwner(ctx context.Context, requester uuid.UUID) ([]*domain.Poll, error)
	ListAll(ctx context.Context) ([]*domain.PollWithOwner, error)
}
