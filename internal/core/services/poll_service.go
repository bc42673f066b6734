package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pollboard/api/internal/core/domain"
	"github.com/pollboard/api/internal/core/ports"
	"go.uber.org/zap"
)

const (
	maxTitleLen  = 500
	maxOptionLen = 200
	minOptions   = 2
	maxOptions   = 10
)

type pollService struct {
	repo   ports.PollRepository
	cache  ports.ListingCache
	logger *zap.Logger
}

func NewPollService(repo ports.PollRepository, cache ports.ListingCache, logger *zap.Logger) ports.PollService {
	return &pollService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

func (s *pollService) Create(ctx context.Context, requester uuid.UUID, input ports.CreatePollInput) (*domain.Poll, error) {
	if requester == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}

	title, options, err := validatePollInput(input.Title, input.Options)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	poll := &domain.Poll{
		ID:        uuid.New(),
		Title:     title,
		Options:   options,
		CreatedBy: requester,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Save(ctx, poll); err != nil {
		return nil, fmt.Errorf("failed to save poll: %w", err)
	}

	s.invalidateListing(ctx)

	return poll, nil
}

func (s *pollService) Update(ctx context.Context, requester uuid.UUID, input ports.UpdatePollInput) error {
	if requester == uuid.Nil {
		return domain.ErrUnauthenticated
	}

	title, options, err := validatePollInput(input.Title, input.Options)
	if err != nil {
		return err
	}

	affected, err := s.repo.UpdateOwned(ctx, input.PollID, requester, title, options)
	if err != nil {
		return fmt.Errorf("failed to update poll: %w", err)
	}
	if affected == 0 {
		return s.classifyGateFailure(ctx, input.PollID, requester)
	}

	s.invalidateListing(ctx)

	return nil
}

func (s *pollService) Delete(ctx context.Context, requester, pollID uuid.UUID) error {
	if requester == uuid.Nil {
		return domain.ErrUnauthenticated
	}

	affected, err := s.repo.DeactivateOwned(ctx, pollID, requester)
	if err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}
	if affected == 0 {
		return s.classifyGateFailure(ctx, pollID, requester)
	}

	s.invalidateListing(ctx)

	return nil
}

func (s *pollService) GetPoll(ctx context.Context, pollID uuid.UUID) (*domain.Poll, error) {
	return s.repo.GetByID(ctx, pollID)
}

func (s *pollService) ListByOwner(ctx context.Context, requester uuid.UUID) ([]*domain.Poll, error) {
	if requester == uuid.Nil {
		return []*domain.Poll{}, nil
	}
	return s.repo.ListByOwner(ctx, requester)
}

func (s *pollService) ListAll(ctx context.Context) ([]*domain.PollWithOwner, error) {
	return s.repo.ListAllWithOwners(ctx)
}

// classifyGateFailure decides why a conditional update hit zero rows:
// the poll is gone (or inactive), or it belongs to someone else.
func (s *pollService) classifyGateFailure(ctx context.Context, pollID, requester uuid.UUID) error {
	poll, err := s.repo.GetByID(ctx, pollID)
	if err != nil {
		return err
	}
	if poll.CreatedBy != requester {
		return domain.ErrUnauthorized
	}
	// Owned and active yet untouched: the row changed under us. Treat it
	// like it disappeared.
	return domain.ErrPollNotFound
}

// invalidateListing notifies the cache that any stored listing is stale.
// The cache is a downstream collaborator; its failures never fail the
// mutation that already committed.
func (s *pollService) invalidateListing(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateListing(ctx); err != nil {
		s.logger.Warn("failed to invalidate poll listing cache", zap.Error(err))
	}
}

// validatePollInput enforces every input rule before any store call and
// returns the trimmed title and options, preserving first-seen order.
func validatePollInput(title string, options []string) (string, []string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "", nil, fmt.Errorf("%w: title must be at most %d characters", domain.ErrInvalidInput, maxTitleLen)
	}

	if len(options) < minOptions || len(options) > maxOptions {
		return "", nil, fmt.Errorf("%w: polls must have between %d and %d options", domain.ErrInvalidInput, minOptions, maxOptions)
	}

	trimmed := make([]string, 0, len(options))
	seen := make(map[string]struct{}, len(options))
	for _, opt := range options {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			return "", nil, fmt.Errorf("%w: options cannot be empty", domain.ErrInvalidInput)
		}
		if utf8.RuneCountInString(opt) > maxOptionLen {
			return "", nil, fmt.Errorf("%w: options must be at most %d characters", domain.ErrInvalidInput, maxOptionLen)
		}
		if _, ok := seen[opt]; ok {
			return "", nil, fmt.Errorf("%w: duplicate option %q", domain.ErrInvalidInput, opt)
		}
		seen[opt] = struct{}{}
		trimmed = append(trimmed, opt)
	}

	return title, trimmed, nil
}
