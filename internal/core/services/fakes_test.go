package services_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pollboard/api/internal/core/domain"
	"github.com/pollboard/api/internal/core/ports"
)

// In-memory fakes mirroring the postgres adapters' contracts.

type fakePollRepo struct {
	polls   map[uuid.UUID]*domain.Poll
	saveErr error
}

func newFakePollRepo() *fakePollRepo {
	return &fakePollRepo{polls: make(map[uuid.UUID]*domain.Poll)}
}

func (r *fakePollRepo) Save(_ context.Context, poll *domain.Poll) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	cp := *poll
	cp.Options = append([]string(nil), poll.Options...)
	r.polls[poll.ID] = &cp
	return nil
}

func (r *fakePollRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Poll, error) {
	poll, ok := r.polls[id]
	if !ok || !poll.IsActive {
		return nil, domain.ErrPollNotFound
	}
	cp := *poll
	return &cp, nil
}

func (r *fakePollRepo) GetAnyByID(_ context.Context, id uuid.UUID) (*domain.Poll, error) {
	poll, ok := r.polls[id]
	if !ok {
		return nil, domain.ErrPollNotFound
	}
	cp := *poll
	return &cp, nil
}

func (r *fakePollRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*domain.Poll, error) {
	out := []*domain.Poll{}
	for _, p := range r.polls {
		if p.CreatedBy == ownerID && p.IsActive {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakePollRepo) ListAllWithOwners(_ context.Context) ([]*domain.PollWithOwner, error) {
	out := []*domain.PollWithOwner{}
	for _, p := range r.polls {
		out = append(out, &domain.PollWithOwner{Poll: *p, OwnerEmail: "owner@example.com", OwnerName: "Owner"})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakePollRepo) UpdateOwned(_ context.Context, id, ownerID uuid.UUID, title string, options []string) (int64, error) {
	poll, ok := r.polls[id]
	if !ok || !poll.IsActive || poll.CreatedBy != ownerID {
		return 0, nil
	}
	poll.Title = title
	poll.Options = append([]string(nil), options...)
	poll.UpdatedAt = time.Now()
	return 1, nil
}

func (r *fakePollRepo) DeactivateOwned(_ context.Context, id, ownerID uuid.UUID) (int64, error) {
	poll, ok := r.polls[id]
	if !ok || !poll.IsActive || poll.CreatedBy != ownerID {
		return 0, nil
	}
	poll.IsActive = false
	poll.UpdatedAt = time.Now()
	return 1, nil
}

type fakeVoteRepo struct {
	votes []*domain.Vote
}

func (r *fakeVoteRepo) Save(_ context.Context, vote *domain.Vote) error {
	if vote.UserID.Valid {
		for _, v := range r.votes {
			if v.PollID == vote.PollID && v.UserID.Valid && v.UserID.UUID == vote.UserID.UUID {
				return domain.ErrDuplicateVote
			}
		}
	}
	cp := *vote
	r.votes = append(r.votes, &cp)
	return nil
}

func (r *fakeVoteRepo) HasVoted(_ context.Context, pollID, userID uuid.UUID) (bool, error) {
	for _, v := range r.votes {
		if v.PollID == pollID && v.UserID.Valid && v.UserID.UUID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeVoteRepo) ListByPoll(_ context.Context, pollID uuid.UUID) ([]*domain.Vote, error) {
	out := []*domain.Vote{}
	for _, v := range r.votes {
		if v.PollID == pollID {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakePollResultRepo struct {
	mu         sync.Mutex
	summarized map[uuid.UUID]int
	err        error
}

func newFakePollResultRepo() *fakePollResultRepo {
	return &fakePollResultRepo{summarized: make(map[uuid.UUID]int)}
}

func (r *fakePollResultRepo) SummarizeVotes(_ context.Context, pollID uuid.UUID) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summarized[pollID]++
	return nil
}

type fakeListingCache struct {
	payload       string
	invalidations int
	err           error
}

func (c *fakeListingCache) GetListing(context.Context) (string, error) {
	return c.payload, c.err
}

func (c *fakeListingCache) SetListing(_ context.Context, payload string) error {
	c.payload = payload
	return c.err
}

func (c *fakeListingCache) InvalidateListing(context.Context) error {
	c.invalidations++
	c.payload = ""
	return c.err
}

type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

type fakeAuthRepo struct {
	tokens map[string]*domain.RefreshToken
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{tokens: make(map[string]*domain.RefreshToken)}
}

func (r *fakeAuthRepo) StoreRefreshToken(_ context.Context, token *domain.RefreshToken) error {
	token.ID = uuid.New()
	token.CreatedAt = time.Now()
	cp := *token
	r.tokens[token.TokenHash] = &cp
	return nil
}

func (r *fakeAuthRepo) GetRefreshTokenByHash(_ context.Context, tokenHash string) (*domain.RefreshToken, error) {
	t, ok := r.tokens[tokenHash]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeAuthRepo) RevokeRefreshToken(_ context.Context, id string) error {
	for _, t := range r.tokens {
		if t.ID.String() == id {
			t.Revoked = true
			return nil
		}
	}
	return errors.New("refresh token not found")
}

type fakeVerifier struct {
	payload *ports.TokenPayload
}

func (v *fakeVerifier) Verify(_ context.Context, token string, _ string) (*ports.TokenPayload, error) {
	if token != "valid_token" {
		return nil, errors.New("invalid token")
	}
	return v.payload, nil
}
