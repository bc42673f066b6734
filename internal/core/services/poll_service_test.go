package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pollboard/api/internal/core/domain"
	"github.com/pollboard/api/internal/core/ports"
	"github.com/pollboard/api/internal/core/services"
)

func newPollFixture() (*fakePollRepo, *fakeListingCache, ports.PollService) {
	repo := newFakePollRepo()
	cache := &fakeListingCache{}
	svc := services.NewPollService(repo, cache, zap.NewNop())
	return repo, cache, svc
}

func TestCreatePoll(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("persists trimmed options in first-seen order", func(t *testing.T) {
		_, _, svc := newPollFixture()

		poll, err := svc.Create(ctx, owner, ports.CreatePollInput{
			Title:   "  Pick one  ",
			Options: []string{" A ", "B", "  C"},
		})
		require.NoError(t, err)

		fetched, err := svc.GetPoll(ctx, poll.ID)
		require.NoError(t, err)
		assert.Equal(t, "Pick one", fetched.Title)
		assert.Equal(t, []string{"A", "B", "C"}, fetched.Options)
		assert.Equal(t, owner, fetched.CreatedBy)
		assert.True(t, fetched.IsActive)
	})

	t.Run("requires authentication", func(t *testing.T) {
		_, _, svc := newPollFixture()

		_, err := svc.Create(ctx, uuid.Nil, ports.CreatePollInput{
			Title:   "Pick one",
			Options: []string{"A", "B"},
		})
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("invalidates the listing cache", func(t *testing.T) {
		_, cache, svc := newPollFixture()

		_, err := svc.Create(ctx, owner, ports.CreatePollInput{
			Title:   "Pick one",
			Options: []string{"A", "B"},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, cache.invalidations)
	})
}

func TestCreatePollValidation(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	options := func(n int) []string {
		opts := make([]string, n)
		for i := range opts {
			opts[i] = string(rune('A' + i))
		}
		return opts
	}

	tests := []struct {
		name    string
		title   string
		options []string
		wantErr bool
	}{
		{"one option", "Pick one", options(1), true},
		{"two options", "Pick one", options(2), false},
		{"ten options", "Pick one", options(10), false},
		{"eleven options", "Pick one", options(11), true},
		{"500 char title", strings.Repeat("x", 500), options(2), false},
		{"501 char title", strings.Repeat("x", 501), options(2), true},
		{"empty title", "", options(2), true},
		{"whitespace title", "   ", options(2), true},
		{"whitespace option", "Pick one", []string{"A", "  "}, true},
		{"201 char option", "Pick one", []string{"A", strings.Repeat("y", 201)}, true},
		{"200 char option", "Pick one", []string{"A", strings.Repeat("y", 200)}, false},
		{"duplicate after trim", "Pick one", []string{"A", " A "}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, svc := newPollFixture()
			_, err := svc.Create(ctx, owner, ports.CreatePollInput{Title: tt.title, Options: tt.options})
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdatePoll(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	setup := func(t *testing.T) (*fakePollRepo, *fakeListingCache, ports.PollService, *domain.Poll) {
		repo, cache, svc := newPollFixture()
		poll, err := svc.Create(ctx, owner, ports.CreatePollInput{
			Title:   "Original",
			Options: []string{"A", "B"},
		})
		require.NoError(t, err)
		return repo, cache, svc, poll
	}

	t.Run("owner can update title and options", func(t *testing.T) {
		_, _, svc, poll := setup(t)

		err := svc.Update(ctx, owner, ports.UpdatePollInput{
			PollID:  poll.ID,
			Title:   "Updated",
			Options: []string{"X", "Y", "Z"},
		})
		require.NoError(t, err)

		fetched, err := svc.GetPoll(ctx, poll.ID)
		require.NoError(t, err)
		assert.Equal(t, "Updated", fetched.Title)
		assert.Equal(t, []string{"X", "Y", "Z"}, fetched.Options)
		assert.Equal(t, owner, fetched.CreatedBy)
		assert.Equal(t, poll.CreatedAt, fetched.CreatedAt)
	})

	t.Run("non-owner gets unauthorized even with valid input", func(t *testing.T) {
		_, _, svc, poll := setup(t)

		err := svc.Update(ctx, stranger, ports.UpdatePollInput{
			PollID:  poll.ID,
			Title:   "Hijacked",
			Options: []string{"X", "Y"},
		})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("missing poll is not found", func(t *testing.T) {
		_, _, svc, _ := setup(t)

		err := svc.Update(ctx, owner, ports.UpdatePollInput{
			PollID:  uuid.New(),
			Title:   "Updated",
			Options: []string{"X", "Y"},
		})
		assert.ErrorIs(t, err, domain.ErrPollNotFound)
	})

	t.Run("deleted poll is not found", func(t *testing.T) {
		_, _, svc, poll := setup(t)
		require.NoError(t, svc.Delete(ctx, owner, poll.ID))

		err := svc.Update(ctx, owner, ports.UpdatePollInput{
			PollID:  poll.ID,
			Title:   "Updated",
			Options: []string{"X", "Y"},
		})
		assert.ErrorIs(t, err, domain.ErrPollNotFound)
	})

	t.Run("validation runs before the store is touched", func(t *testing.T) {
		_, _, svc, poll := setup(t)

		err := svc.Update(ctx, owner, ports.UpdatePollInput{
			PollID:  poll.ID,
			Title:   "Updated",
			Options: []string{"X"},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		fetched, err := svc.GetPoll(ctx, poll.ID)
		require.NoError(t, err)
		assert.Equal(t, "Original", fetched.Title)
	})
}

func TestDeletePoll(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	t.Run("soft delete hides the poll from reads", func(t *testing.T) {
		repo, _, svc := newPollFixture()
		poll, err := svc.Create(ctx, owner, ports.CreatePollInput{
			Title:   "Doomed",
			Options: []string{"A", "B"},
		})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, owner, poll.ID))

		_, err = svc.GetPoll(ctx, poll.ID)
		assert.ErrorIs(t, err, domain.ErrPollNotFound)

		mine, err := svc.ListByOwner(ctx, owner)
		require.NoError(t, err)
		assert.Empty(t, mine)

		// The row survives as a tombstone.
		stored, ok := repo.polls[poll.ID]
		require.True(t, ok)
		assert.False(t, stored.IsActive)
	})

	t.Run("non-owner gets unauthorized", func(t *testing.T) {
		_, _, svc := newPollFixture()
		poll, err := svc.Create(ctx, owner, ports.CreatePollInput{
			Title:   "Protected",
			Options: []string{"A", "B"},
		})
		require.NoError(t, err)

		assert.ErrorIs(t, svc.Delete(ctx, stranger, poll.ID), domain.ErrUnauthorized)
	})

	t.Run("requires authentication", func(t *testing.T) {
		_, _, svc := newPollFixture()
		assert.ErrorIs(t, svc.Delete(ctx, uuid.Nil, uuid.New()), domain.ErrUnauthenticated)
	})

	t.Run("already deleted poll is not found", func(t *testing.T) {
		_, _, svc := newPollFixture()
		poll, err := svc.Create(ctx, owner, ports.CreatePollInput{
			Title:   "Doomed",
			Options: []string{"A", "B"},
		})
		require.NoError(t, err)
		require.NoError(t, svc.Delete(ctx, owner, poll.ID))

		assert.ErrorIs(t, svc.Delete(ctx, owner, poll.ID), domain.ErrPollNotFound)
	})
}

func TestListByOwner(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("anonymous requester gets an empty list", func(t *testing.T) {
		_, _, svc := newPollFixture()
		polls, err := svc.ListByOwner(ctx, uuid.Nil)
		require.NoError(t, err)
		assert.Empty(t, polls)
	})

	t.Run("returns own active polls newest first", func(t *testing.T) {
		repo, _, svc := newPollFixture()

		first, err := svc.Create(ctx, owner, ports.CreatePollInput{Title: "First", Options: []string{"A", "B"}})
		require.NoError(t, err)
		second, err := svc.Create(ctx, owner, ports.CreatePollInput{Title: "Second", Options: []string{"A", "B"}})
		require.NoError(t, err)
		repo.polls[second.ID].CreatedAt = first.CreatedAt.Add(time.Minute)

		_, err = svc.Create(ctx, uuid.New(), ports.CreatePollInput{Title: "Other", Options: []string{"A", "B"}})
		require.NoError(t, err)

		polls, err := svc.ListByOwner(ctx, owner)
		require.NoError(t, err)
		require.Len(t, polls, 2)
		assert.Equal(t, "Second", polls[0].Title)
		assert.Equal(t, "First", polls[1].Title)
	})
}
