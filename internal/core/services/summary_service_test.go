package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pollboard/api/internal/core/domain"
	"github.com/pollboard/api/internal/core/services"
)

func TestSummarizeAllVotes(t *testing.T) {
	ctx := context.Background()

	seedPoll := func(repo *fakePollRepo, active bool) uuid.UUID {
		poll := &domain.Poll{
			ID:        uuid.New(),
			Title:     "Summarized",
			Options:   []string{"A", "B"},
			CreatedBy: uuid.New(),
			IsActive:  active,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		require.NoError(t, repo.Save(ctx, poll))
		return poll.ID
	}

	t.Run("summarizes every poll including tombstoned ones", func(t *testing.T) {
		pollRepo := newFakePollRepo()
		active := seedPoll(pollRepo, true)
		deleted := seedPoll(pollRepo, false)

		resultRepo := newFakePollResultRepo()
		svc := services.NewSummaryService(pollRepo, resultRepo, zap.NewNop())

		require.NoError(t, svc.SummarizeAllVotes(ctx))
		assert.Equal(t, 1, resultRepo.summarized[active])
		assert.Equal(t, 1, resultRepo.summarized[deleted])
	})

	t.Run("no polls is a no-op", func(t *testing.T) {
		resultRepo := newFakePollResultRepo()
		svc := services.NewSummaryService(newFakePollRepo(), resultRepo, zap.NewNop())

		require.NoError(t, svc.SummarizeAllVotes(ctx))
		assert.Empty(t, resultRepo.summarized)
	})

	t.Run("surfaces a summarize failure", func(t *testing.T) {
		pollRepo := newFakePollRepo()
		seedPoll(pollRepo, true)

		resultRepo := newFakePollResultRepo()
		resultRepo.err = errors.New("boom")
		svc := services.NewSummaryService(pollRepo, resultRepo, zap.NewNop())

		err := svc.SummarizeAllVotes(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})
}
