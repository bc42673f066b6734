package services

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/pollboard/api/internal/core/ports"
)

type summaryService struct {
	pollRepo   ports.PollRepository
	resultRepo ports.PollResultRepository
	log        *zap.Logger
}

func NewSummaryService(pollRepo ports.PollRepository, resultRepo ports.PollResultRepository, log *zap.Logger) ports.SummaryService {
	return &summaryService{
		pollRepo:   pollRepo,
		resultRepo: resultRepo,
		log:        log,
	}
}

// SummarizeAllVotes recomputes the stored vote counts for every poll,
// tombstoned ones included so their final tallies stay queryable.
func (s *summaryService) SummarizeAllVotes(ctx context.Context) error {
	polls, err := s.pollRepo.ListAllWithOwners(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch polls: %w", err)
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(polls))

	for _, poll := range polls {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.resultRepo.SummarizeVotes(ctx, poll.ID); err != nil {
				errChan <- fmt.Errorf("failed to summarize poll %s: %w", poll.ID, err)
			}
		}()
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return err
		}
	}

	s.log.Info("vote summaries refreshed", zap.Int("polls", len(polls)))
	return nil
}
