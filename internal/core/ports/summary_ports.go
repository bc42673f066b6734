package ports

import (
	"context"

	"github.com/google/uuid"
)

// PollResultRepository maintains precomputed vote counts per poll option.
type PollResultRepository interface {
	SummarizeVotes(ctx context.Context, pollID uuid.UUID) error
}

// SummaryService recomputes vote summaries for every poll. Intended to run
// as a periodic batch job.
type SummaryService interface {
	SummarizeAllVotes(ctx context.Context) error
}
