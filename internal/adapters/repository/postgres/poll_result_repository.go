package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/pollboard/api/internal/core/ports"
)

type pollResultRepository struct {
	db *sql.DB
}

func NewPollResultRepository(db *sql.DB) ports.PollResultRepository {
	return &pollResultRepository{
		db: db,
	}
}

func (r *pollResultRepository) SummarizeVotes(ctx context.Context, pollID uuid.UUID) error {
	query := `
		INSERT INTO poll_results (poll_id, option_index, vote_count, last_updated_at)
		SELECT poll_id, option_index, COUNT(*), NOW()
		FROM votes
		WHERE poll_id = $1
		GROUP BY poll_id, option_index
		ON CONFLICT (poll_id, option_index) DO UPDATE
		SET vote_count = EXCLUDED.vote_count,
		    last_updated_at = NOW()
	`
	if _, err := r.db.ExecContext(ctx, query, pollID); err != nil {
		return fmt.Errorf("failed to summarize votes for poll %s: %w", pollID, err)
	}
	return nil
}
