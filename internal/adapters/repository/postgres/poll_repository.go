package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pollboard/api/internal/core/domain"
	"github.com/pollboard/api/internal/core/ports"
)

type pollRepository struct {
	db *sql.DB
}

func NewPollRepository(db *sql.DB) ports.PollRepository {
	return &pollRepository{
		db: db,
	}
}

func (r *pollRepository) Save(ctx context.Context, poll *domain.Poll) error {
	query := `
		INSERT INTO polls (id, title, options, created_by, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		poll.ID, poll.Title, pq.Array(poll.Options), poll.CreatedBy, poll.IsActive, poll.CreatedAt, poll.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}
	return nil
}

func (r *pollRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	query := `
		SELECT id, title, options, created_by, is_active, created_at, updated_at
		FROM polls
		WHERE id = $1 AND is_active
	`
	return r.getOne(ctx, query, id)
}

func (r *pollRepository) GetAnyByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	query := `
		SELECT id, title, options, created_by, is_active, created_at, updated_at
		FROM polls
		WHERE id = $1
	`
	return r.getOne(ctx, query, id)
}

func (r *pollRepository) getOne(ctx context.Context, query string, id uuid.UUID) (*domain.Poll, error) {
	var poll domain.Poll
	var options pq.StringArray
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&poll.ID, &poll.Title, &options, &poll.CreatedBy, &poll.IsActive, &poll.CreatedAt, &poll.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPollNotFound
		}
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}
	poll.Options = options
	return &poll, nil
}

func (r *pollRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Poll, error) {
	query := `
		SELECT id, title, options, created_by, is_active, created_at, updated_at
		FROM polls
		WHERE created_by = $1 AND is_active
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}
	defer rows.Close()

	polls := []*domain.Poll{}
	for rows.Next() {
		var poll domain.Poll
		var options pq.StringArray
		if err := rows.Scan(&poll.ID, &poll.Title, &options, &poll.CreatedBy, &poll.IsActive, &poll.CreatedAt, &poll.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		poll.Options = options
		polls = append(polls, &poll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating polls: %w", err)
	}
	return polls, nil
}

func (r *pollRepository) ListAllWithOwners(ctx context.Context) ([]*domain.PollWithOwner, error) {
	query := `
		SELECT p.id, p.title, p.options, p.created_by, p.is_active, p.created_at, p.updated_at,
		       u.email, u.name
		FROM polls p
		JOIN users u ON u.id = p.created_by
		ORDER BY p.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list all polls: %w", err)
	}
	defer rows.Close()

	polls := []*domain.PollWithOwner{}
	for rows.Next() {
		var p domain.PollWithOwner
		var options pq.StringArray
		if err := rows.Scan(&p.ID, &p.Title, &options, &p.CreatedBy, &p.IsActive, &p.CreatedAt, &p.UpdatedAt, &p.OwnerEmail, &p.OwnerName); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		p.Options = options
		polls = append(polls, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating polls: %w", err)
	}
	return polls, nil
}

func (r *pollRepository) UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, title string, options []string) (int64, error) {
	query := `
		UPDATE polls
		SET title = $1, options = $2, updated_at = NOW()
		WHERE id = $3 AND created_by = $4 AND is_active
	`
	res, err := r.db.ExecContext(ctx, query, title, pq.Array(options), id, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to update poll: %w", err)
	}
	return res.RowsAffected()
}

func (r *pollRepository) DeactivateOwned(ctx context.Context, id, ownerID uuid.UUID) (int64, error) {
	query := `
		UPDATE polls
		SET is_active = false, updated_at = NOW()
		WHERE id = $1 AND created_by = $2 AND is_active
	`
	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate poll: %w", err)
	}
	return res.RowsAffected()
}
