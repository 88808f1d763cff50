// Copyright (c) 2026 marsAI. All rights reserved.

package submission

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marsai/festival/internal/platform/apperr"
	"github.com/marsai/festival/internal/platform/database/schema"
	"github.com/marsai/festival/internal/platform/dberr"
)

// PostgresRepository implements [Repository] over festival.submission.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Create inserts a received submission with its full draft payload.

Description: The draft ID is unique, so submitting the same draft twice
returns the submission stored by the first attempt.

Parameters:
  - context: context.Context
  - submission: *Submission

Returns:
  - *Submission: the inserted or previously stored submission
  - error: CONFLICT if the ID already exists, otherwise wrapped storage errors
*/
func (repository *PostgresRepository) Create(context context.Context, submission *Submission) (*Submission, error) {
	sub := schema.FestivalSubmission

	draft, err := json.Marshal(submission.Draft)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("marshal_submission_draft: %w", err))
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
		ON CONFLICT (%s) DO NOTHING`,
		sub.Table,
		sub.ID, sub.FestivalID, sub.DraftID, sub.Status, sub.Title, sub.TitleEnglish, sub.Director, sub.Email,
		sub.Country, sub.DurationSeconds, sub.Classification, sub.Draft, sub.SubmittedAt, sub.UpdatedAt,
		sub.DraftID,
	)

	tag, err := repository.pool.Exec(context, query,
		submission.ID, submission.FestivalID, submission.DraftID, submission.Status, submission.Title,
		submission.TitleEnglish, submission.Director, submission.Email, submission.Country,
		submission.DurationSeconds, submission.Classification, draft, submission.SubmittedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "insert_submission")
	}
	if tag.RowsAffected() == 1 {
		return submission, nil
	}
	return repository.findBy(context, sub.DraftID, submission.DraftID)
}

// FindByID loads a submission with its draft payload.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Submission, error) {
	return repository.findBy(context, schema.FestivalSubmission.ID, id)
}

func (repository *PostgresRepository) findBy(context context.Context, column, value string) (*Submission, error) {
	sub := schema.FestivalSubmission
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s WHERE %s = $1`,
		sub.ID, sub.FestivalID, sub.DraftID, sub.Status, sub.Title, sub.TitleEnglish, sub.Director, sub.Email,
		sub.Country, sub.DurationSeconds, sub.Classification, sub.Draft, sub.SubmittedAt, sub.AcknowledgedAt,
		sub.Table, column,
	)

	submission := &Submission{}
	var draft []byte
	err := repository.pool.QueryRow(context, query, value).Scan(
		&submission.ID, &submission.FestivalID, &submission.DraftID, &submission.Status, &submission.Title,
		&submission.TitleEnglish, &submission.Director, &submission.Email, &submission.Country,
		&submission.DurationSeconds, &submission.Classification, &draft, &submission.SubmittedAt,
		&submission.AcknowledgedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Submission")
		}
		return nil, dberr.Wrap(err, "find_submission")
	}

	submission.Draft = &Draft{}
	if err := json.Unmarshal(draft, submission.Draft); err != nil {
		return nil, apperr.Internal(fmt.Errorf("unmarshal_submission_draft: %w", err))
	}
	return submission, nil
}

// MarkAcknowledged stamps the first successful handoff only.
func (repository *PostgresRepository) MarkAcknowledged(context context.Context, id string, at time.Time) (bool, error) {
	sub := schema.FestivalSubmission
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $2
		WHERE %s = $1 AND %s IS NULL`,
		sub.Table, sub.AcknowledgedAt, sub.UpdatedAt,
		sub.ID, sub.AcknowledgedAt,
	)

	tag, err := repository.pool.Exec(context, query, id, at)
	if err != nil {
		return false, dberr.Wrap(err, "acknowledge_submission")
	}
	return tag.RowsAffected() == 1, nil
}

// ListUnacknowledged reads the pending handoffs without their draft payload.
func (repository *PostgresRepository) ListUnacknowledged(context context.Context, cutoff time.Time, limit int) ([]*Submission, error) {
	sub := schema.FestivalSubmission
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s IS NULL AND %s < $1
		ORDER BY %s
		LIMIT $2`,
		sub.ID, sub.FestivalID, sub.SubmittedAt,
		sub.Table,
		sub.AcknowledgedAt, sub.SubmittedAt,
		sub.SubmittedAt,
	)

	rows, err := repository.pool.Query(context, query, cutoff, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "list_unacknowledged_submissions")
	}

	defer rows.Close()

	submissions := make([]*Submission, 0)
	for rows.Next() {
		submission := &Submission{}
		if err := rows.Scan(&submission.ID, &submission.FestivalID, &submission.SubmittedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_unacknowledged_submission")
		}
		submissions = append(submissions, submission)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_unacknowledged_submissions")
	}
	return submissions, nil
}
