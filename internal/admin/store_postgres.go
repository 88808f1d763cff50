// Copyright (c) 2026 marsAI. All rights reserved.

package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marsai/festival/internal/platform/apperr"
	"github.com/marsai/festival/internal/platform/database/schema"
	"github.com/marsai/festival/internal/platform/dberr"
	"github.com/marsai/festival/internal/submission"
)

// PostgresRepository implements [Repository].
type PostgresRepository struct {
	pool        *pgxpool.Pool
	submissions *submission.PostgresRepository
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool, submissions: submission.NewPostgresRepository(pool)}
}

/*
List returns one page of the festival's submissions, newest first.

Description: Each row carries its gallery state and the mean of the
submitted jury evaluations. COUNT(*) OVER() yields the unpaginated total.
*/
func (repository *PostgresRepository) List(context context.Context, festivalID string, filter ListFilter, limit, offset int) ([]SubmissionSummary, int, error) {
	sub := schema.FestivalSubmission
	ev := schema.FestivalEvaluation
	film := schema.FestivalFilm

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s,
		       EXISTS (SELECT 1 FROM %s f WHERE f.%s = s.%s),
		       (SELECT COUNT(*) FROM %s e WHERE e.%s = s.%s AND e.%s),
		       (SELECT AVG(ROUND((e.%s + e.%s + e.%s) / 3.0))::float8 FROM %s e WHERE e.%s = s.%s AND e.%s),
		       COUNT(*) OVER()
		FROM %s s
		WHERE s.%s = $1`,
		sub.ID, sub.Title, sub.TitleEnglish, sub.Director, sub.Email, sub.Country,
		sub.DurationSeconds, sub.Classification, sub.Status, sub.SubmittedAt,
		film.Table, film.SubmissionID, sub.ID,
		ev.Table, ev.SubmissionID, sub.ID, ev.Submitted,
		ev.Creativity, ev.Technical, ev.Narrative, ev.Table, ev.SubmissionID, sub.ID, ev.Submitted,
		sub.Table,
		sub.FestivalID,
	))

	args := []any{festivalID}
	argID := 2

	if query := strings.TrimSpace(filter.Query); query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (s.%s ILIKE $%d OR s.%s ILIKE $%d)", sub.Title, argID, sub.Director, argID))
		args = append(args, "%"+query+"%")
		argID++
	}

	if filter.Status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.%s = $%d", sub.Status, argID))
		args = append(args, filter.Status)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY s.%s DESC LIMIT $%d OFFSET $%d", sub.SubmittedAt, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_submissions")
	}
	defer rows.Close()

	summaries := make([]SubmissionSummary, 0)
	var total int
	for rows.Next() {
		var summary SubmissionSummary
		err := rows.Scan(
			&summary.ID, &summary.Title, &summary.TitleEnglish, &summary.Director, &summary.Email, &summary.Country,
			&summary.DurationSeconds, &summary.Classification, &summary.Status, &summary.SubmittedAt,
			&summary.Published, &summary.Evaluations, &summary.JuryAverage, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_submission_summary")
		}
		if summary.JuryAverage != nil {
			rounded := roundTenth(*summary.JuryAverage)
			summary.JuryAverage = &rounded
		}
		summaries = append(summaries, summary)
	}

	return summaries, total, dberr.Wrap(rows.Err(), "list_submissions")
}

func (repository *PostgresRepository) Find(context context.Context, festivalID, id string) (*submission.Submission, error) {
	found, err := repository.submissions.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if found.FestivalID != festivalID {
		return nil, apperr.NotFound("Submission")
	}
	return found, nil
}

func (repository *PostgresRepository) SetStatus(context context.Context, festivalID, id string, status submission.Status) error {
	sub := schema.FestivalSubmission
	query := fmt.Sprintf(`UPDATE %s SET %s = $3, %s = NOW() WHERE %s = $1 AND %s = $2`,
		sub.Table, sub.Status, sub.UpdatedAt, sub.ID, sub.FestivalID)

	tag, err := repository.pool.Exec(context, query, id, festivalID, status)
	if err != nil {
		return dberr.Wrap(err, "set_submission_status")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Submission")
	}
	return nil
}

// Stats aggregates the dashboard figures in a single round trip.
func (repository *PostgresRepository) Stats(context context.Context, festivalID string) (*Stats, error) {
	sub := schema.FestivalSubmission
	ev := schema.FestivalEvaluation
	film := schema.FestivalFilm

	query := fmt.Sprintf(`
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE s.%s = 'pending'),
		       COUNT(*) FILTER (WHERE s.%s = 'validated'),
		       COUNT(*) FILTER (WHERE s.%s = 'rejected'),
		       COUNT(DISTINCT UPPER(s.%s)),
		       (SELECT COUNT(*) FROM %s e JOIN %s x ON x.%s = e.%s WHERE x.%s = $1 AND e.%s),
		       (SELECT AVG(ROUND((e.%s + e.%s + e.%s) / 3.0))::float8
		          FROM %s e JOIN %s x ON x.%s = e.%s WHERE x.%s = $1 AND e.%s),
		       (SELECT COUNT(*) FROM %s f WHERE f.%s = $1 AND f.%s),
		       (SELECT COUNT(*) FROM %s f WHERE f.%s = $1)
		FROM %s s
		WHERE s.%s = $1`,
		sub.Status, sub.Status, sub.Status,
		sub.Country,
		ev.Table, sub.Table, sub.ID, ev.SubmissionID, sub.FestivalID, ev.Submitted,
		ev.Creativity, ev.Technical, ev.Narrative,
		ev.Table, sub.Table, sub.ID, ev.SubmissionID, sub.FestivalID, ev.Submitted,
		film.Table, film.FestivalID, film.OfficialSelection,
		film.Table, film.FestivalID,
		sub.Table,
		sub.FestivalID,
	)

	var pending, validated, rejected int
	stats := &Stats{}
	err := repository.pool.QueryRow(context, query, festivalID).Scan(
		&stats.Submissions, &pending, &validated, &rejected, &stats.Countries,
		&stats.Evaluations, &stats.JuryAverage, &stats.OfficialSelection, &stats.Published,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "submission_stats")
	}

	stats.ByStatus = map[submission.Status]int{
		submission.StatusPending:   pending,
		submission.StatusValidated: validated,
		submission.StatusRejected:  rejected,
	}
	return stats, nil
}
