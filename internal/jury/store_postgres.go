// Copyright (c) 2026 marsAI. All rights reserved.

package jury

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marsai/festival/internal/platform/apperr"
	"github.com/marsai/festival/internal/platform/database/schema"
	"github.com/marsai/festival/internal/platform/dberr"
)

// PostgresRepository implements [Repository] over festival.submission and
// festival.evaluation.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// selectAssigned joins the juror's evaluation ($2) onto validated submissions
// of a festival ($1). Video and synopses come from the stored draft.
func selectAssigned() string {
	sub := schema.FestivalSubmission
	ev := schema.FestivalEvaluation

	return fmt.Sprintf(`
		SELECT s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s,
		       COALESCE(s.%s->'deliverables'->>'video_url', ''),
		       COALESCE(s.%s->'film'->>'synopsis_original', ''),
		       COALESCE(s.%s->'film'->>'synopsis_english', ''),
		       e.%s, e.%s, e.%s, e.%s, e.%s, e.%s
		FROM %s s
		LEFT JOIN %s e ON e.%s = s.%s AND e.%s = $2
		WHERE s.%s = $1 AND s.%s = 'validated'`,
		sub.ID, sub.Title, sub.TitleEnglish, sub.Director, sub.Country, sub.DurationSeconds, sub.Classification,
		sub.Draft, sub.Draft, sub.Draft,
		ev.Creativity, ev.Technical, ev.Narrative, ev.Comment, ev.Submitted, ev.UpdatedAt,
		sub.Table,
		ev.Table, ev.SubmissionID, sub.ID, ev.JurorID,
		sub.FestivalID, sub.Status,
	)
}

func scanAssigned(row pgx.Row, jurorID string) (*AssignedFilm, error) {
	film := &AssignedFilm{}
	var (
		creativity, technical, narrative *int
		comment                          *string
		submitted                        *bool
		updatedAt                        *time.Time
	)

	err := row.Scan(
		&film.SubmissionID, &film.Title, &film.TitleEnglish, &film.Director, &film.Country,
		&film.DurationSeconds, &film.Classification, &film.VideoURL, &film.Synopsis, &film.SynopsisEnglish,
		&creativity, &technical, &narrative, &comment, &submitted, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if creativity != nil {
		film.Evaluation = &Evaluation{
			SubmissionID: film.SubmissionID,
			JurorID:      jurorID,
			Creativity:   *creativity,
			Technical:    *technical,
			Narrative:    *narrative,
			Comment:      *comment,
			Submitted:    *submitted,
			UpdatedAt:    *updatedAt,
		}
	}
	return film, nil
}

func (repository *PostgresRepository) ListAssigned(context context.Context, festivalID, jurorID string) ([]AssignedFilm, error) {
	query := selectAssigned() + fmt.Sprintf(` ORDER BY s.%s`, schema.FestivalSubmission.SubmittedAt)

	rows, err := repository.pool.Query(context, query, festivalID, jurorID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_assigned_films")
	}
	defer rows.Close()

	films := make([]AssignedFilm, 0)
	for rows.Next() {
		film, err := scanAssigned(rows, jurorID)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_assigned_film")
		}
		films = append(films, *film)
	}
	return films, dberr.Wrap(rows.Err(), "list_assigned_films")
}

func (repository *PostgresRepository) FindAssigned(context context.Context, festivalID, jurorID, submissionID string) (*AssignedFilm, error) {
	query := selectAssigned() + fmt.Sprintf(` AND s.%s = $3`, schema.FestivalSubmission.ID)

	film, err := scanAssigned(repository.pool.QueryRow(context, query, festivalID, jurorID, submissionID), jurorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("Film")
	}
	if err != nil {
		return nil, dberr.Wrap(err, "find_assigned_film")
	}
	return film, nil
}

/*
SaveOpen upserts scores and comment.

Description: The conditional DO UPDATE leaves a submitted row untouched,
so a concurrent submit cannot be overwritten.
*/
func (repository *PostgresRepository) SaveOpen(context context.Context, evaluation *Evaluation) (bool, error) {
	ev := schema.FestivalEvaluation
	query := fmt.Sprintf(`
		INSERT INTO %s AS e (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7)
		ON CONFLICT (%s, %s) DO UPDATE SET
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s
		WHERE e.%s = FALSE`,
		ev.Table, ev.SubmissionID, ev.JurorID, ev.Creativity, ev.Technical, ev.Narrative, ev.Comment, ev.Submitted, ev.UpdatedAt,
		ev.SubmissionID, ev.JurorID,
		ev.Creativity, ev.Creativity, ev.Technical, ev.Technical, ev.Narrative, ev.Narrative,
		ev.Comment, ev.Comment, ev.UpdatedAt, ev.UpdatedAt,
		ev.Submitted,
	)

	tag, err := repository.pool.Exec(context, query,
		evaluation.SubmissionID, evaluation.JurorID, evaluation.Creativity, evaluation.Technical,
		evaluation.Narrative, evaluation.Comment, evaluation.UpdatedAt,
	)
	if err != nil {
		return false, dberr.Wrap(err, "save_evaluation")
	}
	return tag.RowsAffected() == 1, nil
}

func (repository *PostgresRepository) SetSubmitted(context context.Context, submissionID, jurorID string, submitted bool) error {
	ev := schema.FestivalEvaluation
	query := fmt.Sprintf(`UPDATE %s SET %s = $3, %s = NOW() WHERE %s = $1 AND %s = $2`,
		ev.Table, ev.Submitted, ev.UpdatedAt, ev.SubmissionID, ev.JurorID)

	tag, err := repository.pool.Exec(context, query, submissionID, jurorID, submitted)
	if err != nil {
		return dberr.Wrap(err, "set_evaluation_submitted")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Evaluation")
	}
	return nil
}
