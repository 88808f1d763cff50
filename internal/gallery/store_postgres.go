// Copyright (c) 2026 marsAI. All rights reserved.

package gallery

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marsai/festival/internal/platform/apperr"
	"github.com/marsai/festival/internal/platform/database/schema"
	"github.com/marsai/festival/internal/platform/dberr"
)

// PostgresRepository implements [Repository] over festival.film.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func filmColumns() string {
	return strings.Join(schema.FestivalFilm.Columns(), ", ")
}

func scanFilm(row pgx.Row) (*Film, error) {
	film := &Film{}
	err := row.Scan(
		&film.ID, &film.FestivalID, &film.SubmissionID, &film.Title, &film.TitleEnglish, &film.Director,
		&film.Country, &film.Category, &film.AITools, &film.OfficialSelection, &film.DurationSeconds,
		&film.ThumbnailURL, &film.VideoURL, &film.PublishedAt,
	)
	if err != nil {
		return nil, err
	}
	return film, nil
}

// ListPublished returns a festival's films, newest first.
func (repository *PostgresRepository) ListPublished(context context.Context, festivalID string) ([]Film, error) {
	f := schema.FestivalFilm
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC, %s`,
		filmColumns(), f.Table, f.FestivalID, f.PublishedAt, f.Title)

	rows, err := repository.pool.Query(context, query, festivalID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_films")
	}
	defer rows.Close()

	films := make([]Film, 0)
	for rows.Next() {
		film, err := scanFilm(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_film")
		}
		films = append(films, *film)
	}
	return films, dberr.Wrap(rows.Err(), "list_films")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Film, error) {
	f := schema.FestivalFilm
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, filmColumns(), f.Table, f.ID)

	film, err := scanFilm(repository.pool.QueryRow(context, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("Film")
	}
	if err != nil {
		return nil, dberr.Wrap(err, "find_film")
	}
	return film, nil
}

/*
Publish upserts the gallery entry of a submission.

Description: Re-publishing keeps the film ID and the original publication
date and refreshes every display field.
*/
func (repository *PostgresRepository) Publish(context context.Context, film *Film) error {
	f := schema.FestivalFilm
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (%s) DO UPDATE SET
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s
		RETURNING %s, %s`,
		f.Table, filmColumns(),
		f.SubmissionID,
		f.Title, f.Title, f.TitleEnglish, f.TitleEnglish, f.Director, f.Director, f.Country, f.Country,
		f.Category, f.Category, f.AITools, f.AITools, f.OfficialSelection, f.OfficialSelection, f.DurationSeconds, f.DurationSeconds,
		f.ThumbnailURL, f.ThumbnailURL, f.VideoURL, f.VideoURL, f.FestivalID, f.FestivalID,
		f.ID, f.PublishedAt,
	)

	err := repository.pool.QueryRow(context, query,
		film.ID, film.FestivalID, film.SubmissionID, film.Title, film.TitleEnglish, film.Director,
		film.Country, film.Category, film.AITools, film.OfficialSelection, film.DurationSeconds,
		film.ThumbnailURL, film.VideoURL, film.PublishedAt,
	).Scan(&film.ID, &film.PublishedAt)
	return dberr.Wrap(err, "publish_film")
}

func (repository *PostgresRepository) Unpublish(context context.Context, submissionID string) (*Film, error) {
	f := schema.FestivalFilm
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 RETURNING %s`, f.Table, f.SubmissionID, filmColumns())

	film, err := scanFilm(repository.pool.QueryRow(context, query, submissionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("Film")
	}
	if err != nil {
		return nil, dberr.Wrap(err, "unpublish_film")
	}
	return film, nil
}
