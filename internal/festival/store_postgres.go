// Copyright (c) 2026 marsAI. All rights reserved.

package festival

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marsai/festival/internal/platform/apperr"
	"github.com/marsai/festival/internal/platform/database/schema"
	"github.com/marsai/festival/internal/platform/dberr"
	"github.com/marsai/festival/internal/platform/postgres"
)

// PostgresRepository implements [Repository] over festival.instance.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// selectFestival lists the instance columns plus the derived submission count.
func selectFestival() string {
	inst := schema.FestivalInstance
	sub := schema.FestivalSubmission

	return fmt.Sprintf(`
		SELECT i.%s, i.%s, i.%s, i.%s, i.%s, i.%s, i.%s, i.%s, i.%s, i.%s, i.%s,
		       (SELECT COUNT(*) FROM %s s WHERE s.%s = i.%s),
		       i.%s, i.%s
		FROM %s i`,
		inst.ID, inst.Name, inst.Slug, inst.Year, inst.City, inst.Status,
		inst.LogoURL, inst.PrimaryColor, inst.YouTubeAPIKey, inst.SubmissionDeadline, inst.EventDays,
		sub.Table, sub.FestivalID, inst.ID,
		inst.CreatedAt, inst.UpdatedAt,
		inst.Table,
	)
}

func scanFestival(row pgx.Row) (*Festival, error) {
	festival := &Festival{}
	err := row.Scan(
		&festival.ID, &festival.Name, &festival.Slug, &festival.Year, &festival.City, &festival.Status,
		&festival.LogoURL, &festival.PrimaryColor, &festival.YouTubeAPIKey, &festival.SubmissionDeadline, &festival.EventDays,
		&festival.SubmissionsCount,
		&festival.CreatedAt, &festival.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return festival, nil
}

// List returns every festival, newest edition first.
func (repository *PostgresRepository) List(context context.Context) ([]*Festival, error) {
	query := selectFestival() + fmt.Sprintf(` ORDER BY i.%s DESC, i.%s DESC`,
		schema.FestivalInstance.Year, schema.FestivalInstance.CreatedAt)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_festivals")
	}
	defer rows.Close()

	festivals := make([]*Festival, 0)
	for rows.Next() {
		festival, err := scanFestival(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_festival")
		}
		festivals = append(festivals, festival)
	}

	return festivals, dberr.Wrap(rows.Err(), "list_festivals")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Festival, error) {
	query := selectFestival() + fmt.Sprintf(` WHERE i.%s = $1`, schema.FestivalInstance.ID)
	return repository.findOne(context, query, id, "find_festival_by_id")
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Festival, error) {
	query := selectFestival() + fmt.Sprintf(` WHERE i.%s = $1`, schema.FestivalInstance.Slug)
	return repository.findOne(context, query, slug, "find_festival_by_slug")
}

func (repository *PostgresRepository) FindActive(context context.Context) (*Festival, error) {
	query := selectFestival() + fmt.Sprintf(` WHERE i.%s = $1`, schema.FestivalInstance.Status)
	return repository.findOne(context, query, string(StatusActive), "find_active_festival")
}

func (repository *PostgresRepository) findOne(context context.Context, query string, arg any, action string) (*Festival, error) {
	festival, err := scanFestival(repository.pool.QueryRow(context, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Festival")
		}
		return nil, dberr.Wrap(err, action)
	}
	return festival, nil
}

// Create inserts a new festival instance.
func (repository *PostgresRepository) Create(context context.Context, festival *Festival) error {
	inst := schema.FestivalInstance
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)`,
		inst.Table,
		inst.ID, inst.Name, inst.Slug, inst.Year, inst.City, inst.Status, inst.LogoURL,
		inst.PrimaryColor, inst.YouTubeAPIKey, inst.SubmissionDeadline, inst.EventDays,
		inst.CreatedAt, inst.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		festival.ID, festival.Name, festival.Slug, festival.Year, festival.City, festival.Status, festival.LogoURL,
		festival.PrimaryColor, festival.YouTubeAPIKey, festival.SubmissionDeadline, festival.EventDays,
		festival.CreatedAt,
	)
	if dberr.IsUniqueViolation(err) {
		return apperr.Conflict("A festival with this slug already exists")
	}
	return dberr.Wrap(err, "create_festival")
}

// Update writes every mutable column of festival.
func (repository *PostgresRepository) Update(context context.Context, festival *Festival) error {
	inst := schema.FestivalInstance
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7,
		    %s = $8, %s = $9, %s = $10, %s = NOW()
		WHERE %s = $1`,
		inst.Table,
		inst.Name, inst.Slug, inst.Year, inst.City, inst.LogoURL, inst.PrimaryColor,
		inst.YouTubeAPIKey, inst.SubmissionDeadline, inst.EventDays, inst.UpdatedAt,
		inst.ID,
	)

	tag, err := repository.pool.Exec(context, query,
		festival.ID, festival.Name, festival.Slug, festival.Year, festival.City, festival.LogoURL, festival.PrimaryColor,
		festival.YouTubeAPIKey, festival.SubmissionDeadline, festival.EventDays,
	)
	if dberr.IsUniqueViolation(err) {
		return apperr.Conflict("A festival with this slug already exists")
	}
	if err != nil {
		return dberr.Wrap(err, "update_festival")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Festival")
	}
	return nil
}

// Activate archives the current active festival and activates id in one transaction.
func (repository *PostgresRepository) Activate(context context.Context, id string) (string, error) {
	inst := schema.FestivalInstance
	var archivedID string

	err := postgres.InTx(context, repository.pool, func(tx pgx.Tx) error {
		archiveQuery := fmt.Sprintf(`
			UPDATE %s SET %s = $1, %s = NOW()
			WHERE %s = $2 AND %s <> $3
			RETURNING %s`,
			inst.Table, inst.Status, inst.UpdatedAt,
			inst.Status, inst.ID,
			inst.ID,
		)
		err := tx.QueryRow(context, archiveQuery, string(StatusArchived), string(StatusActive), id).Scan(&archivedID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return dberr.Wrap(err, "archive_active_festival")
		}

		activateQuery := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2`,
			inst.Table, inst.Status, inst.UpdatedAt, inst.ID)
		tag, err := tx.Exec(context, activateQuery, string(StatusActive), id)
		if err != nil {
			return dberr.Wrap(err, "activate_festival")
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("Festival")
		}
		return nil
	})

	return archivedID, err
}

func (repository *PostgresRepository) SetStatus(context context.Context, id string, status Status) error {
	inst := schema.FestivalInstance
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2`,
		inst.Table, inst.Status, inst.UpdatedAt, inst.ID)

	tag, err := repository.pool.Exec(context, query, string(status), id)
	if err != nil {
		return dberr.Wrap(err, "set_festival_status")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Festival")
	}
	return nil
}
