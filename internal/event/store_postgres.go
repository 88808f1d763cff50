// Copyright (c) 2026 marsAI. All rights reserved.

package event

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marsai/festival/internal/platform/apperr"
	"github.com/marsai/festival/internal/platform/database/schema"
	"github.com/marsai/festival/internal/platform/dberr"
	"github.com/marsai/festival/internal/platform/postgres"
	"github.com/marsai/festival/pkg/uuid"
)

// PostgresRepository implements [Repository] over festival.registration
// and festival.booking.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Reserved(context context.Context, festivalID string) (map[ID]int, error) {
	booking := schema.FestivalBooking
	query := fmt.Sprintf(`SELECT %s, COUNT(*) FROM %s WHERE %s = $1 GROUP BY %s`,
		booking.EventID, booking.Table, booking.FestivalID, booking.EventID)

	rows, err := repository.pool.Query(context, query, festivalID)
	if err != nil {
		return nil, dberr.Wrap(err, "count_reserved_seats")
	}
	defer rows.Close()

	reserved := make(map[ID]int)
	for rows.Next() {
		var (
			id    ID
			count int
		)
		if err := rows.Scan(&id, &count); err != nil {
			return nil, dberr.Wrap(err, "scan_reserved_seats")
		}
		reserved[id] = count
	}
	return reserved, dberr.Wrap(rows.Err(), "count_reserved_seats")
}

/*
Register books every seat of a registration in one transaction.

Description: Events are locked in sorted order with a transaction-scoped
advisory lock keyed by festival and event, so concurrent registrations for
the same event serialize on the seat count and never deadlock.
*/
func (repository *PostgresRepository) Register(context context.Context, registration *Registration, capacities map[ID]int) error {
	err := postgres.InTx(context, repository.pool, func(transaction pgx.Tx) error {
		if err := insertRegistration(context, transaction, registration); err != nil {
			return err
		}

		for _, id := range registration.eventIDs() {
			if err := reserveSeat(context, transaction, registration, id, capacities[id]); err != nil {
				return err
			}
		}

		for _, booking := range registration.Bookings {
			if err := insertBooking(context, transaction, registration, booking); err != nil {
				return err
			}
		}
		return nil
	})
	return dberr.Wrap(err, "register_for_events")
}

func insertRegistration(context context.Context, transaction pgx.Tx, registration *Registration) error {
	table := schema.FestivalRegistration
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		table.Table, table.ID, table.FestivalID, table.FirstName, table.LastName,
		table.Email, table.Phone, table.Company, table.CreatedAt)

	_, err := transaction.Exec(context, query,
		registration.ID, registration.FestivalID, registration.FirstName, registration.LastName,
		registration.Email, registration.Phone, registration.Company, registration.CreatedAt,
	)
	return dberr.Wrap(err, "insert_registration")
}

// reserveSeat takes the event lock, then checks the email and the seat count.
func reserveSeat(context context.Context, transaction pgx.Tx, registration *Registration, id ID, capacity int) error {
	booking := schema.FestivalBooking

	if _, err := transaction.Exec(context, `SELECT pg_advisory_xact_lock(hashtext($1))`,
		registration.FestivalID+":"+string(id)); err != nil {
		return dberr.Wrap(err, "lock_event")
	}

	query := fmt.Sprintf(`
		SELECT COUNT(*), COUNT(*) FILTER (WHERE LOWER(%s) = $3)
		FROM %s WHERE %s = $1 AND %s = $2`,
		booking.Email, booking.Table, booking.FestivalID, booking.EventID)

	var reserved, mine int
	if err := transaction.QueryRow(context, query, registration.FestivalID, id, registration.Email).Scan(&reserved, &mine); err != nil {
		return dberr.Wrap(err, "count_event_seats")
	}

	if mine > 0 {
		return apperr.Conflict("You are already registered for this event").WithMeta("event_id", id)
	}
	if reserved >= capacity {
		return apperr.Unprocessable("This event is full").WithMeta("event_id", id)
	}
	return nil
}

func insertBooking(context context.Context, transaction pgx.Tx, registration *Registration, item Booking) error {
	booking := schema.FestivalBooking
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		booking.Table, booking.ID, booking.RegistrationID, booking.FestivalID, booking.Email,
		booking.EventID, booking.EventDate, booking.Slot, booking.CreatedAt)

	_, err := transaction.Exec(context, query,
		uuid.New(), registration.ID, registration.FestivalID, registration.Email,
		item.EventID, item.Date, item.Time, registration.CreatedAt,
	)
	if dberr.IsUniqueViolation(err) {
		return apperr.Conflict("You are already registered for this event").WithMeta("event_id", item.EventID)
	}
	return dberr.Wrap(err, "insert_booking")
}

/*
Cancel removes the visitor's registrations. Bookings go with them through
ON DELETE CASCADE; the freed seat count is taken first.
*/
func (repository *PostgresRepository) Cancel(context context.Context, festivalID, email string) (int, error) {
	registration := schema.FestivalRegistration
	booking := schema.FestivalBooking

	var freed int
	err := postgres.InTx(context, repository.pool, func(transaction pgx.Tx) error {
		countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1 AND LOWER(%s) = $2`,
			booking.Table, booking.FestivalID, booking.Email)
		if err := transaction.QueryRow(context, countQuery, festivalID, email).Scan(&freed); err != nil {
			return dberr.Wrap(err, "count_cancelled_seats")
		}

		deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND LOWER(%s) = $2`,
			registration.Table, registration.FestivalID, registration.Email)
		tag, err := transaction.Exec(context, deleteQuery, festivalID, email)
		if err != nil {
			return dberr.Wrap(err, "delete_registrations")
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("Registration")
		}
		return nil
	})
	if err != nil {
		return 0, dberr.Wrap(err, "cancel_registration")
	}
	return freed, nil
}
