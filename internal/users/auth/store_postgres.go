// Copyright (c) 2026 marsAI. All rights reserved.

package auth

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

// # User Repository

// PostgresUserRepository implements [UserRepository] over users.account.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository constructs a new [PostgresUserRepository].
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// SelectUser lists the account columns read by [ScanUser], aliased a.
// Soft-deleted accounts are excluded by callers.
func SelectUser() string {
	acc := schema.UserAccount
	return fmt.Sprintf(`
		SELECT a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s
		FROM %s a`,
		acc.ID, acc.Username, acc.Email, acc.Password, acc.DisplayName, acc.Role,
		acc.FestivalID, acc.IsActive, acc.LastLoginAt, acc.CreatedAt, acc.UpdatedAt,
		acc.Table,
	)
}

// ScanUser reads one row produced by [SelectUser].
func ScanUser(row pgx.Row) (*User, error) {
	user := &User{}
	var festivalID *string

	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.DisplayName, &user.Role,
		&festivalID, &user.IsActive, &user.LastLoginAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if festivalID != nil {
		user.FestivalID = *festivalID
	}
	return user, nil
}

// NullableID maps an empty ID onto SQL NULL.
func NullableID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	acc := schema.UserAccount
	query := SelectUser() + fmt.Sprintf(` WHERE a.%s = $1 AND a.%s IS NULL`, acc.ID, acc.DeletedAt)
	return repository.findOne(context, query, id, "find_user_by_id")
}

func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	acc := schema.UserAccount
	query := SelectUser() + fmt.Sprintf(` WHERE LOWER(a.%s) = LOWER($1) AND a.%s IS NULL`, acc.Email, acc.DeletedAt)
	return repository.findOne(context, query, email, "find_user_by_email")
}

func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	acc := schema.UserAccount
	query := SelectUser() + fmt.Sprintf(` WHERE LOWER(a.%s) = LOWER($1) AND a.%s IS NULL`, acc.Username, acc.DeletedAt)
	return repository.findOne(context, query, username, "find_user_by_username")
}

func (repository *PostgresUserRepository) findOne(context context.Context, query string, arg any, action string) (*User, error) {
	user, err := ScanUser(repository.pool.QueryRow(context, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, action)
	}
	return user, nil
}

/*
Create persists a new account.

Parameters:
  - context: context.Context
  - user: *User (timestamps are initialized when zero)

Returns:
  - error: apperr CONFLICT on a duplicate email or username, storage errors otherwise
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	acc := schema.UserAccount
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		acc.Table,
		acc.ID, acc.Username, acc.Email, acc.Password, acc.DisplayName, acc.Role,
		acc.FestivalID, acc.IsActive, acc.CreatedAt, acc.UpdatedAt,
	)

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = user.CreatedAt

	_, err := repository.pool.Exec(context, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.DisplayName, string(user.Role),
		NullableID(user.FestivalID), user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
	return dberr.Wrap(err, "insert_user")
}

func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	acc := schema.UserAccount
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		acc.Table, acc.Password, acc.UpdatedAt, acc.ID, acc.DeletedAt)

	tag, err := repository.pool.Exec(context, query, userID, newHash)
	if err != nil {
		return dberr.Wrap(err, "update_user_password")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

func (repository *PostgresUserRepository) TouchLogin(context context.Context, userID string, at time.Time) error {
	acc := schema.UserAccount
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`, acc.Table, acc.LastLoginAt, acc.ID)

	_, err := repository.pool.Exec(context, query, userID, at)
	return dberr.Wrap(err, "touch_user_login")
}

// # Session Repository

// PostgresSessionRepository implements [SessionRepository] over users.session.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository constructs a new [PostgresSessionRepository].
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

func (repository *PostgresSessionRepository) Create(context context.Context, session *Session) error {
	ses := schema.UserSession
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ses.Table,
		ses.ID, ses.UserID, ses.TokenHash, ses.UserAgent, ses.IPAddress, ses.ExpiresAt, ses.CreatedAt,
	)

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		session.ID, session.UserID, session.TokenHash, session.UserAgent, session.IPAddress,
		session.ExpiresAt, session.CreatedAt,
	)
	return dberr.Wrap(err, "insert_session")
}

func (repository *PostgresSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {
	ses := schema.UserSession
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		ses.ID, ses.UserID, ses.TokenHash, ses.UserAgent, ses.IPAddress, ses.ExpiresAt, ses.IsRevoked, ses.CreatedAt,
		ses.Table,
		ses.TokenHash,
	)

	session := &Session{}
	err := repository.pool.QueryRow(context, query, tokenHash).Scan(
		&session.ID, &session.UserID, &session.TokenHash, &session.UserAgent, &session.IPAddress,
		&session.ExpiresAt, &session.IsRevoked, &session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Session")
		}
		return nil, dberr.Wrap(err, "find_session")
	}
	return session, nil
}

// Revoke flips isrevoked in a single guarded UPDATE, so two concurrent
// refreshes of the same token cannot both succeed.
func (repository *PostgresSessionRepository) Revoke(context context.Context, sessionID string) (bool, error) {
	ses := schema.UserSession
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = NOW() WHERE %s = $1 AND NOT %s`,
		ses.Table, ses.IsRevoked, ses.RevokedAt, ses.ID, ses.IsRevoked)

	tag, err := repository.pool.Exec(context, query, sessionID)
	if err != nil {
		return false, dberr.Wrap(err, "revoke_session")
	}
	return tag.RowsAffected() == 1, nil
}

func (repository *PostgresSessionRepository) RevokeAll(context context.Context, userID string) error {
	ses := schema.UserSession
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = NOW() WHERE %s = $1 AND NOT %s`,
		ses.Table, ses.IsRevoked, ses.RevokedAt, ses.UserID, ses.IsRevoked)

	_, err := repository.pool.Exec(context, query, userID)
	return dberr.Wrap(err, "revoke_all_sessions")
}

func (repository *PostgresSessionRepository) RevokeOthers(context context.Context, userID, keepSessionID string) error {
	ses := schema.UserSession
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = NOW() WHERE %s = $1 AND %s <> $2 AND NOT %s`,
		ses.Table, ses.IsRevoked, ses.RevokedAt, ses.UserID, ses.ID, ses.IsRevoked)

	_, err := repository.pool.Exec(context, query, userID, keepSessionID)
	return dberr.Wrap(err, "revoke_other_sessions")
}
