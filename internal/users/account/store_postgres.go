// Copyright (c) 2026 marsAI. All rights reserved.

package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marsai/festival/internal/platform/apperr"
	"github.com/marsai/festival/internal/platform/database/schema"
	"github.com/marsai/festival/internal/platform/dberr"
	"github.com/marsai/festival/internal/platform/sec"
	"github.com/marsai/festival/internal/users/auth"
)

// # Repository Implementations

// PostgresAccountRepository implements [AccountRepository]. Lookups and
// inserts are shared with the auth repository.
type PostgresAccountRepository struct {
	*auth.PostgresUserRepository
	pool *pgxpool.Pool
}

// NewAccountRepository constructs a new [PostgresAccountRepository].
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{PostgresUserRepository: auth.NewUserRepository(pool), pool: pool}
}

func (repository *PostgresAccountRepository) ListStaff(context context.Context, filter StaffFilter) ([]*auth.User, error) {
	acc := schema.UserAccount

	var builder strings.Builder
	builder.WriteString(auth.SelectUser())
	fmt.Fprintf(&builder, ` WHERE a.%s IS NULL AND a.%s IN ($1, $2, $3)`, acc.DeletedAt, acc.Role)

	args := []any{string(sec.RoleSuperAdmin), string(sec.RoleAdmin), string(sec.RoleJury)}
	argID := len(args) + 1

	if filter.Role != "" {
		fmt.Fprintf(&builder, ` AND a.%s = $%d`, acc.Role, argID)
		args = append(args, string(filter.Role))
		argID++
	}
	if filter.FestivalID != "" {
		fmt.Fprintf(&builder, ` AND a.%s = $%d`, acc.FestivalID, argID)
		args = append(args, filter.FestivalID)
	}
	fmt.Fprintf(&builder, ` ORDER BY a.%s DESC`, acc.CreatedAt)

	rows, err := repository.pool.Query(context, builder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_staff")
	}
	defer rows.Close()

	users := make([]*auth.User, 0)
	for rows.Next() {
		user, err := auth.ScanUser(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_staff")
		}
		users = append(users, user)
	}
	return users, dberr.Wrap(rows.Err(), "list_staff")
}

func (repository *PostgresAccountRepository) Update(context context.Context, user *auth.User) error {
	acc := schema.UserAccount
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6
		WHERE %s = $1 AND %s IS NULL`,
		acc.Table,
		acc.DisplayName, acc.Role, acc.FestivalID, acc.IsActive, acc.UpdatedAt,
		acc.ID, acc.DeletedAt,
	)

	tag, err := repository.pool.Exec(context, query,
		user.ID, user.DisplayName, string(user.Role), auth.NullableID(user.FestivalID), user.IsActive, user.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "update_account")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

func (repository *PostgresAccountRepository) SoftDelete(context context.Context, id string) error {
	acc := schema.UserAccount
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		acc.Table, acc.DeletedAt, acc.ID, acc.DeletedAt)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_account")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

// PostgresSessionRepository implements [SessionRepository] over users.session.
type PostgresSessionRepository struct {
	*auth.PostgresSessionRepository
	pool *pgxpool.Pool
}

// NewSessionRepository constructs a new [PostgresSessionRepository].
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{PostgresSessionRepository: auth.NewSessionRepository(pool), pool: pool}
}

func (repository *PostgresSessionRepository) FindActiveByUserID(context context.Context, userID string) ([]*auth.Session, error) {
	ses := schema.UserSession
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND NOT %s AND %s > NOW()
		ORDER BY %s DESC`,
		ses.ID, ses.UserID, ses.TokenHash, ses.UserAgent, ses.IPAddress, ses.ExpiresAt, ses.IsRevoked, ses.CreatedAt,
		ses.Table,
		ses.UserID, ses.IsRevoked, ses.ExpiresAt,
		ses.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_sessions")
	}
	defer rows.Close()

	sessions := make([]*auth.Session, 0)
	for rows.Next() {
		session := &auth.Session{}
		if err := rows.Scan(
			&session.ID, &session.UserID, &session.TokenHash, &session.UserAgent, &session.IPAddress,
			&session.ExpiresAt, &session.IsRevoked, &session.CreatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_session")
		}
		sessions = append(sessions, session)
	}
	return sessions, dberr.Wrap(rows.Err(), "list_sessions")
}

func (repository *PostgresSessionRepository) RevokeOwned(context context.Context, userID, sessionID string) error {
	ses := schema.UserSession
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = NOW() WHERE %s = $1 AND %s = $2 AND NOT %s`,
		ses.Table, ses.IsRevoked, ses.RevokedAt, ses.ID, ses.UserID, ses.IsRevoked)

	tag, err := repository.pool.Exec(context, query, sessionID, userID)
	if err != nil {
		return dberr.Wrap(err, "revoke_owned_session")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Session")
	}
	return nil
}
