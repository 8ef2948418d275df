package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"auth-gateway/app/domain"
	"auth-gateway/app/port"
)

// Postgres unique_violation
const uniqueViolationCode = "23505"

const userColumns = `id, tenant_id, subject_id, email, first_name, last_name, department, status, last_login, created_at, updated_at`

// UserRepository implements port.UserRepository for PostgreSQL
type UserRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db DatabaseIface, logger *slog.Logger) port.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger.With("component", "user_repository"),
	}
}

// GetBySubjectID retrieves the local user mirroring a provider subject
func (r *UserRepository) GetBySubjectID(ctx context.Context, subjectID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE subject_id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, subjectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		r.logger.Error("failed to get user by subject", "subject_id", subjectID, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// Upsert reconciles the claim-derived user state inside a transaction. An
// existing row keeps its id and status and has its profile overwritten; a
// missing row is inserted. The unique index on subject_id backstops the
// select-then-insert race: a concurrent duplicate surfaces as
// domain.ErrUserConflict instead of a second row.
func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) (*domain.User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	existing, err := scanUser(tx.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE subject_id = $1 FOR UPDATE`,
		user.SubjectID))

	var reconciled *domain.User
	switch {
	case err == nil:
		reconciled, err = r.updateExisting(ctx, tx, existing, user)
	case errors.Is(err, pgx.ErrNoRows):
		reconciled, err = r.insertNew(ctx, tx, user)
	default:
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit user reconcile: %w", err)
	}

	return reconciled, nil
}

// RecordLogin bumps last_login for the subject
func (r *UserRepository) RecordLogin(ctx context.Context, subjectID string, loginTime time.Time) (*domain.User, error) {
	query := `
		UPDATE users SET last_login = $2, updated_at = $2
		WHERE subject_id = $1
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, query, subjectID, loginTime))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		r.logger.Error("failed to record login", "subject_id", subjectID, "error", err)
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	return user, nil
}

func (r *UserRepository) updateExisting(ctx context.Context, tx pgx.Tx, existing, incoming *domain.User) (*domain.User, error) {
	query := `
		UPDATE users SET
			tenant_id = $2, email = $3, first_name = $4, last_name = $5,
			department = $6, last_login = $7, updated_at = $8
		WHERE id = $1
		RETURNING ` + userColumns

	user, err := scanUser(tx.QueryRow(ctx, query,
		existing.ID,
		incoming.TenantID,
		incoming.Email,
		incoming.FirstName,
		incoming.LastName,
		incoming.Department,
		incoming.LastLoginAt,
		incoming.UpdatedAt,
	))
	if err != nil {
		r.logger.Error("failed to update user", "user_id", existing.ID, "error", err)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	r.logger.Info("user profile reconciled", "user_id", user.ID, "subject_id", user.SubjectID)
	return user, nil
}

func (r *UserRepository) insertNew(ctx context.Context, tx pgx.Tx, incoming *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + userColumns

	user, err := scanUser(tx.QueryRow(ctx, query,
		incoming.ID,
		incoming.TenantID,
		incoming.SubjectID,
		incoming.Email,
		incoming.FirstName,
		incoming.LastName,
		incoming.Department,
		incoming.Status,
		incoming.LastLoginAt,
		incoming.CreatedAt,
		incoming.UpdatedAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn("concurrent user insert detected", "subject_id", incoming.SubjectID)
			return nil, domain.ErrUserConflict
		}
		r.logger.Error("failed to insert user", "subject_id", incoming.SubjectID, "error", err)
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	r.logger.Info("user created", "user_id", user.ID, "subject_id", user.SubjectID)
	return user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.TenantID,
		&user.SubjectID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Department,
		&user.Status,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
