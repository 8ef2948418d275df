package port

//go:generate mockgen -source=user_port.go -destination=../mocks/mock_user_port.go -package=mocks

import (
	"context"
	"time"

	"auth-gateway/app/domain"
)

// UserRepository defines user data access interface
type UserRepository interface {
	// GetBySubjectID returns domain.ErrUserNotFound when no local user
	// mirrors the given provider subject.
	GetBySubjectID(ctx context.Context, subjectID string) (*domain.User, error)

	// Upsert persists the claim-derived user state in a single transaction:
	// an existing row (matched on subject) keeps its id and status and has
	// its profile fields overwritten; a missing row is inserted as-is. A
	// concurrent duplicate insert surfaces as domain.ErrUserConflict.
	Upsert(ctx context.Context, user *domain.User) (*domain.User, error)

	// RecordLogin bumps last_login for the subject and returns the updated
	// row, or domain.ErrUserNotFound.
	RecordLogin(ctx context.Context, subjectID string, loginTime time.Time) (*domain.User, error)
}
