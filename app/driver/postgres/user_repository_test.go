package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth-gateway/app/domain"
	"auth-gateway/app/utils/logger"
)

var userCols = []string{
	"id", "tenant_id", "subject_id", "email", "first_name", "last_name",
	"department", "status", "last_login", "created_at", "updated_at",
}

func createTestUserRepository(t *testing.T) (*UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)

	testLogger, err := logger.New("error")
	require.NoError(t, err)

	repo := NewUserRepository(mockDB, testLogger).(*UserRepository)
	return repo, mockDB
}

func createTestUser(t *testing.T) (*domain.User, *domain.Tenant) {
	t.Helper()

	tenant := createTestTenant(t)
	claims := &domain.Claims{
		Subject:    "subject-123",
		Email:      "jordan@finance.example.com",
		GivenName:  "Jordan",
		FamilyName: "Lee",
		Department: "finance",
	}

	user, err := domain.NewUserFromClaims(claims, tenant)
	require.NoError(t, err)
	return user, tenant
}

func userRow(user *domain.User) *pgxmock.Rows {
	return pgxmock.NewRows(userCols).AddRow(
		user.ID,
		user.TenantID,
		user.SubjectID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Department,
		user.Status,
		user.LastLoginAt,
		user.CreatedAt,
		user.UpdatedAt,
	)
}

func TestUserRepository_GetBySubjectID(t *testing.T) {
	tests := []struct {
		name      string
		subjectID string
		setupDB   func(pgxmock.PgxPoolIface, string)
		wantErr   error
	}{
		{
			name:      "user found",
			subjectID: "subject-123",
			setupDB: func(mockDB pgxmock.PgxPoolIface, subjectID string) {
				user, _ := createTestUser(t)
				mockDB.ExpectQuery("SELECT(.+)FROM users WHERE subject_id").
					WithArgs(subjectID).
					WillReturnRows(userRow(user))
			},
		},
		{
			name:      "user missing",
			subjectID: "subject-missing",
			setupDB: func(mockDB pgxmock.PgxPoolIface, subjectID string) {
				mockDB.ExpectQuery("SELECT(.+)FROM users WHERE subject_id").
					WithArgs(subjectID).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: domain.ErrUserNotFound,
		},
		{
			name:      "database error",
			subjectID: "subject-123",
			setupDB: func(mockDB pgxmock.PgxPoolIface, subjectID string) {
				mockDB.ExpectQuery("SELECT(.+)FROM users WHERE subject_id").
					WithArgs(subjectID).
					WillReturnError(pgx.ErrTxClosed)
			},
			wantErr: pgx.ErrTxClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mockDB := createTestUserRepository(t)
			defer mockDB.Close()

			tt.setupDB(mockDB, tt.subjectID)

			user, err := repo.GetBySubjectID(context.Background(), tt.subjectID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.subjectID, user.SubjectID)
			}

			assert.NoError(t, mockDB.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_Upsert_InsertsNewUser(t *testing.T) {
	repo, mockDB := createTestUserRepository(t)
	defer mockDB.Close()

	user, _ := createTestUser(t)

	mockDB.ExpectBegin()
	mockDB.ExpectQuery("SELECT(.+)FROM users WHERE subject_id(.+)FOR UPDATE").
		WithArgs(user.SubjectID).
		WillReturnError(pgx.ErrNoRows)
	mockDB.ExpectQuery("INSERT INTO users").
		WithArgs(
			user.ID, user.TenantID, user.SubjectID, user.Email,
			user.FirstName, user.LastName, user.Department, user.Status,
			user.LastLoginAt, user.CreatedAt, user.UpdatedAt,
		).
		WillReturnRows(userRow(user))
	mockDB.ExpectCommit()

	got, err := repo.Upsert(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.SubjectID, got.SubjectID)

	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestUserRepository_Upsert_UpdatesExistingKeepingIDAndStatus(t *testing.T) {
	repo, mockDB := createTestUserRepository(t)
	defer mockDB.Close()

	existing, tenant := createTestUser(t)
	existing.Email = "old@finance.example.com"

	incoming, _ := domain.NewUserFromClaims(&domain.Claims{
		Subject:    existing.SubjectID,
		Email:      "jordan@finance.example.com",
		GivenName:  "Jordan",
		FamilyName: "Lee",
		Department: "finance",
	}, tenant)

	updated := *existing
	updated.Email = incoming.Email
	updated.LastLoginAt = incoming.LastLoginAt
	updated.UpdatedAt = incoming.UpdatedAt

	mockDB.ExpectBegin()
	mockDB.ExpectQuery("SELECT(.+)FROM users WHERE subject_id(.+)FOR UPDATE").
		WithArgs(existing.SubjectID).
		WillReturnRows(userRow(existing))
	mockDB.ExpectQuery("UPDATE users SET").
		WithArgs(
			existing.ID, incoming.TenantID, incoming.Email, incoming.FirstName,
			incoming.LastName, incoming.Department, incoming.LastLoginAt,
			incoming.UpdatedAt,
		).
		WillReturnRows(userRow(&updated))
	mockDB.ExpectCommit()

	got, err := repo.Upsert(context.Background(), incoming)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, got.ID)
	assert.Equal(t, "jordan@finance.example.com", got.Email)

	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestUserRepository_Upsert_ConcurrentInsertConflict(t *testing.T) {
	repo, mockDB := createTestUserRepository(t)
	defer mockDB.Close()

	user, _ := createTestUser(t)

	mockDB.ExpectBegin()
	mockDB.ExpectQuery("SELECT(.+)FROM users WHERE subject_id(.+)FOR UPDATE").
		WithArgs(user.SubjectID).
		WillReturnError(pgx.ErrNoRows)
	mockDB.ExpectQuery("INSERT INTO users").
		WithArgs(
			user.ID, user.TenantID, user.SubjectID, user.Email,
			user.FirstName, user.LastName, user.Department, user.Status,
			user.LastLoginAt, user.CreatedAt, user.UpdatedAt,
		).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_subject_id_key"})
	mockDB.ExpectRollback()

	_, err := repo.Upsert(context.Background(), user)
	assert.ErrorIs(t, err, domain.ErrUserConflict)

	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestUserRepository_RecordLogin(t *testing.T) {
	repo, mockDB := createTestUserRepository(t)
	defer mockDB.Close()

	user, _ := createTestUser(t)
	loginTime := time.Now().UTC()
	bumped := *user
	bumped.LastLoginAt = &loginTime

	mockDB.ExpectQuery("UPDATE users SET last_login").
		WithArgs(user.SubjectID, loginTime).
		WillReturnRows(userRow(&bumped))

	got, err := repo.RecordLogin(context.Background(), user.SubjectID, loginTime)
	require.NoError(t, err)
	require.NotNil(t, got.LastLoginAt)
	assert.WithinDuration(t, loginTime, *got.LastLoginAt, time.Second)

	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestUserRepository_RecordLogin_UserMissing(t *testing.T) {
	repo, mockDB := createTestUserRepository(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("UPDATE users SET last_login").
		WithArgs("ghost-subject", pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.RecordLogin(context.Background(), "ghost-subject", time.Now())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	assert.NoError(t, mockDB.ExpectationsWereMet())
}
