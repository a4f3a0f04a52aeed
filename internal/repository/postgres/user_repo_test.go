package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"eventbook/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func userColumns() []string {
	return []string{"id", "email", "password_hash", "role", "created_at", "updated_at"}
}

func TestUserRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	user := &domain.User{
		ID:           "user-1",
		Email:        "alice@x.com",
		PasswordHash: "salt:hash",
		Role:         domain.RoleEventCreator,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("user-1", "alice@x.com", "salt:hash", "event_creator", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewUserRepository(db)
	require.NoError(t, repo.Create(context.Background(), user))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, email, password_hash, role`).
			WithArgs("Alice@X.com").
			WillReturnRows(sqlmock.NewRows(userColumns()).
				AddRow("user-1", "alice@x.com", "salt:hash", "admin", now, now))

		repo := NewUserRepository(db)
		got, err := repo.GetByEmail(ctx, "Alice@X.com")
		require.NoError(t, err)
		require.Equal(t, "user-1", got.ID)
		require.Equal(t, domain.RoleAdmin, got.Role)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, email, password_hash, role`).
			WithArgs("ghost@x.com").
			WillReturnError(sql.ErrNoRows)

		repo := NewUserRepository(db)
		_, err = repo.GetByEmail(ctx, "ghost@x.com")
		require.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, email, password_hash, role`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow("user-1", "alice@x.com", "salt:hash", "participant", now, now))

	repo := NewUserRepository(db)
	got, err := repo.GetByID(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, "alice@x.com", got.Email)
	require.Equal(t, domain.RoleParticipant, got.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}
