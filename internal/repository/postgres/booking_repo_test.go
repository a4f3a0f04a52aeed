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

func TestBookingRepository_ExistsByEmail(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    bool
		wantErr bool
	}{
		{
			name: "exists",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("ev-1", "A@x.com").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
			},
			want: true,
		},
		{
			name: "does not exist",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("ev-1", "A@x.com").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
			},
			want: false,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT EXISTS`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewBookingRepository(db)
			got, err := repo.ExistsByEmail(ctx, "ev-1", "A@x.com")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookingRepository_CountByEventID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	repo := NewBookingRepository(db)
	count, err := repo.CountByEventID(context.Background(), "ev-1")
	require.NoError(t, err)
	require.Equal(t, 7, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_ListByEventID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, event_id, name, email, phone_number, booker_user_id, created_at`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "name", "email", "phone_number", "booker_user_id", "created_at"}).
			AddRow("b-1", "ev-1", "Alice", "a@x.com", "+111", nil, created).
			AddRow("b-2", "ev-1", "Bob", "b@x.com", "+222", "user-1", created))

	repo := NewBookingRepository(db)
	bookings, err := repo.ListByEventID(context.Background(), "ev-1")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	require.Nil(t, bookings[0].BookerUserID)
	require.NotNil(t, bookings[1].BookerUserID)
	require.Equal(t, "user-1", *bookings[1].BookerUserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:          "b-1",
		EventID:     "ev-1",
		Name:        "Alice",
		Email:       "a@x.com",
		PhoneNumber: "+111",
		CreatedAt:   time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestBookingRepository_CommitBooking(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT id FROM events WHERE id = \$1 FOR UPDATE`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-1"))
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("ev-1", "a@x.com").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
				mock.ExpectExec(`INSERT INTO bookings`).
					WithArgs("b-1", "ev-1", "Alice", "a@x.com", "+111", nil, sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "event row gone",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT id FROM events WHERE id = \$1 FOR UPDATE`).
					WithArgs("ev-1").
					WillReturnError(sql.ErrNoRows)
				mock.ExpectRollback()
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "duplicate appeared before lock",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT id FROM events WHERE id = \$1 FOR UPDATE`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-1"))
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("ev-1", "a@x.com").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
				mock.ExpectRollback()
			},
			wantErr: domain.ErrDuplicateBooking,
		},
		{
			name: "capacity filled before lock",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT id FROM events WHERE id = \$1 FOR UPDATE`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-1"))
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("ev-1", "a@x.com").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))
				mock.ExpectRollback()
			},
			wantErr: domain.ErrCapacityExceeded,
		},
		{
			name: "insert fails",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT id FROM events WHERE id = \$1 FOR UPDATE`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-1"))
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("ev-1", "a@x.com").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
				mock.ExpectExec(`INSERT INTO bookings`).
					WillReturnError(sql.ErrConnDone)
				mock.ExpectRollback()
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewBookingRepository(db)
			err = repo.CommitBooking(ctx, testBooking(), 10)
			if tt.wantErr != nil {
				require.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
