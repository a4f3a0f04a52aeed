package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventbook/internal/domain"
)

type bookingRepository struct {
	DB *sql.DB
}

// NewBookingRepository returns a repository that also implements
// domain.BookingUnitOfWork.
func NewBookingRepository(db *sql.DB) *bookingRepository {
	return &bookingRepository{
		DB: db,
	}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `
		INSERT INTO bookings (id, event_id, name, email, phone_number, booker_user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.DB.ExecContext(ctx, query,
		b.ID, b.EventID, b.Name, b.Email, b.PhoneNumber, b.BookerUserID, b.CreatedAt)
	return err
}

func (r *bookingRepository) ExistsByEmail(ctx context.Context, eventID, email string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE event_id = $1 AND LOWER(email) = LOWER($2)
		)
	`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, eventID, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *bookingRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	query := `
		SELECT id, event_id, name, email, phone_number, booker_user_id, created_at
		FROM bookings
		WHERE event_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b := &domain.Booking{}
		var booker sql.NullString
		if err := rows.Scan(&b.ID, &b.EventID, &b.Name, &b.Email, &b.PhoneNumber, &booker, &b.CreatedAt); err != nil {
			return nil, err
		}
		if booker.Valid {
			b.BookerUserID = &booker.String
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE event_id = $1`, eventID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CommitBooking inserts the booking inside a transaction that holds a row
// lock on the event. The duplicate-email and capacity checks the service ran
// before calling are read-then-act and can be invalidated by a concurrent
// commit, so both invariants are re-validated here while the lock serializes
// bookings for the same event.
func (r *bookingRepository) CommitBooking(ctx context.Context, b *domain.Booking, capacity int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var lockedID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM events WHERE id = $1 FOR UPDATE`, b.EventID).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE event_id = $1 AND LOWER(email) = LOWER($2)
		)
	`, b.EventID, b.Email).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrDuplicateBooking
	}

	var count int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE event_id = $1`, b.EventID).Scan(&count)
	if err != nil {
		return err
	}
	if count >= capacity {
		return domain.ErrCapacityExceeded
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO bookings (id, event_id, name, email, phone_number, booker_user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, b.ID, b.EventID, b.Name, b.Email, b.PhoneNumber, b.BookerUserID, b.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}
