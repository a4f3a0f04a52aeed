package domain

import (
	"context"
	"time"
)

// Booking represents a participant's seat at an event. BookerUserID is set
// only when the request was made by an authenticated user; the participant
// named on the booking may be someone else entirely.
// swagger:model Booking
type Booking struct {
	ID           string    `json:"id"`
	EventID      string    `json:"event_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phone_number"`
	BookerUserID *string   `json:"booker_user_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewBooking returns a new Booking for the given event and participant.
// bookerUserID may be nil for anonymous bookings.
func NewBooking(eventID, name, email, phoneNumber string, bookerUserID *string, createdAt time.Time) *Booking {
	return &Booking{
		EventID:      eventID,
		Name:         name,
		Email:        email,
		PhoneNumber:  phoneNumber,
		BookerUserID: bookerUserID,
		CreatedAt:    createdAt,
	}
}

// BookingRepository defines storage operations for bookings. Email matching
// is case-insensitive in all implementations.
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	ExistsByEmail(ctx context.Context, eventID, email string) (bool, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Booking, error)
	CountByEventID(ctx context.Context, eventID string) (int, error)
}

// BookingUnitOfWork commits a new booking atomically. CommitBooking must
// re-validate the per-event email uniqueness and the capacity limit while
// holding a lock on the event, insert the booking, and commit — or roll back
// leaving no partial state. Re-validation failures are reported as
// ErrDuplicateBooking or ErrCapacityExceeded.
type BookingUnitOfWork interface {
	CommitBooking(ctx context.Context, booking *Booking, capacity int) error
}

// RejectReason is a machine-readable code explaining why a booking attempt
// was not admitted.
type RejectReason string

const (
	ReasonMissingParticipant RejectReason = "missing_participant"
	ReasonMissingEmail       RejectReason = "missing_email"
	ReasonMissingName        RejectReason = "missing_name"
	ReasonMissingPhone       RejectReason = "missing_phone"
	ReasonEventNotFound      RejectReason = "event_not_found"
	ReasonCreatorSelfBooking RejectReason = "creator_self_booking"
	ReasonDuplicateBooking   RejectReason = "duplicate_booking"
	ReasonCapacityExceeded   RejectReason = "capacity_exceeded"
)

// BookingResult is the tagged outcome of a booking attempt. Either Accepted
// is true and Booking is set, or Reason and Message describe the rejection.
// Message is safe to surface to the caller.
type BookingResult struct {
	Accepted bool         `json:"accepted"`
	Booking  *Booking     `json:"booking,omitempty"`
	Reason   RejectReason `json:"reason,omitempty"`
	Message  string       `json:"message,omitempty"`
}

// Admitted returns a successful BookingResult carrying the recorded booking.
func Admitted(b *Booking) *BookingResult {
	return &BookingResult{Accepted: true, Booking: b}
}

// Rejected returns a failed BookingResult with the given reason and message.
func Rejected(reason RejectReason, message string) *BookingResult {
	return &BookingResult{Accepted: false, Reason: reason, Message: message}
}

// ParticipantInput is the participant payload of a booking request.
type ParticipantInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// BookEventInput is the input contract of the booking admission workflow.
// BookerUserID is the already-resolved identity of the caller, nil when the
// request is anonymous.
type BookEventInput struct {
	EventID      string
	Participant  *ParticipantInput
	BookerUserID *string
}

// BookingService decides whether a booking request is admitted and, if so,
// records the booking exactly once.
type BookingService interface {
	BookEvent(ctx context.Context, input BookEventInput) (*BookingResult, error)
}
