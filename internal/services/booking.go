package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventbook/internal/domain"
)

type bookingService struct {
	eventRepo   domain.EventRepository
	bookingRepo domain.BookingRepository
	userRepo    domain.UserRepository
	uow         domain.BookingUnitOfWork
	metrics     domain.BookingMetrics
	email       domain.EmailService
	logger      *slog.Logger
	now         func() time.Time
}

// NewBookingService creates the booking admission service. email may be nil
// when no confirmation mail should be sent; metrics may be nil to disable
// instrumentation.
func NewBookingService(
	eventRepo domain.EventRepository,
	bookingRepo domain.BookingRepository,
	userRepo domain.UserRepository,
	uow domain.BookingUnitOfWork,
	metrics domain.BookingMetrics,
	email domain.EmailService,
	logger *slog.Logger,
) domain.BookingService {
	if metrics == nil {
		metrics = domain.NoopBookingMetrics{}
	}
	return &bookingService{
		eventRepo:   eventRepo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		uow:         uow,
		metrics:     metrics,
		email:       email,
		logger:      logger,
		now:         time.Now,
	}
}

// BookEvent runs the admission checks in a fixed order and, when all pass,
// records the booking exactly once. Rejections are returned as a value with
// a reason code; a non-nil error always means an infrastructure failure.
//
// Check order: participant presence, email, name, phone (no storage access),
// then event existence, creator self-booking, duplicate email, capacity.
// Each failure returns immediately and persists nothing.
func (s *bookingService) BookEvent(ctx context.Context, input domain.BookEventInput) (*domain.BookingResult, error) {
	s.metrics.RecordAttempt()
	start := s.now()

	log := s.logger.With(slog.String("event_id", input.EventID))
	log.InfoContext(ctx, "booking attempt")

	if input.Participant == nil {
		return s.reject(ctx, log, domain.ReasonMissingParticipant, "Participant is required."), nil
	}
	if strings.TrimSpace(input.Participant.Email) == "" {
		return s.reject(ctx, log, domain.ReasonMissingEmail, "Participant email is required."), nil
	}
	if strings.TrimSpace(input.Participant.Name) == "" {
		return s.reject(ctx, log, domain.ReasonMissingName, "Participant name is required."), nil
	}
	if strings.TrimSpace(input.Participant.PhoneNumber) == "" {
		return s.reject(ctx, log, domain.ReasonMissingPhone, "Participant phone number is required."), nil
	}

	event, err := s.eventRepo.GetByID(ctx, input.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.reject(ctx, log, domain.ReasonEventNotFound, "Event not found."), nil
		}
		return nil, domain.NewInfrastructureError("get event", err)
	}

	creator, err := s.userRepo.GetByID(ctx, event.CreatorID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewInfrastructureError("get event creator", err)
	}
	if creator != nil && strings.EqualFold(creator.Email, input.Participant.Email) {
		return s.reject(ctx, log, domain.ReasonCreatorSelfBooking, "Event creators cannot book their own events."), nil
	}

	exists, err := s.bookingRepo.ExistsByEmail(ctx, input.EventID, input.Participant.Email)
	if err != nil {
		return nil, domain.NewInfrastructureError("check duplicate booking", err)
	}
	if exists {
		msg := fmt.Sprintf("A participant with email %s has already booked this event.", input.Participant.Email)
		return s.reject(ctx, log, domain.ReasonDuplicateBooking, msg), nil
	}

	count, err := s.bookingRepo.CountByEventID(ctx, input.EventID)
	if err != nil {
		return nil, domain.NewInfrastructureError("count bookings", err)
	}
	if count >= event.Capacity {
		return s.reject(ctx, log, domain.ReasonCapacityExceeded, "Event capacity exceeded."), nil
	}

	booking := domain.NewBooking(
		input.EventID,
		input.Participant.Name,
		input.Participant.Email,
		input.Participant.PhoneNumber,
		input.BookerUserID,
		s.now(),
	)
	booking.ID = uuid.New().String()

	// The commit re-validates the duplicate and capacity invariants under a
	// row lock on the event, so two concurrent requests that both passed the
	// checks above cannot overrun capacity or double-book an email.
	if err := s.uow.CommitBooking(ctx, booking, event.Capacity); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateBooking):
			msg := fmt.Sprintf("A participant with email %s has already booked this event.", input.Participant.Email)
			return s.reject(ctx, log, domain.ReasonDuplicateBooking, msg), nil
		case errors.Is(err, domain.ErrCapacityExceeded):
			return s.reject(ctx, log, domain.ReasonCapacityExceeded, "Event capacity exceeded."), nil
		}
		return nil, domain.NewInfrastructureError("commit booking", err)
	}

	s.metrics.RecordSuccess()
	s.metrics.RecordDuration(s.now().Sub(start))
	log.InfoContext(ctx, "booking created", slog.String("booking_id", booking.ID))

	// The booking is already durable; a failed confirmation email must not
	// fail the request.
	if s.email != nil {
		data := &domain.BookingConfirmationEmailData{
			ParticipantName:  booking.Name,
			ParticipantEmail: booking.Email,
			EventName:        event.Name,
			EventLocation:    event.Location,
			EventStart:       event.StartTime.Format(time.RFC1123),
		}
		if err := s.email.SendBookingConfirmation(ctx, data); err != nil {
			log.WarnContext(ctx, "failed to send booking confirmation", "err", err)
		}
	}

	return domain.Admitted(booking), nil
}

// reject records the failure metric, logs at warn level, and builds the
// rejection result. Validation rejections are expected outcomes and are
// never logged as errors.
func (s *bookingService) reject(ctx context.Context, log *slog.Logger, reason domain.RejectReason, message string) *domain.BookingResult {
	s.metrics.RecordFailure(reason)
	log.WarnContext(ctx, "booking rejected", slog.String("reason", string(reason)))
	return domain.Rejected(reason, message)
}
