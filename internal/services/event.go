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

type eventService struct {
	eventRepo   domain.EventRepository
	bookingRepo domain.BookingRepository
	logger      *slog.Logger
	now         func() time.Time
}

// NewEventService creates an EventService with the given repositories.
func NewEventService(eventRepo domain.EventRepository, bookingRepo domain.BookingRepository, logger *slog.Logger) domain.EventService {
	return &eventService{
		eventRepo:   eventRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, input domain.CreateEventInput) (*domain.Event, error) {
	if input.ActorID == "" {
		return nil, fmt.Errorf("%w: user must be authenticated", domain.ErrForbidden)
	}
	if input.ActorRole != domain.RoleAdmin && input.ActorRole != domain.RoleEventCreator {
		return nil, fmt.Errorf("%w: not authorized to create events", domain.ErrForbidden)
	}
	if err := validateEventFields(input.Name, input.Description, input.StartTime, input.EndTime, input.Capacity); err != nil {
		return nil, err
	}
	if input.StartTime.Before(s.now()) {
		return nil, fmt.Errorf("%w: event cannot start in the past", domain.ErrInvalidInput)
	}

	now := s.now()
	event := domain.NewEvent(
		strings.TrimSpace(input.Name),
		strings.TrimSpace(input.Description),
		strings.TrimSpace(input.Location),
		input.StartTime,
		input.EndTime,
		input.Capacity,
		input.ActorID,
		now, now,
	)
	event.ID = uuid.New().String()

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	s.logger.InfoContext(ctx, "event created",
		slog.String("event_id", event.ID), slog.String("creator_id", input.ActorID))
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, input domain.UpdateEventInput) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, input.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if input.ActorRole != domain.RoleAdmin && event.CreatorID != input.ActorID {
		return nil, fmt.Errorf("%w: not authorized to update this event", domain.ErrForbidden)
	}
	if err := validateEventFields(input.Name, input.Description, input.StartTime, input.EndTime, input.Capacity); err != nil {
		return nil, err
	}

	event.Update(
		strings.TrimSpace(input.Name),
		strings.TrimSpace(input.Description),
		strings.TrimSpace(input.Location),
		input.StartTime,
		input.EndTime,
		input.Capacity,
		s.now(),
	)
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID, actorID string, actorRole domain.Role) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if actorRole != domain.RoleAdmin && event.CreatorID != actorID {
		return fmt.Errorf("%w: not authorized to delete this event", domain.ErrForbidden)
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	s.logger.InfoContext(ctx, "event deleted", slog.String("event_id", eventID))
	return nil
}

func (s *eventService) ListOwnedEvents(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	events, err := s.eventRepo.ListByCreatorID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list owned events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) GetEventBookings(ctx context.Context, eventID, actorID string, actorRole domain.Role) ([]*domain.Booking, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if actorRole != domain.RoleAdmin && event.CreatorID != actorID {
		return nil, fmt.Errorf("%w: not authorized to view bookings", domain.ErrForbidden)
	}
	bookings, err := s.bookingRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	if bookings == nil {
		bookings = []*domain.Booking{}
	}
	return bookings, nil
}

func (s *eventService) ListEvents(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	events, total, err := s.eventRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, total, nil
}

func (s *eventService) GetEventByID(ctx context.Context, eventID string) (*domain.EventWithAvailability, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	count, err := s.bookingRepo.CountByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}
	remaining := event.Capacity - count
	if remaining < 0 {
		remaining = 0
	}
	return &domain.EventWithAvailability{
		Event:          event,
		BookedCount:    count,
		SpotsRemaining: remaining,
	}, nil
}

func validateEventFields(name, description string, startTime, endTime time.Time, capacity int) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: event name is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("%w: event description is required", domain.ErrInvalidInput)
	}
	if !startTime.Before(endTime) {
		return fmt.Errorf("%w: start time must be before end time", domain.ErrInvalidInput)
	}
	if capacity < domain.MinEventCapacity {
		return fmt.Errorf("%w: capacity must be at least %d", domain.ErrInvalidInput, domain.MinEventCapacity)
	}
	return nil
}
