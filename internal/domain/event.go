package domain

import (
	"context"
	"time"
)

// MinEventCapacity is the smallest capacity an event may be created with.
const MinEventCapacity = 10

// Event represents a bookable event published by a creator.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Capacity    int       `json:"capacity"`
	CreatorID   string    `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is set by the caller
// or the repository on create.
func NewEvent(name, description, location string, startTime, endTime time.Time, capacity int, creatorID string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:        name,
		Description: description,
		Location:    location,
		StartTime:   startTime,
		EndTime:     endTime,
		Capacity:    capacity,
		CreatorID:   creatorID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// Update replaces the mutable event fields.
func (e *Event) Update(name, description, location string, startTime, endTime time.Time, capacity int, updatedAt time.Time) {
	e.Name = name
	e.Description = description
	e.Location = location
	e.StartTime = startTime
	e.EndTime = endTime
	e.Capacity = capacity
	e.UpdatedAt = updatedAt
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	ListByCreatorID(ctx context.Context, creatorID string) ([]*Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
}

// EventWithAvailability bundles an event with its current booking count.
type EventWithAvailability struct {
	Event          *Event `json:"event"`
	BookedCount    int    `json:"booked_count"`
	SpotsRemaining int    `json:"spots_remaining"`
}

// EventService defines event-management and public discovery operations.
type EventService interface {
	CreateEvent(ctx context.Context, input CreateEventInput) (*Event, error)
	UpdateEvent(ctx context.Context, input UpdateEventInput) (*Event, error)
	DeleteEvent(ctx context.Context, eventID, actorID string, actorRole Role) error
	ListOwnedEvents(ctx context.Context, ownerID string) ([]*Event, error)
	GetEventBookings(ctx context.Context, eventID, actorID string, actorRole Role) ([]*Booking, error)
	ListEvents(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	GetEventByID(ctx context.Context, eventID string) (*EventWithAvailability, error)
}

// CreateEventInput carries the fields for creating an event. ActorID and
// ActorRole identify the authenticated caller.
type CreateEventInput struct {
	Name        string
	Description string
	Location    string
	StartTime   time.Time
	EndTime     time.Time
	Capacity    int
	ActorID     string
	ActorRole   Role
}

// UpdateEventInput carries the fields for updating an event.
type UpdateEventInput struct {
	EventID     string
	Name        string
	Description string
	Location    string
	StartTime   time.Time
	EndTime     time.Time
	Capacity    int
	ActorID     string
	ActorRole   Role
}
