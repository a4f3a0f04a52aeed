package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"eventbook/internal/delivery/http/helpers"
	"eventbook/internal/delivery/http/middleware"
	"eventbook/internal/domain"
)

type mockEventService struct {
	event    *domain.Event
	events   []*domain.Event
	total    int
	bookings []*domain.Booking
	avail    *domain.EventWithAvailability
	err      error
}

func (m *mockEventService) CreateEvent(_ context.Context, _ domain.CreateEventInput) (*domain.Event, error) {
	return m.event, m.err
}

func (m *mockEventService) UpdateEvent(_ context.Context, _ domain.UpdateEventInput) (*domain.Event, error) {
	return m.event, m.err
}

func (m *mockEventService) DeleteEvent(_ context.Context, _, _ string, _ domain.Role) error {
	return m.err
}

func (m *mockEventService) ListOwnedEvents(_ context.Context, _ string) ([]*domain.Event, error) {
	return m.events, m.err
}

func (m *mockEventService) GetEventBookings(_ context.Context, _, _ string, _ domain.Role) ([]*domain.Booking, error) {
	return m.bookings, m.err
}

func (m *mockEventService) ListEvents(_ context.Context, _ domain.PaginationParams) ([]*domain.Event, int, error) {
	return m.events, m.total, m.err
}

func (m *mockEventService) GetEventByID(_ context.Context, _ string) (*domain.EventWithAvailability, error) {
	return m.avail, m.err
}

func creatorContext(req *http.Request) *http.Request {
	claims := &domain.TokenClaims{UserID: "creator-1", Role: domain.RoleEventCreator}
	return req.WithContext(middleware.SetClaims(req.Context(), claims))
}

func validEventBody() string {
	start := time.Now().Add(24 * time.Hour).Format(time.RFC3339)
	end := time.Now().Add(26 * time.Hour).Format(time.RFC3339)
	return `{"name":"GopherCon","description":"Talks","location":"Berlin","start_time":"` + start + `","end_time":"` + end + `","capacity":50}`
}

func TestEventController_CreateEvent(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		authed     bool
		svc        *mockEventService
		wantStatus int
	}{
		{
			name:       "created",
			body:       validEventBody(),
			authed:     true,
			svc:        &mockEventService{event: &domain.Event{ID: "e1", Name: "GopherCon"}},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "unauthenticated",
			body:       validEventBody(),
			authed:     false,
			svc:        &mockEventService{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "capacity below minimum",
			body:       `{"name":"X","description":"Y","location":"Z","start_time":"2030-01-01T10:00:00Z","end_time":"2030-01-01T12:00:00Z","capacity":5}`,
			authed:     true,
			svc:        &mockEventService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "service forbids participant",
			body:       validEventBody(),
			authed:     true,
			svc:        &mockEventService{err: domain.ErrForbidden},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewEventController(testLogger(), tt.svc)

			req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(tt.body))
			if tt.authed {
				req = creatorContext(req)
			}
			w := httptest.NewRecorder()

			ctrl.CreateEvent(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestEventController_DeleteEvent(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"deleted", nil, http.StatusOK},
		{"not owner", domain.ErrForbidden, http.StatusForbidden},
		{"missing event", domain.ErrNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewEventController(testLogger(), &mockEventService{err: tt.err})

			req := httptest.NewRequest(http.MethodDelete, "/events/"+bookEventID, nil)
			req.SetPathValue("eventID", bookEventID)
			req = creatorContext(req)
			w := httptest.NewRecorder()

			ctrl.DeleteEvent(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestEventController_ListEventBookings_Success(t *testing.T) {
	svc := &mockEventService{bookings: []*domain.Booking{{ID: "b1", EventID: bookEventID, Email: "a@x.com"}}}
	ctrl := NewEventController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/creator/events/"+bookEventID+"/bookings", nil)
	req.SetPathValue("eventID", bookEventID)
	req = creatorContext(req)
	w := httptest.NewRecorder()

	ctrl.ListEventBookings(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp helpers.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("expected no error, got %v", resp.Error)
	}
}

func TestEventController_ListEventBookings_Unauthorized(t *testing.T) {
	ctrl := NewEventController(testLogger(), &mockEventService{})

	req := httptest.NewRequest(http.MethodGet, "/creator/events/"+bookEventID+"/bookings", nil)
	req.SetPathValue("eventID", bookEventID)
	w := httptest.NewRecorder()

	ctrl.ListEventBookings(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestEventController_ListEvents_Pagination(t *testing.T) {
	svc := &mockEventService{
		events: []*domain.Event{{ID: "e1"}, {ID: "e2"}},
		total:  42,
	}
	ctrl := NewEventController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/events?page=2&page_size=2", nil)
	w := httptest.NewRecorder()

	ctrl.ListEvents(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp struct {
		Data struct {
			Events     []*domain.Event        `json:"events"`
			Pagination helpers.PaginationMeta `json:"pagination"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(resp.Data.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(resp.Data.Events))
	}
	if resp.Data.Pagination.Total != 42 || resp.Data.Pagination.Page != 2 {
		t.Fatalf("unexpected pagination meta: %+v", resp.Data.Pagination)
	}
	if resp.Data.Pagination.TotalPages != 21 {
		t.Fatalf("expected 21 total pages, got %d", resp.Data.Pagination.TotalPages)
	}
}

func TestEventController_GetEvent(t *testing.T) {
	t.Run("found with availability", func(t *testing.T) {
		svc := &mockEventService{avail: &domain.EventWithAvailability{
			Event:          &domain.Event{ID: bookEventID, Capacity: 10},
			BookedCount:    4,
			SpotsRemaining: 6,
		}}
		ctrl := NewEventController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodGet, "/events/"+bookEventID, nil)
		req.SetPathValue("eventID", bookEventID)
		w := httptest.NewRecorder()

		ctrl.GetEvent(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := NewEventController(testLogger(), &mockEventService{err: domain.ErrNotFound})

		req := httptest.NewRequest(http.MethodGet, "/events/"+bookEventID, nil)
		req.SetPathValue("eventID", bookEventID)
		w := httptest.NewRecorder()

		ctrl.GetEvent(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
		}
	})

	t.Run("storage failure", func(t *testing.T) {
		ctrl := NewEventController(testLogger(), &mockEventService{err: errors.New("connection refused")})

		req := httptest.NewRequest(http.MethodGet, "/events/"+bookEventID, nil)
		req.SetPathValue("eventID", bookEventID)
		w := httptest.NewRecorder()

		ctrl.GetEvent(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}
	})
}
