package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventbook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	createEventErr   error
	getBySlugResult  *domain.Event
	getBySlugErr     error
	listResult       []*domain.Event
	listTotal        int
	listErr          error
	updateResult     *domain.Event
	updateErr        error
	deleteErr        error
	lastGetBySlug    string
	getBySlugCalled  bool
	lastCreatedEvent *domain.Event
	lastUpdateID     string
	lastDeleteID     string
}

func (f *fakeEventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	f.lastCreatedEvent = event
	if f.createEventErr != nil {
		return f.createEventErr
	}
	event.ID = "ev-1"
	event.Slug = "my-talk"
	return nil
}

func (f *fakeEventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	f.getBySlugCalled = true
	f.lastGetBySlug = slug
	if f.getBySlugErr != nil {
		return nil, f.getBySlugErr
	}
	return f.getBySlugResult, nil
}

func (f *fakeEventService) ListEvents(ctx context.Context, p domain.PaginationParams) ([]*domain.Event, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	return f.listResult, f.listTotal, nil
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, eventID string, upd domain.EventUpdate) (*domain.Event, error) {
	f.lastUpdateID = eventID
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateResult, nil
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, eventID string) error {
	f.lastDeleteID = eventID
	return f.deleteErr
}

func sampleEvent() *domain.Event {
	return &domain.Event{
		ID: "ev-1", Title: "My Talk", Slug: "my-talk", Description: "Desc",
		Overview: "Overview", Image: "img.png", Venue: "Main Hall",
		Location: "Berlin", Audience: "Developers", Organizer: "ACME",
		Date: "2026-03-15", Time: "09:00-18:00", Mode: "in-person",
		Agenda: []string{"Opening"}, Tags: []string{"go"},
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func getBySlugRequest(t *testing.T, svc domain.EventService, slug string) *httptest.ResponseRecorder {
	t.Helper()
	ctrl := NewEventController(testLogger, svc)
	// The raw slug goes in via the path value only; spaces and punctuation
	// in the request target are not valid HTTP.
	req := httptest.NewRequest(http.MethodGet, "/api/events/slug", nil)
	req.SetPathValue("slug", slug)
	rec := httptest.NewRecorder()
	ctrl.GetEventBySlug(rec, req)
	return rec
}

func TestEventController_GetEventBySlug(t *testing.T) {
	t.Run("invalid slug returns 400 without querying the store", func(t *testing.T) {
		for _, slug := range []string{"My Talk!", "under_score", "bad--dash", "-leading", "trailing-", "sp ace"} {
			svc := &fakeEventService{}
			rec := getBySlugRequest(t, svc, slug)
			assert.Equal(t, http.StatusBadRequest, rec.Code, slug)
			assert.False(t, svc.getBySlugCalled, "store must not be queried for %q", slug)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Contains(t, body["message"], "slug")
		}
	})

	t.Run("slug is trimmed and lowercased before lookup", func(t *testing.T) {
		for _, slug := range []string{"  my-talk  ", "MY-TALK", "My-Talk"} {
			svc := &fakeEventService{getBySlugResult: sampleEvent()}
			rec := getBySlugRequest(t, svc, slug)
			assert.Equal(t, http.StatusOK, rec.Code, slug)
			assert.Equal(t, "my-talk", svc.lastGetBySlug, slug)
		}
	})

	t.Run("unknown slug returns 404 naming the slug", func(t *testing.T) {
		svc := &fakeEventService{getBySlugErr: domain.ErrNotFound}
		rec := getBySlugRequest(t, svc, "no-such-event")
		assert.Equal(t, http.StatusNotFound, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body["message"], "no-such-event")
	})

	t.Run("existing slug returns the full record", func(t *testing.T) {
		svc := &fakeEventService{getBySlugResult: sampleEvent()}
		rec := getBySlugRequest(t, svc, "my-talk")
		assert.Equal(t, http.StatusOK, rec.Code)

		var body EventResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.NotNil(t, body.Event)
		assert.Equal(t, "my-talk", body.Event.Slug)
		assert.Equal(t, []string{"Opening"}, body.Event.Agenda)
	})

	t.Run("infrastructure failure returns 500 with diagnostics", func(t *testing.T) {
		svc := &fakeEventService{getBySlugErr: errors.New("connection refused")}
		rec := getBySlugRequest(t, svc, "my-talk")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotEmpty(t, body["message"])
		assert.Contains(t, body["error"], "connection refused")
	})
}

func TestEventController_ListEvents(t *testing.T) {
	svc := &fakeEventService{listResult: []*domain.Event{sampleEvent()}, listTotal: 1}
	ctrl := NewEventController(testLogger, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/events?page=1&page_size=10", nil)
	rec := httptest.NewRecorder()
	ctrl.ListEvents(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body EventListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Events, 1)
	assert.Equal(t, 1, body.Meta.Total)
	assert.Equal(t, 10, body.Meta.PageSize)
}

func TestEventController_CreateEvent(t *testing.T) {
	payload := `{"title":"My Talk","description":"Desc","overview":"O","image":"i.png","venue":"Hall","location":"Berlin","audience":"Devs","organizer":"ACME","date":"2026-03-15","time":"9:00 AM","mode":"in-person","agenda":["a"],"tags":["go"]}`

	t.Run("created", func(t *testing.T) {
		svc := &fakeEventService{}
		ctrl := NewEventController(testLogger, svc)
		req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewBufferString(payload))
		rec := httptest.NewRecorder()
		ctrl.CreateEvent(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, svc.lastCreatedEvent)
		assert.Equal(t, "My Talk", svc.lastCreatedEvent.Title)
	})

	t.Run("validation error maps to 400", func(t *testing.T) {
		svc := &fakeEventService{createEventErr: domain.Validationf("title is required")}
		ctrl := NewEventController(testLogger, svc)
		req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewBufferString(payload))
		rec := httptest.NewRecorder()
		ctrl.CreateEvent(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("slug race maps to 409", func(t *testing.T) {
		svc := &fakeEventService{createEventErr: domain.ErrSlugTaken}
		ctrl := NewEventController(testLogger, svc)
		req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewBufferString(payload))
		rec := httptest.NewRecorder()
		ctrl.CreateEvent(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("malformed body maps to 400", func(t *testing.T) {
		svc := &fakeEventService{}
		ctrl := NewEventController(testLogger, svc)
		req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewBufferString(`{"title":`))
		rec := httptest.NewRecorder()
		ctrl.CreateEvent(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestEventController_UpdateEvent(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		svc := &fakeEventService{updateResult: sampleEvent()}
		ctrl := NewEventController(testLogger, svc)
		req := httptest.NewRequest(http.MethodPatch, "/api/events/ev-1", bytes.NewBufferString(`{"location":"Munich"}`))
		req.SetPathValue("eventID", "ev-1")
		rec := httptest.NewRecorder()
		ctrl.UpdateEvent(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ev-1", svc.lastUpdateID)
	})

	t.Run("unknown event maps to 404", func(t *testing.T) {
		svc := &fakeEventService{updateErr: domain.ErrNotFound}
		ctrl := NewEventController(testLogger, svc)
		req := httptest.NewRequest(http.MethodPatch, "/api/events/ev-404", bytes.NewBufferString(`{"location":"Munich"}`))
		req.SetPathValue("eventID", "ev-404")
		rec := httptest.NewRecorder()
		ctrl.UpdateEvent(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestEventController_DeleteEvent(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		svc := &fakeEventService{}
		ctrl := NewEventController(testLogger, svc)
		req := httptest.NewRequest(http.MethodDelete, "/api/events/ev-1", nil)
		req.SetPathValue("eventID", "ev-1")
		rec := httptest.NewRecorder()
		ctrl.DeleteEvent(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "ev-1", svc.lastDeleteID)
	})

	t.Run("unknown event maps to 404", func(t *testing.T) {
		svc := &fakeEventService{deleteErr: domain.ErrNotFound}
		ctrl := NewEventController(testLogger, svc)
		req := httptest.NewRequest(http.MethodDelete, "/api/events/ev-404", nil)
		req.SetPathValue("eventID", "ev-404")
		rec := httptest.NewRecorder()
		ctrl.DeleteEvent(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
