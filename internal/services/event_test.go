package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"eventbook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID   map[string]*domain.Event
	nextID int
	err    error // if set, all operations return this error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:   make(map[string]*domain.Event),
		nextID: 1,
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	for _, other := range f.byID {
		if other.Slug == e.Slug {
			return domain.ErrSlugTaken
		}
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	copied := *e
	f.byID[e.ID] = &copied
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.byID[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.byID {
		if e.Slug == slug {
			copied := *e
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Event, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	var out []*domain.Event
	for _, e := range f.byID {
		out = append(out, e)
	}
	return out, len(out), nil
}

func (f *fakeEventRepo) ListSlugsLike(ctx context.Context, base, excludeID string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	var slugs []string
	for id, e := range f.byID {
		if excludeID != "" && id == excludeID {
			continue
		}
		if e.Slug == base || len(e.Slug) > len(base) && e.Slug[:len(base)+1] == base+"-" {
			slugs = append(slugs, e.Slug)
		}
	}
	return slugs, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[e.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, other := range f.byID {
		if id != e.ID && other.Slug == e.Slug {
			return domain.ErrSlugTaken
		}
	}
	copied := *e
	f.byID[e.ID] = &copied
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func validEvent() *domain.Event {
	return &domain.Event{
		Title:       "My Talk",
		Description: "A talk about things",
		Overview:    "Overview",
		Image:       "https://example.com/talk.png",
		Venue:       "Main Hall",
		Location:    "Berlin",
		Audience:    "Developers",
		Organizer:   "ACME",
		Date:        "March 15, 2026",
		Time:        "9:00 AM - 6:00 PM",
		Mode:        "in-person",
		Agenda:      []string{"Opening", "Closing"},
		Tags:        []string{"go", "web"},
	}
}

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes fields and derives slug", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo, time.Second)

		e := validEvent()
		require.NoError(t, svc.CreateEvent(ctx, e))
		assert.Equal(t, "my-talk", e.Slug)
		assert.Equal(t, "2026-03-15", e.Date)
		assert.Equal(t, "09:00-18:00", e.Time)
		assert.NotEmpty(t, e.ID)
		assert.False(t, e.CreatedAt.IsZero())
	})

	t.Run("slug collision appends first unused numeric suffix", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo, time.Second)

		first := validEvent()
		require.NoError(t, svc.CreateEvent(ctx, first))
		require.Equal(t, "my-talk", first.Slug)

		second := validEvent()
		require.NoError(t, svc.CreateEvent(ctx, second))
		assert.Equal(t, "my-talk-1", second.Slug)

		third := validEvent()
		require.NoError(t, svc.CreateEvent(ctx, third))
		assert.Equal(t, "my-talk-2", third.Slug)
	})

	t.Run("validation failures persist nothing", func(t *testing.T) {
		mutations := map[string]func(*domain.Event){
			"empty title":        func(e *domain.Event) { e.Title = "" },
			"symbol only title":  func(e *domain.Event) { e.Title = "!!!" },
			"empty venue":        func(e *domain.Event) { e.Venue = "" },
			"bad date":           func(e *domain.Event) { e.Date = "not-a-date" },
			"bad time":           func(e *domain.Event) { e.Time = "25:00" },
			"empty agenda":       func(e *domain.Event) { e.Agenda = nil },
			"blank agenda entry": func(e *domain.Event) { e.Agenda = []string{"Opening", ""} },
			"empty tags":         func(e *domain.Event) { e.Tags = []string{} },
		}
		for name, mutate := range mutations {
			t.Run(name, func(t *testing.T) {
				repo := newFakeEventRepo()
				svc := NewEventService(repo, time.Second)

				e := validEvent()
				mutate(e)
				err := svc.CreateEvent(ctx, e)
				require.Error(t, err)
				assert.True(t, domain.IsValidationError(err), "want validation error, got %v", err)
				assert.Empty(t, repo.byID, "nothing may persist on a failed save")
			})
		}
	})

	t.Run("repo error is wrapped", func(t *testing.T) {
		repo := newFakeEventRepo()
		repo.err = errors.New("connection refused")
		svc := NewEventService(repo, time.Second)

		err := svc.CreateEvent(ctx, validEvent())
		require.Error(t, err)
		assert.False(t, domain.IsValidationError(err))
	})
}

func TestEventService_UpdateEvent(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fakeEventRepo, domain.EventService, *domain.Event) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo, time.Second)
		e := validEvent()
		require.NoError(t, svc.CreateEvent(ctx, e))
		return repo, svc, e
	}

	strptr := func(s string) *string { return &s }

	t.Run("title change regenerates slug", func(t *testing.T) {
		_, svc, e := setup(t)
		updated, err := svc.UpdateEvent(ctx, e.ID, domain.EventUpdate{Title: strptr("Another Talk")})
		require.NoError(t, err)
		assert.Equal(t, "another-talk", updated.Slug)
		assert.Equal(t, "Another Talk", updated.Title)
	})

	t.Run("retitle to same base keeps slug without suffix", func(t *testing.T) {
		_, svc, e := setup(t)
		updated, err := svc.UpdateEvent(ctx, e.ID, domain.EventUpdate{Title: strptr("My   Talk!")})
		require.NoError(t, err)
		assert.Equal(t, "my-talk", updated.Slug)
	})

	t.Run("retitle onto another event's slug gets a suffix", func(t *testing.T) {
		repo, svc, _ := setup(t)
		other := validEvent()
		other.Title = "Other Talk"
		require.NoError(t, svc.CreateEvent(ctx, other))
		_ = repo

		updated, err := svc.UpdateEvent(ctx, other.ID, domain.EventUpdate{Title: strptr("My Talk")})
		require.NoError(t, err)
		assert.Equal(t, "my-talk-1", updated.Slug)
	})

	t.Run("date change re-normalizes", func(t *testing.T) {
		_, svc, e := setup(t)
		updated, err := svc.UpdateEvent(ctx, e.ID, domain.EventUpdate{Date: strptr("2027-1-5")})
		require.NoError(t, err)
		assert.Equal(t, "2027-01-05", updated.Date)
	})

	t.Run("time change re-normalizes", func(t *testing.T) {
		_, svc, e := setup(t)
		updated, err := svc.UpdateEvent(ctx, e.ID, domain.EventUpdate{Time: strptr("7:15 PM")})
		require.NoError(t, err)
		assert.Equal(t, "19:15", updated.Time)
	})

	t.Run("untouched fields keep stored values", func(t *testing.T) {
		_, svc, e := setup(t)
		updated, err := svc.UpdateEvent(ctx, e.ID, domain.EventUpdate{Location: strptr("Munich")})
		require.NoError(t, err)
		assert.Equal(t, "Munich", updated.Location)
		assert.Equal(t, "my-talk", updated.Slug)
		assert.Equal(t, "2026-03-15", updated.Date)
		assert.Equal(t, "09:00-18:00", updated.Time)
	})

	t.Run("invalid update aborts entirely", func(t *testing.T) {
		repo, svc, e := setup(t)
		_, err := svc.UpdateEvent(ctx, e.ID, domain.EventUpdate{
			Location: strptr("Munich"),
			Time:     strptr("25:00"),
		})
		require.Error(t, err)
		assert.True(t, domain.IsValidationError(err))
		stored := repo.byID[e.ID]
		assert.Equal(t, "Berlin", stored.Location, "no partial field updates may persist")
	})

	t.Run("unknown event", func(t *testing.T) {
		_, svc, _ := setup(t)
		_, err := svc.UpdateEvent(ctx, "ev-999", domain.EventUpdate{Location: strptr("Munich")})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventService_GetEventBySlug(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEventRepo()
	svc := NewEventService(repo, time.Second)

	e := validEvent()
	require.NoError(t, svc.CreateEvent(ctx, e))

	got, err := svc.GetEventBySlug(ctx, "my-talk")
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)

	_, err = svc.GetEventBySlug(ctx, "no-such-event")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventService_DeleteEvent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEventRepo()
	svc := NewEventService(repo, time.Second)

	e := validEvent()
	require.NoError(t, svc.CreateEvent(ctx, e))
	require.NoError(t, svc.DeleteEvent(ctx, e.ID))
	assert.ErrorIs(t, svc.DeleteEvent(ctx, e.ID), domain.ErrNotFound)
}
