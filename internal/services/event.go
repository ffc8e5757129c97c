package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventbook/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

// CreateEvent runs the pre-save pipeline and persists the event: required
// fields are checked, date and time are normalized, and a unique slug is
// derived from the title. Any failure aborts the save with nothing written.
func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validateEventFields(event); err != nil {
		return err
	}

	date, err := domain.NormalizeDate(event.Date)
	if err != nil {
		return err
	}
	event.Date = date

	t, err := domain.NormalizeTime(event.Time)
	if err != nil {
		return err
	}
	event.Time = t

	base, err := domain.Slugify(event.Title)
	if err != nil {
		return err
	}
	slug, err := s.resolveSlug(ctx, base, "")
	if err != nil {
		return err
	}
	event.Slug = slug

	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, domain.ErrSlugTaken) {
			return domain.ErrSlugTaken
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, p domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	return events, total, nil
}

// UpdateEvent applies a partial update through the same pre-save pipeline.
// A title change regenerates the slug; date and time changes re-normalize
// their fields. The three checks are independent of each other.
func (s *eventService) UpdateEvent(ctx context.Context, eventID string, upd domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	applyStringUpdates(event, upd)
	if upd.Agenda != nil {
		event.Agenda = upd.Agenda
	}
	if upd.Tags != nil {
		event.Tags = upd.Tags
	}

	if err := validateEventFields(event); err != nil {
		return nil, err
	}

	if upd.Date != nil {
		date, err := domain.NormalizeDate(event.Date)
		if err != nil {
			return nil, err
		}
		event.Date = date
	}
	if upd.Time != nil {
		t, err := domain.NormalizeTime(event.Time)
		if err != nil {
			return nil, err
		}
		event.Time = t
	}
	if upd.Title != nil {
		base, err := domain.Slugify(event.Title)
		if err != nil {
			return nil, err
		}
		slug, err := s.resolveSlug(ctx, base, event.ID)
		if err != nil {
			return nil, err
		}
		event.Slug = slug
	}

	event.UpdatedAt = time.Now()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrSlugTaken) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// resolveSlug finds the first unused candidate among base, base-1, base-2, ...
// The lookup excludes the event being saved so a no-op retitle keeps its slug.
// This is a fast-path pre-check with no transactional guarantee; the unique
// index settles concurrent creations.
func (s *eventService) resolveSlug(ctx context.Context, base, excludeID string) (string, error) {
	slugs, err := s.eventRepo.ListSlugsLike(ctx, base, excludeID)
	if err != nil {
		return "", fmt.Errorf("list slugs: %w", err)
	}

	variant := domain.SlugVariantPattern(base)
	taken := make(map[string]bool, len(slugs))
	for _, slug := range slugs {
		if variant.MatchString(slug) {
			taken[slug] = true
		}
	}

	if !taken[base] {
		return base, nil
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		if !taken[candidate] {
			return candidate, nil
		}
	}
}

func applyStringUpdates(event *domain.Event, upd domain.EventUpdate) {
	fields := []struct {
		src *string
		dst *string
	}{
		{upd.Title, &event.Title},
		{upd.Description, &event.Description},
		{upd.Overview, &event.Overview},
		{upd.Image, &event.Image},
		{upd.Venue, &event.Venue},
		{upd.Location, &event.Location},
		{upd.Audience, &event.Audience},
		{upd.Organizer, &event.Organizer},
		{upd.Date, &event.Date},
		{upd.Time, &event.Time},
		{upd.Mode, &event.Mode},
	}
	for _, f := range fields {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
}

// validateEventFields checks the required-field rules. Mode is free-form and
// intentionally unchecked.
func validateEventFields(e *domain.Event) error {
	required := []struct {
		name  string
		value string
	}{
		{"title", e.Title},
		{"description", e.Description},
		{"overview", e.Overview},
		{"image", e.Image},
		{"venue", e.Venue},
		{"location", e.Location},
		{"audience", e.Audience},
		{"organizer", e.Organizer},
		{"date", e.Date},
		{"time", e.Time},
	}
	for _, f := range required {
		if f.value == "" {
			return domain.Validationf("%s is required", f.name)
		}
	}
	if err := validateStringList("agenda", e.Agenda); err != nil {
		return err
	}
	return validateStringList("tags", e.Tags)
}

func validateStringList(name string, values []string) error {
	if len(values) == 0 {
		return domain.Validationf("%s must be a non-empty list", name)
	}
	for _, v := range values {
		if v == "" {
			return domain.Validationf("%s entries must be non-empty", name)
		}
	}
	return nil
}
