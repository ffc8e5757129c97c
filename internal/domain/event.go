package domain

import (
	"context"
	"time"
)

// Event represents a listed event.
// Date is always stored as YYYY-MM-DD and Time as HH:mm or HH:mm-HH:mm;
// raw user input never reaches the store.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Overview    string    `json:"overview"`
	Image       string    `json:"image"`
	Venue       string    `json:"venue"`
	Location    string    `json:"location"`
	Audience    string    `json:"audience"`
	Organizer   string    `json:"organizer"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Mode        string    `json:"mode"`
	Agenda      []string  `json:"agenda"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventUpdate carries a partial update. Nil fields are unchanged.
type EventUpdate struct {
	Title       *string
	Description *string
	Overview    *string
	Image       *string
	Venue       *string
	Location    *string
	Audience    *string
	Organizer   *string
	Date        *string
	Time        *string
	Mode        *string
	Agenda      []string
	Tags        []string
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	List(ctx context.Context, p PaginationParams) ([]*Event, int, error)
	// ListSlugsLike returns slugs equal to base or starting with "base-",
	// excluding the event with excludeID when non-empty. Callers filter the
	// result down to numeric-suffix variants.
	ListSlugsLike(ctx context.Context, base, excludeID string) ([]string, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
}

// EventService defines event operations. Validation and normalization run
// inside the save operations, not in the callers; a failed save persists
// nothing.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
	ListEvents(ctx context.Context, p PaginationParams) ([]*Event, int, error)
	UpdateEvent(ctx context.Context, eventID string, upd EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

// EventSummary is the subset of event fields the rendered list page needs.
type EventSummary struct {
	Title    string `json:"title"`
	Image    string `json:"image"`
	Slug     string `json:"slug"`
	Location string `json:"location"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

// EventListingClient fetches the public events listing. The rendered pages use
// it to consume the API the same way an external client would.
type EventListingClient interface {
	FetchEvents(ctx context.Context) ([]*EventSummary, error)
}
