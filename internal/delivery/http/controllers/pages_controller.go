package controllers

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"eventbook/internal/domain"
)

//go:embed templates/*
var pageFS embed.FS

var pageTemplates = template.Must(template.ParseFS(pageFS, "templates/*.html"))

// PagesController serves the server-rendered event pages. The list page
// consumes the events listing endpoint through an HTTP client; the detail
// page reads through the event service.
type PagesController struct {
	Logger  *slog.Logger
	Listing domain.EventListingClient
	Events  domain.EventService
}

func NewPagesController(logger *slog.Logger, listing domain.EventListingClient, events domain.EventService) *PagesController {
	return &PagesController{
		Logger:  logger,
		Listing: listing,
		Events:  events,
	}
}

// Home renders the event list page.
func (c *PagesController) Home(w http.ResponseWriter, r *http.Request) {
	events, err := c.Listing.FetchEvents(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "render list page failed", "err", err)
		http.Error(w, "events are temporarily unavailable", http.StatusInternalServerError)
		return
	}
	c.render(w, "home.html", map[string]any{"Events": events})
}

// EventDetail renders a single event page by slug.
func (c *PagesController) EventDetail(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("slug")
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	slug := strings.ToLower(strings.TrimSpace(raw))
	if !domain.IsValidSlug(slug) {
		http.NotFound(w, r)
		return
	}
	event, err := c.Events.GetEventBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		c.Logger.ErrorContext(r.Context(), "render detail page failed", "slug", slug, "err", err)
		http.Error(w, "event is temporarily unavailable", http.StatusInternalServerError)
		return
	}
	c.render(w, "event.html", map[string]any{"Event": event})
}

func (c *PagesController) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		c.Logger.Error("template execution failed", "template", name, "err", err)
	}
}
