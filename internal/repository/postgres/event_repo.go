package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventbook/internal/database"
	"eventbook/internal/domain"
)

const (
	uniqueViolation           = "23505"
	invalidTextRepresentation = "22P02"
)

const eventColumns = `id, title, slug, description, overview, image, venue, location, audience, organizer, date, time, mode, agenda, tags, created_at, updated_at`

type eventRepository struct {
	db database.Provider
}

func NewEventRepository(db database.Provider) domain.EventRepository {
	return &eventRepository{
		db: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	db, err := r.db.DB(ctx)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO events (title, slug, description, overview, image, venue, location, audience, organizer, date, time, mode, agenda, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`
	err = db.QueryRowContext(ctx, query,
		e.Title, e.Slug, e.Description, e.Overview, e.Image, e.Venue, e.Location,
		e.Audience, e.Organizer, e.Date, e.Time, e.Mode,
		pq.Array(e.Agenda), pq.Array(e.Tags), e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		return translateSlugConflict(err)
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	db, err := r.db.DB(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateInvalidID(err)
	}
	return e, nil
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	db, err := r.db.DB(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + eventColumns + ` FROM events WHERE slug = $1`
	return scanEvent(db.QueryRowContext(ctx, query, slug))
}

func (r *eventRepository) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Event, int, error) {
	db, err := r.db.DB(ctx)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + eventColumns + `
		FROM events
		ORDER BY date ASC, created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := db.QueryContext(ctx, query, p.PageSize, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, total, rows.Err()
}

func (r *eventRepository) ListSlugsLike(ctx context.Context, base, excludeID string) ([]string, error) {
	db, err := r.db.DB(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT slug FROM events
		WHERE (slug = $1 OR slug LIKE $1 || '-%')
		  AND ($2 = '' OR id::text <> $2)
	`
	rows, err := db.QueryContext(ctx, query, base, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		slugs = append(slugs, s)
	}
	return slugs, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	db, err := r.db.DB(ctx)
	if err != nil {
		return err
	}
	query := `
		UPDATE events
		SET title = $1, slug = $2, description = $3, overview = $4, image = $5,
		    venue = $6, location = $7, audience = $8, organizer = $9,
		    date = $10, time = $11, mode = $12, agenda = $13, tags = $14, updated_at = $15
		WHERE id = $16
	`
	result, err := db.ExecContext(ctx, query,
		e.Title, e.Slug, e.Description, e.Overview, e.Image, e.Venue, e.Location,
		e.Audience, e.Organizer, e.Date, e.Time, e.Mode,
		pq.Array(e.Agenda), pq.Array(e.Tags), e.UpdatedAt, e.ID,
	)
	if err != nil {
		return translateSlugConflict(translateInvalidID(err))
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	db, err := r.db.DB(ctx)
	if err != nil {
		return err
	}
	result, err := db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return translateInvalidID(err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	err := row.Scan(
		&e.ID, &e.Title, &e.Slug, &e.Description, &e.Overview, &e.Image,
		&e.Venue, &e.Location, &e.Audience, &e.Organizer, &e.Date, &e.Time,
		&e.Mode, pq.Array(&e.Agenda), pq.Array(&e.Tags), &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// translateSlugConflict maps a unique violation on the slug index to
// ErrSlugTaken. The index is the authoritative guard against the
// read-then-write race in slug resolution.
func translateSlugConflict(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.ErrSlugTaken
	}
	return err
}

// translateInvalidID maps a Postgres invalid-text-representation error to
// ErrNotFound. An id that cannot be cast to uuid matches no row, so callers
// see it as absent rather than as an infrastructure failure.
func translateInvalidID(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == invalidTextRepresentation {
		return domain.ErrNotFound
	}
	return err
}
