package repository

import (
	"context"
	"errors"
	"fmt"

	"chakai-booking/internal/data/entity"
	"chakai-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	// FindByIDForUpdate locks the event row until the surrounding
	// transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Event, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, event *entity.Event) error
	UpdateSeats(ctx context.Context, id uuid.UUID, seats []entity.Seat, participants int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type eventRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewEventRepository(db database.PgxIface, log *zap.Logger) EventRepository {
	return &eventRepository{
		db:  db,
		log: log.With(zap.String("repository", "event")),
	}
}

const eventColumns = `id, title, venues, to_char(event_date, 'YYYY-MM-DD'), cost, description,
		       seats, cover_image, greeting, participants, created_at, updated_at, deleted_at`

func scanEvent(row pgx.Row) (*entity.Event, error) {
	var event entity.Event
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Venues,
		&event.EventDate,
		&event.Cost,
		&event.Description,
		&event.Seats,
		&event.CoverImage,
		&event.Greeting,
		&event.Participants,
		&event.CreatedAt,
		&event.UpdatedAt,
		&event.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO events (id, title, venues, event_date, cost, description,
		                    seats, cover_image, greeting, participants, created_at, updated_at)
		VALUES ($1, $2, $3, $4::text::date, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		event.ID,
		event.Title,
		event.Venues,
		event.EventDate,
		event.Cost,
		event.Description,
		event.Seats,
		event.CoverImage,
		event.Greeting,
		event.Participants,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create event",
			zap.Error(err),
			zap.String("title", event.Title),
		)
		return fmt.Errorf("create event %s: %w", event.Title, err)
	}

	return nil
}

func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 AND deleted_at IS NULL`

	event, err := scanEvent(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find event by ID",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return nil, fmt.Errorf("find event by ID %s: %w", id.String(), err)
	}

	return event, nil
}

func (r *eventRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`

	event, err := scanEvent(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock event",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return nil, fmt.Errorf("lock event %s: %w", id.String(), err)
	}

	return event, nil
}

func (r *eventRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Event, error) {
	query := `SELECT ` + eventColumns + `
		FROM events
		WHERE deleted_at IS NULL
		ORDER BY event_date DESC, created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to get all events",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all events limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var events []*entity.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			r.log.Error("Failed to scan event row", zap.Error(err))
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event rows: %w", err)
	}

	return events, nil
}

func (r *eventRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).QueryRow(ctx,
		`SELECT COUNT(*) FROM events WHERE deleted_at IS NULL`).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count events", zap.Error(err))
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}

func (r *eventRepository) Update(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events
		SET title = $2, venues = $3, event_date = $4::text::date, cost = $5,
		    description = $6, seats = $7, cover_image = $8, greeting = $9,
		    participants = $10, updated_at = $11
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query,
		event.ID,
		event.Title,
		event.Venues,
		event.EventDate,
		event.Cost,
		event.Description,
		event.Seats,
		event.CoverImage,
		event.Greeting,
		event.Participants,
		event.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update event",
			zap.Error(err),
			zap.String("event_id", event.ID.String()),
		)
		return fmt.Errorf("update event %s: %w", event.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("event %s not found", event.ID.String())
	}

	return nil
}

// UpdateSeats writes the whole seat list and the legacy aggregate in one
// statement.
func (r *eventRepository) UpdateSeats(ctx context.Context, id uuid.UUID, seats []entity.Seat, participants int) error {
	query := `
		UPDATE events
		SET seats = $2, participants = $3, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, id, seats, participants)
	if err != nil {
		r.log.Error("Failed to update event seats",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return fmt.Errorf("update seats of event %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("event %s not found", id.String())
	}

	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete event",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return fmt.Errorf("delete event %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("event %s not found", id.String())
	}

	r.log.Info("Event deleted", zap.String("event_id", id.String()))
	return nil
}
