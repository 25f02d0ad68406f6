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

type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindByEventID(ctx context.Context, eventID uuid.UUID) ([]*entity.Reservation, error)
	FindByEmail(ctx context.Context, email string) ([]*entity.Reservation, error)
	ExistsByEventAndEmail(ctx context.Context, eventID uuid.UUID, email string) (bool, error)
	Update(ctx context.Context, reservation *entity.Reservation) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByEventID(ctx context.Context, eventID uuid.UUID) (int64, error)
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

const reservationColumns = `id, event_id, name, email, guests, seat_time,
		       number_of_participants, password_hash, created_at, updated_at`

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var reservation entity.Reservation
	err := row.Scan(
		&reservation.ID,
		&reservation.EventID,
		&reservation.Name,
		&reservation.Email,
		&reservation.Guests,
		&reservation.SeatTime,
		&reservation.NumberOfParticipants,
		&reservation.PasswordHash,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) queryMany(ctx context.Context, query string, args ...any) ([]*entity.Reservation, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []*entity.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, reservation)
	}

	return reservations, rows.Err()
}

func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		INSERT INTO reservations (id, event_id, name, email, guests, seat_time,
		                          number_of_participants, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		reservation.ID,
		reservation.EventID,
		reservation.Name,
		reservation.Email,
		reservation.Guests,
		reservation.SeatTime,
		reservation.NumberOfParticipants,
		reservation.PasswordHash,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("event_id", reservation.EventID.String()),
			zap.String("seat_time", reservation.SeatTime),
		)
		return fmt.Errorf("create reservation for event %s: %w", reservation.EventID.String(), err)
	}

	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	reservation, err := scanReservation(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id.String(), err)
	}

	return reservation, nil
}

func (r *reservationRepository) FindByEventID(ctx context.Context, eventID uuid.UUID) ([]*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
		FROM reservations
		WHERE event_id = $1
		ORDER BY created_at ASC
	`

	reservations, err := r.queryMany(ctx, query, eventID)
	if err != nil {
		r.log.Error("Failed to find reservations by event",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return nil, fmt.Errorf("find reservations of event %s: %w", eventID.String(), err)
	}

	return reservations, nil
}

func (r *reservationRepository) FindByEmail(ctx context.Context, email string) ([]*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
		FROM reservations
		WHERE LOWER(email) = $1
		ORDER BY created_at DESC
	`

	reservations, err := r.queryMany(ctx, query, entity.NormalizeEmail(email))
	if err != nil {
		r.log.Error("Failed to find reservations by email", zap.Error(err))
		return nil, fmt.Errorf("find reservations by email: %w", err)
	}

	return reservations, nil
}

func (r *reservationRepository) ExistsByEventAndEmail(ctx context.Context, eventID uuid.UUID, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM reservations WHERE event_id = $1 AND LOWER(email) = $2)`

	var exists bool
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, eventID, entity.NormalizeEmail(email)).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check duplicate reservation",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return false, fmt.Errorf("check reservation of event %s: %w", eventID.String(), err)
	}

	return exists, nil
}

func (r *reservationRepository) Update(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		UPDATE reservations
		SET name = $2, email = $3, guests = $4, seat_time = $5,
		    number_of_participants = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query,
		reservation.ID,
		reservation.Name,
		reservation.Email,
		reservation.Guests,
		reservation.SeatTime,
		reservation.NumberOfParticipants,
		reservation.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update reservation",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()),
		)
		return fmt.Errorf("update reservation %s: %w", reservation.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", reservation.ID.String())
	}

	return nil
}

func (r *reservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete reservation",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return fmt.Errorf("delete reservation %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", id.String())
	}

	return nil
}

func (r *reservationRepository) DeleteByEventID(ctx context.Context, eventID uuid.UUID) (int64, error) {
	result, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM reservations WHERE event_id = $1`, eventID)
	if err != nil {
		r.log.Error("Failed to delete reservations of event",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return 0, fmt.Errorf("delete reservations of event %s: %w", eventID.String(), err)
	}

	return result.RowsAffected(), nil
}
