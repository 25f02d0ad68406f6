package usecase

import (
	"context"
	"fmt"

	"chakai-booking/internal/data/entity"
	"chakai-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Ledger derives every seat's reserved count from the event's reservations.
type Ledger interface {
	Recompute(ctx context.Context, eventID uuid.UUID) (*entity.Event, error)
}

type ledger struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewLedger(repo *repository.Repository, log *zap.Logger) Ledger {
	return &ledger{
		repo: repo,
		log:  log.With(zap.String("service", "ledger")),
	}
}

// Recompute locks the event, rebuilds seat.reserved and the participant
// aggregate from scratch and writes them back in one update. Called inside
// an existing transaction it joins it.
func (l *ledger) Recompute(ctx context.Context, eventID uuid.UUID) (*entity.Event, error) {
	var event *entity.Event

	err := l.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		locked, err := l.repo.Event.FindByIDForUpdate(ctx, eventID)
		if err != nil {
			return fmt.Errorf("load event %s: %w", eventID, err)
		}
		if locked == nil {
			return ErrEventNotFound
		}

		reservations, err := l.repo.Reservation.FindByEventID(ctx, eventID)
		if err != nil {
			return fmt.Errorf("load reservations of event %s: %w", eventID, err)
		}

		seats, participants := entity.ApplyLedger(locked.Seats, reservations)
		if err := l.repo.Event.UpdateSeats(ctx, eventID, seats, participants); err != nil {
			return err
		}

		locked.Seats = seats
		locked.Participants = participants
		event = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.log.Debug("Seat ledger recomputed",
		zap.String("event_id", eventID.String()),
		zap.Int("participants", event.Participants),
	)

	return event, nil
}
