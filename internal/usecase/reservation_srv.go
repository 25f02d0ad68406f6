package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chakai-booking/internal/data/entity"
	"chakai-booking/internal/data/repository"
	"chakai-booking/internal/dto/request"
	"chakai-booking/internal/dto/response"
	"chakai-booking/internal/notify"
	"chakai-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationService interface {
	Create(ctx context.Context, eventID string, req *request.CreateReservationRequest) (*response.ReservationCreatedResponse, error)
	Update(ctx context.Context, reservationID string, req *request.UpdateReservationRequest) (*response.ReservationResponse, error)
	Delete(ctx context.Context, reservationID string) error
	GetByID(ctx context.Context, reservationID string) (*response.ReservationResponse, error)
	ListByEvent(ctx context.Context, eventID string) ([]response.ReservationResponse, error)
	Lookup(ctx context.Context, req *request.LookupReservationRequest) (*response.LookupResponse, error)

	// DeleteEventCascade removes the event and every reservation it has in
	// one transaction.
	DeleteEventCascade(ctx context.Context, eventID uuid.UUID) error
}

type reservationService struct {
	repo      *repository.Repository
	ledger    Ledger
	publisher notify.Publisher
	config    utils.ReservationConfig
	log       *zap.Logger
}

func NewReservationService(repo *repository.Repository, ledger Ledger, publisher notify.Publisher, config *utils.Config, log *zap.Logger) ReservationService {
	return &reservationService{
		repo:      repo,
		ledger:    ledger,
		publisher: publisher,
		config:    config.Reservation,
		log:       log.With(zap.String("service", "reservation")),
	}
}

func parseID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fieldError(field, "must be a valid UUID")
	}
	return id, nil
}

func (s *reservationService) Create(ctx context.Context, eventID string, req *request.CreateReservationRequest) (*response.ReservationCreatedResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create reservation validation failed", zap.Any("errors", errs))
		return nil, NewValidationError(errs)
	}

	eventUUID, err := parseID("event_id", eventID)
	if err != nil {
		return nil, err
	}

	password, err := utils.GenerateRecoveryPassword(s.config.PasswordLength)
	if err != nil {
		return nil, fmt.Errorf("generate recovery password: %w", err)
	}
	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash recovery password: %w", err)
	}

	now := time.Now()
	reservation := &entity.Reservation{
		BaseNoDelete: entity.NewBaseNoDelete(now),
		EventID:      eventUUID,
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		Guests:       req.Guests,
		SeatTime:     req.SeatTime,
		PasswordHash: passwordHash,
	}

	var event *entity.Event
	err = s.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		event, err = s.repo.Event.FindByIDForUpdate(ctx, eventUUID)
		if err != nil {
			return fmt.Errorf("load event %s: %w", eventID, err)
		}
		if event == nil {
			return ErrEventNotFound
		}

		idx := event.FindSeat(req.SeatTime)
		if idx < 0 {
			return ErrSeatNotFound
		}

		seat := event.Seats[idx]
		if seat.Reserved+req.Guests > seat.Capacity {
			return &CapacityExceededError{
				SeatTime:  seat.Time,
				Capacity:  seat.Capacity,
				Reserved:  seat.Reserved,
				Requested: req.Guests,
			}
		}

		exists, err := s.repo.Reservation.ExistsByEventAndEmail(ctx, eventUUID, reservation.Email)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateBooking
		}

		if err := s.repo.Reservation.Create(ctx, reservation); err != nil {
			return err
		}

		event.Seats[idx].Reserved += req.Guests
		event.Participants += reservation.ParticipantCount()
		return s.repo.Event.UpdateSeats(ctx, eventUUID, event.Seats, event.Participants)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("event_id", eventID),
		zap.String("seat_time", reservation.SeatTime),
		zap.Int("guests", reservation.Guests),
	)

	msg := notify.ReservationCreated{
		Type:          notify.ReservationCreatedType,
		ReservationID: reservation.ID.String(),
		EventID:       eventID,
		EventTitle:    event.Title,
		EventDate:     event.EventDate,
		Name:          reservation.Name,
		Email:         reservation.Email,
		Guests:        reservation.Guests,
		SeatTime:      reservation.SeatTime,
		Password:      password,
		CreatedAt:     now,
	}
	if err := s.publisher.PublishReservationCreated(ctx, msg); err != nil {
		s.log.Error("Failed to publish reservation notification",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()),
		)
	}

	return &response.ReservationCreatedResponse{
		ReservationID: reservation.ID.String(),
		Password:      password,
	}, nil
}

func (s *reservationService) Update(ctx context.Context, reservationID string, req *request.UpdateReservationRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update reservation validation failed", zap.Any("errors", errs))
		return nil, NewValidationError(errs)
	}
	if req.Empty() {
		return nil, fieldError("body", "at least one field is required")
	}

	id, err := parseID("reservation_id", reservationID)
	if err != nil {
		return nil, err
	}

	var updated *entity.Reservation
	err = s.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		reservation, err := s.repo.Reservation.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if reservation == nil {
			return ErrReservationNotFound
		}

		event, err := s.repo.Event.FindByIDForUpdate(ctx, reservation.EventID)
		if err != nil {
			return err
		}
		if event == nil {
			return ErrEventNotFound
		}

		seatChanged := req.SeatTime != nil && *req.SeatTime != reservation.SeatTime
		guestsChanged := req.Guests != nil && *req.Guests != reservation.Guests

		if req.Name != nil {
			reservation.Name = strings.TrimSpace(*req.Name)
		}
		if req.Email != nil {
			reservation.Email = strings.TrimSpace(*req.Email)
		}
		if req.SeatTime != nil {
			reservation.SeatTime = *req.SeatTime
		}
		if guestsChanged {
			reservation.Guests = *req.Guests
			// the legacy head count no longer describes this booking
			reservation.NumberOfParticipants = nil
		}

		if seatChanged || guestsChanged {
			if err := s.checkCapacity(ctx, event, reservation); err != nil {
				return err
			}
		}

		reservation.UpdatedAt = time.Now()
		if err := s.repo.Reservation.Update(ctx, reservation); err != nil {
			return err
		}

		if _, err := s.ledger.Recompute(ctx, reservation.EventID); err != nil {
			return fmt.Errorf("recompute seats of event %s: %w", reservation.EventID, err)
		}

		updated = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Reservation updated",
		zap.String("reservation_id", reservationID),
		zap.String("seat_time", updated.SeatTime),
		zap.Int("guests", updated.Guests),
	)

	resp := response.ReservationToResponse(updated)
	return &resp, nil
}

// checkCapacity sums the guests every other reservation holds on the target
// seat and rejects the edit when the new total would not fit.
func (s *reservationService) checkCapacity(ctx context.Context, event *entity.Event, reservation *entity.Reservation) error {
	idx := event.FindSeat(reservation.SeatTime)
	if idx < 0 {
		return ErrSeatNotFound
	}
	seat := event.Seats[idx]

	others, err := s.repo.Reservation.FindByEventID(ctx, event.ID)
	if err != nil {
		return err
	}

	taken := 0
	for _, other := range others {
		if other.ID != reservation.ID && other.SeatTime == reservation.SeatTime {
			taken += other.Guests
		}
	}

	if taken+reservation.Guests > seat.Capacity {
		return &CapacityExceededError{
			SeatTime:  seat.Time,
			Capacity:  seat.Capacity,
			Reserved:  taken,
			Requested: reservation.Guests,
		}
	}

	return nil
}

func (s *reservationService) Delete(ctx context.Context, reservationID string) error {
	id, err := parseID("reservation_id", reservationID)
	if err != nil {
		return err
	}

	var eventID uuid.UUID
	err = s.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		reservation, err := s.repo.Reservation.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if reservation == nil {
			return ErrReservationNotFound
		}
		eventID = reservation.EventID

		if err := s.repo.Reservation.Delete(ctx, id); err != nil {
			return err
		}

		_, err = s.ledger.Recompute(ctx, eventID)
		if errors.Is(err, ErrEventNotFound) {
			s.log.Warn("Deleted reservation of missing event",
				zap.String("reservation_id", reservationID),
				zap.String("event_id", eventID.String()),
			)
			return nil
		}
		return err
	})
	if err != nil {
		return err
	}

	s.log.Info("Reservation deleted",
		zap.String("reservation_id", reservationID),
		zap.String("event_id", eventID.String()),
	)
	return nil
}

func (s *reservationService) GetByID(ctx context.Context, reservationID string) (*response.ReservationResponse, error) {
	id, err := parseID("reservation_id", reservationID)
	if err != nil {
		return nil, err
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, ErrReservationNotFound
	}

	resp := response.ReservationToResponse(reservation)
	return &resp, nil
}

func (s *reservationService) ListByEvent(ctx context.Context, eventID string) ([]response.ReservationResponse, error) {
	id, err := parseID("event_id", eventID)
	if err != nil {
		return nil, err
	}

	event, err := s.repo.Event.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	reservations, err := s.repo.Reservation.FindByEventID(ctx, id)
	if err != nil {
		return nil, err
	}

	out := make([]response.ReservationResponse, len(reservations))
	for i, reservation := range reservations {
		out[i] = response.ReservationToResponse(reservation)
	}
	return out, nil
}

// Lookup returns the reservations under email whose recovery password
// matches, each with its own short-lived edit token.
func (s *reservationService) Lookup(ctx context.Context, req *request.LookupReservationRequest) (*response.LookupResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	reservations, err := s.repo.Reservation.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(s.config.TokenTTLMinutes) * time.Minute
	events := make(map[uuid.UUID]*entity.Event)
	items := []response.LookupItem{}

	for _, reservation := range reservations {
		if !utils.CheckPasswordHash(req.Password, reservation.PasswordHash) {
			continue
		}

		event, ok := events[reservation.EventID]
		if !ok {
			event, err = s.repo.Event.FindByID(ctx, reservation.EventID)
			if err != nil {
				return nil, err
			}
			events[reservation.EventID] = event
		}

		token, err := utils.NewReservationToken(s.config.TokenSecret, reservation.ID.String(), ttl)
		if err != nil {
			return nil, fmt.Errorf("issue reservation token: %w", err)
		}

		item := response.LookupItem{
			Reservation: response.ReservationToResponse(reservation),
			Token:       token.Token,
			ExpiresAt:   token.ExpiresAt,
		}
		if event != nil {
			item.EventTitle = event.Title
			item.EventDate = event.EventDate
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		s.log.Warn("Reservation lookup failed", zap.Int("candidates", len(reservations)))
		return nil, ErrInvalidCredentials
	}

	return &response.LookupResponse{Reservations: items}, nil
}

func (s *reservationService) DeleteEventCascade(ctx context.Context, eventID uuid.UUID) error {
	var removed int64
	err := s.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		event, err := s.repo.Event.FindByIDForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		if event == nil {
			return ErrEventNotFound
		}

		removed, err = s.repo.Reservation.DeleteByEventID(ctx, eventID)
		if err != nil {
			return err
		}

		return s.repo.Event.Delete(ctx, eventID)
	})
	if err != nil {
		return err
	}

	s.log.Info("Event deleted with reservations",
		zap.String("event_id", eventID.String()),
		zap.Int64("reservations", removed),
	)
	return nil
}
