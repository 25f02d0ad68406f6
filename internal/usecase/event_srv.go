package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"chakai-booking/internal/data/entity"
	"chakai-booking/internal/data/repository"
	"chakai-booking/internal/dto/request"
	"chakai-booking/internal/dto/response"
	"chakai-booking/pkg/utils"

	"go.uber.org/zap"
)

type EventService interface {
	GetEvents(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.EventResponse], error)
	GetEventByID(ctx context.Context, eventID string) (*response.EventResponse, error)

	CreateEvent(ctx context.Context, req *request.EventRequest) (*response.EventResponse, error)
	UpdateEvent(ctx context.Context, eventID string, req *request.EventRequest) (*response.EventResponse, error)
	DeleteEvent(ctx context.Context, eventID string) error
	RecomputeSeats(ctx context.Context, eventID string) (*response.EventResponse, error)
}

type eventService struct {
	repo         *repository.Repository
	ledger       Ledger
	reservations ReservationService
	log          *zap.Logger
}

func NewEventService(repo *repository.Repository, ledger Ledger, reservations ReservationService, log *zap.Logger) EventService {
	return &eventService{
		repo:         repo,
		ledger:       ledger,
		reservations: reservations,
		log:          log.With(zap.String("service", "event")),
	}
}

func (s *eventService) GetEvents(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.EventResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	events, err := s.repo.Event.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("get events: %w", err)
	}

	total, err := s.repo.Event.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}

	eventResponses := make([]response.EventResponse, len(events))
	for i, event := range events {
		eventResponses[i] = response.EventToResponse(event, "")
	}

	return response.NewPaginatedResponse(eventResponses, req.CurrentPage(), limit, total), nil
}

func (s *eventService) GetEventByID(ctx context.Context, eventID string) (*response.EventResponse, error) {
	id, err := parseID("event_id", eventID)
	if err != nil {
		return nil, err
	}

	event, err := s.repo.Event.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event %s: %w", eventID, err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	return s.toResponse(event), nil
}

func (s *eventService) toResponse(event *entity.Event) *response.EventResponse {
	greeting, err := utils.RenderMarkdown(event.Greeting)
	if err != nil {
		s.log.Warn("Failed to render event greeting",
			zap.Error(err),
			zap.String("event_id", event.ID.String()),
		)
	}
	resp := response.EventToResponse(event, greeting)
	return &resp
}

// buildSeats turns the requested slots into a sorted seat list with zero
// reservations, rejecting duplicate time labels.
func buildSeats(reqs []request.SeatRequest) ([]entity.Seat, error) {
	seen := make(map[string]bool, len(reqs))
	seats := make([]entity.Seat, 0, len(reqs))
	for _, req := range reqs {
		label := strings.TrimSpace(req.Time)
		if seen[label] {
			return nil, fieldError("seats", fmt.Sprintf("duplicate seat time %s", label))
		}
		seen[label] = true
		seats = append(seats, entity.Seat{Time: label, Capacity: req.Capacity})
	}
	entity.SortSeats(seats)
	return seats, nil
}

func cleanVenues(venues []string) []string {
	out := make([]string, 0, len(venues))
	for _, venue := range venues {
		if v := strings.TrimSpace(venue); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (s *eventService) CreateEvent(ctx context.Context, req *request.EventRequest) (*response.EventResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create event validation failed", zap.Any("errors", errs))
		return nil, NewValidationError(errs)
	}

	seats, err := buildSeats(req.Seats)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	event := &entity.Event{
		Base:        entity.NewBase(now),
		Title:       strings.TrimSpace(req.Title),
		Venues:      cleanVenues(req.Venues),
		EventDate:   req.Date,
		Cost:        req.Cost,
		Description: req.Description,
		Seats:       seats,
		CoverImage:  req.CoverImage,
		Greeting:    req.Greeting,
	}

	if err := s.repo.Event.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.log.Info("Event created",
		zap.String("event_id", event.ID.String()),
		zap.String("title", event.Title),
		zap.Int("seats", len(event.Seats)),
	)

	return s.toResponse(event), nil
}

// UpdateEvent replaces the event's fields and seat layout. Reserved counts
// are rebuilt from the reservations; a layout that drops a booked slot or
// shrinks one below its bookings is rejected.
func (s *eventService) UpdateEvent(ctx context.Context, eventID string, req *request.EventRequest) (*response.EventResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update event validation failed", zap.Any("errors", errs))
		return nil, NewValidationError(errs)
	}

	id, err := parseID("event_id", eventID)
	if err != nil {
		return nil, err
	}

	seats, err := buildSeats(req.Seats)
	if err != nil {
		return nil, err
	}

	var event *entity.Event
	err = s.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		event, err = s.repo.Event.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if event == nil {
			return ErrEventNotFound
		}

		reservations, err := s.repo.Reservation.FindByEventID(ctx, id)
		if err != nil {
			return err
		}

		labels := make(map[string]int, len(seats))
		for _, seat := range seats {
			labels[seat.Time] = seat.Capacity
		}
		for label, guests := range entity.SeatTotals(reservations) {
			capacity, ok := labels[label]
			if !ok && guests > 0 {
				return fmt.Errorf("%w: %s holds %d guests", ErrSeatInUse, label, guests)
			}
			if ok && guests > capacity {
				return fieldError("seats", fmt.Sprintf("capacity of %s is below its %d reserved guests", label, guests))
			}
		}

		event.Title = strings.TrimSpace(req.Title)
		event.Venues = cleanVenues(req.Venues)
		event.EventDate = req.Date
		event.Cost = req.Cost
		event.Description = req.Description
		event.CoverImage = req.CoverImage
		event.Greeting = req.Greeting
		event.Seats, event.Participants = entity.ApplyLedger(seats, reservations)
		event.UpdatedAt = time.Now()

		return s.repo.Event.Update(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Event updated",
		zap.String("event_id", eventID),
		zap.Int("seats", len(event.Seats)),
	)

	return s.toResponse(event), nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID string) error {
	id, err := parseID("event_id", eventID)
	if err != nil {
		return err
	}
	return s.reservations.DeleteEventCascade(ctx, id)
}

func (s *eventService) RecomputeSeats(ctx context.Context, eventID string) (*response.EventResponse, error) {
	id, err := parseID("event_id", eventID)
	if err != nil {
		return nil, err
	}

	event, err := s.ledger.Recompute(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.Info("Seats recomputed", zap.String("event_id", eventID))
	return s.toResponse(event), nil
}
