package adaptor

import (
	"net/http"

	"chakai-booking/internal/dto/request"
	"chakai-booking/internal/usecase"
	"chakai-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type EventHandler struct {
	service usecase.EventService
	log     *zap.Logger
}

func NewEventHandler(service usecase.EventService, log *zap.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		log:     log.With(zap.String("handler", "event")),
	}
}

// GetEvents handles GET /api/events
func (h *EventHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	req := request.PageFromQuery(r.URL.Query())

	events, err := h.service.GetEvents(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "get events")
		return
	}

	utils.ResponseSuccess(w, "success", events)
}

// GetEventByID handles GET /api/events/{id}
func (h *EventHandler) GetEventByID(w http.ResponseWriter, r *http.Request) {
	event, err := h.service.GetEventByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get event")
		return
	}

	utils.ResponseSuccess(w, "success", event)
}

// CreateEvent handles POST /api/admin/events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req request.EventRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	event, err := h.service.CreateEvent(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create event")
		return
	}

	utils.ResponseCreated(w, "Event created", event)
}

// UpdateEvent handles PUT /api/admin/events/{id}
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req request.EventRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	event, err := h.service.UpdateEvent(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update event")
		return
	}

	utils.ResponseSuccess(w, "Event updated", event)
}

// DeleteEvent handles DELETE /api/admin/events/{id}; reservations go with it.
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteEvent(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete event")
		return
	}

	utils.ResponseSuccess(w, "Event deleted", nil)
}

// RecomputeSeats handles POST /api/admin/events/{id}/recompute
func (h *EventHandler) RecomputeSeats(w http.ResponseWriter, r *http.Request) {
	event, err := h.service.RecomputeSeats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "recompute seats")
		return
	}

	utils.ResponseSuccess(w, "Seats recomputed", event)
}
