package adaptor

import (
	"net/http"

	"chakai-booking/internal/dto/request"
	"chakai-booking/internal/usecase"
	"chakai-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	service usecase.ReservationService
	log     *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log.With(zap.String("handler", "reservation")),
	}
}

// CreateReservation handles POST /api/events/{id}/reservations
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req request.CreateReservationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.service.Create(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create reservation")
		return
	}

	utils.ResponseCreated(w, "Reservation created", created)
}

// Lookup handles POST /api/reservations/lookup
func (h *ReservationHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	var req request.LookupReservationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	found, err := h.service.Lookup(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "lookup reservation")
		return
	}

	utils.ResponseSuccess(w, "success", found)
}

// ownReservation checks that the URL names the reservation the guest's
// token was issued for.
func (h *ReservationHandler) ownReservation(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	tokenID, ok := utils.ReservationFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Reservation token required")
		return "", false
	}
	if tokenID != id {
		h.log.Warn("Reservation token used for another reservation",
			zap.String("token_reservation_id", tokenID),
			zap.String("reservation_id", id),
		)
		utils.ResponseForbidden(w, "Token does not grant access to this reservation")
		return "", false
	}
	return id, true
}

// UpdateOwnReservation handles PUT /api/reservations/{id}
func (h *ReservationHandler) UpdateOwnReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ownReservation(w, r)
	if !ok {
		return
	}
	h.update(w, r, id)
}

// DeleteOwnReservation handles DELETE /api/reservations/{id}
func (h *ReservationHandler) DeleteOwnReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ownReservation(w, r)
	if !ok {
		return
	}
	h.delete(w, r, id)
}

// ListByEvent handles GET /api/admin/events/{id}/reservations
func (h *ReservationHandler) ListByEvent(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.service.ListByEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "list reservations")
		return
	}

	utils.ResponseSuccess(w, "success", reservations)
}

// GetReservation handles GET /api/admin/reservations/{id}
func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	reservation, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get reservation")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// AdminCreateReservation handles POST /api/admin/reservations
func (h *ReservationHandler) AdminCreateReservation(w http.ResponseWriter, r *http.Request) {
	var req request.AdminCreateReservationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	created, err := h.service.Create(r.Context(), req.EventID, &req.CreateReservationRequest)
	if err != nil {
		handleServiceError(w, h.log, err, "create reservation")
		return
	}

	utils.ResponseCreated(w, "Reservation created", created)
}

// AdminUpdateReservation handles PUT /api/admin/reservations/{id}
func (h *ReservationHandler) AdminUpdateReservation(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, chi.URLParam(r, "id"))
}

// AdminDeleteReservation handles DELETE /api/admin/reservations/{id}
func (h *ReservationHandler) AdminDeleteReservation(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, chi.URLParam(r, "id"))
}

func (h *ReservationHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var req request.UpdateReservationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update reservation")
		return
	}

	utils.ResponseSuccess(w, "Reservation updated", updated)
}

func (h *ReservationHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete reservation")
		return
	}

	utils.ResponseSuccess(w, "Reservation deleted", nil)
}
