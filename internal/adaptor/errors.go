package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"chakai-booking/internal/usecase"
	"chakai-booking/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps service errors onto HTTP responses. Anything
// unrecognised is a 500 and is logged with the operation name.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validationErr *usecase.ValidationError
	var capacityErr *usecase.CapacityExceededError

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed", zap.Any("errors", validationErr.Fields))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.As(err, &capacityErr):
		log.Warn(operation+" failed - capacity exceeded",
			zap.String("seat_time", capacityErr.SeatTime),
			zap.Int("capacity", capacityErr.Capacity),
			zap.Int("attempted", capacityErr.Attempted()),
		)
		utils.ResponseConflict(w, "Not enough seats left for this time", map[string]any{
			"seat_time": capacityErr.SeatTime,
			"capacity":  capacityErr.Capacity,
			"reserved":  capacityErr.Reserved,
			"requested": capacityErr.Requested,
			"available": max(capacityErr.Capacity-capacityErr.Reserved, 0),
		})

	case errors.Is(err, usecase.ErrDuplicateBooking),
		errors.Is(err, usecase.ErrSeatInUse):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrEventNotFound),
		errors.Is(err, usecase.ErrReservationNotFound),
		errors.Is(err, usecase.ErrSeatNotFound),
		errors.Is(err, usecase.ErrPostNotFound),
		errors.Is(err, usecase.ErrImageNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - invalid credentials")
		utils.ResponseUnauthorized(w, "Invalid credentials")

	case errors.Is(err, usecase.ErrUnsupportedMedia):
		log.Warn(operation+" failed - unsupported media", zap.Error(err))
		utils.ResponseError(w, http.StatusUnsupportedMediaType, err.Error(), nil)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// decodeJSON reads the request body into dst and answers 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}
