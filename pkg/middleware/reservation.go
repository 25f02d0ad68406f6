package middleware

import (
	"net/http"
	"strings"

	"chakai-booking/pkg/utils"

	"go.uber.org/zap"
)

// ReservationToken admits a guest holding the token issued by a reservation
// lookup. The reservation id it was issued for is put in the context.
func ReservationToken(secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				utils.ResponseUnauthorized(w, "Missing reservation token")
				return
			}

			reservationID, err := utils.ParseReservationToken(secret, token)
			if err != nil {
				logger.Warn("Rejected reservation token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired reservation token")
				return
			}

			ctx := utils.WithReservation(r.Context(), reservationID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
