package middleware

import (
	"net/http"
	"time"

	"chakai-booking/internal/data/entity"
	"chakai-booking/internal/data/repository"
	"chakai-booking/pkg/utils"

	"go.uber.org/zap"
)

// AuthSession validates the back-office session token, taken from the
// Authorization header or, for browser requests, the session cookie.
func AuthSession(sessionRepo repository.SessionRepository, cookieName string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
					token, ok = cookie.Value, true
				}
			}
			if !ok {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			sessionToken, err := utils.ParseUUID(token)
			if err != nil {
				utils.ResponseUnauthorized(w, "Invalid token format")
				return
			}

			session, err := sessionRepo.FindActive(r.Context(), sessionToken)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if session == nil || !session.Active(time.Now()) {
				logger.Warn("Invalid or expired session")
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			ctx := utils.WithStaff(r.Context(), utils.Staff{UserID: session.UserID, Token: token})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin requires an active admin or staff account behind the session.
func Admin(userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			staff, ok := utils.StaffFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			user, err := userRepo.FindByID(r.Context(), staff.UserID)
			if err != nil {
				logger.Error("Admin check: failed to get user",
					zap.Error(err), zap.String("user_id", staff.UserID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if user == nil || !user.IsActive || (user.Role != entity.RoleAdmin && user.Role != entity.RoleStaff) {
				logger.Warn("Admin check: access denied",
					zap.String("user_id", staff.UserID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			staff.Role = string(user.Role)
			next.ServeHTTP(w, r.WithContext(utils.WithStaff(r.Context(), staff)))
		})
	}
}
