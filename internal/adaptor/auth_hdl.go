package adaptor

import (
	"net/http"
	"time"

	"chakai-booking/internal/dto/request"
	"chakai-booking/internal/usecase"
	"chakai-booking/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service    usecase.AuthService
	cookieName string
	log        *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, cookieName string, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service:    service,
		cookieName: cookieName,
		log:        log.With(zap.String("handler", "auth")),
	}
}

// Login handles POST /api/admin/login. The session token is returned in the
// body and also set as an HttpOnly cookie for the admin console.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), &req, r.UserAgent(), r.RemoteAddr)
	if err != nil {
		handleServiceError(w, h.log, err, "login")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    resp.Token,
		Path:     "/",
		Expires:  resp.ExpiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	utils.ResponseSuccess(w, "Login successful", resp)
}

// Logout handles POST /api/admin/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	staff, ok := utils.StaffFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.Logout(r.Context(), staff.Token); err != nil {
		handleServiceError(w, h.log, err, "logout")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})

	utils.ResponseSuccess(w, "Logout successful", nil)
}
