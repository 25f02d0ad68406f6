package response

import (
	"time"

	"chakai-booking/internal/data/entity"
)

type LoginResponse struct {
	UserID    string          `json:"user_id"`
	Username  string          `json:"username"`
	Role      entity.UserRole `json:"role"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
}

func LoginToResponse(user *entity.User, session *entity.Session) LoginResponse {
	return LoginResponse{
		UserID:    user.ID.String(),
		Username:  user.Username,
		Role:      user.Role,
		Token:     session.Token.String(),
		ExpiresAt: session.ExpiresAt,
	}
}
