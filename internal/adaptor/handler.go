package adaptor

import (
	"chakai-booking/internal/usecase"
	"chakai-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth        *AuthHandler
	Event       *EventHandler
	Reservation *ReservationHandler
	Post        *PostHandler
	Setting     *SettingHandler
	Image       *ImageHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(service.Auth, config.Session.CookieName, log),
		Event:       NewEventHandler(service.Event, log),
		Reservation: NewReservationHandler(service.Reservation, log),
		Post:        NewPostHandler(service.Post, log),
		Setting:     NewSettingHandler(service.Setting, log),
		Image:       NewImageHandler(service.Image, config.Storage.MaxUploadMB, log),
	}
}
