package usecase

import (
	"chakai-booking/internal/data/repository"
	"chakai-booking/internal/notify"
	"chakai-booking/pkg/storage"
	"chakai-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	Ledger      Ledger
	Reservation ReservationService
	Event       EventService
	Post        PostService
	Setting     SettingService
	Image       ImageService
}

func NewService(repo *repository.Repository, store storage.Gateway, publisher notify.Publisher, config *utils.Config, log *zap.Logger) *Service {
	ledger := NewLedger(repo, log)
	reservations := NewReservationService(repo, ledger, publisher, config, log)

	return &Service{
		Auth:        NewAuthService(repo, config, log),
		Ledger:      ledger,
		Reservation: reservations,
		Event:       NewEventService(repo, ledger, reservations, log),
		Post:        NewPostService(repo, log),
		Setting:     NewSettingService(repo, log),
		Image:       NewImageService(store, config, log),
	}
}
