package repository

import (
	"chakai-booking/pkg/cache"
	"chakai-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Tx          database.TxManager
	User        UserRepository
	Session     SessionRepository
	Event       EventRepository
	Reservation ReservationRepository
	Post        PostRepository
	Setting     SettingRepository
}

func NewRepository(db database.PgxIface, store cache.Store, log *zap.Logger) *Repository {
	return &Repository{
		Tx:          database.NewTxManager(db, log),
		User:        NewUserRepository(db, log),
		Session:     NewSessionRepository(db, log),
		Event:       NewEventRepository(db, log),
		Reservation: NewReservationRepository(db, log),
		Post:        NewPostRepository(db, log),
		Setting:     NewCachedSettingRepository(NewSettingRepository(db, log), store, log),
	}
}
