package wire

import (
	"net/http"

	"chakai-booking/internal/adaptor"
	"chakai-booking/internal/data/repository"
	"chakai-booking/internal/notify"
	"chakai-booking/internal/usecase"
	"chakai-booking/pkg/middleware"
	"chakai-booking/pkg/storage"
	"chakai-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Infra holds the optional outside services. A nil Storage hides the image
// routes and a nil Limiter turns rate limiting off.
type Infra struct {
	Storage   storage.Gateway
	Publisher notify.Publisher
	Limiter   redis.Scripter
}

type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

func Wiring(repo *repository.Repository, infra Infra, config *utils.Config, logger *zap.Logger) *App {
	if infra.Publisher == nil {
		infra.Publisher = notify.NewNoopPublisher()
	}

	service := usecase.NewService(repo, infra.Storage, infra.Publisher, config, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, repo, infra, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	infra Infra,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS)

	admin := adminChain(repo, config, logger)
	limit := middleware.RateLimit(config.RateLimit, infra.Limiter, logger)

	wireAuth(r, handler.Auth, admin)
	wireEvent(r, handler.Event, admin)
	wireReservation(r, handler.Reservation, admin, limit, config, logger)
	wirePost(r, handler.Post, admin)
	wireSetting(r, handler.Setting, admin)
	if infra.Storage != nil {
		wireImage(r, handler.Image, admin)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", nil)
	})

	return r
}

// adminChain is AuthSession followed by Admin.
func adminChain(repo *repository.Repository, config *utils.Config, logger *zap.Logger) chi.Middlewares {
	return chi.Middlewares{
		middleware.AuthSession(repo.Session, config.Session.CookieName, logger),
		middleware.Admin(repo.User, logger),
	}
}
