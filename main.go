package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"chakai-booking/cmd"
	"chakai-booking/internal/data/repository"
	"chakai-booking/internal/notify"
	"chakai-booking/internal/wire"
	"chakai-booking/pkg/cache"
	"chakai-booking/pkg/database"
	"chakai-booking/pkg/storage"
	"chakai-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	db, err := database.InitDB(ctx, config.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	infra := wire.Infra{}
	store := cache.NewNoopStore()

	if config.Redis.Enabled {
		rdb, err := cache.NewRedisClient(ctx, config.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer rdb.Close()

		store = cache.NewRedisStore(rdb, config.App.Name, config.Redis.CacheTTL)
		infra.Limiter = rdb
		logger.Info("Redis connected", zap.String("addr", config.Redis.Addr))
	}

	if config.Storage.Endpoint != "" {
		infra.Storage, err = storage.NewMinioGateway(ctx, config.Storage, logger)
		if err != nil {
			logger.Fatal("Failed to connect to storage", zap.Error(err))
		}
	} else {
		logger.Warn("STORAGE_ENDPOINT is empty, image routes are disabled")
	}

	repos := repository.NewRepository(db, store, logger)

	if config.RabbitMQ.Enabled {
		infra.Publisher = notify.NewRabbitPublisher(config.RabbitMQ.URL, config.RabbitMQ.Queue, logger)
	}

	app := wire.Wiring(repos, infra, config, logger)

	if err := app.Service.Auth.EnsureAdmin(ctx, config.Admin); err != nil {
		logger.Fatal("Failed to seed admin account", zap.Error(err))
	}

	go cmd.SessionJanitor(ctx, app.Service.Auth, time.Hour, logger)

	if config.RabbitMQ.Enabled {
		mailer := notify.NewLogMailer(logger)
		if config.Email.Host != "" {
			mailer = notify.NewSMTPMailer(config.Email)
		}
		dispatcher := notify.NewDispatcher(mailer, app.Service.Setting, logger)
		consumer := notify.NewConsumer(config.RabbitMQ.URL, config.RabbitMQ.Queue, dispatcher, logger)
		go consumer.Run(ctx)
	}

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}
}
