package cmd

import (
	"context"
	"fmt"
	"time"

	"slotwise/config"
	"slotwise/cron"
	"slotwise/database"
	"slotwise/database/repository"
	"slotwise/services/availability"
	"slotwise/services/booking"
	"slotwise/services/expiry"
	"slotwise/services/notification"
	"slotwise/services/storage"
	"slotwise/services/tier"
	"slotwise/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// app is the wired service graph shared by every subcommand.
type app struct {
	logger       *zap.Logger
	repos        *repository.Repositories
	dbPing       func(context.Context) error
	availability *availability.DefaultAvailabilityService
	tiers        *tier.DefaultTierService
	bookings     *booking.DefaultBookingService
	expirer      *expiry.Expirer
	sweeper      *expiry.Sweeper

	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func newApp(ctx context.Context) (*app, error) {
	config.LoadConfig()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	cfg := config.AppConfig
	logger := utils.GetLogger()
	loc := config.Location()
	a := &app{logger: logger}

	switch cfg.StoreDriver {
	case "postgres":
		database.InitSQL()
		a.repos = repository.NewGormRepositories(database.SQLDB)
		a.dbPing = database.PingSQL
	case "mongo", "":
		database.InitDB()
		a.repos = repository.NewMongoRepositories(database.MongoDatabase())
		a.dbPing = database.PingMongo
		a.closers = append(a.closers, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = database.MongoClient.Disconnect(ctx)
		})
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	if err := a.repos.EnsureIndexes(ctx); err != nil {
		return nil, err
	}

	utils.InitRedis()
	var handles expiry.HandleStore = expiry.NewMemoryHandleStore()
	if cfg.HandleStore == "redis" {
		handles = expiry.NewRedisHandleStore(utils.CacheClient, cfg.PendingTTL+5*time.Minute)
	}

	queueClient := asynq.NewClient(cron.QueueRedisOpt())
	inspector := asynq.NewInspector(cron.QueueRedisOpt())
	a.closers = append(a.closers, func() {
		_ = queueClient.Close()
		_ = inspector.Close()
	})
	scheduler := expiry.NewScheduler(queueClient, inspector, handles, cfg.PendingTTL, cfg.QueueTimeout, logger)

	var sink notification.Notifier = notification.LogNotifier{Logger: logger}
	if fcm, err := utils.FirebaseMessaging(ctx); err != nil {
		logger.Warn("FCM unavailable, notifications will only be logged", zap.Error(err))
	} else if fcmNotifier, err := notification.NewFCMNotifier(a.repos.Directory, fcm, logger); err == nil {
		sink = fcmNotifier
	}
	dispatcher := notification.NewDispatcher(sink, logger, 4, 256)
	a.closers = append(a.closers, dispatcher.Close)

	var images booking.ImageStore
	if cld, err := utils.Cloudinary(); err != nil {
		logger.Warn("Cloudinary unavailable, images will be dropped", zap.Error(err))
	} else {
		images = storage.NewCloudinaryStore(cld, cfg.CloudinaryFolder)
	}

	a.availability = availability.NewAvailabilityService(a.repos.Services, a.repos.Reservations, loc, logger)
	a.tiers = tier.NewTierService(a.repos.Services, a.repos.Reservations, a.repos.Tiers, logger)
	a.bookings = booking.NewBookingService(booking.Deps{
		Reservations: a.repos.Reservations,
		Services:     a.repos.Services,
		Directory:    a.repos.Directory,
		Windows:      a.availability,
		Locker:       utils.NewRedisLocker(utils.CacheClient, 3*time.Second),
		Expiry:       scheduler,
		Tier:         a.tiers,
		Notifier:     dispatcher,
		Mailer:       notification.NewSMTPMailer(cfg),
		Images:       images,
		Addresses:    a.repos.Addresses,
	}, loc, cfg.ArrivalToleranceMeters, logger)

	a.expirer = expiry.NewExpirer(a.repos.Reservations, dispatcher, handles, logger)
	a.sweeper = expiry.NewSweeper(a.repos.Reservations, a.expirer, dispatcher, cfg.PendingTTL, cfg.SweepInterval, loc, logger)
	return a, nil
}

// startBackground runs the expiry worker and sweeper until ctx ends.
func (a *app) startBackground(ctx context.Context, worker, sweeper bool) error {
	go utils.StartHealthMonitor(ctx, utils.RedisClients(), a.dbPing)
	if worker {
		if err := cron.StartExpiryWorker(ctx, a.expirer, a.logger); err != nil {
			return fmt.Errorf("expiry worker: %w", err)
		}
	}
	if sweeper {
		go a.sweeper.Run(ctx)
	}
	return nil
}
