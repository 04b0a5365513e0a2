package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/skybook/config"
	"github.com/Domenick1991/skybook/internal/bootstrap"
	"github.com/Domenick1991/skybook/internal/cache"
	"github.com/Domenick1991/skybook/internal/kafka"
	"github.com/Domenick1991/skybook/internal/repository"
	"github.com/Domenick1991/skybook/internal/service/auth"
	"github.com/Domenick1991/skybook/internal/service/booking"
	"github.com/Domenick1991/skybook/internal/service/flights"
	"github.com/Domenick1991/skybook/internal/service/loyalty"
	"github.com/Domenick1991/skybook/internal/service/notifications"
	"github.com/Domenick1991/skybook/pkg/logger"
	"github.com/Domenick1991/skybook/pkg/metrics"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	log := logger.NewLogger()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatal("load config", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal("connect postgres", "error", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis,
		time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second,
		time.Duration(cfg.Auth.SessionTTLMinutes)*time.Minute)

	// Sessions from a previous process must not survive a restart.
	if err := redisCache.ResetSessions(ctx); err != nil {
		log.Fatal("reset sessions", "error", err)
	}

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	m := metrics.NewMetrics("skybook")

	userRepo := repository.NewUserRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	loyaltyRepo := repository.NewLoyaltyRepository(pool)
	transactionRepo := repository.NewTransactionRepository(pool)
	feedbackRepo := repository.NewFeedbackRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	pricing := booking.Pricing{
		MinRedeemPoints: cfg.Booking.MinRedeemPoints,
		PointValueCents: cfg.Booking.PointValueCents,
		EarnRateCents:   cfg.Booking.EarnRateCents,
	}

	svc := bootstrap.Services{
		Auth:    auth.NewAuthService(userRepo, redisCache, log),
		Flights: flights.NewFlightService(flightRepo, redisCache),
		Bookings: booking.NewBookingService(
			bookingRepo,
			flightRepo,
			loyaltyRepo,
			transactionRepo,
			feedbackRepo,
			producer,
			cfg.Kafka.BookingTopic,
			pricing,
			log,
			booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
			booking.WithMetrics(m),
		),
		Loyalty:       loyalty.NewLoyaltyService(loyaltyRepo),
		Notifications: notifications.NewNotificationService(notificationRepo),
	}

	if err := bootstrap.Run(ctx, cfg, svc); err != nil {
		log.Fatal("server error", "error", err)
	}
}
