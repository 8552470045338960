package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rideshare/config"
	"rideshare/cron"
	"rideshare/database/repository"
	"rideshare/database/store"
	"rideshare/handlers"
	"rideshare/middleware"
	"rideshare/routes"
	"rideshare/services/booking"
	"rideshare/services/notification"
	"rideshare/services/realtime"
	"rideshare/services/ride"
	"rideshare/services/search"
	"rideshare/services/session"
	"rideshare/services/user"
	"rideshare/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

func main() {
	flags := config.Flags()
	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	config.LoadConfig(flags)
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := time.LoadLocation(config.AppConfig.Timezone)
	if err != nil {
		logger.Fatal("main: invalid TIMEZONE", zap.String("timezone", config.AppConfig.Timezone), zap.Error(err))
	}
	clock := utils.RealClock()

	ledgerStore, err := store.Open(ctx)
	if err != nil {
		logger.Fatal("main: failed to open store", zap.Error(err))
	}
	defer ledgerStore.Close(context.Background())

	// repositories.
	repos := repository.NewRepositories(ledgerStore)
	ledger, users, notifications := repos.Ledger, repos.Users, repos.Notifications

	// sessions.
	secret := []byte(config.AppConfig.JWTSecret)
	if len(secret) == 0 {
		if config.IsProduction() {
			logger.Fatal("main: JWT_SECRET is required in production")
		}
		logger.Warn("main: JWT_SECRET not set, using a development secret")
		secret = []byte("rideshare-development-secret")
	}
	var sessionStore session.Store
	switch driver := config.AppConfig.SessionDriver; {
	case driver == "redis", driver == "" && config.IsProduction():
		sessionStore = session.NewRedisStore(utils.GetAuthCacheClient())
	default:
		sessionStore = session.NewMemoryStore(clock)
	}
	sessions := session.NewManager(secret, time.Duration(config.AppConfig.SessionTTLMin)*time.Minute, sessionStore, clock, logger)

	// outbound delivery.
	hub := realtime.NewHub(logger)
	var outbox notification.Outbox
	switch config.AppConfig.OutboxDriver {
	case "asynq":
		client := asynq.NewClient(cron.RedisOpt())
		defer client.Close()
		worker := cron.NewOutboundWorker(notifications, logger)
		worker.Start(ctx)
		defer worker.Shutdown()
		outbox = &notification.QueueOutbox{Client: client}
	case "amqp":
		conn, err := amqp.Dial(config.AppConfig.AMQPURL)
		if err != nil {
			logger.Fatal("main: failed to connect to RabbitMQ", zap.Error(err))
		}
		defer conn.Close()
		ch, err := conn.Channel()
		if err != nil {
			logger.Fatal("main: failed to open RabbitMQ channel", zap.Error(err))
		}
		defer ch.Close()
		if err := notification.DeclareOutboundExchange(ch, config.AppConfig.AMQPExchange); err != nil {
			logger.Fatal("main: failed to declare outbound exchange", zap.Error(err))
		}
		outbox = &notification.BrokerOutbox{Channel: ch, Exchange: config.AppConfig.AMQPExchange, Repo: notifications}
	default:
		outbox = &notification.StoreOutbox{Repo: notifications}
	}

	// services.
	userService := user.NewDefaultUserService(users, clock, logger)
	notificationService := notification.NewDefaultNotificationService(users, notifications, outbox, hub, clock, logger)
	rideService := ride.NewDefaultRideService(ledger, clock, logger)
	bookingService := booking.NewDefaultBookingService(ledger, notificationService, clock, logger)

	// Assemble the handler bundle.
	handlerBundle := handlers.NewHandlerBundle(
		sessions,
		handlers.NewUserHandler(userService, sessions, logger),
		handlers.NewRideHandler(rideService, search.OptionsFromConfig(loc), loc, logger),
		handlers.NewBookingHandler(bookingService, logger),
		handlers.NewNotificationHandler(notificationService, hub, logger),
	)

	utils.StartHealthMonitor(ctx, clock, map[string]utils.Pinger{"store": ledgerStore})

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + config.AppConfig.AppPort,
		Handler: router,
	}

	logger.Info("Starting server",
		zap.String("addr", srv.Addr),
		zap.String("store", config.AppConfig.StoreDriver),
		zap.String("outbox", config.AppConfig.OutboxDriver))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	logger.Info("main: server stopped gracefully")
}
