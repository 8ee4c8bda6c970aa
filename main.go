package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotbook/config"
	"slotbook/cron"
	"slotbook/database"
	reservationRepo "slotbook/database/repository/reservation"
	slotRepo "slotbook/database/repository/slot"
	trackRepo "slotbook/database/repository/track"
	userRepoPkg "slotbook/database/repository/user"
	"slotbook/handlers"
	"slotbook/middleware"
	"slotbook/routes"
	"slotbook/services/catalog"
	"slotbook/services/schedule"
	syncSvc "slotbook/services/sync"
	"slotbook/services/user"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	slotsRepo := slotRepo.NewMongoSlotRepo()
	tracksRepo := trackRepo.NewMongoTrackRepo()
	reservationsRepo := reservationRepo.NewMongoReservationRepo()

	// sync layer: in-memory snapshot store, Redis change events and the
	// delayed refetch queue.
	store := syncSvc.NewStore()
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSyncQueueDB,
	})
	refresher := &syncSvc.Refresher{
		Slots:        slotsRepo,
		Tracks:       tracksRepo,
		Users:        userRepo,
		Reservations: reservationsRepo,
		Store:        store,
		Delay:        time.Duration(config.AppConfig.SyncRefreshDelayMS) * time.Millisecond,
		AsynqClient:  asynqClient,
	}
	publisher := &syncSvc.Publisher{Client: utils.GetCacheClient()}
	subscriber := &syncSvc.Subscriber{Client: utils.GetCacheClient(), Refresher: refresher}

	// services.
	userService := &user.DefaultUserService{
		Repo:      userRepo,
		Publisher: publisher,
		Refresher: refresher,
	}
	catalogService := &catalog.DefaultCatalogService{
		Slots:     slotsRepo,
		Tracks:    tracksRepo,
		Publisher: publisher,
		Refresher: refresher,
	}
	scheduleService := &schedule.DefaultScheduleService{
		Reservations: reservationsRepo,
		Store:        store,
		Refresher:    refresher,
		Publisher:    publisher,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:     userRepo,
		Auth:         handlers.NewAuthHandler(userService),
		Users:        handlers.NewUserHandler(userService),
		Schedule:     handlers.NewScheduleHandler(scheduleService),
		Reservations: handlers.NewReservationHandler(scheduleService),
		Catalog:      handlers.NewCatalogHandler(catalogService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Warm the snapshot before serving, then keep it fresh via change events
	// and the background refresh worker.
	warmCtx, warmCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := refresher.RefreshNow(warmCtx); err != nil {
		logger.Sugar().Warnf("main: initial snapshot load failed, serving empty schedule until refresh: %v", err)
	}
	warmCancel()

	listenCtx, listenCancel := context.WithCancel(context.Background())
	defer listenCancel()
	go subscriber.Listen(listenCtx)
	cron.InitSyncWorker(refresher)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	asynqClient.Close()

	logger.Sugar().Info("main: server stopped gracefully")
}
