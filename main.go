// File: meetblock/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meetblock/config"
	"meetblock/cron"
	"meetblock/database"
	notificationRepo "meetblock/database/repository/notification"
	timeblockRepo "meetblock/database/repository/timeblock"
	userRepoPkg "meetblock/database/repository/user"
	"meetblock/handlers"
	"meetblock/middleware"
	"meetblock/routes"
	"meetblock/services/tasks"
	"meetblock/services/timeblock"
	"meetblock/services/user"
	"meetblock/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.New(routes.NewCORSConfig()))
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	blockRepo := timeblockRepo.NewMongoTimeBlockRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	notifRepo := notificationRepo.NewMongoNotificationRepo()

	if err := blockRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure timeblock indexes: %v", err)
	}

	// services.
	reminderScheduler := tasks.NewAsynqReminderScheduler()
	defer reminderScheduler.Close()

	blockService := timeblock.NewDefaultTimeBlockService(blockRepo, userRepo, utils.GetCacheClient(), reminderScheduler)
	userService := &user.DefaultUserService{Repo: userRepo}

	// handlers.
	blockHandler := handlers.NewTimeBlockHandler(blockService)
	userHandler := handlers.NewUserHandler(userService)
	notifHandler := handlers.NewNotificationHandler(notifRepo)

	// routes.
	routes.RegisterTimeBlockRoutes(router, blockHandler, userRepo)
	routes.RegisterUserRoutes(router, userHandler)
	routes.RegisterNotificationRoutes(router, notifHandler, userRepo)
	router.GET("/health", handlers.HealthCheck)

	// background workers.
	cron.InitReminderWorker(blockRepo, notifRepo)
	utils.StartHealthMonitor(map[string]*redis.Client{
		"cache": utils.GetCacheClient(),
		"queue": utils.GetQueueClient(),
	}, database.MongoClient)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("main: listening on port %s", config.AppConfig.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: forced shutdown: %v", err)
	}
}
