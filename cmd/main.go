package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/broker"
	"taskboard/config"
	"taskboard/database"
	"taskboard/pkg/translator"
	"taskboard/routes"
	"taskboard/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	translator.InitTranslator(translator.DefaultConfig())

	cfg := config.Load()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Setup(cfg)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	webSocketService := services.NewWebSocketService(cfg.AllowedOrigins)
	webSocketService.Start()
	defer webSocketService.Stop()

	// Without NATS the event handler feeds the local hub directly.
	var producer broker.Producer
	if cfg.NATSURL != "" {
		natsClient, err := broker.InitClient(cfg.NATSURL)
		if err != nil {
			logger.Warn("nats unavailable, change feed is local to this instance", zap.Error(err))
		} else {
			defer natsClient.Close()
			if err := webSocketService.ConsumeFrom(natsClient, broker.AllTopics); err != nil {
				logger.Fatal("failed to subscribe to event topics", zap.Error(err))
			}
			producer = natsClient
		}
	}

	eventHandlerService := services.NewEventHandlerService(producer, webSocketService)
	eventHandlerService.Start()
	defer eventHandlerService.Stop()

	taskService := services.NewTaskService(eventHandlerService)
	userService := services.NewUserService(eventHandlerService)

	router := routes.NewRouter(routes.Dependencies{
		DB:               db,
		TaskService:      taskService,
		UserService:      userService,
		WebSocketService: webSocketService,
		AllowedOrigins:   cfg.AllowedOrigins,
		Logger:           logger,
	})

	server := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("api server is running", zap.String("port", cfg.AppPort), zap.String("db_driver", cfg.DBDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
}
