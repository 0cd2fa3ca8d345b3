package app

import (
	"context"
	"net/http"
	"time"

	"github.com/louatizine/erp/internal/config"
	"github.com/louatizine/erp/internal/mailer"
	"github.com/louatizine/erp/internal/middleware"
	"github.com/louatizine/erp/internal/notification"
	"github.com/louatizine/erp/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Application owns the process-wide infrastructure: storage clients,
// the mail dispatcher, the HTTP router and the wired modules. Both the
// API binary and the scheduler build one.
type Application struct {
	Config     *config.Config
	Mongo      *mongo.Client
	Redis      *redis.Client
	Dispatcher *notification.Dispatcher
	Router     *gin.Engine
	Modules    *Modules
}

func Build(cfg *config.Config) (*Application, error) {
	mongoClient, err := connection.ConnectMongoWithRetry(cfg.MongoURI, 5)
	if err != nil {
		return nil, err
	}
	db := mongoClient.Database(cfg.MongoDB)

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		return nil, err
	}

	smtp := mailer.NewSMTP(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender)
	dispatcher := notification.NewDispatcher(smtp, cfg.DispatcherWorkers, cfg.DispatcherQueueSize)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.ContextLogger(zap.L()),
		middleware.RateLimitByIP(rate.Limit(50), 100),
	)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	modules := registerModules(router, db, redisClient, dispatcher, cfg)

	return &Application{
		Config:     cfg,
		Mongo:      mongoClient,
		Redis:      redisClient,
		Dispatcher: dispatcher,
		Router:     router,
		Modules:    modules,
	}, nil
}

// Close drains the dispatcher before dropping connections so queued
// notifications still go out.
func (a *Application) Close() {
	a.Dispatcher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.Mongo.Disconnect(ctx); err != nil {
		zap.L().Error("mongo disconnect failed", zap.Error(err))
	}
	if err := a.Redis.Close(); err != nil {
		zap.L().Error("redis close failed", zap.Error(err))
	}
}
