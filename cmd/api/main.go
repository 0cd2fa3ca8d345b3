package main

import (
	"github.com/louatizine/erp/internal/app"
	"github.com/louatizine/erp/internal/bootstrap"
	"github.com/louatizine/erp/internal/config"
	"github.com/louatizine/erp/internal/shared/apperror"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config failed", zap.Error(err))
	}

	application, err := app.Build(cfg)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer application.Close()

	bootstrap.StartHTTPServer(
		application.Router,
		bootstrap.ServerConfig{
			Port:         cfg.Port,
			ReadTimeout:  cfg.HTTPReadTimeout,
			WriteTimeout: cfg.HTTPWriteTimeout,
			IdleTimeout:  cfg.HTTPIdleTimeout,
		},
		bootstrap.NewStdoutAuditLogger(),
	)
}
