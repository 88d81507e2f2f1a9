package main

import (
	"context"
	"time"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/example/ministore/internal/config"
	"github.com/example/ministore/internal/logging"
	"github.com/example/ministore/internal/repository/mongodb"
	"github.com/example/ministore/internal/server"
	"github.com/example/ministore/internal/service"
	"github.com/example/ministore/internal/session"
)

func main() {
	cfg, err := config.Load("./config")
	if err != nil {
		panic(err)
	}

	logger := logging.Init(false)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := mongodb.Init(ctx, &cfg.Mongo)
	if err != nil {
		zap.L().Fatal("failed to init mongo", zap.Error(err))
	}

	// Bootstrap administrator, idempotent across restarts.
	userSvc := service.NewUserService(mongodb.NewUserRepository(db), &cfg.JWT)
	if err := userSvc.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		zap.L().Fatal("failed to ensure bootstrap admin", zap.Error(err))
	}

	app := iris.New()
	mgr := session.NewManager()
	server.RegisterRoutes(app, cfg, db, mgr)

	addr := cfg.Server.Addr()
	zap.L().Info("web server listening", zap.String("addr", addr))
	if err := app.Run(iris.Addr(addr), iris.WithoutServerError(iris.ErrServerClosed)); err != nil {
		zap.L().Fatal("failed to run web server", zap.Error(err))
	}
}
