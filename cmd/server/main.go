package main // Entry point package

import (
	"errors"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/todo-task-api/internal/config"
	"github.com/iliyamo/todo-task-api/internal/handler"
	"github.com/iliyamo/todo-task-api/internal/router"
	"github.com/iliyamo/todo-task-api/internal/service"
	"github.com/iliyamo/todo-task-api/internal/store"
	"github.com/iliyamo/todo-task-api/internal/upload"
)

func main() {
	_ = godotenv.Load() // a missing .env file is fine; env vars win anyway
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	if cfg.Env == "dev" {
		logger, _ = zap.NewDevelopment()
	}
	defer func() { _ = logger.Sync() }()

	files, err := upload.New(cfg.UploadDir)
	if err != nil {
		logger.Fatal("create upload dir", zap.String("dir", cfg.UploadDir), zap.Error(err))
	}

	tasks := store.NewTaskStore()
	users := store.NewUserStore()
	if cfg.SeedDemo {
		tasks.SeedDemo()
		logger.Info("seeded demo tasks")
	}

	taskSvc := service.NewTaskService(tasks, files, logger)
	authSvc := service.NewAuthService(users, files, cfg.BcryptCost, logger)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Error(v.Error),
			)
			return nil
		},
	}))

	router.Register(e, handler.NewTaskHandler(taskSvc), handler.NewAuthHandler(cfg, authSvc), files.Dir(), cfg.JWTSecret)

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
