package main

import (
	"net/http"

	"github.com/tempizhere/linkrusk-admin/internal/app"
	"github.com/tempizhere/linkrusk-admin/internal/backend"
	"github.com/tempizhere/linkrusk-admin/internal/config"
	"github.com/tempizhere/linkrusk-admin/internal/log"
	"github.com/tempizhere/linkrusk-admin/internal/session"
	"go.uber.org/zap"
)

func main() {
	// Получаем конфигурацию
	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	logger := log.NewLogger(cfg.LogLevel)
	defer func() {
		_ = logger.Sync()
	}()

	// Создаём зависимости: хранилище сессии и клиент бэкенда
	store, err := session.NewFileStore(cfg.SessionPath, logger)
	if err != nil {
		panic(err)
	}
	client := backend.NewClient(store, logger)

	appInstance, err := app.NewApp(store, client, logger)
	if err != nil {
		panic(err)
	}

	logger.Info("Starting admin UI",
		zap.String("addr", cfg.RunAddr),
		zap.String("session_path", cfg.SessionPath),
	)
	if err := http.ListenAndServe(cfg.RunAddr, appInstance.Routes()); err != nil {
		panic(err)
	}
}
