package main

import (
	"context"
	"fmt"

	"attack-coverage/internal/api"
	"attack-coverage/internal/config"
	"attack-coverage/internal/database"
	"attack-coverage/internal/handlers"
	"attack-coverage/internal/logging"
	"attack-coverage/internal/matrix"
	"attack-coverage/internal/refresh"
	"attack-coverage/internal/server"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log := logging.Init(cfg.LogLevel, cfg.LogFile)
	defer func() { _ = log.Sync() }()

	store, err := database.Open(cfg.DBDSN, log)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}

	client, err := api.New(cfg.APIBaseURL,
		api.WithTimeout(cfg.APITimeout),
		api.WithRetries(cfg.APIRetries),
		api.WithLogger(log),
	)
	if err != nil {
		log.Fatal("api client init failed", zap.Error(err))
	}

	// Фоновый прогрев снапшота матрицы. /api/matrix не требует
	// авторизации, рефрешер ходит без токена.
	snapshot := &matrix.Snapshot{}
	refresher := refresh.NewRefresher(cfg.MatrixRefresh, func(ctx context.Context) {
		gen := snapshot.Begin()
		resp, err := client.GetMatrix(ctx, nil)
		if err != nil {
			log.Warn("matrix refresh failed", zap.Error(err))
		}
		snapshot.Commit(gen, resp, err)
	}, log)
	refresher.Start()
	defer refresher.Stop()

	h := handlers.New(client, store, snapshot, log)
	r := server.NewRouter(cfg, h)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
