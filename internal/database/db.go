package database

import (
	"fmt"
	"time"

	"attack-coverage/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Store — локальная БД дашборда. Доменные данные живут на бэкенде,
// здесь только настройки интерфейса пользователей.
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

func Open(dsn string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var db *gorm.DB
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		log.Info("connecting to local DB", zap.Int("attempt", i), zap.Int("max", maxAttempts))

		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}

		log.Warn("failed to connect to DB", zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("database: connect after %d attempts: %w", maxAttempts, err)
	}

	// миграции
	if err := db.AutoMigrate(&models.Preference{}); err != nil {
		return nil, fmt.Errorf("database: migrate: %w", err)
	}

	log.Info("connected to local DB")
	return &Store{db: db, log: log}, nil
}
