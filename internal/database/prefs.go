package database

import (
	"errors"

	"attack-coverage/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SavePreference — upsert настройки пользователя. Ошибка не фатальна
// для запроса, поэтому пишем fire-and-forget с логом.
func (s *Store) SavePreference(username, key, value string) {
	if username == "" || key == "" {
		return
	}

	var pref models.Preference
	err := s.db.Where("username = ? AND key = ?", username, key).First(&pref).Error
	switch {
	case err == nil:
		if pref.Value == value {
			return
		}
		pref.Value = value
		err = s.db.Save(&pref).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		err = s.db.Create(&models.Preference{
			Username: username,
			Key:      key,
			Value:    value,
		}).Error
	}
	if err != nil {
		s.log.Warn("failed to save preference",
			zap.String("username", username),
			zap.String("key", key),
			zap.Error(err))
	}
}

// GetPreference возвращает значение или пустую строку, если настройки нет.
func (s *Store) GetPreference(username, key string) string {
	if username == "" || key == "" {
		return ""
	}
	var pref models.Preference
	if err := s.db.Where("username = ? AND key = ?", username, key).First(&pref).Error; err != nil {
		return ""
	}
	return pref.Value
}
