package models

import "time"

// Ключи пользовательских настроек.
const (
	PrefLastSection      = "last_section"
	PrefSidebarCollapsed = "sidebar_collapsed"
	PrefMatrixFilters    = "matrix_filters"
)

// Настройка интерфейса конкретного пользователя. Единственное, что
// дашборд хранит локально — доменные данные живут на бэкенде.
type Preference struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Username string `gorm:"size:64;not null;uniqueIndex:idx_pref_user_key"`
	Key      string `gorm:"size:64;not null;uniqueIndex:idx_pref_user_key"`
	Value    string `gorm:"type:text"`
}
