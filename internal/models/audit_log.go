package models

// Запись журнала аудита. Со стороны бэкенда журнал append-only,
// мы его только читаем, фильтруем и экспортируем.
type AuditEntry struct {
	ID          int64          `json:"id"`
	Level       string         `json:"level"` // DEBUG, INFO, WARN, ERROR, SECURITY, CRITICAL
	EventType   string         `json:"event_type"`
	Description string         `json:"description"`
	Username    string         `json:"username"`
	UserIP      string         `json:"user_ip"`
	RiskScore   float64        `json:"risk_score"`
	EntityType  string         `json:"entity_type"`
	EntityID    string         `json:"entity_id"`
	Metadata    map[string]any `json:"metadata"`
	CreatedAt   string         `json:"created_at"`
}

// Сводка GET /api/audit/dashboard.
type AuditDashboard struct {
	TotalEvents    int            `json:"total_events"`
	EventsByLevel  map[string]int `json:"events_by_level"`
	EventsByType   map[string]int `json:"events_by_type"`
	TopUsers       []UserActivity `json:"top_users"`
	AverageRisk    float64        `json:"average_risk"`
	HighRiskEvents int            `json:"high_risk_events"`
}

type UserActivity struct {
	Username string `json:"username"`
	Events   int    `json:"events"`
}
