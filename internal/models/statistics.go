package models

// Сводная статистика GET /api/statistics/overview.
type StatisticsOverview struct {
	TotalTechniques    int            `json:"total_techniques"`
	CoveredTechniques  int            `json:"covered_techniques"`
	CoveragePercentage float64        `json:"coverage_percentage"`
	TotalRules         int            `json:"total_rules"`
	ActiveRules        int            `json:"active_rules"`
	RulesBySeverity    map[string]int `json:"rules_by_severity"`
	RulesByStatus      map[string]int `json:"rules_by_status"`
	TotalComments      int            `json:"total_comments"`
}

// Покрытие в разрезе тактик, GET /api/statistics/coverage.
type TacticCoverage struct {
	Tactic             string  `json:"tactic"`
	NameRU             string  `json:"name_ru"`
	TechniquesCount    int     `json:"techniques_count"`
	CoveredCount       int     `json:"covered_count"`
	CoveragePercentage float64 `json:"coverage_percentage"`
}
