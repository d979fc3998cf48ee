package models

// Тактика MITRE ATT&CK. Используется только как ключ группировки,
// собственного жизненного цикла на нашей стороне у неё нет.
type Tactic struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	NameRU          string  `json:"name_ru"`
	Shortname       string  `json:"shortname"`
	XMitreShortname string  `json:"x_mitre_shortname"`
	Description     string  `json:"description"`
	TechniquesCount int     `json:"techniques_count"`
	CoveredCount    int     `json:"covered_techniques_count"`
	CoveragePercent float64 `json:"coverage_percentage"`
}

// Key — каноничный идентификатор колонки матрицы. Бэкенд отдаёт
// shortname не во всех ручках, поэтому падаем на x_mitre_shortname.
func (t Tactic) Key() string {
	if t.Shortname != "" {
		return t.Shortname
	}
	return t.XMitreShortname
}

func (t Tactic) DisplayName() string {
	if t.NameRU != "" {
		return t.NameRU
	}
	return t.Name
}

// Покрытие техники правилами корреляции.
type Coverage struct {
	ActiveRules int `json:"active_rules"`
	TotalRules  int `json:"total_rules"`
}

type Technique struct {
	ID            string      `json:"id"`
	AttackID      string      `json:"attack_id"`
	Name          string      `json:"name"`
	NameRU        string      `json:"name_ru"`
	Description   string      `json:"description"`
	DescriptionRU string      `json:"description_ru"`
	Platforms     []string    `json:"platforms"`
	DataSources   []string    `json:"data_sources"`
	Tactics       []Tactic    `json:"tactics"`
	Subtechniques []Technique `json:"subtechniques"`
	Coverage      Coverage    `json:"coverage"`
	Deprecated    bool        `json:"deprecated"`
	Revoked       bool        `json:"revoked"`
	Version       string      `json:"version"`
}

func (t Technique) DisplayName() string {
	if t.NameRU != "" {
		return t.NameRU
	}
	return t.Name
}

// IsCovered — у техники есть хотя бы одно активное правило.
func (t Technique) IsCovered() bool {
	return t.Coverage.ActiveRules > 0
}

// HasTactic — принадлежит ли техника тактике (по shortname).
func (t Technique) HasTactic(key string) bool {
	for _, tac := range t.Tactics {
		if tac.Key() == key {
			return true
		}
	}
	return false
}

// Ответ GET /api/matrix: плоские списки, группировку делаем сами.
type MatrixResponse struct {
	Tactics    []Tactic    `json:"tactics"`
	Techniques []Technique `json:"techniques"`
}
