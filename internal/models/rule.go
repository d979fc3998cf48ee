package models

type RuleSeverity string

const (
	SeverityLow      RuleSeverity = "low"
	SeverityMedium   RuleSeverity = "medium"
	SeverityHigh     RuleSeverity = "high"
	SeverityCritical RuleSeverity = "critical"
)

type RuleStatus string

const (
	RuleDraft      RuleStatus = "draft"
	RuleTesting    RuleStatus = "testing"
	RuleActive     RuleStatus = "active"
	RuleDeprecated RuleStatus = "deprecated"
	RuleDisabled   RuleStatus = "disabled"
)

// Правило корреляции. Даты оставлены строками: бэкенд шлёт isoformat
// без таймзоны, и в шаблонах они нужны только для отображения.
type Rule struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	NameRU         string       `json:"name_ru"`
	Description    string       `json:"description"`
	Severity       RuleSeverity `json:"severity"`
	Status         RuleStatus   `json:"status"`
	WorkflowStatus string       `json:"workflow_status"`
	AttackID       string       `json:"attack_id"`
	TechniqueID    string       `json:"technique_id"`
	Author         string       `json:"author"`
	AssigneeID     *int64       `json:"assignee_id"`
	Tags           []string     `json:"tags"`
	RuleText       string       `json:"rule_text"`

	// Поля workflow, заполняются на отдельных статусах.
	StoppedReason   string `json:"stopped_reason"`
	DeploymentMRURL string `json:"deployment_mr_url"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (r Rule) DisplayName() string {
	if r.NameRU != "" {
		return r.NameRU
	}
	return r.Name
}

// Метаданные пагинации списка правил (серверная пагинация).
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Информация о workflow статусе из GET /rules/:id/workflow-info.
type WorkflowInfo struct {
	WorkflowStatus    string  `json:"workflow_status"`
	AssigneeID        *int64  `json:"assignee_id"`
	AssigneeName      string  `json:"assignee_name"`
	StoppedReason     *string `json:"stopped_reason"`
	DeploymentMRURL   *string `json:"deployment_mr_url"`
	WorkflowUpdatedAt *string `json:"workflow_updated_at"`
}
