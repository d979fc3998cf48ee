package workflow

import (
	"fmt"
	"strings"
)

// ValidationError — отказ локальной валидации до какого-либо запроса
// к бэкенду. Field указывает конкретное поле формы.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("workflow: %s: %s", e.Field, e.Message)
}

// Request — заявка на смену статуса из формы.
type Request struct {
	Target     Status
	AssigneeID *int64
	// Свободный текст заявки. В какое поле он уедет, зависит от
	// целевого статуса (см. Transition).
	Comment string
}

// Transition — проверенный переход, готовый к отправке на бэкенд.
type Transition struct {
	Status          Status
	AssigneeID      *int64
	Comment         string
	StoppedReason   string
	DeploymentMRURL string
}

// Payload — тело PUT /rules/:id/workflow-status.
func (t *Transition) Payload() map[string]any {
	body := map[string]any{"workflow_status": string(t.Status)}
	if t.AssigneeID != nil {
		body["assignee_id"] = *t.AssigneeID
	}
	if t.Comment != "" {
		body["comment"] = t.Comment
	}
	if t.StoppedReason != "" {
		body["stopped_reason"] = t.StoppedReason
	}
	if t.DeploymentMRURL != "" {
		body["deployment_mr_url"] = t.DeploymentMRURL
	}
	return body
}

// BuildTransition валидирует переход локально и раскладывает свободный
// текст по статусо-специфичному полю: stopped → stopped_reason,
// deployed → deployment_mr_url, остальные — обычный comment.
// Запрос с незаполненным обязательным полем отклоняется здесь,
// до любого сетевого вызова.
func BuildTransition(current Status, req Request) (*Transition, error) {
	spec, ok := specs[req.Target]
	if !ok {
		return nil, &ValidationError{Field: "workflow_status", Message: fmt.Sprintf("неизвестный статус %q", req.Target)}
	}
	if _, ok := specs[current]; !ok {
		return nil, &ValidationError{Field: "workflow_status", Message: fmt.Sprintf("неизвестный текущий статус %q", current)}
	}
	if !CanTransition(current, req.Target) {
		return nil, &ValidationError{
			Field:   "workflow_status",
			Message: fmt.Sprintf("переход %q → %q не разрешён", current, req.Target),
		}
	}

	text := strings.TrimSpace(req.Comment)

	if spec.RequiresAssignee && req.AssigneeID == nil {
		return nil, &ValidationError{Field: "assignee_id", Message: "статус требует исполнителя"}
	}
	if spec.RequiresComment && text == "" {
		field := "comment"
		switch req.Target {
		case Stopped:
			field = "stopped_reason"
		case Deployed:
			field = "deployment_mr_url"
		}
		return nil, &ValidationError{Field: field, Message: "статус требует обязательного текста"}
	}

	t := &Transition{Status: req.Target, AssigneeID: req.AssigneeID}
	switch req.Target {
	case Stopped:
		t.StoppedReason = text
	case Deployed:
		t.DeploymentMRURL = text
	default:
		t.Comment = text
	}
	return t, nil
}
