package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"attack-coverage/internal/models"
)

// ====== АВТОРИЗАЦИЯ ======

func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResult, error) {
	data, err := c.do(ctx, http.MethodPost, "/users/login", nil, map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	var res models.LoginResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("%w: login payload: %v", ErrShape, err)
	}
	if res.SessionToken() == "" {
		return nil, fmt.Errorf("%w: login response without token", ErrShape)
	}
	return &res, nil
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/users/logout", nil, nil)
	return err
}

// ====== МАТРИЦА И ТЕХНИКИ ======

func (c *Client) GetMatrix(ctx context.Context, query url.Values) (*models.MatrixResponse, error) {
	data, err := c.do(ctx, http.MethodGet, "/matrix", query, nil)
	if err != nil {
		return nil, err
	}
	var res models.MatrixResponse
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("%w: matrix payload: %v", ErrShape, err)
	}
	return &res, nil
}

func (c *Client) GetTechnique(ctx context.Context, attackID string) (*models.Technique, error) {
	data, err := c.do(ctx, http.MethodGet, "/techniques/"+url.PathEscape(attackID), nil, nil)
	if err != nil {
		return nil, err
	}
	obj, err := unwrapObject(data, "technique")
	if err != nil {
		return nil, err
	}
	var t models.Technique
	if err := json.Unmarshal(obj, &t); err != nil {
		return nil, fmt.Errorf("%w: technique payload: %v", ErrShape, err)
	}
	return &t, nil
}

func (c *Client) UpdateTechnique(ctx context.Context, attackID string, fields map[string]any) error {
	_, err := c.do(ctx, http.MethodPut, "/techniques/"+url.PathEscape(attackID), nil, fields)
	return err
}

// ====== ПРАВИЛА ======

func (c *Client) ListRules(ctx context.Context, query url.Values) ([]models.Rule, *models.Pagination, error) {
	data, err := c.do(ctx, http.MethodGet, "/rules", query, nil)
	if err != nil {
		return nil, nil, err
	}

	list, err := UnwrapList(data, "rules", "items")
	if err != nil {
		return nil, nil, err
	}
	var rules []models.Rule
	if err := json.Unmarshal(list, &rules); err != nil {
		return nil, nil, fmt.Errorf("%w: rules payload: %v", ErrShape, err)
	}

	// Пагинация опциональна: старые ручки отдают голый массив.
	var meta struct {
		Pagination *models.Pagination `json:"pagination"`
	}
	_ = json.Unmarshal(data, &meta)
	return rules, meta.Pagination, nil
}

func (c *Client) GetRule(ctx context.Context, id string) (*models.Rule, error) {
	data, err := c.do(ctx, http.MethodGet, "/rules/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	obj, err := unwrapObject(data, "rule")
	if err != nil {
		return nil, err
	}
	var r models.Rule
	if err := json.Unmarshal(obj, &r); err != nil {
		return nil, fmt.Errorf("%w: rule payload: %v", ErrShape, err)
	}
	return &r, nil
}

func (c *Client) UpdateRule(ctx context.Context, id string, fields map[string]any) error {
	_, err := c.do(ctx, http.MethodPut, "/rules/"+url.PathEscape(id), nil, fields)
	return err
}

func (c *Client) UpdateWorkflowStatus(ctx context.Context, id string, payload map[string]any) error {
	_, err := c.do(ctx, http.MethodPut, "/rules/"+url.PathEscape(id)+"/workflow-status", nil, payload)
	return err
}

func (c *Client) GetWorkflowInfo(ctx context.Context, id string) (*models.WorkflowInfo, error) {
	data, err := c.do(ctx, http.MethodGet, "/rules/"+url.PathEscape(id)+"/workflow-info", nil, nil)
	if err != nil {
		return nil, err
	}
	var info models.WorkflowInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("%w: workflow info payload: %v", ErrShape, err)
	}
	return &info, nil
}

// ====== КОММЕНТАРИИ ======

func (c *Client) ListComments(ctx context.Context, entityType, entityID string) ([]models.Comment, error) {
	q := url.Values{}
	q.Set("entity_type", entityType)
	q.Set("entity_id", entityID)

	data, err := c.do(ctx, http.MethodGet, "/comments", q, nil)
	if err != nil {
		return nil, err
	}
	list, err := UnwrapList(data, "comments", "items")
	if err != nil {
		return nil, err
	}
	var comments []models.Comment
	if err := json.Unmarshal(list, &comments); err != nil {
		return nil, fmt.Errorf("%w: comments payload: %v", ErrShape, err)
	}
	return comments, nil
}

func (c *Client) CreateComment(ctx context.Context, payload map[string]any) (*models.Comment, error) {
	data, err := c.do(ctx, http.MethodPost, "/comments", nil, payload)
	if err != nil {
		return nil, err
	}
	obj, err := unwrapObject(data, "comment")
	if err != nil {
		return nil, err
	}
	var cm models.Comment
	if err := json.Unmarshal(obj, &cm); err != nil {
		return nil, fmt.Errorf("%w: comment payload: %v", ErrShape, err)
	}
	return &cm, nil
}

func (c *Client) UpdateComment(ctx context.Context, id int64, payload map[string]any) error {
	_, err := c.do(ctx, http.MethodPut, "/comments/"+strconv.FormatInt(id, 10), nil, payload)
	return err
}

func (c *Client) DeleteComment(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, "/comments/"+strconv.FormatInt(id, 10), nil, nil)
	return err
}

// ====== ПОЛЬЗОВАТЕЛИ ======

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	data, err := c.do(ctx, http.MethodGet, "/users/list", nil, nil)
	if err != nil {
		return nil, err
	}
	list, err := UnwrapList(data, "users", "items")
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := json.Unmarshal(list, &users); err != nil {
		return nil, fmt.Errorf("%w: users payload: %v", ErrShape, err)
	}
	return users, nil
}

func (c *Client) CreateUser(ctx context.Context, payload map[string]any) error {
	_, err := c.do(ctx, http.MethodPost, "/users", nil, payload)
	return err
}

func (c *Client) UpdateUser(ctx context.Context, id int64, payload map[string]any) error {
	_, err := c.do(ctx, http.MethodPut, "/users/"+strconv.FormatInt(id, 10), nil, payload)
	return err
}

func (c *Client) ToggleUser(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodPost, "/users/"+strconv.FormatInt(id, 10)+"/toggle", nil, nil)
	return err
}

// ====== АУДИТ ======

func (c *Client) ListAudit(ctx context.Context, query url.Values) ([]models.AuditEntry, error) {
	data, err := c.do(ctx, http.MethodGet, "/audit", query, nil)
	if err != nil {
		return nil, err
	}
	list, err := UnwrapList(data, "entries", "logs", "audit_logs")
	if err != nil {
		return nil, err
	}
	var entries []models.AuditEntry
	if err := json.Unmarshal(list, &entries); err != nil {
		return nil, fmt.Errorf("%w: audit payload: %v", ErrShape, err)
	}
	return entries, nil
}

func (c *Client) AuditDashboard(ctx context.Context) (*models.AuditDashboard, error) {
	data, err := c.do(ctx, http.MethodGet, "/audit/dashboard", nil, nil)
	if err != nil {
		return nil, err
	}
	var dash models.AuditDashboard
	if err := json.Unmarshal(data, &dash); err != nil {
		return nil, fmt.Errorf("%w: audit dashboard payload: %v", ErrShape, err)
	}
	return &dash, nil
}

// ExportAudit отдаёт выгрузку журнала как есть (CSV/JSON), без конверта.
func (c *Client) ExportAudit(ctx context.Context, query url.Values) ([]byte, string, error) {
	return c.doRaw(ctx, "/audit/export", query)
}

// ====== СТАТИСТИКА ======

func (c *Client) StatisticsOverview(ctx context.Context) (*models.StatisticsOverview, error) {
	data, err := c.do(ctx, http.MethodGet, "/statistics/overview", nil, nil)
	if err != nil {
		return nil, err
	}
	var stats models.StatisticsOverview
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("%w: statistics payload: %v", ErrShape, err)
	}
	return &stats, nil
}

func (c *Client) CoverageStatistics(ctx context.Context) ([]models.TacticCoverage, error) {
	data, err := c.do(ctx, http.MethodGet, "/statistics/coverage", nil, nil)
	if err != nil {
		return nil, err
	}
	list, err := UnwrapList(data, "tactics", "coverage", "items")
	if err != nil {
		return nil, err
	}
	var rows []models.TacticCoverage
	if err := json.Unmarshal(list, &rows); err != nil {
		return nil, fmt.Errorf("%w: coverage payload: %v", ErrShape, err)
	}
	return rows, nil
}
