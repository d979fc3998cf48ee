package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"attack-coverage/internal/api"
	"attack-coverage/internal/comments"
	"attack-coverage/internal/models"
	"attack-coverage/internal/workflow"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ====== СПИСОК ПРАВИЛ ======

func (h *Handlers) ListRules(c *gin.Context) {
	h.rememberSection(c, "rules")

	q := url.Values{}
	for _, key := range []string{"page", "per_page", "search", "severity", "status", "technique_id"} {
		if v := strings.TrimSpace(c.Query(key)); v != "" {
			q.Set(key, v)
		}
	}

	rules, pagination, err := h.apiFor(c).ListRules(c.Request.Context(), q)
	if err != nil {
		h.Log.Error("rules fetch failed", zap.Error(err))
		h.flash(c, "Не удалось загрузить список правил")
		h.render(c, http.StatusOK, "rules_list.html", gin.H{
			"LoadError": true,
			"Query":     c.Request.URL.Query(),
		})
		return
	}

	h.render(c, http.StatusOK, "rules_list.html", gin.H{
		"Rules":      rules,
		"Pagination": pagination,
		"Query":      c.Request.URL.Query(),
	})
}

// ====== КАРТОЧКА ПРАВИЛА ======

// ShowRule собирает карточку: правило, workflow, исполнители,
// комментарии. Правило обязательно; остальное при отказе деградирует
// до пустого блока, страница не падает.
func (h *Handlers) ShowRule(c *gin.Context) {
	id := c.Param("id")
	client := h.apiFor(c)

	var (
		rule  *models.Rule
		info  *models.WorkflowInfo
		users []models.User
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		rule, err = client.GetRule(ctx, id)
		return err
	})
	g.Go(func() error {
		wi, err := client.GetWorkflowInfo(ctx, id)
		if err != nil {
			h.Log.Warn("workflow info failed", zap.String("rule_id", id), zap.Error(err))
			return nil
		}
		info = wi
		return nil
	})
	g.Go(func() error {
		list, err := client.ListUsers(ctx)
		if err != nil {
			h.Log.Warn("users list failed", zap.Error(err))
			return nil
		}
		users = list
		return nil
	})

	if err := g.Wait(); err != nil {
		if api.IsNotFound(err) {
			c.String(http.StatusNotFound, "Правило не найдено")
			return
		}
		h.Log.Error("rule fetch failed", zap.String("rule_id", id), zap.Error(err))
		h.flash(c, "Не удалось загрузить правило")
		c.Redirect(http.StatusFound, "/rules")
		return
	}

	current := workflow.Status(rule.WorkflowStatus)
	if _, ok := workflow.Info(current); !ok {
		current = workflow.NotStarted
	}
	currentSpec, _ := workflow.Info(current)

	svc := comments.NewService(client, "rule", id, comments.WithLogger(h.Log))
	defer svc.Destroy()
	if err := svc.Load(c.Request.Context()); err != nil {
		h.Log.Warn("rule comments failed", zap.String("rule_id", id), zap.Error(err))
	}
	svc.SetFilter(c.Query("csearch"), c.Query("cstatus"))

	h.render(c, http.StatusOK, "rule_detail.html", gin.H{
		"Rule":           rule,
		"EntityType":     "rule",
		"EntityID":       id,
		"WorkflowInfo":   info,
		"Current":        current,
		"CurrentSpec":    currentSpec,
		"AllowedNext":    workflow.AllowedNext(current),
		"StatusSpecs":    statusSpecs(workflow.AllowedNext(current)),
		"Users":          users,
		"Comments":       svc.Page(pageParam(c)),
		"CommentsTotal":  len(svc.Comments()),
		"CommentsPage":   svc.CurrentPage(),
		"CommentsPages":  svc.PageCount(),
		"CommentsSearch": c.Query("csearch"),
		"CommentsStatus": c.Query("cstatus"),
	})
}

func statusSpecs(list []workflow.Status) map[workflow.Status]workflow.Spec {
	out := make(map[workflow.Status]workflow.Spec, len(list))
	for _, s := range list {
		if spec, ok := workflow.Info(s); ok {
			out[s] = spec
		}
	}
	return out
}

// ====== РЕДАКТИРОВАНИЕ ПРАВИЛА ======

func (h *Handlers) UpdateRule(c *gin.Context) {
	id := c.Param("id")

	fields := map[string]any{}
	for _, key := range []string{"name", "name_ru", "description", "rule_text"} {
		if v := strings.TrimSpace(c.PostForm(key)); v != "" {
			fields[key] = v
		}
	}
	if sev := c.PostForm("severity"); sev != "" {
		switch models.RuleSeverity(sev) {
		case models.SeverityLow, models.SeverityMedium, models.SeverityHigh, models.SeverityCritical:
			fields["severity"] = sev
		default:
			h.flash(c, "Некорректный уровень риска")
			c.Redirect(http.StatusFound, "/rules/"+id)
			return
		}
	}
	if len(fields) == 0 {
		h.flash(c, "Нечего сохранять: поля пустые")
		c.Redirect(http.StatusFound, "/rules/"+id)
		return
	}

	if err := h.apiFor(c).UpdateRule(c.Request.Context(), id, fields); err != nil {
		h.Log.Error("rule update failed", zap.String("rule_id", id), zap.Error(err))
		h.flash(c, "Не удалось сохранить правило")
	} else {
		h.flash(c, "Правило сохранено")
	}
	c.Redirect(http.StatusFound, "/rules/"+id)
}

// ====== WORKFLOW ======

// UpdateWorkflow валидирует переход локально (BuildTransition) и
// только после этого ходит на бэкенд. Заявка без обязательного поля
// отклоняется без сетевого вызова.
func (h *Handlers) UpdateWorkflow(c *gin.Context) {
	id := c.Param("id")
	client := h.apiFor(c)

	rule, err := client.GetRule(c.Request.Context(), id)
	if err != nil {
		if api.IsNotFound(err) {
			c.String(http.StatusNotFound, "Правило не найдено")
			return
		}
		h.Log.Error("rule fetch failed", zap.String("rule_id", id), zap.Error(err))
		h.flash(c, "Не удалось загрузить правило")
		c.Redirect(http.StatusFound, "/rules")
		return
	}

	current := workflow.Status(rule.WorkflowStatus)
	if _, ok := workflow.Info(current); !ok {
		current = workflow.NotStarted
	}

	req := workflow.Request{
		Target:  workflow.Status(c.PostForm("workflow_status")),
		Comment: c.PostForm("comment"),
	}
	if raw := strings.TrimSpace(c.PostForm("assignee_id")); raw != "" {
		aid, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || aid <= 0 {
			h.flash(c, "Некорректный исполнитель")
			c.Redirect(http.StatusFound, "/rules/"+id)
			return
		}
		req.AssigneeID = &aid
	}

	transition, err := workflow.BuildTransition(current, req)
	if err != nil {
		h.Log.Info("workflow transition rejected locally",
			zap.String("rule_id", id),
			zap.String("from", string(current)),
			zap.String("to", string(req.Target)),
			zap.Error(err))
		h.flash(c, err.Error())
		c.Redirect(http.StatusFound, "/rules/"+id)
		return
	}

	if err := client.UpdateWorkflowStatus(c.Request.Context(), id, transition.Payload()); err != nil {
		h.Log.Error("workflow update failed", zap.String("rule_id", id), zap.Error(err))
		h.flash(c, "Не удалось изменить статус")
	} else {
		spec, _ := workflow.Info(req.Target)
		h.flash(c, "Статус изменён на «"+spec.LabelRU+"»")
	}
	c.Redirect(http.StatusFound, "/rules/"+id)
}
