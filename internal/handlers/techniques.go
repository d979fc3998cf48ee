package handlers

import (
	"net/http"
	"strings"

	"attack-coverage/internal/api"
	"attack-coverage/internal/comments"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ShowTechnique — карточка техники с комментариями.
func (h *Handlers) ShowTechnique(c *gin.Context) {
	attackID := c.Param("id")
	client := h.apiFor(c)

	tech, err := client.GetTechnique(c.Request.Context(), attackID)
	if err != nil {
		if api.IsNotFound(err) {
			c.String(http.StatusNotFound, "Техника не найдена")
			return
		}
		h.Log.Error("technique fetch failed", zap.String("attack_id", attackID), zap.Error(err))
		h.flash(c, "Не удалось загрузить технику")
		c.Redirect(http.StatusFound, "/matrix")
		return
	}

	// Комментарии не должны ронять карточку.
	svc := comments.NewService(client, "technique", attackID, comments.WithLogger(h.Log))
	defer svc.Destroy()
	if err := svc.Load(c.Request.Context()); err != nil {
		h.Log.Warn("technique comments failed", zap.String("attack_id", attackID), zap.Error(err))
	}
	svc.SetFilter(c.Query("csearch"), c.Query("cstatus"))

	h.render(c, http.StatusOK, "technique_detail.html", gin.H{
		"Technique":      tech,
		"EntityType":     "technique",
		"EntityID":       attackID,
		"Comments":       svc.Page(pageParam(c)),
		"CommentsTotal":  len(svc.Comments()),
		"CommentsPage":   svc.CurrentPage(),
		"CommentsPages":  svc.PageCount(),
		"CommentsSearch": c.Query("csearch"),
		"CommentsStatus": c.Query("cstatus"),
	})
}

// UpdateTechnique — сохранение правок (русское имя и описание).
func (h *Handlers) UpdateTechnique(c *gin.Context) {
	attackID := c.Param("id")

	nameRU := strings.TrimSpace(c.PostForm("name_ru"))
	descRU := strings.TrimSpace(c.PostForm("description_ru"))
	if nameRU == "" && descRU == "" {
		h.flash(c, "Нечего сохранять: поля пустые")
		c.Redirect(http.StatusFound, "/techniques/"+attackID)
		return
	}

	fields := map[string]any{}
	if nameRU != "" {
		fields["name_ru"] = nameRU
	}
	if descRU != "" {
		fields["description_ru"] = descRU
	}

	if err := h.apiFor(c).UpdateTechnique(c.Request.Context(), attackID, fields); err != nil {
		h.Log.Error("technique update failed", zap.String("attack_id", attackID), zap.Error(err))
		h.flash(c, "Не удалось сохранить технику")
	} else {
		h.flash(c, "Техника сохранена")
	}
	c.Redirect(http.StatusFound, "/techniques/"+attackID)
}
