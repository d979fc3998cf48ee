package handlers

import (
	"net/http"
	"strconv"

	"attack-coverage/internal/comments"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Комментарии постятся с карточек техник и правил; сущность приходит
// скрытыми полями entity_type/entity_id — всегда парой.
func (h *Handlers) commentService(c *gin.Context) (*comments.Service, string, bool) {
	entityType := c.PostForm("entity_type")
	entityID := c.PostForm("entity_id")

	var returnTo string
	switch entityType {
	case "technique":
		returnTo = "/techniques/" + entityID
	case "rule":
		returnTo = "/rules/" + entityID
	default:
		c.String(http.StatusBadRequest, "Некорректный тип сущности")
		return nil, "", false
	}
	if entityID == "" {
		c.String(http.StatusBadRequest, "Не указана сущность")
		return nil, "", false
	}

	svc := comments.NewService(h.apiFor(c), entityType, entityID, comments.WithLogger(h.Log))
	return svc, returnTo, true
}

func (h *Handlers) AddComment(c *gin.Context) {
	svc, returnTo, ok := h.commentService(c)
	if !ok {
		return
	}
	defer svc.Destroy()

	err := svc.Add(c.Request.Context(),
		c.PostForm("text"),
		c.PostForm("comment_type"),
		c.PostForm("priority"))
	if err != nil {
		h.Log.Warn("comment add failed", zap.Error(err))
		h.flash(c, "Не удалось добавить комментарий")
	}
	c.Redirect(http.StatusFound, returnTo)
}

func (h *Handlers) EditComment(c *gin.Context) {
	svc, returnTo, ok := h.commentService(c)
	if !ok {
		return
	}
	defer svc.Destroy()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "Некорректный ID комментария")
		return
	}

	if err := svc.Edit(c.Request.Context(), id, c.PostForm("text")); err != nil {
		h.Log.Warn("comment edit failed", zap.Int64("id", id), zap.Error(err))
		h.flash(c, "Не удалось сохранить комментарий")
	}
	c.Redirect(http.StatusFound, returnTo)
}

func (h *Handlers) DeleteComment(c *gin.Context) {
	svc, returnTo, ok := h.commentService(c)
	if !ok {
		return
	}
	defer svc.Destroy()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "Некорректный ID комментария")
		return
	}

	if err := svc.Delete(c.Request.Context(), id); err != nil {
		h.Log.Warn("comment delete failed", zap.Int64("id", id), zap.Error(err))
		h.flash(c, "Не удалось удалить комментарий")
	}
	c.Redirect(http.StatusFound, returnTo)
}
