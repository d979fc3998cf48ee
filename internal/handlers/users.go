package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"attack-coverage/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ====== ПОЛЬЗОВАТЕЛИ ======

func (h *Handlers) ListUsers(c *gin.Context) {
	h.rememberSection(c, "users")

	users, err := h.apiFor(c).ListUsers(c.Request.Context())
	if err != nil {
		h.Log.Error("users fetch failed", zap.Error(err))
		h.flash(c, "Не удалось загрузить пользователей")
		h.render(c, http.StatusOK, "users_list.html", gin.H{"LoadError": true})
		return
	}

	h.render(c, http.StatusOK, "users_list.html", gin.H{"Users": users})
}

func (h *Handlers) CreateUser(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	fullName := strings.TrimSpace(c.PostForm("full_name"))
	role := models.UserRole(c.PostForm("role"))

	if len(username) < 3 || len(password) < 6 {
		h.flash(c, "Слишком короткий логин или пароль")
		c.Redirect(http.StatusFound, "/users")
		return
	}
	switch role {
	case models.RoleAdmin, models.RoleAnalyst, models.RoleViewer:
	default:
		h.flash(c, "Неверная роль")
		c.Redirect(http.StatusFound, "/users")
		return
	}

	payload := map[string]any{
		"username": username,
		"email":    email,
		"password": password,
		"role":     string(role),
	}
	if fullName != "" {
		payload["full_name"] = fullName
	}

	if err := h.apiFor(c).CreateUser(c.Request.Context(), payload); err != nil {
		h.Log.Error("user create failed", zap.String("username", username), zap.Error(err))
		h.flash(c, "Не удалось создать пользователя")
	} else {
		h.flash(c, "Пользователь создан")
	}
	c.Redirect(http.StatusFound, "/users")
}

func (h *Handlers) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "Некорректный ID пользователя")
		return
	}

	payload := map[string]any{}
	if v := strings.TrimSpace(c.PostForm("email")); v != "" {
		payload["email"] = v
	}
	if v := strings.TrimSpace(c.PostForm("full_name")); v != "" {
		payload["full_name"] = v
	}
	if v := c.PostForm("role"); v != "" {
		switch models.UserRole(v) {
		case models.RoleAdmin, models.RoleAnalyst, models.RoleViewer:
			payload["role"] = v
		default:
			h.flash(c, "Неверная роль")
			c.Redirect(http.StatusFound, "/users")
			return
		}
	}
	if len(payload) == 0 {
		h.flash(c, "Нечего сохранять: поля пустые")
		c.Redirect(http.StatusFound, "/users")
		return
	}

	if err := h.apiFor(c).UpdateUser(c.Request.Context(), id, payload); err != nil {
		h.Log.Error("user update failed", zap.Int64("id", id), zap.Error(err))
		h.flash(c, "Не удалось сохранить пользователя")
	} else {
		h.flash(c, "Пользователь сохранён")
	}
	c.Redirect(http.StatusFound, "/users")
}

// ToggleUser включает/выключает учётку.
func (h *Handlers) ToggleUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "Некорректный ID пользователя")
		return
	}

	if err := h.apiFor(c).ToggleUser(c.Request.Context(), id); err != nil {
		h.Log.Error("user toggle failed", zap.Int64("id", id), zap.Error(err))
		h.flash(c, "Не удалось изменить статус пользователя")
	}
	c.Redirect(http.StatusFound, "/users")
}
