package handlers

import (
	"net/http"
	"strings"

	"attack-coverage/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handlers) ShowLogin(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", gin.H{"error": ""})
}

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// Login меняет логин/пароль на токен сессии бэкенда. Пароль нигде
// локально не хранится и не хэшируется — авторизацией владеет бэкенд.
func (h *Handlers) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusBadRequest, "login.html", gin.H{"error": "Некорректные данные"})
		return
	}

	form.Username = strings.TrimSpace(form.Username)
	if form.Username == "" || form.Password == "" {
		h.render(c, http.StatusBadRequest, "login.html", gin.H{"error": "Укажите логин и пароль"})
		return
	}

	res, err := h.API.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		h.Log.Warn("login failed", zap.String("username", form.Username), zap.Error(err))
		h.render(c, http.StatusBadRequest, "login.html", gin.H{"error": "Неверный логин или пароль"})
		return
	}

	sess := sessions.Default(c)
	sess.Set(middleware.SessionToken, res.SessionToken())
	sess.Set(middleware.SessionUserID, res.User.ID)
	sess.Set(middleware.SessionUsername, res.User.Username)
	sess.Set(middleware.SessionRole, string(res.User.Role))
	_ = sess.Save()

	h.Log.Info("user logged in", zap.String("username", res.User.Username))
	c.Redirect(http.StatusFound, "/")
}

func (h *Handlers) Logout(c *gin.Context) {
	// Бэкенду сообщаем по возможности, сессию чистим в любом случае.
	if token, ok := sessions.Default(c).Get(middleware.SessionToken).(string); ok && token != "" {
		if err := h.API.WithToken(token).Logout(c.Request.Context()); err != nil {
			h.Log.Debug("backend logout failed", zap.Error(err))
		}
	}

	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	c.Redirect(http.StatusFound, "/login")
}
