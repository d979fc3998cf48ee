package handlers

import (
	"net/http"
	"strconv"

	"attack-coverage/internal/middleware"
	"attack-coverage/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Разделы дашборда.
var sections = map[string]bool{
	"matrix":     true,
	"rules":      true,
	"audit":      true,
	"statistics": true,
	"users":      true,
}

// ValidSection — известный раздел навигации.
func ValidSection(name string) bool {
	return sections[name]
}

// IndexRedirect выбирает раздел по приоритету: явный ?section= >
// сохранённый раздел пользователя > матрица по умолчанию. Это тот же
// порядок, что был у hash > localStorage > default.
func (h *Handlers) IndexRedirect(c *gin.Context) {
	sess := sessions.Default(c)
	token, _ := sess.Get(middleware.SessionToken).(string)
	if token == "" {
		h.render(c, http.StatusOK, "index.html", gin.H{"isAuthed": false})
		return
	}

	section := c.Query("section")
	if !ValidSection(section) {
		section = ""
	}
	if section == "" && h.Store != nil {
		if u, ok := middleware.CurrentUser(c); ok {
			saved := h.Store.GetPreference(u.Username, models.PrefLastSection)
			if ValidSection(saved) {
				section = saved
			}
		}
	}
	if section == "" {
		section = "matrix"
	}

	c.Redirect(http.StatusFound, "/"+section)
}

// ToggleSidebar — переключение флага свёрнутого сайдбара.
func (h *Handlers) ToggleSidebar(c *gin.Context) {
	if u, ok := middleware.CurrentUser(c); ok && h.Store != nil {
		cur := h.Store.GetPreference(u.Username, models.PrefSidebarCollapsed)
		next := "1"
		if cur == "1" {
			next = "0"
		}
		h.Store.SavePreference(u.Username, models.PrefSidebarCollapsed, next)
	}
	c.Redirect(http.StatusFound, safeReturnTo(c, "/"))
}

// pageParam — номер страницы комментариев из query (?cpage=N).
func pageParam(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("cpage"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// safeReturnTo — только локальные пути, никаких внешних редиректов.
func safeReturnTo(c *gin.Context, fallback string) string {
	to := c.PostForm("return_to")
	if to == "" {
		to = c.Query("return_to")
	}
	if len(to) > 1 && to[0] == '/' && to[1] != '/' {
		return to
	}
	return fallback
}
