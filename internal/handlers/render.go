package handlers

import (
	"attack-coverage/internal/api"
	"attack-coverage/internal/matrix"
	"attack-coverage/internal/middleware"
	"attack-coverage/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PrefStore — хранилище настроек интерфейса (database.Store в бою).
type PrefStore interface {
	SavePreference(username, key, value string)
	GetPreference(username, key string) string
}

// Handlers держит зависимости страниц. Никаких глобальных объектов
// состояния на модуль: всё живёт в экземпляре, в тестах их можно
// поднимать сколько угодно.
type Handlers struct {
	API      *api.Client
	Store    PrefStore
	Snapshot *matrix.Snapshot
	Log      *zap.Logger
}

func New(client *api.Client, store PrefStore, snap *matrix.Snapshot, log *zap.Logger) *Handlers {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handlers{API: client, Store: store, Snapshot: snap, Log: log}
}

// apiFor — клиент бэкенда с токеном текущей сессии.
func (h *Handlers) apiFor(c *gin.Context) *api.Client {
	return h.API.WithToken(middleware.Token(c))
}

// render — обёртка над c.HTML: во все шаблоны прокидывает текущего
// пользователя, флэш-сообщения и состояние сайдбара.
func (h *Handlers) render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if u, ok := middleware.CurrentUser(c); ok {
		data["CurrentUser"] = u
		data["CurrentUsername"] = u.Username
		data["CurrentUserRole"] = u.Role
		if h.Store != nil {
			data["SidebarCollapsed"] = h.Store.GetPreference(u.Username, models.PrefSidebarCollapsed) == "1"
		}
	}

	sess := sessions.Default(c)
	if flashes := sess.Flashes(); len(flashes) > 0 {
		_ = sess.Save()
		data["Flashes"] = flashes
	}

	c.HTML(status, tmpl, data)
}

// flash откладывает сообщение до следующего рендера.
func (h *Handlers) flash(c *gin.Context, msg string) {
	sess := sessions.Default(c)
	sess.AddFlash(msg)
	_ = sess.Save()
}

// rememberSection сохраняет последний посещённый раздел — аналог
// last-visited-section в localStorage у старого фронтенда.
func (h *Handlers) rememberSection(c *gin.Context, section string) {
	if h.Store == nil {
		return
	}
	if u, ok := middleware.CurrentUser(c); ok {
		h.Store.SavePreference(u.Username, models.PrefLastSection, section)
	}
}
