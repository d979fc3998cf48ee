package middleware

import (
	"attack-coverage/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// InjectUser прокидывает в контекст пользователя из сессии. Профиль
// кладётся в сессию при логине; за актуальностью следит бэкенд,
// лишний поход туда на каждый запрос не нужен.
func InjectUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		username, _ := sess.Get(SessionUsername).(string)
		if username != "" {
			role, _ := sess.Get(SessionRole).(string)
			id, _ := sess.Get(SessionUserID).(int64)
			c.Set("CurrentUser", models.User{
				ID:       id,
				Username: username,
				Role:     models.UserRole(role),
				IsActive: true,
			})
		}

		c.Next()
	}
}

// CurrentUser — пользователь текущего запроса, если он залогинен.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get("CurrentUser")
	if !ok {
		return models.User{}, false
	}
	u, ok := v.(models.User)
	return u, ok
}
