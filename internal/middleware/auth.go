package middleware

import (
	"net/http"

	"attack-coverage/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Ключи сессии.
const (
	SessionToken    = "api_token"
	SessionUserID   = "user_id"
	SessionUsername = "username"
	SessionRole     = "role"
)

// RequireAuth пропускает только запросы с токеном бэкенда в сессии.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		token, _ := sess.Get(SessionToken).(string)
		if token == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set("APIToken", token)
		c.Next()
	}
}

// RequireRole ограничивает доступ ролями бэкенда.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := map[models.UserRole]struct{}{}
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		sess := sessions.Default(c)
		roleStr, ok := sess.Get(SessionRole).(string)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		if _, ok := roleSet[models.UserRole(roleStr)]; !ok {
			c.String(http.StatusForbidden, "access denied")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Token — токен бэкенда для текущего запроса (ставит RequireAuth).
func Token(c *gin.Context) string {
	if v, ok := c.Get("APIToken"); ok {
		if tok, ok := v.(string); ok {
			return tok
		}
	}
	return ""
}
