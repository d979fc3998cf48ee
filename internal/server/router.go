package server

import (
	"fmt"
	"html/template"
	"net/http"

	"attack-coverage/internal/config"
	"attack-coverage/internal/handlers"
	"attack-coverage/internal/middleware"
	"attack-coverage/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// pct — процент с одним знаком для шаблонов.
func pct(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// riskClass — css-класс бейджа по risk_score записи аудита.
func riskClass(score float64) string {
	switch {
	case score >= 7:
		return "risk-high"
	case score >= 4:
		return "risk-medium"
	default:
		return "risk-low"
	}
}

func NewRouter(cfg *config.Config, h *handlers.Handlers) *gin.Engine {
	r := gin.Default()

	r.Static("/static", "./web/static")

	r.SetFuncMap(template.FuncMap{
		"pct":       pct,
		"riskClass": riskClass,
	})
	r.LoadHTMLGlob("web/templates/*.html")

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("coverage_session", store))

	r.Use(middleware.InjectUser())

	// ГЛАВНАЯ
	r.GET("/", h.IndexRedirect)

	// AUTH
	r.GET("/login", h.ShowLogin)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth())

	// МАТРИЦА И ТЕХНИКИ
	auth.GET("/matrix", h.MatrixPage)
	auth.GET("/techniques/:id", h.ShowTechnique)
	auth.POST("/techniques/:id/edit",
		middleware.RequireRole(models.RoleAdmin, models.RoleAnalyst),
		h.UpdateTechnique,
	)

	// ПРАВИЛА
	auth.GET("/rules", h.ListRules)
	auth.GET("/rules/:id", h.ShowRule)
	auth.POST("/rules/:id/edit",
		middleware.RequireRole(models.RoleAdmin, models.RoleAnalyst),
		h.UpdateRule,
	)
	auth.POST("/rules/:id/workflow",
		middleware.RequireRole(models.RoleAdmin, models.RoleAnalyst),
		h.UpdateWorkflow,
	)

	// КОММЕНТАРИИ
	auth.POST("/comments/add", h.AddComment)
	auth.POST("/comments/:id/edit", h.EditComment)
	auth.POST("/comments/:id/delete", h.DeleteComment)

	// АУДИТ
	auth.GET("/audit",
		middleware.RequireRole(models.RoleAdmin, models.RoleViewer, models.RoleAnalyst),
		h.ListAudit,
	)
	auth.GET("/audit/export",
		middleware.RequireRole(models.RoleAdmin),
		h.ExportAudit,
	)

	// СТАТИСТИКА
	auth.GET("/statistics", h.StatisticsPage)

	// ПОЛЬЗОВАТЕЛИ
	auth.GET("/users",
		middleware.RequireRole(models.RoleAdmin),
		h.ListUsers,
	)
	auth.POST("/users/new",
		middleware.RequireRole(models.RoleAdmin),
		h.CreateUser,
	)
	auth.POST("/users/:id/edit",
		middleware.RequireRole(models.RoleAdmin),
		h.UpdateUser,
	)
	auth.POST("/users/:id/toggle",
		middleware.RequireRole(models.RoleAdmin),
		h.ToggleUser,
	)

	// НАСТРОЙКИ ИНТЕРФЕЙСА
	auth.POST("/prefs/sidebar", h.ToggleSidebar)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
