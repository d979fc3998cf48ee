package handlers

import (
	"net/http"

	"attack-coverage/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// StatisticsPage грузит сводку, покрытие по тактикам и дашборд аудита
// параллельно. Отказ любого блока деградирует до пустого виджета,
// страница рендерится всегда.
func (h *Handlers) StatisticsPage(c *gin.Context) {
	h.rememberSection(c, "statistics")
	client := h.apiFor(c)

	var (
		overview *models.StatisticsOverview
		coverage []models.TacticCoverage
		dash     *models.AuditDashboard
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		v, err := client.StatisticsOverview(ctx)
		if err != nil {
			h.Log.Warn("statistics overview failed", zap.Error(err))
			return nil
		}
		overview = v
		return nil
	})
	g.Go(func() error {
		v, err := client.CoverageStatistics(ctx)
		if err != nil {
			h.Log.Warn("coverage statistics failed", zap.Error(err))
			return nil
		}
		coverage = v
		return nil
	})
	g.Go(func() error {
		v, err := client.AuditDashboard(ctx)
		if err != nil {
			h.Log.Warn("audit dashboard failed", zap.Error(err))
			return nil
		}
		dash = v
		return nil
	})
	_ = g.Wait()

	if overview == nil && coverage == nil && dash == nil {
		h.flash(c, "Бэкенд недоступен, статистику загрузить не удалось")
	}

	h.render(c, http.StatusOK, "statistics.html", gin.H{
		"Overview":  overview,
		"Coverage":  coverage,
		"Dashboard": dash,
	})
}
