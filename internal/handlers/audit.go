package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Уровни журнала для фильтра.
var auditLevels = []string{"DEBUG", "INFO", "WARN", "ERROR", "SECURITY", "CRITICAL"}

func (h *Handlers) ListAudit(c *gin.Context) {
	h.rememberSection(c, "audit")

	q := url.Values{}
	for _, key := range []string{"level", "event_type", "username", "search", "page", "per_page"} {
		if v := strings.TrimSpace(c.Query(key)); v != "" {
			q.Set(key, v)
		}
	}

	entries, err := h.apiFor(c).ListAudit(c.Request.Context(), q)
	if err != nil {
		h.Log.Error("audit fetch failed", zap.Error(err))
		h.flash(c, "Не удалось загрузить журнал аудита")
		h.render(c, http.StatusOK, "audit_list.html", gin.H{
			"LoadError": true,
			"Levels":    auditLevels,
			"Query":     c.Request.URL.Query(),
		})
		return
	}

	h.render(c, http.StatusOK, "audit_list.html", gin.H{
		"Entries": entries,
		"Levels":  auditLevels,
		"Query":   c.Request.URL.Query(),
	})
}

// ExportAudit проксирует выгрузку журнала как есть.
func (h *Handlers) ExportAudit(c *gin.Context) {
	q := url.Values{}
	for _, key := range []string{"level", "event_type", "username", "format"} {
		if v := strings.TrimSpace(c.Query(key)); v != "" {
			q.Set(key, v)
		}
	}

	body, contentType, err := h.apiFor(c).ExportAudit(c.Request.Context(), q)
	if err != nil {
		h.Log.Error("audit export failed", zap.Error(err))
		h.flash(c, "Не удалось выгрузить журнал")
		c.Redirect(http.StatusFound, "/audit")
		return
	}

	if contentType == "" {
		contentType = "text/csv; charset=utf-8"
	}
	c.Header("Content-Disposition", `attachment; filename="audit_export.csv"`)
	c.Data(http.StatusOK, contentType, body)
}
