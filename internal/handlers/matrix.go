package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"attack-coverage/internal/matrix"
	"attack-coverage/internal/middleware"
	"attack-coverage/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Платформы ATT&CK для фильтра.
var matrixPlatforms = []string{
	"Windows", "Linux", "macOS", "Azure", "SaaS", "IaaS",
	"Google Cloud", "AWS", "Office 365", "Network",
}

// MatrixPage — матрица тактики × техники. Данные берутся из прогретого
// снапшота; если рефрешер ещё ни разу не дотянулся до бэкенда, ходим
// напрямую.
func (h *Handlers) MatrixPage(c *gin.Context) {
	h.rememberSection(c, "matrix")

	// Запрос с параметрами фильтра задаёт и сохраняет фильтры; заход
	// на голый /matrix восстанавливает последние сохранённые.
	filters, explicit := requestFilters(c)
	if explicit {
		h.rememberMatrixFilters(c, filters)
	} else {
		filters = h.savedMatrixFilters(c, filters)
	}

	resp, fetchedAt, lastErr := h.Snapshot.Get()
	if resp == nil {
		var err error
		resp, err = h.apiFor(c).GetMatrix(c.Request.Context(), nil)
		if err != nil {
			h.Log.Error("matrix fetch failed", zap.Error(err))
			h.flash(c, "Бэкенд недоступен, матрицу загрузить не удалось")
			h.render(c, http.StatusOK, "matrix.html", gin.H{
				"LoadError": true,
				"Filters":   filters,
				"Platforms": matrixPlatforms,
			})
			return
		}
	}

	result, err := matrix.Organize(resp.Tactics, resp.Techniques, filters)
	if err != nil {
		// испорченная форма ответа — не то же самое, что пустой результат
		if errors.Is(err, matrix.ErrMissingTactics) || errors.Is(err, matrix.ErrMissingTechniques) {
			h.Log.Error("matrix payload malformed", zap.Error(err))
			h.flash(c, "Бэкенд вернул некорректные данные матрицы")
			h.render(c, http.StatusOK, "matrix.html", gin.H{
				"LoadError": true,
				"Filters":   filters,
				"Platforms": matrixPlatforms,
			})
			return
		}
		h.Log.Error("matrix organize failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	h.render(c, http.StatusOK, "matrix.html", gin.H{
		"Result":    result,
		"Filters":   filters,
		"Platforms": matrixPlatforms,
		"FetchedAt": fetchedAt,
		"StaleErr":  lastErr != nil,
	})
}

// Ключи query-параметров фильтра матрицы.
var matrixFilterKeys = []string{"platform", "coverage", "tactic", "search"}

// requestFilters читает фильтры из query. Второй результат истинен,
// если запрос несёт хотя бы один параметр фильтра: пустая форма,
// отправленная явно, тоже считается (это сброс фильтров).
func requestFilters(c *gin.Context) (matrix.Filters, bool) {
	q := c.Request.URL.Query()
	explicit := false
	for _, key := range matrixFilterKeys {
		if _, ok := q[key]; ok {
			explicit = true
			break
		}
	}
	return matrix.Filters{
		Platform: c.Query("platform"),
		Coverage: c.DefaultQuery("coverage", matrix.CoverageAll),
		Tactic:   c.Query("tactic"),
		Search:   c.Query("search"),
	}, explicit
}

// savedMatrixFilters восстанавливает последние сохранённые фильтры
// пользователя; при отсутствии или порче сохранённого — def.
func (h *Handlers) savedMatrixFilters(c *gin.Context, def matrix.Filters) matrix.Filters {
	if h.Store == nil {
		return def
	}
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return def
	}
	raw := h.Store.GetPreference(u.Username, models.PrefMatrixFilters)
	if raw == "" {
		return def
	}
	q, err := url.ParseQuery(raw)
	if err != nil {
		return def
	}
	f := matrix.Filters{
		Platform: q.Get("platform"),
		Coverage: q.Get("coverage"),
		Tactic:   q.Get("tactic"),
		Search:   q.Get("search"),
	}
	if f.Coverage == "" {
		f.Coverage = matrix.CoverageAll
	}
	return f
}

// rememberMatrixFilters сохраняет последние фильтры матрицы; заход на
// голый /matrix их не затирает (см. requestFilters).
func (h *Handlers) rememberMatrixFilters(c *gin.Context, f matrix.Filters) {
	if h.Store == nil {
		return
	}
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return
	}
	q := url.Values{}
	if f.Platform != "" {
		q.Set("platform", f.Platform)
	}
	if f.Coverage != "" && f.Coverage != matrix.CoverageAll {
		q.Set("coverage", f.Coverage)
	}
	if f.Tactic != "" {
		q.Set("tactic", f.Tactic)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	h.Store.SavePreference(u.Username, models.PrefMatrixFilters, q.Encode())
}
