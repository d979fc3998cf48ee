// Package matrix собирает плоский список техник в сетку
// тактика × строка для отображения матрицы ATT&CK.
package matrix

import (
	"errors"
	"strings"

	"attack-coverage/internal/models"
)

// Отсутствующие массивы во входе — испорченный ответ бэкенда,
// а не пустая матрица. Вызывающие различают эти два случая.
var (
	ErrMissingTactics    = errors.New("matrix: tactics list is missing")
	ErrMissingTechniques = errors.New("matrix: techniques list is missing")
)

// Фильтр покрытия.
const (
	CoverageAll       = "all"
	CoverageCovered   = "covered"
	CoverageUncovered = "uncovered"
)

type Filters struct {
	Platform string // пусто или "all" — без фильтра
	Coverage string // all | covered | uncovered
	Tactic   string // shortname тактики, пусто или "all" — все колонки
	Search   string // подстрока без учёта регистра: attack_id или имя
}

// Ячейка сетки. Пустые ячейки добиваются справа-снизу, строки не
// переупаковываются.
type Cell struct {
	TacticID      string
	Technique     *models.Technique
	Subtechniques []models.Technique
	IsEmpty       bool
}

type Row struct {
	Index int
	Cells []Cell
}

type Result struct {
	Rows          []Row
	Tactics       []models.Tactic
	FilteredCount int
	TotalCount    int
}

// Organize строит сетку: колонки — тактики в исходном порядке,
// строка i колонки t — i-я отфильтрованная техника с членством в t.
// Техника с несколькими тактиками попадает в каждую свою колонку —
// это свойство ATT&CK, а не дубль. Входные срезы не мутируются.
func Organize(tactics []models.Tactic, techniques []models.Technique, f Filters) (*Result, error) {
	if tactics == nil {
		return nil, ErrMissingTactics
	}
	if techniques == nil {
		return nil, ErrMissingTechniques
	}

	// 1. Колонки: одна тактика при активном фильтре, иначе все,
	// порядок источника сохраняется.
	columns := tactics
	if active := normalize(f.Tactic); active != "" {
		columns = nil
		for _, t := range tactics {
			if t.Key() == active {
				columns = append(columns, t)
			}
		}
	}

	// 2. Техники: предикаты соединяются по AND, порядок источника
	// сохраняется, вторичной сортировки нет.
	var filtered []models.Technique
	for _, t := range techniques {
		if matches(t, f) {
			filtered = append(filtered, t)
		}
	}

	// 3. Раскладка по колонкам.
	byTactic := make(map[string][]*models.Technique, len(columns))
	maxRows := 0
	for i := range filtered {
		t := &filtered[i]
		for _, col := range columns {
			key := col.Key()
			if t.HasTactic(key) {
				byTactic[key] = append(byTactic[key], t)
				if n := len(byTactic[key]); n > maxRows {
					maxRows = n
				}
			}
		}
	}

	// 4. Строки с добивкой пустыми ячейками (рваная сетка).
	rows := make([]Row, 0, maxRows)
	for r := 0; r < maxRows; r++ {
		cells := make([]Cell, 0, len(columns))
		for _, col := range columns {
			key := col.Key()
			list := byTactic[key]
			if r < len(list) {
				t := list[r]
				cells = append(cells, Cell{
					TacticID:      key,
					Technique:     t,
					Subtechniques: t.Subtechniques,
				})
			} else {
				cells = append(cells, Cell{TacticID: key, IsEmpty: true})
			}
		}
		rows = append(rows, Row{Index: r, Cells: cells})
	}

	return &Result{
		Rows:          rows,
		Tactics:       columns,
		FilteredCount: len(filtered),
		TotalCount:    len(techniques),
	}, nil
}

func matches(t models.Technique, f Filters) bool {
	if p := normalize(f.Platform); p != "" {
		found := false
		for _, plat := range t.Platforms {
			if strings.EqualFold(plat, f.Platform) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	switch f.Coverage {
	case CoverageCovered:
		if !t.IsCovered() {
			return false
		}
	case CoverageUncovered:
		if t.IsCovered() {
			return false
		}
	}

	if search := strings.TrimSpace(f.Search); search != "" {
		needle := strings.ToLower(search)
		id := strings.ToLower(t.AttackID)
		name := strings.ToLower(t.DisplayName())
		if !strings.Contains(id, needle) && !strings.Contains(name, needle) {
			return false
		}
	}

	if active := normalize(f.Tactic); active != "" && !t.HasTactic(active) {
		return false
	}

	return true
}

// normalize: пустая строка и "all" означают «фильтр выключен».
func normalize(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, "all") {
		return ""
	}
	return v
}
