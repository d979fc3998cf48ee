package matrix

import (
	"testing"

	"attack-coverage/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tac(short string) models.Tactic {
	return models.Tactic{Shortname: short, Name: short}
}

func tech(id string, tactics []string, platforms []string, activeRules int) models.Technique {
	t := models.Technique{
		AttackID:  id,
		Name:      "Technique " + id,
		Platforms: platforms,
		Coverage:  models.Coverage{ActiveRules: activeRules, TotalRules: activeRules + 1},
	}
	for _, s := range tactics {
		t.Tactics = append(t.Tactics, tac(s))
	}
	return t
}

func TestOrganizeMissingInput(t *testing.T) {
	_, err := Organize(nil, []models.Technique{}, Filters{})
	assert.ErrorIs(t, err, ErrMissingTactics)

	_, err = Organize([]models.Tactic{}, nil, Filters{})
	assert.ErrorIs(t, err, ErrMissingTechniques)
}

func TestOrganizeEmptyResultIsNotAnError(t *testing.T) {
	res, err := Organize(
		[]models.Tactic{tac("execution")},
		[]models.Technique{tech("T1059", []string{"execution"}, []string{"Windows"}, 1)},
		Filters{Search: "no-such-thing"},
	)
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
	assert.Equal(t, 0, res.FilteredCount)
	assert.Equal(t, 1, res.TotalCount)
}

// Сценарий из двух тактик: Recon имеет две техники, Execution — одну,
// разделяемую с Recon. Сетка рваная, добивается пустыми ячейками.
func TestOrganizeTwoTacticScenario(t *testing.T) {
	tactics := []models.Tactic{tac("recon"), tac("execution")}
	t1 := tech("T1", []string{"recon"}, nil, 0)
	t2 := tech("T2", []string{"recon", "execution"}, nil, 0)

	res, err := Organize(tactics, []models.Technique{t1, t2}, Filters{Coverage: CoverageAll})
	require.NoError(t, err)

	require.Len(t, res.Rows, 2)
	require.Len(t, res.Rows[0].Cells, 2)

	// порядок источника: строка 0 Recon = T1, строка 1 Recon = T2
	assert.Equal(t, "T1", res.Rows[0].Cells[0].Technique.AttackID)
	assert.Equal(t, "T2", res.Rows[1].Cells[0].Technique.AttackID)

	// Execution: одна техника, вторая строка пустая
	assert.Equal(t, "T2", res.Rows[0].Cells[1].Technique.AttackID)
	assert.True(t, res.Rows[1].Cells[1].IsEmpty)

	assert.Equal(t, 2, res.FilteredCount)
	assert.Equal(t, 2, res.TotalCount)
}

// Техника с тактиками [A, B] попадает ровно в одну строку колонки A
// и ровно в одну строку колонки B.
func TestOrganizeMultiTacticAppearsOncePerColumn(t *testing.T) {
	tactics := []models.Tactic{tac("a"), tac("b"), tac("c")}
	shared := tech("T1078", []string{"a", "b"}, nil, 2)

	res, err := Organize(tactics, []models.Technique{shared}, Filters{})
	require.NoError(t, err)

	counts := map[string]int{}
	for _, row := range res.Rows {
		for _, cell := range row.Cells {
			if !cell.IsEmpty && cell.Technique.AttackID == "T1078" {
				counts[cell.TacticID]++
			}
		}
	}
	assert.Equal(t, map[string]int{"a": 1, "b": 1}, counts)
}

func TestOrganizeFilters(t *testing.T) {
	tactics := []models.Tactic{tac("execution"), tac("persistence")}
	all := []models.Technique{
		tech("T1059", []string{"execution"}, []string{"Windows", "Linux"}, 3),
		tech("T1055", []string{"execution"}, []string{"Windows"}, 0),
		tech("T1547", []string{"persistence"}, []string{"Linux"}, 1),
	}

	tests := []struct {
		name    string
		filters Filters
		wantIDs []string
	}{
		{"no filters", Filters{}, []string{"T1059", "T1055", "T1547"}},
		{"platform", Filters{Platform: "Linux"}, []string{"T1059", "T1547"}},
		{"covered", Filters{Coverage: CoverageCovered}, []string{"T1059", "T1547"}},
		{"uncovered", Filters{Coverage: CoverageUncovered}, []string{"T1055"}},
		{"search by attack id", Filters{Search: "T1059"}, []string{"T1059"}},
		{"search by name", Filters{Search: "technique t1547"}, []string{"T1547"}},
		{"tactic", Filters{Tactic: "persistence"}, []string{"T1547"}},
		{"all is no filter", Filters{Platform: "all", Coverage: CoverageAll, Tactic: "all"}, []string{"T1059", "T1055", "T1547"}},
		{"combined", Filters{Platform: "Windows", Coverage: CoverageCovered}, []string{"T1059"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Organize(tactics, all, tt.filters)
			require.NoError(t, err)
			assert.Equal(t, len(tt.wantIDs), res.FilteredCount)
			assert.LessOrEqual(t, res.FilteredCount, res.TotalCount)

			seen := map[string]bool{}
			for _, row := range res.Rows {
				for _, cell := range row.Cells {
					if !cell.IsEmpty {
						seen[cell.Technique.AttackID] = true
					}
				}
			}
			for _, id := range tt.wantIDs {
				assert.True(t, seen[id], "ожидали технику %s в сетке", id)
			}
			assert.Len(t, seen, len(tt.wantIDs))
		})
	}
}

// Фильтр по тактике схлопывает матрицу до одной колонки.
func TestOrganizeSingleColumnView(t *testing.T) {
	tactics := []models.Tactic{tac("execution"), tac("persistence")}
	all := []models.Technique{
		tech("T1059", []string{"execution"}, nil, 1),
		tech("T1547", []string{"persistence"}, nil, 1),
	}

	res, err := Organize(tactics, all, Filters{Tactic: "persistence"})
	require.NoError(t, err)
	require.Len(t, res.Tactics, 1)
	assert.Equal(t, "persistence", res.Tactics[0].Key())
	require.Len(t, res.Rows, 1)
	require.Len(t, res.Rows[0].Cells, 1)
	assert.Equal(t, "T1547", res.Rows[0].Cells[0].Technique.AttackID)
}

// Повторный вызов с теми же входами даёт структурно тот же результат,
// входные срезы не мутируются.
func TestOrganizeIdempotent(t *testing.T) {
	tactics := []models.Tactic{tac("recon"), tac("execution")}
	all := []models.Technique{
		tech("T1", []string{"recon"}, []string{"Windows"}, 1),
		tech("T2", []string{"recon", "execution"}, []string{"Linux"}, 0),
	}
	f := Filters{Coverage: CoverageAll}

	first, err := Organize(tactics, all, f)
	require.NoError(t, err)
	second, err := Organize(tactics, all, f)
	require.NoError(t, err)

	require.Equal(t, len(first.Rows), len(second.Rows))
	for i := range first.Rows {
		for j := range first.Rows[i].Cells {
			a, b := first.Rows[i].Cells[j], second.Rows[i].Cells[j]
			assert.Equal(t, a.IsEmpty, b.IsEmpty)
			if !a.IsEmpty {
				assert.Equal(t, a.Technique.AttackID, b.Technique.AttackID)
			}
		}
	}

	// входы не тронуты
	assert.Equal(t, "T1", all[0].AttackID)
	assert.Equal(t, []string{"Windows"}, all[0].Platforms)
	assert.Equal(t, "recon", tactics[0].Shortname)
}

// Каждая техника в сетке удовлетворяет всем активным предикатам.
func TestOrganizePredicatesHold(t *testing.T) {
	tactics := []models.Tactic{tac("execution"), tac("persistence")}
	all := []models.Technique{
		tech("T1059", []string{"execution"}, []string{"Windows"}, 3),
		tech("T1055", []string{"execution"}, []string{"Windows"}, 0),
		tech("T1547", []string{"persistence"}, []string{"Linux"}, 1),
		tech("T1037", []string{"persistence"}, []string{"Windows"}, 0),
	}
	f := Filters{Platform: "Windows", Coverage: CoverageUncovered}

	res, err := Organize(tactics, all, f)
	require.NoError(t, err)
	require.Greater(t, res.FilteredCount, 0)

	for _, row := range res.Rows {
		for _, cell := range row.Cells {
			if cell.IsEmpty {
				continue
			}
			assert.Contains(t, cell.Technique.Platforms, "Windows")
			assert.False(t, cell.Technique.IsCovered())
		}
	}
}

func TestOrganizeSearchScenario(t *testing.T) {
	tactics := []models.Tactic{tac("execution")}
	all := []models.Technique{
		tech("T1059", []string{"execution"}, nil, 0),
		tech("T1055", []string{"execution"}, nil, 0),
	}

	res, err := Organize(tactics, all, Filters{Search: "T1059"})
	require.NoError(t, err)
	require.Equal(t, 1, res.FilteredCount)
	assert.Equal(t, "T1059", res.Rows[0].Cells[0].Technique.AttackID)
}
